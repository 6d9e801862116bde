package gcalendar

import "time"

// BusyWindow is a committed calendar window that the scheduler must not
// book over.
type BusyWindow struct {
	Start   time.Time
	End     time.Time
	Summary string
}

// ListBusyRequest is the input for listing busy windows for a day.
type ListBusyRequest struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time
	MaxResults int64
}
