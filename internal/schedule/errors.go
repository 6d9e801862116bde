package schedule

import "errors"

var (
	// ErrNoAvailableSlot means the forward scan exhausted its bound
	// without finding a legal slot: the day is saturated.
	ErrNoAvailableSlot = errors.New("no available time slot")
)
