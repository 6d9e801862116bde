package schedule

import (
	"context"
	"time"

	"todoist-scheduler/pkg/gcalendar"
)

// Config tunes a scheduling pass.
type Config struct {
	IntervalMinutes int
	MinDuration     int

	// Day envelope. No task may start at or after the sleep boundary,
	// nor before the day-type start hour.
	SleepHour        int
	SleepMinute      int
	WeekdayStartHour int
	WeekendStartHour int

	// FallbackDuration is the occupancy assumed for a task due today
	// that has no marker and no AI estimate while building availability.
	FallbackDuration int

	// LeadTime keeps new placements from starting sooner than roughly
	// this far out from now.
	LeadTime time.Duration

	// SearchLimit bounds the forward linear scan, in grid steps.
	SearchLimit int

	// AutoPriorities lets the AI promote unprioritized tasks.
	AutoPriorities bool

	// CalendarID selects the Google calendar whose busy windows are
	// treated as immovable occupancy. Empty disables the merge.
	CalendarID string
}

// Gap is a free window in today's schedule, end exclusive.
type Gap struct {
	Start time.Time
	End   time.Time
}

// Minutes returns the gap's width in whole minutes.
func (g Gap) Minutes() int {
	return int(g.End.Sub(g.Start).Minutes())
}

// CalendarSource supplies committed busy windows, typically from Google
// Calendar. Implementations must not return all-day events.
type CalendarSource interface {
	ListBusyWindows(ctx context.Context, req gcalendar.ListBusyRequest) ([]gcalendar.BusyWindow, error)
}
