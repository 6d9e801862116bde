package timegrid

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Grid provides calendar arithmetic on the scheduling slot grid for a
// fixed IANA timezone.
type Grid struct {
	location *time.Location
}

// New creates a new Grid for the given IANA timezone string.
// e.g. "America/New_York"
func New(timezone string) (*Grid, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Grid{location: loc}, nil
}

// Location returns the grid's timezone.
func (g *Grid) Location() *time.Location {
	return g.location
}

// Now returns the current time in the grid's timezone.
func (g *Grid) Now() time.Time {
	return time.Now().In(g.location)
}

// StartOfDay returns midnight at the start of the given day in the grid's timezone.
func (g *Grid) StartOfDay(t time.Time) time.Time {
	t = t.In(g.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, g.location)
}

// Combine attaches a clock time (hour, minute) to the given calendar day.
func (g *Grid) Combine(day time.Time, hour, minute int) time.Time {
	day = day.In(g.location)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, g.location)
}

// SameDay reports whether the two instants fall on the same calendar day.
func (g *Grid) SameDay(a, b time.Time) bool {
	a, b = a.In(g.location), b.In(g.location)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// CeilToInterval rounds t up to the next interval boundary, aligned on
// the hour. A time already on a boundary is returned unchanged.
func (g *Grid) CeilToInterval(t time.Time, intervalMinutes int) time.Time {
	t = t.In(g.location)
	hour := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, g.location)
	blocks := (t.Minute() + intervalMinutes - 1) / intervalMinutes
	return hour.Add(time.Duration(blocks*intervalMinutes) * time.Minute)
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WeekdaySlug returns the lowercase three-letter weekday slug ("mon".."sun").
func WeekdaySlug(t time.Time) string {
	return strings.ToLower(t.Weekday().String()[:3])
}

// NumBlocks converts a duration in minutes to a count of grid slots,
// rounding up, minimum one slot.
func NumBlocks(durationMinutes, intervalMinutes int) int {
	blocks := (durationMinutes + intervalMinutes - 1) / intervalMinutes
	if blocks < 1 {
		return 1
	}
	return blocks
}

// RoundToNearest rounds minutes to the nearest interval multiple and
// clamps the result to minMinutes.
func RoundToNearest(minutes, intervalMinutes, minMinutes int) int {
	rounded := int(math.Round(float64(minutes)/float64(intervalMinutes))) * intervalMinutes
	if rounded < minMinutes {
		return minMinutes
	}
	return rounded
}
