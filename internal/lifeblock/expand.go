package lifeblock

import (
	"strings"
	"time"

	"todoist-scheduler/pkg/timegrid"
)

// SlotsForDate expands all blocks that apply to the given calendar date
// into slot-grid instants (end exclusive). Entries with malformed dates
// or times are skipped rather than failing the whole expansion.
func SlotsForDate(state State, date time.Time, intervalMinutes int) map[time.Time]struct{} {
	slots := make(map[time.Time]struct{})
	loc := date.Location()
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	for _, block := range state.OneOff {
		blockDate, err := time.ParseInLocation("2006-01-02", block.Date, loc)
		if err != nil || !blockDate.Equal(day) {
			continue
		}
		expandBlock(slots, day, block.Start, block.End, intervalMinutes)
	}

	daySlug := timegrid.WeekdaySlug(date)
	for _, block := range state.Weekly {
		if !matchesDay(block.Days, daySlug) {
			continue
		}
		expandBlock(slots, day, block.Start, block.End, intervalMinutes)
	}

	return slots
}

func matchesDay(days []string, slug string) bool {
	for _, d := range days {
		if normalizeDay(d) == slug {
			return true
		}
	}
	return false
}

// normalizeDay reduces a weekday name to its three-letter slug.
func normalizeDay(day string) string {
	cleaned := strings.ToLower(strings.TrimSpace(day))
	if len(cleaned) > 3 {
		cleaned = cleaned[:3]
	}
	return cleaned
}

func expandBlock(slots map[time.Time]struct{}, day time.Time, start, end string, intervalMinutes int) {
	startClock, okStart := parseClock(start)
	endClock, okEnd := parseClock(end)
	if !okStart || !okEnd {
		return
	}

	startAt := day.Add(startClock)
	endAt := day.Add(endClock)
	if !endAt.After(startAt) {
		return
	}

	for current := startAt; current.Before(endAt); current = current.Add(time.Duration(intervalMinutes) * time.Minute) {
		slots[current] = struct{}{}
	}
}

// parseClock parses "15:04" into an offset from midnight.
func parseClock(value string) (time.Duration, bool) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, false
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
}
