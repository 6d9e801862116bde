package estimate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"todoist-scheduler/pkg/timegrid"
)

// markerPattern matches a duration marker like "15m" or "120m" in a task
// description.
var markerPattern = regexp.MustCompile(`(\d+)m\b`)

// ParseDurationMarker extracts a user-specified duration from a description.
// When the description carries multiple markers the last one wins. The value
// is rounded to the nearest interval multiple and clamped to minMinutes.
func ParseDurationMarker(description string, intervalMinutes, minMinutes int) (int, bool) {
	if description == "" {
		return 0, false
	}

	matches := markerPattern.FindAllStringSubmatch(description, -1)
	if len(matches) == 0 {
		return 0, false
	}

	minutes, err := strconv.Atoi(matches[len(matches)-1][1])
	if err != nil {
		return 0, false
	}
	return timegrid.RoundToNearest(minutes, intervalMinutes, minMinutes), true
}

// AddDurationMarker writes a duration marker into a description. An existing
// marker is replaced in place (the first one, so reruns stay idempotent);
// otherwise the marker is appended.
func AddDurationMarker(description string, durationMinutes int) string {
	marker := fmt.Sprintf("%dm", durationMinutes)

	if description == "" {
		return marker
	}

	if loc := markerPattern.FindStringIndex(description); loc != nil {
		return description[:loc[0]] + marker + description[loc[1]:]
	}
	return strings.TrimSpace(description + " " + marker)
}
