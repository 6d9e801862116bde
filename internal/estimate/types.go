package estimate

import "time"

// Estimate sources, recorded alongside placements so a pass can be audited.
const (
	SourceMarker    = "marker"
	SourceAI        = "ai"
	SourceHeuristic = "heuristic"
)

// Result is a duration estimate and where it came from. Marker estimates
// are user-specified and must never be overwritten.
type Result struct {
	Minutes int
	Source  string
}

// UserSpecified reports whether the duration came from a marker the user
// wrote into the task description.
func (r Result) UserSpecified() bool {
	return r.Source == SourceMarker
}

// Config tunes the estimator cascade.
type Config struct {
	IntervalMinutes int
	MinDuration     int
	DefaultDuration int

	// AI tier knobs. CacheSize/CacheTTL bound the estimate cache;
	// RatePerMinute throttles outbound LLM calls.
	CacheSize     int
	CacheTTL      time.Duration
	RatePerMinute int
}

// Heuristic keyword buckets. Matching is substring-based on the lowercased
// content plus description, checked quick first.
var (
	quickKeywords = []string{
		"check", "quick", "brief", "short", "email", "text", "call",
		"review", "confirm", "verify", "remind", "note", "list",
	}
	mediumKeywords = []string{
		"read", "watch", "install", "setup", "configure", "update",
		"change", "cancel", "make", "create", "write",
	}
	longKeywords = []string{
		"build", "develop", "implement", "research", "study", "learn",
		"clean", "organize", "project", "essay",
	}
)

const (
	quickDuration  = 10
	mediumDuration = 25
	longDuration   = 45
)
