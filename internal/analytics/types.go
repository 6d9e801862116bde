package analytics

import "time"

// Placement records where a single task ended up during a scheduling pass.
type Placement struct {
	TaskID   string     `json:"task_id"`
	Content  string     `json:"content"`
	Duration int        `json:"duration_minutes"`
	From     *time.Time `json:"from,omitempty"`
	To       time.Time  `json:"to"`
	Source   string     `json:"source"`
}

// PassRecord summarizes one full scheduling pass.
type PassRecord struct {
	ID         string      `json:"id"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
	TasksSeen  int         `json:"tasks_seen"`
	Placed     int         `json:"placed"`
	Skipped    int         `json:"skipped"`
	Failed     int         `json:"failed"`
	Placements []Placement `json:"placements"`
}
