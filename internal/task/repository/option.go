package repository

import "time"

// UpdateTaskOptions holds the patchable task fields. Zero values are
// omitted from the request.
type UpdateTaskOptions struct {
	DueDateTime *time.Time // New due instant
	DueString   string     // Natural-language due text, e.g. a recurrence pattern
	Description *string    // Replacement description
	Priority    int        // 1-4; 0 leaves priority unchanged
}
