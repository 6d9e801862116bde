package model

import "time"

// SkipSchedulingLabel marks a task the scheduler must never move.
const SkipSchedulingLabel = "#dontchangetime"

// TestNotificationLabel marks synthetic tasks created by notification tests.
const TestNotificationLabel = "#testnotification"

// Task represents a task stored in Todoist.
type Task struct {
	ID          string   // Todoist task ID
	Content     string   // Task title
	Description string   // Free text; may carry a trailing duration marker like "25m"
	Priority    int      // 1 (lowest) to 4 (highest)
	Labels      []string // Label names including exemption markers
	Due         *Due     // nil when the task has no due value at all
	IsCompleted bool
}

// Due is a task's due value.
type Due struct {
	Date        time.Time // Due instant; midnight when the task is date-only
	HasTime     bool      // false for date-only tasks
	IsRecurring bool
	String      string // Original recurrence text, e.g. "every weekday at 16:45"
}

// DueDate returns the calendar day of the due instant, in the instant's location.
func (t Task) DueDate() time.Time {
	d := t.Due.Date
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// HasLabel reports whether the task carries the given label.
func (t Task) HasLabel(label string) bool {
	for _, l := range t.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// IsExempt reports whether the scheduler must leave this task alone.
func (t Task) IsExempt() bool {
	return t.HasLabel(SkipSchedulingLabel)
}
