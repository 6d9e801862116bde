package todoist

// apiTask is the Todoist REST v2 task representation.
type apiTask struct {
	ID          string   `json:"id"`
	Content     string   `json:"content"`
	Description string   `json:"description"`
	Priority    int      `json:"priority"`
	Labels      []string `json:"labels"`
	Due         *apiDue  `json:"due"`
	IsCompleted bool     `json:"is_completed"`
}

// apiDue is the REST v2 due object.
type apiDue struct {
	Date        string `json:"date"`               // "2006-01-02"
	Datetime    string `json:"datetime,omitempty"` // RFC3339, absent for date-only tasks
	String      string `json:"string"`             // Human/recurrence text
	IsRecurring bool   `json:"is_recurring"`
	Timezone    string `json:"timezone,omitempty"`
}

// updateTaskRequest is the PATCH body for POST /tasks/{id}.
type updateTaskRequest struct {
	DueDatetime string  `json:"due_datetime,omitempty"`
	DueString   string  `json:"due_string,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    int     `json:"priority,omitempty"`
}
