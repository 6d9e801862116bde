package todoist_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"todoist-scheduler/internal/task/repository"
	"todoist-scheduler/internal/task/repository/todoist"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

func TestListTasks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{
				"id": "1001",
				"content": "Brush teeth",
				"description": "10m",
				"priority": 3,
				"labels": [],
				"due": {"date": "2024-05-01", "datetime": "2024-05-01T21:30:00Z", "string": "every day 21:30", "is_recurring": true}
			},
			{
				"id": "1002",
				"content": "Write essay",
				"description": "",
				"priority": 2,
				"labels": ["#dontchangetime"],
				"due": {"date": "2024-05-03", "string": "May 3", "is_recurring": false}
			},
			{
				"id": "1003",
				"content": "Someday task",
				"description": "",
				"priority": 1,
				"labels": [],
				"due": null
			}
		]`))
	}))
	defer srv.Close()

	repo := todoist.New(todoist.NewClient(srv.URL, "test-token"), time.UTC, &mockLogger{})

	tasks, err := repo.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}

	recurring := tasks[0]
	if recurring.Due == nil || !recurring.Due.IsRecurring {
		t.Fatalf("expected first task to be recurring")
	}
	if !recurring.Due.HasTime {
		t.Errorf("expected datetime due to carry a clock time")
	}
	want := time.Date(2024, 5, 1, 21, 30, 0, 0, time.UTC)
	if !recurring.Due.Date.Equal(want) {
		t.Errorf("due = %v, want %v", recurring.Due.Date, want)
	}

	dateOnly := tasks[1]
	if dateOnly.Due == nil || dateOnly.Due.HasTime {
		t.Fatalf("expected second task to be date-only")
	}
	if !dateOnly.IsExempt() {
		t.Errorf("expected #dontchangetime label to mark task exempt")
	}

	if tasks[2].Due != nil {
		t.Errorf("expected third task to have no due value")
	}
}

func TestListTasksFloatingDatetime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{
				"id": "2001",
				"content": "Review PR",
				"description": "",
				"priority": 2,
				"labels": [],
				"due": {"date": "2024-05-01", "datetime": "2024-05-01T16:00:00", "string": "May 1 16:00", "is_recurring": false}
			}
		]`))
	}))
	defer srv.Close()

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	repo := todoist.New(todoist.NewClient(srv.URL, "test-token"), loc, &mockLogger{})

	tasks, err := repo.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Due == nil {
		t.Fatalf("expected one task with a due value, got %+v", tasks)
	}

	// A floating datetime has no offset: it must keep its clock time in
	// the repository's location, not degrade to a date-only midnight.
	due := tasks[0].Due
	if !due.HasTime {
		t.Fatalf("floating datetime lost its clock time: %+v", due)
	}
	want := time.Date(2024, 5, 1, 16, 0, 0, 0, loc)
	if !due.Date.Equal(want) {
		t.Errorf("due = %v, want %v", due.Date, want)
	}
}

func TestUpdateTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks/1001" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["due_datetime"] != "2024-05-01T16:00:00Z" {
			t.Errorf("unexpected due_datetime %v", body["due_datetime"])
		}
		if body["description"] != "prep slides 25m" {
			t.Errorf("unexpected description %v", body["description"])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "1001",
			"content": "Prep slides",
			"description": "prep slides 25m",
			"priority": 2,
			"due": {"date": "2024-05-01", "datetime": "2024-05-01T16:00:00Z", "string": "May 1 16:00", "is_recurring": false}
		}`))
	}))
	defer srv.Close()

	repo := todoist.New(todoist.NewClient(srv.URL, "test-token"), time.UTC, &mockLogger{})

	due := time.Date(2024, 5, 1, 16, 0, 0, 0, time.UTC)
	desc := "prep slides 25m"
	updated, err := repo.UpdateTask(context.Background(), "1001", repository.UpdateTaskOptions{
		DueDateTime: &due,
		Description: &desc,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Description != desc {
		t.Errorf("unexpected description %q", updated.Description)
	}
	if updated.Due == nil || !updated.Due.Date.Equal(due) {
		t.Errorf("unexpected due %+v", updated.Due)
	}
}

func TestCloseTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks/1001/close" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	repo := todoist.New(todoist.NewClient(srv.URL, "test-token"), time.UTC, &mockLogger{})
	if err := repo.CloseTask(context.Background(), "1001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListTasksAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	repo := todoist.New(todoist.NewClient(srv.URL, "bad-token"), time.UTC, &mockLogger{})
	if _, err := repo.ListTasks(context.Background()); err == nil {
		t.Fatalf("expected error on non-200 status")
	}
}
