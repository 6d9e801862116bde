package file_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"todoist-scheduler/internal/analytics"
	"todoist-scheduler/internal/analytics/repository/file"
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

func TestLastPassEmpty(t *testing.T) {
	rec := file.New(filepath.Join(t.TempDir(), "passes.jsonl"), &mockLogger{})

	last, err := rec.LastPass(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last != nil {
		t.Errorf("expected nil record before any pass, got %+v", last)
	}
}

func TestRecordAndLastPass(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passes.jsonl")
	rec := file.New(path, &mockLogger{})

	now := time.Date(2024, 5, 1, 16, 0, 0, 0, time.UTC)
	for i, id := range []string{"pass-1", "pass-2"} {
		err := rec.RecordPass(context.Background(), analytics.PassRecord{
			ID:         id,
			StartedAt:  now,
			FinishedAt: now.Add(time.Second),
			TasksSeen:  10 + i,
			Placed:     i,
			Placements: []analytics.Placement{
				{TaskID: "t1", Content: "write report", Duration: 25, To: now, Source: "heuristic"},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	last, err := rec.LastPass(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last == nil || last.ID != "pass-2" {
		t.Fatalf("expected pass-2, got %+v", last)
	}
	if last.TasksSeen != 11 || len(last.Placements) != 1 {
		t.Errorf("record did not round-trip: %+v", last)
	}
}

func TestLastPassColdStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passes.jsonl")

	writer := file.New(path, &mockLogger{})
	if err := writer.RecordPass(context.Background(), analytics.PassRecord{ID: "pass-9"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A fresh recorder should recover the latest record from disk.
	reader := file.New(path, &mockLogger{})
	last, err := reader.LastPass(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last == nil || last.ID != "pass-9" {
		t.Errorf("expected pass-9 from history file, got %+v", last)
	}
}
