package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"todoist-scheduler/internal/estimate"
	"todoist-scheduler/internal/lifeblock"
	"todoist-scheduler/internal/model"
	"todoist-scheduler/internal/schedule"
	"todoist-scheduler/internal/schedule/usecase"
	"todoist-scheduler/internal/task/repository"
	"todoist-scheduler/pkg/timegrid"
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

type fakeUpdate struct {
	id  string
	opt repository.UpdateTaskOptions
}

type fakeTaskRepo struct {
	tasks   []model.Task
	updates []fakeUpdate
	failIDs map[string]bool
}

func (f *fakeTaskRepo) ListTasks(ctx context.Context) ([]model.Task, error) {
	out := make([]model.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *fakeTaskRepo) UpdateTask(ctx context.Context, id string, opt repository.UpdateTaskOptions) (model.Task, error) {
	if f.failIDs[id] {
		return model.Task{}, errors.New("store write failed")
	}
	f.updates = append(f.updates, fakeUpdate{id: id, opt: opt})
	return model.Task{ID: id}, nil
}

func (f *fakeTaskRepo) CloseTask(ctx context.Context, id string) error { return nil }

type stubBlocks struct {
	state lifeblock.State
}

func (s *stubBlocks) GetBlocks(ctx context.Context) (lifeblock.State, error) {
	return s.state, nil
}

func (s *stubBlocks) SaveBlocks(ctx context.Context, state lifeblock.State) error {
	s.state = state
	return nil
}

// newRunUseCase wires the usecase with a fixed clock. 2024-05-01 is a
// Wednesday.
func newRunUseCase(t *testing.T, repo *fakeTaskRepo, now time.Time) schedule.UseCase {
	t.Helper()
	grid, err := timegrid.New("UTC")
	if err != nil {
		t.Fatal(err)
	}
	est := estimate.New(nil, &mockLogger{}, estimate.Config{
		IntervalMinutes: 5,
		MinDuration:     5,
		DefaultDuration: 30,
	})
	cfg := schedule.Config{
		IntervalMinutes:  5,
		MinDuration:      5,
		SleepHour:        20,
		SleepMinute:      45,
		WeekdayStartHour: 15,
		WeekendStartHour: 9,
		FallbackDuration: 10,
		LeadTime:         time.Hour,
		SearchLimit:      10000,
	}
	u := usecase.New(&mockLogger{}, repo, est, &stubBlocks{}, nil, nil, grid, cfg)
	u.SetClock(now)
	return u
}

func wednesday(hour, minute int) time.Time {
	return time.Date(2024, 5, 1, hour, minute, 0, 0, time.UTC)
}

func TestRunPlacesOverdueTask(t *testing.T) {
	repo := &fakeTaskRepo{tasks: []model.Task{
		{ID: "t1", Content: "read the proposal", Priority: 2,
			Due: &model.Due{Date: time.Date(2024, 4, 29, 12, 0, 0, 0, time.UTC), HasTime: true}},
	}}
	u := newRunUseCase(t, repo, wednesday(15, 0))

	record, err := u.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Placed != 1 || record.Failed != 0 {
		t.Fatalf("expected one placement, got %+v", record)
	}
	if len(repo.updates) != 1 {
		t.Fatalf("expected one store write, got %d", len(repo.updates))
	}

	up := repo.updates[0]
	if up.id != "t1" {
		t.Errorf("wrong task updated: %s", up.id)
	}
	// "read" matches the medium heuristic bucket: 25 minutes, stamped.
	if up.opt.Description == nil || *up.opt.Description != "25m" {
		t.Errorf("expected 25m marker stamped, got %v", up.opt.Description)
	}
	// Empty day: first legal slot is the lead-time bound, 16:00.
	if up.opt.DueDateTime == nil || !up.opt.DueDateTime.Equal(wednesday(16, 0)) {
		t.Errorf("expected placement at 16:00, got %v", up.opt.DueDateTime)
	}
}

func TestRunReschedulesOverdueRecurring(t *testing.T) {
	repo := &fakeTaskRepo{tasks: []model.Task{
		{ID: "r1", Content: "water plants", Priority: 2,
			Due: &model.Due{
				Date:        time.Date(2024, 4, 28, 16, 0, 0, 0, time.UTC),
				HasTime:     true,
				IsRecurring: true,
				String:      "every weekday at 16:00",
			}},
	}}
	u := newRunUseCase(t, repo, wednesday(15, 0))

	record, err := u.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.updates) != 1 {
		t.Fatalf("expected one store write, got %d", len(repo.updates))
	}
	if got := repo.updates[0].opt.DueString; got != "every weekday at 16:00" {
		t.Errorf("recurrence text must round-trip unchanged, got %q", got)
	}
	if record.Placed != 0 {
		t.Errorf("recurring reschedule is not a placement, got %+v", record)
	}
}

func TestRunMarkerTaskKeepsItsDuration(t *testing.T) {
	repo := &fakeTaskRepo{tasks: []model.Task{
		{ID: "t1", Content: "write report", Description: "draft 45m", Priority: 2,
			Due: &model.Due{Date: time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC), HasTime: true}},
	}}
	u := newRunUseCase(t, repo, wednesday(15, 0))

	record, err := u.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Placed != 1 {
		t.Fatalf("expected one placement, got %+v", record)
	}
	up := repo.updates[0]
	if up.opt.Description != nil {
		t.Errorf("user-specified markers must not be rewritten, got %q", *up.opt.Description)
	}
	if len(record.Placements) != 1 || record.Placements[0].Duration != 45 {
		t.Errorf("expected a 45m placement, got %+v", record.Placements)
	}
}

func TestRunDateOnlyOtherDaySkipped(t *testing.T) {
	repo := &fakeTaskRepo{tasks: []model.Task{
		{ID: "t1", Content: "from monday", Priority: 2,
			Due: &model.Due{Date: time.Date(2024, 4, 29, 0, 0, 0, 0, time.UTC), HasTime: false}},
	}}
	u := newRunUseCase(t, repo, wednesday(15, 0))

	record, err := u.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Overdue date-only task: it is a candidate, but its date is not
	// today, so placement leaves it where it is.
	if record.Skipped != 1 || record.Placed != 0 {
		t.Errorf("expected one skip, got %+v", record)
	}
	if len(repo.updates) != 0 {
		t.Errorf("expected no store writes, got %+v", repo.updates)
	}
}

func TestRunWriteFailureDoesNotAbortPass(t *testing.T) {
	repo := &fakeTaskRepo{
		failIDs: map[string]bool{"bad": true},
		tasks: []model.Task{
			{ID: "bad", Content: "doomed write", Priority: 4,
				Due: &model.Due{Date: time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC), HasTime: true}},
			{ID: "good", Content: "check the mail", Priority: 1,
				Due: &model.Due{Date: time.Date(2024, 4, 30, 13, 0, 0, 0, time.UTC), HasTime: true}},
		},
	}
	u := newRunUseCase(t, repo, wednesday(15, 0))

	record, err := u.Run(context.Background())
	if err != nil {
		t.Fatalf("a single failed write must not fail the pass: %v", err)
	}
	if record.Failed != 1 || record.Placed != 1 {
		t.Errorf("expected one failure and one placement, got %+v", record)
	}
	if len(repo.updates) != 1 || repo.updates[0].id != "good" {
		t.Errorf("expected only the second task to be written, got %+v", repo.updates)
	}
}
