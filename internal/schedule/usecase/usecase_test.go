package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"todoist-scheduler/internal/estimate"
	"todoist-scheduler/internal/lifeblock"
	"todoist-scheduler/internal/model"
	"todoist-scheduler/internal/schedule"
	"todoist-scheduler/internal/task/repository"
	"todoist-scheduler/pkg/gcalendar"
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

type fakeCalendar struct {
	windows []gcalendar.BusyWindow
	err     error
}

func (f *fakeCalendar) ListBusyWindows(ctx context.Context, req gcalendar.ListBusyRequest) ([]gcalendar.BusyWindow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.windows, nil
}

func testCfg() schedule.Config {
	return schedule.Config{
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
}

// newTestUseCase wires the usecase with a fixed clock. 2024-05-01 is a
// Wednesday.
func newTestUseCase(t *testing.T, repo *fakeTaskRepo, blocks lifeblock.Repository, now time.Time) *implUseCase {
	t.Helper()
	grid, err := timegrid.New("UTC")
	if err != nil {
		t.Fatal(err)
	}
	if blocks == nil {
		blocks = &stubBlocks{}
	}
	est := estimate.New(nil, &mockLogger{}, estimate.Config{
		IntervalMinutes: 5,
		MinDuration:     5,
		DefaultDuration: 30,
	})
	u := New(&mockLogger{}, repo, est, blocks, nil, nil, grid, testCfg())
	u.nowFn = func() time.Time { return now }
	return u
}

func wednesday(hour, minute int) time.Time {
	return time.Date(2024, 5, 1, hour, minute, 0, 0, time.UTC)
}

func freshPass(u *implUseCase) *pass {
	p := u.newPass()
	p.buildAvailability(context.Background())
	return p
}

func TestFindGapsCoalesced(t *testing.T) {
	u := newTestUseCase(t, &fakeTaskRepo{}, nil, wednesday(8, 0))
	p := freshPass(u)

	for _, m := range []int{0, 5, 10} {
		p.occupied[wednesday(9, m)] = struct{}{}
	}

	gaps := p.findGaps(wednesday(9, 0))
	if len(gaps) != 1 {
		t.Fatalf("expected one coalesced gap, got %d: %+v", len(gaps), gaps)
	}
	if !gaps[0].Start.Equal(wednesday(9, 15)) {
		t.Errorf("gap should start at 09:15, got %s", gaps[0].Start.Format("15:04"))
	}
	if !gaps[0].End.Equal(wednesday(20, 45)) {
		t.Errorf("gap should end at the sleep boundary, got %s", gaps[0].End.Format("15:04"))
	}
}

func TestFindGapsEmptyDay(t *testing.T) {
	u := newTestUseCase(t, &fakeTaskRepo{}, nil, wednesday(8, 0))
	p := freshPass(u)

	gaps := p.findGaps(wednesday(15, 0))
	if len(gaps) != 1 || !gaps[0].Start.Equal(wednesday(15, 0)) || !gaps[0].End.Equal(wednesday(20, 45)) {
		t.Errorf("expected single whole-day gap, got %+v", gaps)
	}
}

func TestFindGapsBetweenRuns(t *testing.T) {
	u := newTestUseCase(t, &fakeTaskRepo{}, nil, wednesday(8, 0))
	p := freshPass(u)

	// Two busy runs: 16:00-16:10 and 17:00-17:05.
	for _, m := range []int{0, 5} {
		p.occupied[wednesday(16, m)] = struct{}{}
	}
	p.occupied[wednesday(17, 0)] = struct{}{}

	gaps := p.findGaps(wednesday(15, 0))
	want := []schedule.Gap{
		{Start: wednesday(15, 0), End: wednesday(16, 0)},
		{Start: wednesday(16, 10), End: wednesday(17, 0)},
		{Start: wednesday(17, 5), End: wednesday(20, 45)},
	}
	if len(gaps) != len(want) {
		t.Fatalf("expected %d gaps, got %d: %+v", len(want), len(gaps), gaps)
	}
	for i := range want {
		if !gaps[i].Start.Equal(want[i].Start) || !gaps[i].End.Equal(want[i].End) {
			t.Errorf("gap %d = %+v, want %+v", i, gaps[i], want[i])
		}
	}
}

func TestFindGapForTaskRejectsRecurringInterior(t *testing.T) {
	u := newTestUseCase(t, &fakeTaskRepo{}, nil, wednesday(8, 0))
	p := freshPass(u)

	// 16:10 belongs to a recurring task: a 15:00-20:45 gap is nominally
	// huge but its head is poisoned, so the whole gap must be rejected.
	p.recurring[wednesday(16, 10)] = struct{}{}

	gaps := []schedule.Gap{
		{Start: wednesday(16, 0), End: wednesday(16, 30)},
		{Start: wednesday(17, 0), End: wednesday(18, 0)},
	}

	slot, ok := p.findGapForTask(gaps, 4) // 20 minutes
	if !ok {
		t.Fatal("expected a slot from the second gap")
	}
	if !slot.Equal(wednesday(17, 0)) {
		t.Errorf("expected 17:00 (first gap has a recurring collision), got %s", slot.Format("15:04"))
	}
}

func TestFindGapForTaskTooShort(t *testing.T) {
	u := newTestUseCase(t, &fakeTaskRepo{}, nil, wednesday(8, 0))
	p := freshPass(u)

	gaps := []schedule.Gap{{Start: wednesday(16, 0), End: wednesday(16, 10)}}
	if _, ok := p.findGapForTask(gaps, 3); ok {
		t.Error("a 10-minute gap must not fit a 15-minute task")
	}
}

func TestConsumeGap(t *testing.T) {
	gaps := []schedule.Gap{
		{Start: wednesday(15, 0), End: wednesday(16, 0)},
		{Start: wednesday(17, 0), End: wednesday(17, 10)},
	}

	out := consumeGap(gaps, wednesday(15, 0), 4, 5) // uses 20 minutes
	if len(out) != 2 {
		t.Fatalf("expected shrunken gap to survive, got %+v", out)
	}
	if !out[0].Start.Equal(wednesday(15, 20)) {
		t.Errorf("remainder should start at 15:20, got %s", out[0].Start.Format("15:04"))
	}

	out = consumeGap(out, wednesday(17, 0), 2, 5) // exactly consumes the second gap
	if len(out) != 1 {
		t.Errorf("fully consumed gap should be dropped, got %+v", out)
	}
}

func TestEnvelope(t *testing.T) {
	u := newTestUseCase(t, &fakeTaskRepo{}, nil, wednesday(8, 0))
	p := freshPass(u)

	tests := []struct {
		name    string
		instant time.Time
		blocked bool
	}{
		{name: "weekday before start hour", instant: wednesday(14, 55), blocked: true},
		{name: "weekday at start hour", instant: wednesday(15, 0), blocked: false},
		{name: "just before sleep", instant: wednesday(20, 40), blocked: false},
		{name: "at sleep boundary", instant: wednesday(20, 45), blocked: true},
		{name: "after sleep", instant: wednesday(21, 0), blocked: true},
		// 2024-05-04 is a Saturday: the weekend start hour applies.
		{name: "weekend morning ok", instant: time.Date(2024, 5, 4, 9, 0, 0, 0, time.UTC), blocked: false},
		{name: "weekend too early", instant: time.Date(2024, 5, 4, 8, 55, 0, 0, time.UTC), blocked: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.isTimeBlocked(tt.instant); got != tt.blocked {
				t.Errorf("isTimeBlocked(%s) = %v, want %v", tt.instant, got, tt.blocked)
			}
		})
	}
}

func TestBuildAvailability(t *testing.T) {
	due := wednesday(16, 0)
	repo := &fakeTaskRepo{tasks: []model.Task{
		{
			ID: "1", Content: "standup", Description: "15m",
			Due: &model.Due{Date: due, HasTime: true, IsRecurring: true},
		},
		{
			ID: "2", Content: "done already", Description: "30m", IsCompleted: true,
			Due: &model.Due{Date: wednesday(17, 0), HasTime: true},
		},
		{
			ID: "3", Content: "pinned", Description: "30m",
			Labels: []string{model.SkipSchedulingLabel},
			Due:    &model.Due{Date: wednesday(18, 0), HasTime: true},
		},
	}}

	u := newTestUseCase(t, repo, nil, wednesday(8, 0))
	p := u.newPass()
	if err := p.fetchTasks(context.Background()); err != nil {
		t.Fatal(err)
	}
	p.buildAvailability(context.Background())

	for _, m := range []int{0, 5, 10} {
		slot := wednesday(16, m)
		if _, ok := p.occupied[slot]; !ok {
			t.Errorf("slot %s should be occupied", slot.Format("15:04"))
		}
		if _, ok := p.recurring[slot]; !ok {
			t.Errorf("slot %s should be recurring", slot.Format("15:04"))
		}
	}
	if _, ok := p.occupied[wednesday(16, 15)]; ok {
		t.Error("15-minute task must occupy exactly three slots")
	}
	if _, ok := p.occupied[wednesday(17, 0)]; ok {
		t.Error("completed tasks must not occupy slots")
	}
	if _, ok := p.occupied[wednesday(18, 0)]; ok {
		t.Error("exempt tasks must not occupy slots")
	}
}

func TestBuildAvailabilityMergesLifeBlocks(t *testing.T) {
	blocks := &stubBlocks{state: lifeblock.State{
		OneOff: []lifeblock.OneOffBlock{
			{Date: "2024-05-01", Start: "16:00", End: "16:10", Label: "dentist"},
		},
	}}
	u := newTestUseCase(t, &fakeTaskRepo{}, blocks, wednesday(8, 0))
	p := freshPass(u)

	for _, m := range []int{0, 5} {
		if _, ok := p.occupied[wednesday(16, m)]; !ok {
			t.Errorf("life-block slot 16:%02d should be occupied", m)
		}
	}
	if _, ok := p.occupied[wednesday(16, 10)]; ok {
		t.Error("life-block end is exclusive")
	}
}

func TestBuildAvailabilityMergesCalendarBusy(t *testing.T) {
	u := newTestUseCase(t, &fakeTaskRepo{}, nil, wednesday(8, 0))
	u.calendar = &fakeCalendar{windows: []gcalendar.BusyWindow{
		// Not grid-aligned: the 16:03 start must block the whole
		// 16:00 slot, and the 16:20 end is exclusive.
		{Start: wednesday(16, 3), End: wednesday(16, 20), Summary: "dentist"},
	}}
	u.cfg.CalendarID = "primary"
	p := freshPass(u)

	for _, m := range []int{0, 5, 10, 15} {
		slot := wednesday(16, m)
		if _, ok := p.occupied[slot]; !ok {
			t.Errorf("busy slot %s should be occupied", slot.Format("15:04"))
		}
		if _, ok := p.recurring[slot]; !ok {
			t.Errorf("busy slot %s should count as recurring", slot.Format("15:04"))
		}
	}
	if _, ok := p.occupied[wednesday(16, 20)]; ok {
		t.Error("busy window end is exclusive")
	}
	if _, ok := p.occupied[wednesday(15, 55)]; ok {
		t.Error("slots before the busy window must stay free")
	}
}

func TestBuildAvailabilityCalendarErrorIgnored(t *testing.T) {
	u := newTestUseCase(t, &fakeTaskRepo{}, nil, wednesday(8, 0))
	u.calendar = &fakeCalendar{err: errors.New("calendar unreachable")}
	u.cfg.CalendarID = "primary"
	p := freshPass(u)

	gaps := p.findGaps(wednesday(15, 0))
	if len(gaps) != 1 {
		t.Errorf("a failing calendar source must not block the day: %+v", gaps)
	}
}

func TestCandidatesOverrunTaskLeftAlone(t *testing.T) {
	// Due today at 14:00, no marker, quietly running long: must not be
	// bumped for overrun alone.
	repo := &fakeTaskRepo{tasks: []model.Task{
		{
			ID: "1", Content: "deep work",
			Due: &model.Due{Date: wednesday(14, 0), HasTime: true},
		},
	}}
	u := newTestUseCase(t, repo, nil, wednesday(14, 20))
	p := u.newPass()
	if err := p.fetchTasks(context.Background()); err != nil {
		t.Fatal(err)
	}
	p.buildAvailability(context.Background())

	if got := p.candidates(); len(got) != 0 {
		t.Errorf("overrun task without marker must not be a candidate, got %+v", got)
	}
}

func TestCandidatesSelection(t *testing.T) {
	repo := &fakeTaskRepo{tasks: []model.Task{
		{ID: "no-due", Content: "someday", Priority: 1},
		{ID: "overdue", Content: "from monday", Priority: 4,
			Due: &model.Due{Date: time.Date(2024, 4, 29, 16, 0, 0, 0, time.UTC), HasTime: true}},
		{ID: "recurring", Content: "daily standup", Priority: 3,
			Due: &model.Due{Date: wednesday(16, 0), HasTime: true, IsRecurring: true}},
		{ID: "exempt", Content: "pinned", Priority: 4,
			Labels: []string{model.SkipSchedulingLabel}},
		{ID: "future", Content: "next week", Priority: 4,
			Due: &model.Due{Date: time.Date(2024, 5, 8, 16, 0, 0, 0, time.UTC), HasTime: true}},
		{ID: "valid-marker", Content: "prep 25m slides", Description: "25m", Priority: 2,
			Due: &model.Due{Date: wednesday(16, 30), HasTime: true}},
	}}
	u := newTestUseCase(t, repo, nil, wednesday(8, 0))
	p := u.newPass()
	if err := p.fetchTasks(context.Background()); err != nil {
		t.Fatal(err)
	}
	p.buildAvailability(context.Background())

	got := p.candidates()
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(got), got)
	}
	// Priority 4 overdue task first, then the priority 1 no-due task.
	if got[0].ID != "overdue" || got[1].ID != "no-due" {
		t.Errorf("wrong candidate order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestCandidatesMarkerSlotInvalidatedByRecurring(t *testing.T) {
	repo := &fakeTaskRepo{tasks: []model.Task{
		{ID: "standup", Content: "standup", Description: "15m",
			Due: &model.Due{Date: wednesday(16, 0), HasTime: true, IsRecurring: true}},
		{ID: "clash", Content: "prep slides", Description: "20m",
			Due: &model.Due{Date: wednesday(16, 10), HasTime: true}},
	}}
	u := newTestUseCase(t, repo, nil, wednesday(8, 0))
	p := u.newPass()
	if err := p.fetchTasks(context.Background()); err != nil {
		t.Fatal(err)
	}
	p.buildAvailability(context.Background())

	got := p.candidates()
	if len(got) != 1 || got[0].ID != "clash" {
		t.Fatalf("expected the recurring-collision task to be a candidate, got %+v", got)
	}
}

func TestSearchStart(t *testing.T) {
	u := newTestUseCase(t, &fakeTaskRepo{}, nil, wednesday(15, 32))
	p := u.newPass()

	// now+1h = 16:32, ceiled to 16:35; always later than ceil(now).
	if got := p.searchStart(); !got.Equal(wednesday(16, 35)) {
		t.Errorf("searchStart = %s, want 16:35", got.Format("15:04"))
	}
}

func TestFindSlotExhaustionIsTyped(t *testing.T) {
	u := newTestUseCase(t, &fakeTaskRepo{}, nil, wednesday(15, 0))
	u.cfg.SearchLimit = 10
	p := freshPass(u)

	// Saturate the scan range.
	for i := 0; i < 20; i++ {
		p.recurring[wednesday(16, 0).Add(time.Duration(i*5)*time.Minute)] = struct{}{}
	}

	_, err := p.findSlot(wednesday(16, 0), 1, false)
	if !errors.Is(err, schedule.ErrNoAvailableSlot) {
		t.Errorf("expected ErrNoAvailableSlot, got %v", err)
	}
}
