package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"todoist-scheduler/internal/analytics"
	"todoist-scheduler/internal/estimate"
	"todoist-scheduler/internal/model"
	"todoist-scheduler/internal/schedule"
	"todoist-scheduler/internal/task/repository"
	"todoist-scheduler/pkg/timegrid"
)

// Run executes one full scheduling pass:
// fetch -> reschedule overdue recurring -> (refetch) -> build availability
// -> select candidates -> place each -> record.
func (u *implUseCase) Run(ctx context.Context) (analytics.PassRecord, error) {
	p := u.newPass()
	p.record = analytics.PassRecord{
		ID:        uuid.NewString(),
		StartedAt: p.now,
	}

	if err := p.fetchTasks(ctx); err != nil {
		return p.record, err
	}

	if u.cfg.AutoPriorities {
		p.applyAutoPriorities(ctx)
	}

	p.buildAvailability(ctx)
	u.l.Infof(ctx, "schedule: pass %s, %d tasks, %d occupied slots (%d recurring)",
		p.record.ID, len(p.tasks), len(p.occupied), len(p.recurring))

	if rescheduled := p.rescheduleOverdueRecurring(ctx); rescheduled > 0 {
		u.l.Infof(ctx, "schedule: rescheduled %d overdue recurring tasks, refetching", rescheduled)
		if err := p.fetchTasks(ctx); err != nil {
			return p.record, err
		}
		p.buildAvailability(ctx)
	}

	p.placeCandidates(ctx)

	p.record.FinishedAt = u.nowFn()
	if u.recorder != nil {
		if err := u.recorder.RecordPass(ctx, p.record); err != nil {
			u.l.Errorf(ctx, "schedule: recording pass: %v", err)
		}
	}
	return p.record, nil
}

// fetchTasks reloads the task list from the store, dropping synthetic
// notification-test tasks.
func (p *pass) fetchTasks(ctx context.Context) error {
	tasks, err := p.uc.repo.ListTasks(ctx)
	if err != nil {
		p.uc.l.Errorf(ctx, "schedule: listing tasks: %v", err)
		return err
	}

	p.tasks = p.tasks[:0]
	for _, t := range tasks {
		if t.HasLabel(model.TestNotificationLabel) {
			continue
		}
		p.tasks = append(p.tasks, t)
	}
	p.record.TasksSeen = len(p.tasks)
	return nil
}

// applyAutoPriorities asks the AI to promote tasks the user left at the
// lowest priority. Failures leave the task untouched.
func (p *pass) applyAutoPriorities(ctx context.Context) {
	for i, t := range p.tasks {
		if t.Priority != 1 {
			continue
		}
		priority, ok := p.uc.estimator.EstimatePriority(ctx, t.Content, t.Description)
		if !ok {
			continue
		}
		if _, err := p.uc.repo.UpdateTask(ctx, t.ID, repository.UpdateTaskOptions{Priority: priority}); err != nil {
			p.uc.l.Warnf(ctx, "schedule: setting priority on %q: %v", t.Content, err)
			continue
		}
		p.tasks[i].Priority = priority
	}
}

// rescheduleOverdueRecurring re-submits the recurrence text of every
// recurring task that slipped to a previous day; the store's recurrence
// engine advances the due date to the next valid occurrence while the
// pattern is preserved. Returns how many tasks were moved.
func (p *pass) rescheduleOverdueRecurring(ctx context.Context) int {
	moved := 0
	for _, t := range p.tasks {
		if t.IsCompleted || t.Due == nil || !t.Due.IsRecurring {
			continue
		}
		if !t.DueDate().Before(p.today) {
			continue
		}

		p.uc.l.Infof(ctx, "schedule: rescheduling %q (was due %s, pattern %q)",
			t.Content, t.Due.Date.Format("2006-01-02"), t.Due.String)
		if _, err := p.uc.repo.UpdateTask(ctx, t.ID, repository.UpdateTaskOptions{DueString: t.Due.String}); err != nil {
			p.uc.l.Errorf(ctx, "schedule: rescheduling %q: %v", t.Content, err)
			p.record.Failed++
			continue
		}
		moved++
	}
	return moved
}

// placeCandidates assigns a slot to every candidate task, filling gaps
// first and falling back to a bounded forward scan.
func (p *pass) placeCandidates(ctx context.Context) {
	bad := p.candidates()
	if len(bad) == 0 {
		return
	}

	start := p.searchStart()
	gaps := p.findGaps(start)
	p.uc.l.Infof(ctx, "schedule: %d candidates, %d gaps from %s",
		len(bad), len(gaps), start.Format("15:04"))

	for _, t := range bad {
		res := p.estimateFor(ctx, t)
		blocks := timegrid.NumBlocks(res.Minutes, p.uc.cfg.IntervalMinutes)

		dateOnly := t.Due != nil && !t.Due.HasTime
		if dateOnly && !t.DueDate().Equal(p.today) {
			p.uc.l.Warnf(ctx, "schedule: %q is date-only for %s, leaving it",
				t.Content, t.DueDate().Format("2006-01-02"))
			p.record.Skipped++
			continue
		}

		slot, fromGap := p.findGapForTask(gaps, blocks)
		if fromGap {
			gaps = consumeGap(gaps, slot, blocks, p.uc.cfg.IntervalMinutes)
		} else {
			var err error
			slot, err = p.findSlot(start, blocks, dateOnly)
			if err != nil {
				p.uc.l.Errorf(ctx, "schedule: placing %q: %v", t.Content, err)
				p.record.Failed++
				continue
			}
		}

		p.place(ctx, t, res, slot, blocks)
	}
}

// searchStart computes the earliest instant a new placement may start:
// now rounded up to the grid, but never sooner than the lead time out.
func (p *pass) searchStart() time.Time {
	leadStart := p.uc.grid.CeilToInterval(p.now.Add(p.uc.cfg.LeadTime), p.uc.cfg.IntervalMinutes)
	nowStart := p.uc.grid.CeilToInterval(p.now, p.uc.cfg.IntervalMinutes)
	if nowStart.After(leadStart) {
		return nowStart
	}
	return leadStart
}

// findSlot scans forward one interval at a time for a run of free legal
// slots. todayOnly confines the scan to today (for date-only tasks, which
// must not drift to another day).
func (p *pass) findSlot(start time.Time, numBlocks int, todayOnly bool) (time.Time, error) {
	slot := start
	for i := 0; i < p.uc.cfg.SearchLimit; i++ {
		if todayOnly && !p.uc.grid.SameDay(slot, p.today) {
			return time.Time{}, fmt.Errorf("%w: nothing left today", schedule.ErrNoAvailableSlot)
		}
		if p.slotRunFree(slot, numBlocks) {
			return slot, nil
		}
		slot = slot.Add(p.interval())
	}
	return time.Time{}, fmt.Errorf("%w: gave up after %d steps", schedule.ErrNoAvailableSlot, p.uc.cfg.SearchLimit)
}

func (p *pass) slotRunFree(start time.Time, numBlocks int) bool {
	for j := 0; j < numBlocks; j++ {
		slot := start.Add(time.Duration(j) * p.interval())
		if _, recurring := p.recurring[slot]; recurring || p.isTimeBlocked(slot) {
			return false
		}
	}
	return true
}

// place moves a task to its new slot: updates the local occupancy view,
// writes the new due instant back to the store, and stamps the estimate
// into the description so the next pass treats it as fixed.
func (p *pass) place(ctx context.Context, t model.Task, res estimate.Result, slot time.Time, blocks int) {
	// The slot it is leaving becomes free again.
	if t.Due != nil {
		delete(p.occupied, t.Due.Date)
	}
	for j := 0; j < blocks; j++ {
		p.occupied[slot.Add(time.Duration(j)*p.interval())] = struct{}{}
	}

	opt := repository.UpdateTaskOptions{DueDateTime: &slot}
	if !res.UserSpecified() {
		desc := estimate.AddDurationMarker(t.Description, res.Minutes)
		opt.Description = &desc
	}

	if _, err := p.uc.repo.UpdateTask(ctx, t.ID, opt); err != nil {
		p.uc.l.Errorf(ctx, "schedule: writing placement for %q: %v", t.Content, err)
		p.record.Failed++
		return
	}

	var from *time.Time
	if t.Due != nil {
		d := t.Due.Date
		from = &d
	}
	p.record.Placed++
	p.record.Placements = append(p.record.Placements, analytics.Placement{
		TaskID:   t.ID,
		Content:  t.Content,
		Duration: res.Minutes,
		From:     from,
		To:       slot,
		Source:   res.Source,
	})
	p.uc.l.Infof(ctx, "schedule: %q -> %s (%dm, %s)",
		t.Content, slot.Format("15:04"), res.Minutes, res.Source)
}
