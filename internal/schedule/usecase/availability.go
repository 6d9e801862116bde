package usecase

import (
	"context"
	"time"

	"todoist-scheduler/internal/estimate"
	"todoist-scheduler/internal/lifeblock"
	"todoist-scheduler/internal/model"
	"todoist-scheduler/pkg/gcalendar"
	"todoist-scheduler/pkg/timegrid"
)

// buildAvailability rebuilds the occupancy view for today: life blocks,
// calendar busy windows, then every non-completed, non-exempt task whose
// due instant falls today, each expanded over its duration.
func (p *pass) buildAvailability(ctx context.Context) {
	p.occupied = make(map[time.Time]struct{})
	p.recurring = make(map[time.Time]struct{})
	p.lifeBlocks = make(map[time.Time]map[time.Time]struct{})

	state, err := p.uc.blocks.GetBlocks(ctx)
	if err != nil {
		p.uc.l.Warnf(ctx, "schedule: loading life blocks: %v", err)
		state = lifeblock.State{}
	}
	p.blockState = state

	for slot := range p.lifeBlockSlots(p.today) {
		p.occupied[slot] = struct{}{}
	}

	p.mergeCalendarBusy(ctx)

	for _, t := range p.tasks {
		if t.IsCompleted || t.IsExempt() {
			continue
		}
		if t.Due == nil || !p.uc.grid.SameDay(t.Due.Date, p.today) {
			continue
		}

		duration := p.availabilityDuration(ctx, t)
		blocks := timegrid.NumBlocks(duration, p.uc.cfg.IntervalMinutes)
		for j := 0; j < blocks; j++ {
			slot := t.Due.Date.Add(time.Duration(j) * p.interval())
			p.occupied[slot] = struct{}{}
			if t.Due.IsRecurring {
				p.recurring[slot] = struct{}{}
			}
		}
	}
}

// availabilityDuration resolves how many minutes of the day a task
// occupies: its marker, else an AI estimate, else a conservative fixed
// fallback. Heuristics are deliberately not consulted here; a wrong
// guess would eat schedule room for every other task.
func (p *pass) availabilityDuration(ctx context.Context, t model.Task) int {
	if minutes, ok := p.markers[t.ID]; ok {
		return minutes
	}
	if minutes, ok := estimate.ParseDurationMarker(t.Description, p.uc.cfg.IntervalMinutes, p.uc.cfg.MinDuration); ok {
		p.markers[t.ID] = minutes
		return minutes
	}
	if minutes, ok := p.uc.estimator.EstimateAI(ctx, t.Content, t.Description); ok {
		return minutes
	}
	return p.uc.cfg.FallbackDuration
}

// lifeBlockSlots returns the expanded life-block slots for a day,
// memoized because the forward scan can revisit days many times.
func (p *pass) lifeBlockSlots(day time.Time) map[time.Time]struct{} {
	if slots, ok := p.lifeBlocks[day]; ok {
		return slots
	}
	slots := lifeblock.SlotsForDate(p.blockState, day, p.uc.cfg.IntervalMinutes)
	p.lifeBlocks[day] = slots
	return slots
}

// mergeCalendarBusy folds today's committed calendar windows into the
// occupancy view. Busy windows are immovable, so they count as recurring.
func (p *pass) mergeCalendarBusy(ctx context.Context) {
	if p.uc.calendar == nil || p.uc.cfg.CalendarID == "" {
		return
	}

	windows, err := p.uc.calendar.ListBusyWindows(ctx, gcalendar.ListBusyRequest{
		CalendarID: p.uc.cfg.CalendarID,
		TimeMin:    p.today,
		TimeMax:    p.today.AddDate(0, 0, 1),
	})
	if err != nil {
		p.uc.l.Warnf(ctx, "schedule: listing calendar busy windows: %v", err)
		return
	}

	loc := p.uc.grid.Location()
	for _, w := range windows {
		start := w.Start.In(loc)
		// Align to the slot grid so partial overlaps still block.
		start = start.Add(-time.Duration(start.Minute()%p.uc.cfg.IntervalMinutes) * time.Minute)
		start = start.Truncate(time.Minute)

		for slot := start; slot.Before(w.End); slot = slot.Add(p.interval()) {
			p.occupied[slot] = struct{}{}
			p.recurring[slot] = struct{}{}
		}
	}
}

// isTimeBlocked reports whether a slot instant is unusable: already
// occupied, inside a life block, or outside the day envelope.
func (p *pass) isTimeBlocked(t time.Time) bool {
	if _, ok := p.occupied[t]; ok {
		return true
	}
	day := p.uc.grid.StartOfDay(t)
	if _, ok := p.lifeBlockSlots(day)[t]; ok {
		return true
	}
	return p.outsideEnvelope(t)
}

// outsideEnvelope reports whether an instant violates the sleep/start-hour
// bounds for its day type.
func (p *pass) outsideEnvelope(t time.Time) bool {
	cfg := p.uc.cfg
	sleep := p.uc.grid.Combine(t, cfg.SleepHour, cfg.SleepMinute)
	if !t.Before(sleep) {
		return true
	}

	startHour := cfg.WeekdayStartHour
	if timegrid.IsWeekend(t) {
		startHour = cfg.WeekendStartHour
	}
	return t.Hour() < startHour
}
