package usecase

import (
	"sort"
	"time"

	"todoist-scheduler/internal/estimate"
	"todoist-scheduler/internal/model"
	"todoist-scheduler/pkg/timegrid"
)

// candidates selects the tasks that need placement this pass: anything
// with no due value, anything non-recurring that slipped to a previous
// day, and today's marker-carrying tasks whose slot has since become
// invalid. A task due today with no marker is never bumped merely for
// running over its estimate.
func (p *pass) candidates() []model.Task {
	var bad []model.Task

	for _, t := range p.tasks {
		if t.IsCompleted || t.IsExempt() {
			continue
		}

		if t.Due == nil {
			bad = append(bad, t)
			continue
		}
		if t.Due.IsRecurring {
			continue
		}

		dueDay := t.DueDate()
		switch {
		case dueDay.Before(p.today):
			bad = append(bad, t)
		case dueDay.Equal(p.today):
			minutes, ok := estimate.ParseDurationMarker(t.Description, p.uc.cfg.IntervalMinutes, p.uc.cfg.MinDuration)
			if !ok {
				continue
			}
			p.markers[t.ID] = minutes
			if !p.isCurrentSlotValid(t, minutes) {
				bad = append(bad, t)
			}
		}
	}

	// Higher priority first; fetch order breaks ties.
	sort.SliceStable(bad, func(i, j int) bool {
		return bad[i].Priority > bad[j].Priority
	})
	return bad
}

// isCurrentSlotValid reports whether a task may keep its current slot.
// Only envelope violations and recurring-slot collisions disqualify;
// ordinary occupied slots are ignored so a task running longer than its
// estimate is not shuffled around.
func (p *pass) isCurrentSlotValid(t model.Task, durationMinutes int) bool {
	if t.Due == nil {
		return false
	}
	if t.DueDate().Before(p.today) {
		return false
	}

	blocks := timegrid.NumBlocks(durationMinutes, p.uc.cfg.IntervalMinutes)
	for j := 0; j < blocks; j++ {
		slot := t.Due.Date.Add(time.Duration(j) * p.interval())
		if p.outsideEnvelope(slot) {
			return false
		}
		if _, ok := p.recurring[slot]; ok {
			return false
		}
	}
	return true
}
