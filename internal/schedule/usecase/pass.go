package usecase

import (
	"context"
	"time"

	"todoist-scheduler/internal/analytics"
	"todoist-scheduler/internal/estimate"
	"todoist-scheduler/internal/lifeblock"
	"todoist-scheduler/internal/model"
)

// pass holds the mutable state of one scheduling pass. It is rebuilt from
// the task store every run and discarded when the run ends, so no locking
// is needed.
type pass struct {
	uc *implUseCase

	now   time.Time
	today time.Time // midnight in the grid's timezone

	tasks []model.Task

	// occupied is every slot instant already taken today; recurring is
	// the subset owned by recurring tasks (or calendar busy windows),
	// which candidate placements must never collide with.
	occupied  map[time.Time]struct{}
	recurring map[time.Time]struct{}

	// lifeBlocks caches expanded life-block slots per day (the forward
	// scan can walk into following days).
	blockState lifeblock.State
	lifeBlocks map[time.Time]map[time.Time]struct{}

	// markers caches confirmed user markers so placement does not
	// re-parse what availability already resolved.
	markers map[string]int

	record analytics.PassRecord
}

func (u *implUseCase) newPass() *pass {
	now := u.nowFn()
	return &pass{
		uc:         u,
		now:        now,
		today:      u.grid.StartOfDay(now),
		occupied:   make(map[time.Time]struct{}),
		recurring:  make(map[time.Time]struct{}),
		lifeBlocks: make(map[time.Time]map[time.Time]struct{}),
		markers:    make(map[string]int),
	}
}

func (p *pass) interval() time.Duration {
	return time.Duration(p.uc.cfg.IntervalMinutes) * time.Minute
}

// estimateFor runs the estimation cascade, short-circuiting on markers
// this pass has already confirmed.
func (p *pass) estimateFor(ctx context.Context, t model.Task) estimate.Result {
	if minutes, ok := p.markers[t.ID]; ok {
		return estimate.Result{Minutes: minutes, Source: estimate.SourceMarker}
	}
	res := p.uc.estimator.Estimate(ctx, t.Content, t.Description)
	if res.UserSpecified() {
		p.markers[t.ID] = res.Minutes
	}
	return res
}
