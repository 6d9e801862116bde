package schedule

import (
	"context"
	"sync/atomic"

	"todoist-scheduler/internal/analytics"
	pkgLog "todoist-scheduler/pkg/log"
)

// Runner serializes pass execution. The core assumes at most one pass at
// a time; overlapping triggers (ticker firing while a manual run is in
// flight, or vice versa) are skipped rather than queued.
type Runner struct {
	uc      UseCase
	l       pkgLog.Logger
	running atomic.Bool
}

func NewRunner(uc UseCase, l pkgLog.Logger) *Runner {
	return &Runner{uc: uc, l: l}
}

// TryRun executes one pass unless another is already in flight, in which
// case it reports started=false and does nothing.
func (r *Runner) TryRun(ctx context.Context) (record analytics.PassRecord, started bool, err error) {
	if !r.running.CompareAndSwap(false, true) {
		r.l.Warn(ctx, "schedule: pass already in flight, skipping trigger")
		return analytics.PassRecord{}, false, nil
	}
	defer r.running.Store(false)

	record, err = r.uc.Run(ctx)
	return record, true, err
}
