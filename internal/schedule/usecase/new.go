package usecase

import (
	"time"

	"todoist-scheduler/internal/analytics"
	"todoist-scheduler/internal/estimate"
	"todoist-scheduler/internal/lifeblock"
	"todoist-scheduler/internal/schedule"
	"todoist-scheduler/internal/task/repository"
	pkgLog "todoist-scheduler/pkg/log"
	"todoist-scheduler/pkg/timegrid"
)

type implUseCase struct {
	l         pkgLog.Logger
	repo      repository.TaskRepository
	estimator estimate.Estimator
	blocks    lifeblock.Repository
	calendar  schedule.CalendarSource
	recorder  analytics.Recorder
	grid      *timegrid.Grid
	cfg       schedule.Config

	nowFn func() time.Time
}

// New creates a new scheduling UseCase instance. calendar and recorder
// may be nil; the pass then runs without busy-window merging or history.
func New(
	l pkgLog.Logger,
	repo repository.TaskRepository,
	estimator estimate.Estimator,
	blocks lifeblock.Repository,
	calendar schedule.CalendarSource,
	recorder analytics.Recorder,
	grid *timegrid.Grid,
	cfg schedule.Config,
) *implUseCase {
	return &implUseCase{
		l:         l,
		repo:      repo,
		estimator: estimator,
		blocks:    blocks,
		calendar:  calendar,
		recorder:  recorder,
		grid:      grid,
		cfg:       cfg,
		nowFn:     grid.Now,
	}
}
