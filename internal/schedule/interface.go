package schedule

import (
	"context"

	"todoist-scheduler/internal/analytics"
)

// UseCase runs scheduling passes. A pass is synchronous and holds no
// state beyond what it reads from the task store when it starts; the
// caller is responsible for not running two passes at once.
type UseCase interface {
	Run(ctx context.Context) (analytics.PassRecord, error)
}
