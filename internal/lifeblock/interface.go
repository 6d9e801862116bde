package lifeblock

import "context"

// Repository is the life-block store. The scheduler core only reads it;
// writes come from the HTTP API.
type Repository interface {
	GetBlocks(ctx context.Context) (State, error)
	SaveBlocks(ctx context.Context, state State) error
}
