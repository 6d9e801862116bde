package estimate

import "context"

// Estimator produces duration estimates for tasks. The cascade is:
// user marker in the description, then AI, then keyword heuristics.
// Estimate never fails: the heuristic tier always produces a value.
type Estimator interface {
	// Estimate returns the task's duration in minutes and its source.
	Estimate(ctx context.Context, content, description string) Result

	// EstimateAI runs only the AI tier. The second return is false when
	// no provider is configured, the call fails, or the reply carries
	// no usable number.
	EstimateAI(ctx context.Context, content, description string) (int, bool)

	// EstimatePriority asks the AI whether a task is urgent. It returns
	// 4 (urgent) or 2 (normal); false when the AI gave no usable answer.
	EstimatePriority(ctx context.Context, content, description string) (int, bool)
}
