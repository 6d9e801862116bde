package usecase

import "time"

// SetClock pins the pass clock so runs are deterministic.
func (u *implUseCase) SetClock(now time.Time) {
	u.nowFn = func() time.Time { return now }
}
