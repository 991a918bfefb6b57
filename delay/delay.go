// Package delay provides actions that complete after some ticks or some
// time.
package delay

import (
	"time"

	"github.com/b97tsk/stepflow"
)

// Ticks returns an action that completes on its n-th poll.
// With n <= 1 it completes on its first poll.
func Ticks(n int) stepflow.Action[int, stepflow.Unit] {
	return stepflow.NewSeed(func(n int, out *stepflow.Output[stepflow.Unit]) stepflow.Runner {
		polls := 0
		return stepflow.RunnerFunc(func(_ *stepflow.World, token *stepflow.CancellationToken) stepflow.Status {
			if token.CancelRequested() {
				return stepflow.Completed
			}
			if polls++; polls < n {
				return stepflow.Pending
			}
			out.Set(stepflow.Unit{})
			return stepflow.Completed
		})
	}).With(n)
}

// Time returns an action that completes once the [stepflow.Time] resource
// has advanced by at least d since its first poll.
//
// The world must have a Time resource; an [stepflow.App] provides one.
func Time(d time.Duration) stepflow.Action[time.Duration, stepflow.Unit] {
	return stepflow.NewSeed(func(d time.Duration, out *stepflow.Output[stepflow.Unit]) stepflow.Runner {
		var start time.Duration
		started := false
		return stepflow.RunnerFunc(func(w *stepflow.World, token *stepflow.CancellationToken) stepflow.Status {
			if token.CancelRequested() {
				return stepflow.Completed
			}
			now := stepflow.MustResource[stepflow.Time](w).Elapsed
			if !started {
				start, started = now, true
			}
			if now-start < d {
				return stepflow.Pending
			}
			out.Set(stepflow.Unit{})
			return stepflow.Completed
		})
	}).With(d)
}
