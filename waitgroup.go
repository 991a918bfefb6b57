package stepflow

// A WaitGroup is a counter that actions can wait for to become zero.
//
// A WaitGroup must not be shared by more than one [App].
type WaitGroup struct {
	n int
}

// Add adds delta, which may be negative, to the [WaitGroup] counter.
// If the [WaitGroup] counter is negative, Add panics.
func (wg *WaitGroup) Add(delta int) {
	if wg.n >= 0 {
		wg.n += delta
	}
	if wg.n < 0 {
		panic("stepflow(WaitGroup): negative counter")
	}
}

// Done decrements the [WaitGroup] counter by one.
func (wg *WaitGroup) Done() {
	wg.Add(-1)
}

// Count returns the value of the [WaitGroup] counter.
func (wg *WaitGroup) Count() int {
	return wg.n
}

// Await returns an [Action] that completes once the [WaitGroup] counter is
// zero when polled.
func (wg *WaitGroup) Await() Action[Unit, Unit] {
	return NewSeed(func(_ Unit, out *Output[Unit]) Runner {
		return RunnerFunc(func(_ *World, token *CancellationToken) Status {
			if token.CancelRequested() {
				return Completed
			}
			if wg.n != 0 {
				return Pending
			}
			out.Set(Unit{})
			return Completed
		})
	}).With(Unit{})
}
