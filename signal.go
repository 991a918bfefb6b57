package stepflow

// A Signal is a broadcast notification that actions can wait for.
//
// Calling the Notify method of a Signal completes, at their next poll, all
// actions created by its Await method that were realized before the call.
//
// A Signal must not be shared by more than one [App].
type Signal struct {
	gen uint64
}

// Notify notifies s.
//
// One should only call this method from a [System] or a [Runner].
func (s *Signal) Notify() {
	s.gen++
}

// Await returns an [Action] that completes once s has been notified after
// the Action is realized.
func (s *Signal) Await() Action[Unit, Unit] {
	return NewSeed(func(_ Unit, out *Output[Unit]) Runner {
		gen := s.gen
		return RunnerFunc(func(_ *World, token *CancellationToken) Status {
			if token.CancelRequested() {
				return Completed
			}
			if s.gen == gen {
				return Pending
			}
			out.Set(Unit{})
			return Completed
		})
	}).With(Unit{})
}
