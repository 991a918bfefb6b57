package stepflow

import "slices"

// Semaphore provides a way to bound access to a resource across reactors.
// The callers can request access with a given weight.
//
// Waiters are served in first-in-first-out order: a waiter is not admitted
// while an earlier one is still waiting, even if its weight would fit.
//
// A Semaphore must not be shared by more than one [App].
type Semaphore struct {
	size    int64
	cur     int64
	waiters []*waiter
}

// NewSemaphore creates a new weighted semaphore with the given maximum
// combined weight.
func NewSemaphore(n int64) *Semaphore {
	return &Semaphore{size: n}
}

// Acquire returns an [Action] that waits until a weight of n is acquired from
// the semaphore, and then completes.
//
// If the Action is canceled while waiting, it leaves the queue. If it is
// canceled after having been granted but before completing, the weight is
// released.
func (s *Semaphore) Acquire(n int64) Action[Unit, Unit] {
	if n < 0 {
		panic("stepflow(Semaphore): negative weight")
	}
	return NewSeed(func(_ Unit, out *Output[Unit]) Runner {
		return &acquireRunner{s: s, n: n, out: out}
	}).With(Unit{})
}

type waiter struct {
	n       int64
	granted bool
}

type acquireRunner struct {
	s   *Semaphore
	n   int64
	w   *waiter
	out *Output[Unit]
}

func (r *acquireRunner) Poll(_ *World, token *CancellationToken) Status {
	s := r.s

	if token.CancelRequested() {
		if w := r.w; w != nil {
			r.w = nil
			if w.granted {
				s.Release(w.n)
			} else {
				s.removeWaiter(w)
			}
		}
		return Completed
	}

	switch {
	case r.w != nil && r.w.granted:
		r.w = nil
	case r.w != nil:
		return Pending
	case len(s.waiters) == 0 && s.size-s.cur >= r.n:
		s.cur += r.n
	case r.n > s.size:
		return Pending // Impossible to succeed.
	default:
		r.w = &waiter{n: r.n}
		s.waiters = append(s.waiters, r.w)
		return Pending
	}

	r.out.Set(Unit{})
	return Completed
}

// Release releases the semaphore with a weight of n.
func (s *Semaphore) Release(n int64) {
	if n < 0 {
		panic("stepflow(Semaphore): negative weight")
	}
	if s.cur >= 0 {
		s.cur -= n
	}
	if s.cur < 0 {
		panic("stepflow(Semaphore): released more than held")
	}
	s.notifyWaiters()
}

func (s *Semaphore) notifyWaiters() {
	i := 0
	for ; i < len(s.waiters); i++ {
		w := s.waiters[i]
		if s.size-s.cur < w.n {
			break
		}
		s.cur += w.n
		w.granted = true
	}
	s.waiters = slices.Delete(s.waiters, 0, i)
}

func (s *Semaphore) removeWaiter(w *waiter) {
	if i := slices.Index(s.waiters, w); i != -1 {
		s.waiters = slices.Delete(s.waiters, i, i+1)
		s.notifyWaiters()
	}
}
