package stepflow

// Status is the result of polling a [Runner].
type Status uint8

const (
	// Pending means the Runner wants to be polled again at a later step.
	Pending Status = iota
	// Completed means the Runner is done and must not be polled again.
	Completed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Completed:
		return "Completed"
	default:
		return "Status(?)"
	}
}

// A Runner is one unit of work that is polled once per step until it
// completes.
//
// Every Runner must follow these rules when Poll is called:
//   - check token.CancelRequested() first and, if set, return Completed
//     without doing anything (and without filling its [Output], unless the
//     output type is [Unit]);
//   - do no more work than is appropriate for a single step;
//   - fill its Output exactly once, no later than the call that returns
//     Completed;
//   - tolerate being polled again and again while Pending.
//
// A Runner that never completes stalls its [Task] forever.
type Runner interface {
	Poll(w *World, token *CancellationToken) Status
}

// A RunnerFunc is a function that implements the [Runner] interface.
type RunnerFunc func(w *World, token *CancellationToken) Status

// Poll implements the [Runner] interface.
func (f RunnerFunc) Poll(w *World, token *CancellationToken) Status {
	return f(w, token)
}

// Done converts a bool into a [Status]: true becomes Completed.
func Done(ok bool) Status {
	if ok {
		return Completed
	}
	return Pending
}
