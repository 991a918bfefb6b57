package stepflow

import (
	"iter"

	"github.com/google/uuid"
)

// A Phase is a named point in the host's fixed per-tick order at which work
// may be dispatched.
type Phase string

// ReactorState is the state of a [Reactor].
type ReactorState uint8

const (
	// Idle means the body has not yet run to its first await.
	Idle ReactorState = iota
	// Active means the body is suspended at an await and a Runner is alive.
	Active
	// Finished means the body has returned.
	Finished
	// Canceled means the body has been abandoned after cancellation.
	Canceled
)

func (s ReactorState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Active:
		return "Active"
	case Finished:
		return "Finished"
	case Canceled:
		return "Canceled"
	default:
		return "ReactorState(?)"
	}
}

// A Reactor drives one sequential computation, its body, across many ticks.
//
// The body is an ordinary Go function that calls [Will] whenever it wants to
// wait for an [Action]. Will suspends the body and hands the Action over to
// the Reactor, which realizes it into a [Runner] tagged with a [Phase].
// The host polls the Reactor once per phase per tick; the Reactor polls its
// Runner only when the phases match. When the Runner completes, its output
// is delivered to the body, which resumes immediately, within the same poll,
// until it awaits again or returns.
//
// A Reactor holds at most one Runner at any time.
//
// The body runs on a coroutine (see [iter.Pull]): it executes only while the
// host is inside [Reactor.Poll], never concurrently with the host.
type Reactor struct {
	id     uuid.UUID
	state  ReactorState
	token  *CancellationToken
	body   func(t *Task)
	next   func() (*await, bool)
	stop   func()
	active *await
}

type await struct {
	phase  Phase
	runner Runner
	token  *CancellationToken
}

// NewReactor creates a [Reactor] to work on body.
// The body does not run until the Reactor is polled for the first time.
func NewReactor(body func(t *Task)) *Reactor {
	if body == nil {
		panic("stepflow: nil reactor body")
	}
	return &Reactor{
		id:    uuid.New(),
		token: NewCancellationToken(),
		body:  body,
	}
}

// ID returns the identity of r.
func (r *Reactor) ID() uuid.UUID {
	return r.id
}

// State returns the current state of r.
func (r *Reactor) State() ReactorState {
	return r.state
}

// Phase returns the phase r is currently waiting for.
// ok is false unless r is Active.
func (r *Reactor) Phase() (p Phase, ok bool) {
	if r.active == nil {
		return "", false
	}
	return r.active.phase, true
}

// Done reports whether r has finished or has been canceled.
func (r *Reactor) Done() bool {
	return r.state == Finished || r.state == Canceled
}

// Token returns the root cancellation token of r.
// Every Runner r creates is polled with a token forked from it.
func (r *Reactor) Token() *CancellationToken {
	return r.token
}

// Cancel requests cancellation of r.
// It takes effect the next time r is polled: the active Runner is polled
// once more so that it can complete without effect, and the body is
// abandoned without resuming. Deferred calls in the body still run.
func (r *Reactor) Cancel() {
	r.token.Cancel()
}

// Poll advances r at phase.
//
// If r is Idle, its body first runs to its first await. Then, if r waits for
// phase, its Runner is polled; on completion, the body resumes until it
// awaits again (the new Runner is not polled until the next call) or
// returns.
//
// Poll reports whether r is done, in which case the host should drop it.
// Panics raised by the body or by a Runner propagate to the caller. A body
// that panics leaves r Finished.
func (r *Reactor) Poll(w *World, phase Phase) (done bool) {
	if r.Done() {
		return true
	}

	if r.token.CancelRequested() {
		r.abort(w)
		return true
	}

	if r.state == Idle {
		r.start()
		if !r.resume() {
			return true
		}
	}

	aw := r.active
	if aw.phase != phase {
		return false
	}

	if aw.runner.Poll(w, aw.token) == Pending {
		return false
	}

	// The runner has completed and must not be polled again, not even by abort.
	r.active = nil

	if r.token.CancelRequested() {
		r.abort(w)
		return true
	}

	return !r.resume()
}

// Close abandons the body of r without polling anything.
// Hosts call Close on Reactors they discard before those are done.
func (r *Reactor) Close() {
	r.token.Cancel()
	r.active = nil
	if r.stop != nil {
		r.stop()
	}
	if !r.Done() {
		r.state = Canceled
	}
}

func (r *Reactor) start() {
	r.next, r.stop = iter.Pull(func(yield func(*await) bool) {
		t := &Task{reactor: r, yield: yield}
		defer func() {
			if t.abandoned {
				if v := recover(); v != nil {
					if _, ok := v.(abandoned); !ok {
						panic(v)
					}
				}
			}
		}()
		r.body(t)
	})
}

// resume runs the body to its next await.
// The body counts as Finished until it gets there, so a body that panics is
// never started or resumed again.
func (r *Reactor) resume() bool {
	r.active = nil
	r.state = Finished
	aw, ok := r.next()
	if !ok {
		return false
	}
	r.active = aw
	r.state = Active
	return true
}

func (r *Reactor) abort(w *World) {
	if aw := r.active; aw != nil {
		r.active = nil
		aw.runner.Poll(w, aw.token)
	}
	if r.stop != nil {
		r.stop()
	}
	r.state = Canceled
}

type abandoned struct{}

// A Task is the handle a [Reactor] gives to its body.
//
// A Task must not escape the body, nor be used from another goroutine.
type Task struct {
	reactor   *Reactor
	yield     func(*await) bool
	abandoned bool
}

// Reactor returns the [Reactor] that runs t.
func (t *Task) Reactor() *Reactor {
	return t.reactor
}

// Token returns the root cancellation token of the [Reactor] that runs t.
// Canceling it from the body takes effect at the next await.
func (t *Task) Token() *CancellationToken {
	return t.reactor.token
}

// Will suspends the body that owns t until a completes, and returns its
// output.
//
// a is realized into a [Runner] that is polled only at phase. If the
// [Reactor] is canceled meanwhile, Will does not return: the body is
// unwound and no code after the await runs, except for deferred calls.
func Will[I, O any](t *Task, phase Phase, a Action[I, O]) O {
	if t.abandoned {
		panic(abandoned{})
	}

	token := t.reactor.token.Fork()
	out := NewOutput[O]()
	aw := &await{phase: phase, runner: a.Runner(token, out), token: token}

	if !t.yield(aw) {
		t.abandoned = true
		panic(abandoned{})
	}

	v, _ := out.Take()
	return v
}
