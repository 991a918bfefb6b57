package stepflow

// Unit is the output type of actions that produce no value.
type Unit = struct{}

// An ActionSeed is a reusable description of work that, once given an input,
// becomes an [Action].
//
// A seed has no running state of its own. Each time an Action made from it is
// realized, the seed's factory creates a brand-new [Runner].
type ActionSeed[I, O any] struct {
	create func(input I, token *CancellationToken, out *Output[O]) Runner
}

// NewSeed creates an [ActionSeed] from a factory that does not need to look
// at the cancellation token at construction time.
func NewSeed[I, O any](f func(input I, out *Output[O]) Runner) ActionSeed[I, O] {
	if f == nil {
		panic("stepflow: nil seed factory")
	}
	return ActionSeed[I, O]{
		create: func(input I, _ *CancellationToken, out *Output[O]) Runner {
			return f(input, out)
		},
	}
}

// NewSeedWithToken creates an [ActionSeed] whose factory also receives the
// token the resulting [Runner] will be polled with.
// Composite actions use it to fork child tokens for their stages.
func NewSeedWithToken[I, O any](f func(input I, token *CancellationToken, out *Output[O]) Runner) ActionSeed[I, O] {
	if f == nil {
		panic("stepflow: nil seed factory")
	}
	return ActionSeed[I, O]{create: f}
}

// With binds input to s.
func (s ActionSeed[I, O]) With(input I) Action[I, O] {
	if s.create == nil {
		panic("stepflow: zero ActionSeed")
	}
	return Action[I, O]{input: input, seed: s}
}

// An Action is an [ActionSeed] bound to an input.
// It is what a [Task] awaits with [Will].
type Action[I, O any] struct {
	input I
	seed  ActionSeed[I, O]
}

// Input returns the input bound to a.
func (a Action[I, O]) Input() I {
	return a.input
}

// Runner realizes a into a new [Runner] writing to out.
// token is the token the Runner will be polled with.
func (a Action[I, O]) Runner(token *CancellationToken, out *Output[O]) Runner {
	if a.seed.create == nil {
		panic("stepflow: zero Action")
	}
	return a.seed.create(a.input, token, out)
}

// A Step is any [Action] with its output type erased.
// Steps can be listed together even when their types differ; see [Sequence].
type Step interface {
	realizeStep(token *CancellationToken) (r Runner, done func() bool)
}

func (a Action[I, O]) realizeStep(token *CancellationToken) (Runner, func() bool) {
	out := NewOutput[O]()
	return a.Runner(token, out), out.Filled
}

// Map returns an [Action] that works like a but passes its output through f.
func Map[I, O, P any](a Action[I, O], f func(O) P) Action[I, P] {
	return NewSeedWithToken(func(input I, token *CancellationToken, out *Output[P]) Runner {
		inner := NewOutput[O]()
		r := a.seed.With(input).Runner(token, inner)
		return RunnerFunc(func(w *World, token *CancellationToken) Status {
			if token.CancelRequested() {
				return Completed
			}
			if r.Poll(w, token) == Pending {
				return Pending
			}
			if v, ok := inner.Take(); ok {
				out.Set(f(v))
			}
			return Completed
		})
	}).With(a.input)
}

// Seal returns an [Action] that works like a but hides its input type.
// Sealed actions of the same output type can be stored together.
func Seal[I, O any](a Action[I, O]) Action[Unit, O] {
	return NewSeedWithToken(func(_ Unit, token *CancellationToken, out *Output[O]) Runner {
		return a.Runner(token, out)
	}).With(Unit{})
}

// Omit returns an [Action] that works like a but discards its output.
func Omit[I, O any](a Action[I, O]) Action[I, Unit] {
	return Map(a, func(O) Unit { return Unit{} })
}
