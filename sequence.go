package stepflow

// Then returns an [Action] that first works on a, then on b after a
// completes.
// The output of a is discarded; the output of the returned Action is that
// of b.
//
// Unlike awaiting a and b one after another, which costs at least one step
// in between, b starts in the very step a completes in, and may complete in
// that step too.
//
// To chain multiple actions, use [Sequence].
func Then[I1, O1, I2, O2 any](a Action[I1, O1], b Action[I2, O2]) Action[I1, O2] {
	return NewSeedWithToken(func(input I1, token *CancellationToken, out *Output[O2]) Runner {
		t1, t2 := token.Fork(), token.Fork()
		o1 := NewOutput[O1]()
		return &thenRunner[O1]{
			r1: a.seed.With(input).Runner(t1, o1),
			r2: b.Runner(t2, out),
			o1: o1,
			t1: t1,
			t2: t2,
		}
	}).With(a.input)
}

type thenRunner[O1 any] struct {
	r1, r2 Runner
	o1     *Output[O1]
	t1, t2 *CancellationToken
	done1  bool
}

func (r *thenRunner[O1]) Poll(w *World, token *CancellationToken) Status {
	if token.CancelRequested() {
		return Completed
	}
	if !r.done1 {
		r.done1 = r.r1.Poll(w, r.t1) == Completed || r.o1.Filled()
	}
	if !r.done1 {
		return Pending
	}
	return r.r2.Poll(w, r.t2)
}

// Sequence returns an [Action] that works on each of the given steps in
// order.
// When one step completes, the next one starts within the same poll, so
// a run of steps that each complete immediately finishes in a single step.
// No step ever starts before its predecessor completes.
//
// Outputs are discarded. For a typed final output, combine Sequence with
// [Then]:
//
//	stepflow.Then(stepflow.Sequence(a, b), c)
func Sequence(steps ...Step) Action[Unit, Unit] {
	for _, s := range steps {
		if s == nil {
			panic("stepflow: nil Step")
		}
	}
	return NewSeedWithToken(func(_ Unit, token *CancellationToken, out *Output[Unit]) Runner {
		r := &sequenceRunner{out: out}
		for _, s := range steps {
			t := token.Fork()
			runner, done := s.realizeStep(t)
			r.stages = append(r.stages, stage{runner, done, t})
		}
		return r
	}).With(Unit{})
}

type stage struct {
	runner Runner
	done   func() bool
	token  *CancellationToken
}

type sequenceRunner struct {
	stages []stage
	out    *Output[Unit]
}

func (r *sequenceRunner) Poll(w *World, token *CancellationToken) Status {
	if token.CancelRequested() {
		return Completed
	}
	for len(r.stages) != 0 {
		s := &r.stages[0]
		if s.runner.Poll(w, s.token) == Pending && !s.done() {
			return Pending
		}
		r.stages[0] = stage{}
		r.stages = r.stages[1:]
	}
	if !r.out.Filled() {
		r.out.Set(Unit{})
	}
	return Completed
}
