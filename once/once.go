// Package once provides actions that do their work in a single poll.
//
// Every action in this package completes the first time it is polled,
// unless it is canceled, in which case it completes without doing anything.
package once

import "github.com/b97tsk/stepflow"

// Seed returns an [stepflow.ActionSeed] that calls f once with its input
// and the world, and outputs what f returns.
func Seed[I, O any](f func(input I, w *stepflow.World) O) stepflow.ActionSeed[I, O] {
	if f == nil {
		panic("once: nil function")
	}
	return stepflow.NewSeed(func(input I, out *stepflow.Output[O]) stepflow.Runner {
		return &runner[I, O]{f: f, input: input, out: out}
	})
}

type runner[I, O any] struct {
	f     func(I, *stepflow.World) O
	input I
	out   *stepflow.Output[O]
	ran   bool
}

func (r *runner[I, O]) Poll(w *stepflow.World, token *stepflow.CancellationToken) stepflow.Status {
	if token.CancelRequested() || r.ran {
		return stepflow.Completed
	}
	r.ran = true
	var zero I
	input := r.input
	r.input = zero
	r.out.Set(r.f(input, w))
	return stepflow.Completed
}

// Run returns an action that calls f once and outputs what f returns.
func Run[O any](f func(w *stepflow.World) O) stepflow.Action[stepflow.Unit, O] {
	if f == nil {
		panic("once: nil function")
	}
	return Seed(func(_ stepflow.Unit, w *stepflow.World) O { return f(w) }).With(stepflow.Unit{})
}

// RunWith returns an action that calls f once with input.
func RunWith[I, O any](input I, f func(input I, w *stepflow.World) O) stepflow.Action[I, O] {
	return Seed(f).With(input)
}

// Do returns an action that calls f once.
func Do(f func(w *stepflow.World)) stepflow.Action[stepflow.Unit, stepflow.Unit] {
	if f == nil {
		panic("once: nil function")
	}
	return Run(func(w *stepflow.World) stepflow.Unit {
		f(w)
		return stepflow.Unit{}
	})
}

// Schedule returns an action that schedules a new reactor to work on body
// and outputs it.
func Schedule(body func(t *stepflow.Task)) stepflow.Action[stepflow.Unit, *stepflow.Reactor] {
	return Run(func(w *stepflow.World) *stepflow.Reactor {
		return w.Schedule(body)
	})
}
