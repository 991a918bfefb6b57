// Package wait provides actions that keep polling a condition until it
// holds.
package wait

import "github.com/b97tsk/stepflow"

// Output returns an action that calls f once per poll until f reports ok,
// and then outputs the value f returned along with it.
func Output[O any](f func(w *stepflow.World) (v O, ok bool)) stepflow.Action[stepflow.Unit, O] {
	if f == nil {
		panic("wait: nil function")
	}
	return stepflow.NewSeed(func(_ stepflow.Unit, out *stepflow.Output[O]) stepflow.Runner {
		return stepflow.RunnerFunc(func(w *stepflow.World, token *stepflow.CancellationToken) stepflow.Status {
			if token.CancelRequested() {
				return stepflow.Completed
			}
			v, ok := f(w)
			if !ok {
				return stepflow.Pending
			}
			out.Set(v)
			return stepflow.Completed
		})
	}).With(stepflow.Unit{})
}

// Until returns an action that calls f once per poll until f reports true.
func Until(f func(w *stepflow.World) bool) stepflow.Action[stepflow.Unit, stepflow.Unit] {
	if f == nil {
		panic("wait: nil function")
	}
	return Output(func(w *stepflow.World) (stepflow.Unit, bool) {
		return stepflow.Unit{}, f(w)
	})
}

// Res returns an action that waits until the world has a value of type T,
// and then outputs a copy of it.
func Res[T any]() stepflow.Action[stepflow.Unit, T] {
	return Output(func(w *stepflow.World) (v T, ok bool) {
		p, ok := stepflow.Resource[T](w)
		if !ok {
			return v, false
		}
		return *p, true
	})
}

// ResRemoved returns an action that waits until the world has no value of
// type T.
func ResRemoved[T any]() stepflow.Action[stepflow.Unit, stepflow.Unit] {
	return Until(func(w *stepflow.World) bool {
		return !stepflow.HasResource[T](w)
	})
}

// SwitchOn returns an action that waits until the [stepflow.Switch] of
// type M is on.
func SwitchOn[M any]() stepflow.Action[stepflow.Unit, stepflow.Unit] {
	return Until(stepflow.SwitchIsOn[M])
}

// SwitchOff returns an action that waits until the [stepflow.Switch] of
// type M is off.
func SwitchOff[M any]() stepflow.Action[stepflow.Unit, stepflow.Unit] {
	return Until(stepflow.SwitchIsOff[M])
}
