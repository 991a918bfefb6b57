package once

import "github.com/b97tsk/stepflow"

// InitRes returns an action that stores the zero value of T in the world
// unless a value of type T is already there.
func InitRes[T any]() stepflow.Action[stepflow.Unit, stepflow.Unit] {
	return Do(stepflow.InitResource[T])
}

// InsertRes returns an action that stores v in the world, replacing any
// existing value of type T.
func InsertRes[T any](v T) stepflow.Action[T, stepflow.Unit] {
	return RunWith(v, func(v T, w *stepflow.World) stepflow.Unit {
		stepflow.InsertResource(w, v)
		return stepflow.Unit{}
	})
}

// RemoveRes returns an action that removes the value of type T from
// the world.
func RemoveRes[T any]() stepflow.Action[stepflow.Unit, stepflow.Unit] {
	return Do(func(w *stepflow.World) {
		stepflow.RemoveResource[T](w)
	})
}

// TakeRes returns an action that removes the value of type T from the world
// and outputs it. ok is false if there was none.
func TakeRes[T any]() stepflow.Action[stepflow.Unit, Taken[T]] {
	return Run(func(w *stepflow.World) Taken[T] {
		v, ok := stepflow.RemoveResource[T](w)
		return Taken[T]{Value: v, OK: ok}
	})
}

// Taken is the output of [TakeRes].
type Taken[T any] struct {
	Value T
	OK    bool
}
