package once

import "github.com/b97tsk/stepflow"

// SwitchOn returns an action that turns the [stepflow.Switch] of type M on.
func SwitchOn[M any]() stepflow.Action[stepflow.Unit, stepflow.Unit] {
	return Do(func(w *stepflow.World) {
		stepflow.SetSwitch[M](w, true)
	})
}

// SwitchOff returns an action that turns the [stepflow.Switch] of type M off.
func SwitchOff[M any]() stepflow.Action[stepflow.Unit, stepflow.Unit] {
	return Do(func(w *stepflow.World) {
		stepflow.SetSwitch[M](w, false)
	})
}
