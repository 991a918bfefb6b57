package stepflow

// A Switch is a resource that is either on or off.
// The type parameter M only tells apart switches of different purposes.
//
// Besides its state, a Switch remembers the tick of its last change, so that
// systems can react to a switch that has just been turned on or off.
type Switch[M any] struct {
	on      bool
	changed uint64
}

// IsOn reports whether s is on.
func (s *Switch[M]) IsOn() bool {
	return s.on
}

// SetSwitch turns the [Switch] of type M on or off, inserting it into w if
// needed. Setting a switch to the state it already has is not a change.
func SetSwitch[M any](w *World, on bool) {
	InitResource[Switch[M]](w)
	s := MustResource[Switch[M]](w)
	if s.on != on || s.changed == 0 {
		s.on = on
		s.changed = w.Tick()
	}
}

// SwitchIsOn reports whether the [Switch] of type M exists and is on.
func SwitchIsOn[M any](w *World) bool {
	s, ok := Resource[Switch[M]](w)
	return ok && s.on
}

// SwitchIsOff reports whether the [Switch] of type M is off or does not
// exist.
func SwitchIsOff[M any](w *World) bool {
	return !SwitchIsOn[M](w)
}

// SwitchJustTurnedOn reports whether the [Switch] of type M was turned on
// during the current tick.
func SwitchJustTurnedOn[M any](w *World) bool {
	s, ok := Resource[Switch[M]](w)
	return ok && s.on && s.changed == w.Tick()
}

// SwitchJustTurnedOff reports whether the [Switch] of type M was turned off
// during the current tick.
func SwitchJustTurnedOff[M any](w *World) bool {
	s, ok := Resource[Switch[M]](w)
	return ok && !s.on && s.changed == w.Tick()
}
