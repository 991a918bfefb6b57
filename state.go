package stepflow

// A State is a [Signal] that carries a value.
// To retrieve the value, call the Get method.
//
// Calling the Set method of a state updates the value and notifies the
// embedded Signal.
//
// A State must not be shared by more than one [App].
type State[T any] struct {
	Signal
	value T
}

// NewState creates a new [State] with its initial value set to v.
func NewState[T any](v T) *State[T] {
	return &State[T]{value: v}
}

// Get retrieves the value of s.
func (s *State[T]) Get() T {
	return s.value
}

// Set updates the value of s and notifies it.
func (s *State[T]) Set(v T) {
	s.value = v
	s.Notify()
}

// Update sets the value of s to f(s.Get()) and notifies it.
func (s *State[T]) Update(f func(v T) T) {
	s.Set(f(s.value))
}

// Until returns an [Action] that completes with the value of s as soon as
// f reports true for it. f is evaluated once per poll.
func (s *State[T]) Until(f func(v T) bool) Action[Unit, T] {
	return NewSeed(func(_ Unit, out *Output[T]) Runner {
		return RunnerFunc(func(_ *World, token *CancellationToken) Status {
			if token.CancelRequested() {
				return Completed
			}
			if !f(s.value) {
				return Pending
			}
			out.Set(s.value)
			return Completed
		})
	}).With(Unit{})
}
