package stepflow

// An Output is a single-slot cell through which a [Runner] hands its result
// to the [Task] awaiting it.
//
// An Output is created fresh for every await. The Runner that owns it writes
// it exactly once; the awaiting Task reads it once after the Runner completes.
// Both sides share the cell but never touch it at the same time, so no lock
// is involved.
type Output[T any] struct {
	value  T
	filled bool
}

// NewOutput creates an empty [Output].
func NewOutput[T any]() *Output[T] {
	return new(Output[T])
}

// Set fills o with v.
//
// Set panics if o has already been filled.
func (o *Output[T]) Set(v T) {
	if o.filled {
		panic("stepflow: output already set")
	}
	o.value = v
	o.filled = true
}

// Filled reports whether o has been filled.
func (o *Output[T]) Filled() bool {
	return o.filled
}

// Get returns the value of o without consuming it.
func (o *Output[T]) Get() (v T, ok bool) {
	return o.value, o.filled
}

// Take extracts the value of o.
// After Take, o holds the zero value but stays filled.
func (o *Output[T]) Take() (v T, ok bool) {
	if !o.filled {
		return v, false
	}
	v, o.value = o.value, v
	return v, true
}
