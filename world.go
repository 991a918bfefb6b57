package stepflow

import (
	"fmt"
	"reflect"
	"time"
)

// A World is the shared mutable state a host hands to every poll.
//
// A World stores resources keyed by their Go type: at most one value per
// type. It is not safe for concurrent use; the host guarantees that only one
// poll is in flight at a time.
type World struct {
	resources map[reflect.Type]any
	tick      uint64
	scheduled []*Reactor
}

// NewWorld creates an empty [World].
func NewWorld() *World {
	return &World{resources: make(map[reflect.Type]any)}
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Tick returns the number of ticks the host has started so far.
// It is zero before the first tick.
func (w *World) Tick() uint64 {
	return w.tick
}

// Schedule creates a [Reactor] to work on body and hands it over to the host
// that owns w.
// The host adopts it at the next opportunity, typically right after the
// current poll or system returns.
func (w *World) Schedule(body func(t *Task)) *Reactor {
	r := NewReactor(body)
	w.scheduled = append(w.scheduled, r)
	return r
}

func (w *World) drainScheduled() []*Reactor {
	s := w.scheduled
	w.scheduled = nil
	return s
}

// InsertResource stores v in w, replacing any existing value of type T.
func InsertResource[T any](w *World, v T) {
	p := new(T)
	*p = v
	w.resources[typeKey[T]()] = p
}

// InitResource stores the zero value of T in w unless w already has one.
func InitResource[T any](w *World) {
	k := typeKey[T]()
	if _, ok := w.resources[k]; !ok {
		w.resources[k] = new(T)
	}
}

// Resource returns a pointer to the value of type T stored in w.
// Mutations through the pointer are visible to every later poll.
func Resource[T any](w *World) (*T, bool) {
	v, ok := w.resources[typeKey[T]()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// MustResource is like [Resource] but panics if w has no value of type T.
func MustResource[T any](w *World) *T {
	p, ok := Resource[T](w)
	if !ok {
		panic(fmt.Sprintf("stepflow: resource %v does not exist", typeKey[T]()))
	}
	return p
}

// HasResource reports whether w has a value of type T.
func HasResource[T any](w *World) bool {
	_, ok := w.resources[typeKey[T]()]
	return ok
}

// RemoveResource removes the value of type T from w and returns it.
func RemoveResource[T any](w *World) (v T, ok bool) {
	k := typeKey[T]()
	p, ok := w.resources[k]
	if !ok {
		return v, false
	}
	delete(w.resources, k)
	return *p.(*T), true
}

// Time is a resource the host keeps up to date at the beginning of each tick.
type Time struct {
	// Delta is the time elapsed between the previous tick and the current one.
	Delta time.Duration
	// Elapsed is the time elapsed since the first tick.
	Elapsed time.Duration
	// Tick is the number of the current tick, starting from 1.
	Tick uint64
}
