package stepflow

import (
	"log/slog"
	"slices"
	"time"
)

// Phases of the default schedule.
const (
	// Startup runs once, before the other phases of the first tick.
	Startup    Phase = "Startup"
	First      Phase = "First"
	PreUpdate  Phase = "PreUpdate"
	Update     Phase = "Update"
	PostUpdate Phase = "PostUpdate"
	Last       Phase = "Last"
)

// DefaultPhases is the per-tick phase order used by [NewApp] unless
// [WithPhases] is given. [Startup] is not part of it.
var DefaultPhases = []Phase{First, PreUpdate, Update, PostUpdate, Last}

// A System is a piece of host code that runs at a phase once per tick.
type System func(w *World)

// An App is a minimal host: it owns a [World], runs [System] functions and
// polls every live [Reactor] in a fixed phase order, once per tick.
//
// An App is single-threaded. Update must not be called twice at the same
// time, nor from a System or a Runner.
type App struct {
	world    *World
	phases   []Phase
	systems  map[Phase][]System
	reactors []*Reactor
	started  bool
	updating bool
	clock    func() time.Time
	last     time.Time
	logger   *slog.Logger
}

// An Option customizes an [App].
type Option func(*App)

// WithPhases replaces the per-tick phase order.
func WithPhases(phases ...Phase) Option {
	return func(a *App) {
		a.phases = slices.Clone(phases)
	}
}

// WithClock replaces the clock the App reads to update the [Time] resource.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		if now != nil {
			a.clock = now
		}
	}
}

// WithLogger replaces the logger the App reports reactor lifecycle to.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewApp creates an [App] with an empty [World] holding a [Time] resource.
func NewApp(opts ...Option) *App {
	a := &App{
		world:   NewWorld(),
		phases:  slices.Clone(DefaultPhases),
		systems: make(map[Phase][]System),
		clock:   time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	InitResource[Time](a.world)
	return a
}

// World returns the [World] owned by a.
func (a *App) World() *World {
	return a.world
}

// Phases returns the per-tick phase order of a.
func (a *App) Phases() []Phase {
	return slices.Clone(a.phases)
}

// AddSystem adds s to run at phase p, after systems added before it.
func (a *App) AddSystem(p Phase, s System) *App {
	if s == nil {
		panic("stepflow: nil System")
	}
	a.systems[p] = append(a.systems[p], s)
	return a
}

// Spawn adds r to the set of live reactors.
// r is polled from the next phase on.
func (a *App) Spawn(r *Reactor) {
	if r == nil {
		panic("stepflow: nil Reactor")
	}
	a.reactors = append(a.reactors, r)
	a.logger.Debug("reactor scheduled", "reactor", r.ID())
}

// Schedule creates a [Reactor] to work on body and spawns it.
func (a *App) Schedule(body func(t *Task)) *Reactor {
	r := NewReactor(body)
	a.Spawn(r)
	return r
}

// Reactors returns the number of live reactors.
func (a *App) Reactors() int {
	return len(a.reactors)
}

// Update runs one tick.
//
// It first updates the [Time] resource. Then, for each phase in order, it
// runs the systems of that phase and polls every live reactor at that phase.
// Reactors that report done are dropped right away.
func (a *App) Update() {
	if a.updating {
		panic("stepflow: App.Update called recursively")
	}
	a.updating = true
	defer func() { a.updating = false }()

	a.advanceTime()

	if !a.started {
		a.started = true
		a.runPhase(Startup)
	}

	for _, p := range a.phases {
		a.runPhase(p)
	}
}

func (a *App) advanceTime() {
	now := a.clock()
	t := MustResource[Time](a.world)
	if a.world.tick != 0 {
		t.Delta = now.Sub(a.last)
		t.Elapsed += t.Delta
	}
	a.last = now
	a.world.tick++
	t.Tick = a.world.tick
}

func (a *App) runPhase(p Phase) {
	for _, s := range a.systems[p] {
		s(a.world)
		a.adopt()
	}

	n := len(a.reactors)
	for i := range n {
		r := a.reactors[i]
		done := r.Poll(a.world, p)
		a.adopt()
		if done {
			a.reactors[i] = nil
			a.logger.Debug("reactor done", "reactor", r.ID(), "state", r.State(), "phase", p)
		}
	}

	a.reactors = slices.DeleteFunc(a.reactors, func(r *Reactor) bool { return r == nil })
}

func (a *App) adopt() {
	for _, r := range a.world.drainScheduled() {
		a.Spawn(r)
	}
}

// Close abandons every live reactor.
func (a *App) Close() {
	for _, r := range a.reactors {
		r.Close()
	}
	clear(a.reactors)
	a.reactors = a.reactors[:0]
}
