package main

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/b97tsk/stepflow"
	"github.com/b97tsk/stepflow/delay"
	"github.com/b97tsk/stepflow/internal/config"
	"github.com/b97tsk/stepflow/once"
	"github.com/b97tsk/stepflow/record"
	"github.com/b97tsk/stepflow/wait"
)

// counter is advanced by a system once per tick.
type counter struct {
	value  int
	target int
}

// countdownDone is the switch the countdown reactor turns on.
type countdownDone struct{}

// cursor is the state edited by the editor reactor.
type cursor struct {
	pos int
}

// cursorMove is the act recorded for every cursor edit.
type cursorMove struct {
	from, to int
}

// undoRequests counts undo requests not yet served by the editor reactor.
type undoRequests struct {
	n int
}

type demo struct {
	app       *stepflow.App
	cfg       *config.Config
	log       *slog.Logger
	countdown *stepflow.Reactor
	editor    *stepflow.Reactor
}

func newDemo(cfg *config.Config, log *slog.Logger) *demo {
	phases := make([]stepflow.Phase, len(cfg.Phases))
	for i, p := range cfg.Phases {
		phases[i] = stepflow.Phase(p)
	}

	d := &demo{
		app: stepflow.NewApp(stepflow.WithPhases(phases...), stepflow.WithLogger(log)),
		cfg: cfg,
		log: log,
	}

	w := d.app.World()
	stepflow.InsertResource(w, counter{target: cfg.Countdown})
	stepflow.InitResource[cursor](w)
	stepflow.InitResource[undoRequests](w)

	d.app.AddSystem(stepflow.Startup, func(w *stepflow.World) {
		log.Info("demo started", "countdown", cfg.Countdown, "edits", cfg.Edits)
	})
	d.app.AddSystem(stepflow.Phase(cfg.Phases[0]), func(w *stepflow.World) {
		c := stepflow.MustResource[counter](w)
		if c.value < c.target {
			c.value++
		}
	})

	d.countdown = d.app.Schedule(d.runCountdown)
	d.editor = d.app.Schedule(d.runEditor)
	return d
}

func (d *demo) runCountdown(t *stepflow.Task) {
	defer func() {
		d.log.Debug("countdown body released", "reactor", t.Reactor().ID())
	}()
	stepflow.Will(t, stepflow.Update, wait.Until(func(w *stepflow.World) bool {
		c := stepflow.MustResource[counter](w)
		return c.value >= c.target
	}))
	stepflow.Will(t, stepflow.Update, stepflow.Then(
		once.SwitchOn[countdownDone](),
		once.Do(func(w *stepflow.World) {
			d.log.Info("countdown reached", "tick", w.Tick())
		}),
	))
}

func (d *demo) runEditor(t *stepflow.Task) {
	for i := range d.cfg.Edits {
		track := stepflow.Will(t, stepflow.Update, stepflow.Then(
			stepflow.Omit(delay.Ticks(3)),
			once.Run(func(w *stepflow.World) record.Track[cursorMove] {
				return moveCursor(w, (i+1)*10)
			}),
		))
		if err := stepflow.Will(t, stepflow.Update, record.Push[cursorMove]().With(track)); err != nil {
			d.log.Warn("edit rejected", "err", err)
		}
	}

	for {
		undo := stepflow.Will(t, stepflow.Update, wait.Output(nextUndo))
		if !undo {
			d.log.Info("nothing left to undo")
			return
		}
		if err := stepflow.Will(t, stepflow.Update, record.Undo[cursorMove]()); err != nil {
			d.log.Warn("undo failed", "err", err)
		}
	}
}

// nextUndo reports false once the record is empty, and true when an undo
// request has been taken. Otherwise it keeps waiting.
func nextUndo(w *stepflow.World) (undo, ok bool) {
	rec, found := stepflow.Resource[record.Record[cursorMove]](w)
	if !found || rec.Len() == 0 {
		return false, true
	}
	r := stepflow.MustResource[undoRequests](w)
	if r.n == 0 {
		return false, false
	}
	r.n--
	return true, true
}

// moveCursor moves the cursor to pos and returns a track that can undo the
// move over a few ticks.
func moveCursor(w *stepflow.World, pos int) record.Track[cursorMove] {
	c := stepflow.MustResource[cursor](w)
	from := c.pos
	c.pos = pos
	return record.Track[cursorMove]{
		Act: cursorMove{from: from, to: pos},
		Rollback: record.NewRollback(func() stepflow.Action[int, stepflow.Unit] {
			return stepflow.Then(
				delay.Ticks(2),
				once.Do(func(w *stepflow.World) {
					stepflow.MustResource[cursor](w).pos = from
				}),
			)
		}),
	}
}

func (d *demo) step() {
	d.app.Update()
}

// done reports whether the demo has nothing left to run.
func (d *demo) done() bool {
	if d.app.Reactors() == 0 {
		return true
	}
	return d.cfg.MaxTicks > 0 && d.app.World().Tick() >= uint64(d.cfg.MaxTicks)
}

func (d *demo) cancelCountdown() {
	if d.countdown.Done() {
		return
	}
	d.countdown.Cancel()
	d.log.Info("countdown cancel requested", "reactor", d.countdown.ID())
}

func (d *demo) requestUndo() {
	stepflow.MustResource[undoRequests](d.app.World()).n++
}

type reactorView struct {
	name  string
	id    uuid.UUID
	state stepflow.ReactorState
	phase string
}

type snapshot struct {
	tick      uint64
	counter   counter
	finished  bool
	cursor    int
	undoable  int
	replaying bool
	undoQueue int
	reactors  []reactorView
}

func (d *demo) snapshot() snapshot {
	w := d.app.World()
	s := snapshot{
		tick:      w.Tick(),
		counter:   *stepflow.MustResource[counter](w),
		finished:  stepflow.SwitchIsOn[countdownDone](w),
		cursor:    stepflow.MustResource[cursor](w).pos,
		undoQueue: stepflow.MustResource[undoRequests](w).n,
	}
	if rec, ok := stepflow.Resource[record.Record[cursorMove]](w); ok {
		s.undoable = rec.Len()
		s.replaying = rec.InProgress()
	}
	for _, r := range []struct {
		name string
		r    *stepflow.Reactor
	}{{"countdown", d.countdown}, {"editor", d.editor}} {
		v := reactorView{name: r.name, id: r.r.ID(), state: r.r.State()}
		if p, ok := r.r.Phase(); ok {
			v.phase = string(p)
		}
		s.reactors = append(s.reactors, v)
	}
	return s
}

func (s snapshot) progress() float64 {
	if s.counter.target == 0 {
		return 1
	}
	return float64(s.counter.value) / float64(s.counter.target)
}

func (v reactorView) String() string {
	if v.phase == "" {
		return fmt.Sprintf("%-9s %s %s", v.name, v.id, v.state)
	}
	return fmt.Sprintf("%-9s %s %s@%s", v.name, v.id, v.state, v.phase)
}
