package stepflow_test

import (
	"slices"
	"testing"
	"time"

	"github.com/b97tsk/stepflow"
	"github.com/b97tsk/stepflow/once"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestApp(t *testing.T) {
	t.Run("StartupRunsOnce", func(t *testing.T) {
		app := stepflow.NewApp()
		app.AddSystem(stepflow.Startup, increment)
		app.Update()
		app.Update()
		if n := count(app.World()); n != 1 {
			t.Fatalf("counter = %d; want 1", n)
		}
	})
	t.Run("PhaseOrder", func(t *testing.T) {
		app := stepflow.NewApp(stepflow.WithPhases("A", "B"))
		var got []stepflow.Phase
		for _, p := range []stepflow.Phase{"B", "A", stepflow.Startup} {
			app.AddSystem(p, func(*stepflow.World) { got = append(got, p) })
		}
		app.Update()
		app.Update()
		want := []stepflow.Phase{stepflow.Startup, "A", "B", "A", "B"}
		if !slices.Equal(got, want) {
			t.Fatalf("got %v; want %v", got, want)
		}
	})
	t.Run("ScheduleFromSystem", func(t *testing.T) {
		app := stepflow.NewApp()
		app.AddSystem(stepflow.Startup, func(w *stepflow.World) {
			w.Schedule(func(task *stepflow.Task) {
				stepflow.Will(task, stepflow.Update, once.Do(increment))
			})
		})
		app.Update()
		if n := count(app.World()); n != 1 {
			t.Fatalf("counter = %d; want 1", n)
		}
		if app.Reactors() != 0 {
			t.Fatal("reactor not removed")
		}
	})
	t.Run("ScheduleFromReactor", func(t *testing.T) {
		app := stepflow.NewApp()
		app.Schedule(func(task *stepflow.Task) {
			stepflow.Will(task, stepflow.First, once.Schedule(func(task *stepflow.Task) {
				stepflow.Will(task, stepflow.Update, once.Do(increment))
			}))
		})
		app.Update()
		if n := count(app.World()); n != 1 {
			t.Fatalf("counter = %d; want 1", n)
		}
	})
	t.Run("Time", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		app := stepflow.NewApp(stepflow.WithClock(clock.Now))
		app.Update()
		clock.Advance(16 * time.Millisecond)
		app.Update()
		clock.Advance(20 * time.Millisecond)
		app.Update()
		tm := stepflow.MustResource[stepflow.Time](app.World())
		if tm.Tick != 3 || tm.Delta != 20*time.Millisecond || tm.Elapsed != 36*time.Millisecond {
			t.Fatalf("Time = %+v", *tm)
		}
		if app.World().Tick() != 3 {
			t.Fatalf("World.Tick() = %d; want 3", app.World().Tick())
		}
	})
	t.Run("RecursiveUpdate", func(t *testing.T) {
		app := stepflow.NewApp()
		app.AddSystem(stepflow.Update, func(*stepflow.World) { app.Update() })
		defer func() {
			if recover() == nil {
				t.Fatal("recursive Update did not panic")
			}
		}()
		app.Update()
	})
}

func TestWorld(t *testing.T) {
	w := stepflow.NewWorld()
	if stepflow.HasResource[counter](w) {
		t.Fatal("empty world has a resource")
	}
	stepflow.InsertResource(w, counter{n: 1})
	stepflow.InitResource[counter](w)
	if n := stepflow.MustResource[counter](w).n; n != 1 {
		t.Fatalf("InitResource overwrote an existing value: n = %d", n)
	}
	stepflow.MustResource[counter](w).n = 5
	v, ok := stepflow.RemoveResource[counter](w)
	if !ok || v.n != 5 {
		t.Fatalf("RemoveResource() = %v, %v", v, ok)
	}
	if _, ok := stepflow.RemoveResource[counter](w); ok {
		t.Fatal("removed twice")
	}
	defer func() {
		if recover() == nil {
			t.Fatal("MustResource did not panic on a missing resource")
		}
	}()
	stepflow.MustResource[counter](w)
}
