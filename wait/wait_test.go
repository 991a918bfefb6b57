package wait_test

import (
	"testing"

	"github.com/b97tsk/stepflow"
	"github.com/b97tsk/stepflow/once"
	"github.com/b97tsk/stepflow/wait"
)

type score struct{ v int }

type ready struct{}

func TestUntil(t *testing.T) {
	app := stepflow.NewApp()
	polls := 0
	app.Schedule(func(task *stepflow.Task) {
		stepflow.Will(task, stepflow.Update, wait.Until(func(*stepflow.World) bool {
			polls++
			return polls == 5
		}))
	})
	for range 4 {
		app.Update()
	}
	if app.Reactors() != 1 {
		t.Fatal("Until completed too early")
	}
	app.Update()
	if app.Reactors() != 0 || polls != 5 {
		t.Fatalf("live = %d, polls = %d", app.Reactors(), polls)
	}
}

func TestOutput(t *testing.T) {
	app := stepflow.NewApp()
	stepflow.InsertResource(app.World(), score{})
	app.AddSystem(stepflow.First, func(w *stepflow.World) {
		stepflow.MustResource[score](w).v += 10
	})
	var got int
	app.Schedule(func(task *stepflow.Task) {
		got = stepflow.Will(task, stepflow.Update, wait.Output(func(w *stepflow.World) (int, bool) {
			v := stepflow.MustResource[score](w).v
			return v, v >= 30
		}))
	})
	for range 3 {
		app.Update()
	}
	if got != 30 {
		t.Fatalf("got %d; want 30", got)
	}
}

func TestRes(t *testing.T) {
	app := stepflow.NewApp()
	var got score
	removed := false
	app.Schedule(func(task *stepflow.Task) {
		got = stepflow.Will(task, stepflow.Update, wait.Res[score]())
		stepflow.Will(task, stepflow.Update, wait.ResRemoved[score]())
		removed = true
	})
	app.Update()
	stepflow.InsertResource(app.World(), score{v: 9})
	app.Update()
	if got.v != 9 {
		t.Fatalf("got %+v; want 9", got)
	}
	app.Update()
	if removed {
		t.Fatal("ResRemoved completed while the resource exists")
	}
	stepflow.RemoveResource[score](app.World())
	app.Update()
	if !removed {
		t.Fatal("ResRemoved did not complete")
	}
}

func TestSwitch(t *testing.T) {
	app := stepflow.NewApp()
	var steps []string
	app.Schedule(func(task *stepflow.Task) {
		stepflow.Will(task, stepflow.Update, wait.SwitchOn[ready]())
		steps = append(steps, "on")
		stepflow.Will(task, stepflow.Update, wait.SwitchOff[ready]())
		steps = append(steps, "off")
	})
	app.Schedule(func(task *stepflow.Task) {
		stepflow.Will(task, stepflow.PostUpdate, once.SwitchOn[ready]())
		stepflow.Will(task, stepflow.PostUpdate, once.SwitchOff[ready]())
	})
	app.Update()
	if len(steps) != 0 {
		t.Fatalf("steps = %v after tick 1", steps)
	}
	app.Update()
	if len(steps) != 1 {
		t.Fatalf("steps = %v after tick 2", steps)
	}
	app.Update()
	if len(steps) != 2 {
		t.Fatalf("steps = %v after tick 3", steps)
	}
}
