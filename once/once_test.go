package once_test

import (
	"testing"

	"github.com/b97tsk/stepflow"
	"github.com/b97tsk/stepflow/once"
)

type testResource struct{ v int }

type testSwitch struct{}

func runOnce[I, O any](t *testing.T, w *stepflow.World, a stepflow.Action[I, O]) O {
	t.Helper()
	token := stepflow.NewCancellationToken()
	out := stepflow.NewOutput[O]()
	if a.Runner(token, out).Poll(w, token) != stepflow.Completed {
		t.Fatal("once action did not complete on its first poll")
	}
	v, ok := out.Get()
	if !ok {
		t.Fatal("once action completed without setting its output")
	}
	return v
}

func TestRun(t *testing.T) {
	w := stepflow.NewWorld()
	if v := runOnce(t, w, once.Run(func(*stepflow.World) int { return 1 + 1 })); v != 2 {
		t.Fatalf("Run output = %d; want 2", v)
	}
	if v := runOnce(t, w, once.RunWith(20, func(n int, _ *stepflow.World) int { return n + 1 })); v != 21 {
		t.Fatalf("RunWith output = %d; want 21", v)
	}
	if v := runOnce(t, w, once.Seed(func(s string, _ *stepflow.World) int { return len(s) }).With("four")); v != 4 {
		t.Fatalf("Seed output = %d; want 4", v)
	}
}

func TestRunOnlyOnce(t *testing.T) {
	w := stepflow.NewWorld()
	calls := 0
	token := stepflow.NewCancellationToken()
	r := once.Do(func(*stepflow.World) { calls++ }).Runner(token, stepflow.NewOutput[stepflow.Unit]())
	r.Poll(w, token)
	r.Poll(w, token)
	if calls != 1 {
		t.Fatalf("calls = %d; want 1", calls)
	}
}

func TestCanceled(t *testing.T) {
	w := stepflow.NewWorld()
	token := stepflow.NewCancellationToken()
	token.Cancel()
	out := stepflow.NewOutput[stepflow.Unit]()
	r := once.InsertRes(testResource{v: 1}).Runner(token, out)
	if r.Poll(w, token) != stepflow.Completed {
		t.Fatal("canceled action did not complete")
	}
	if stepflow.HasResource[testResource](w) || out.Filled() {
		t.Fatal("canceled action had effects")
	}
}

func TestRes(t *testing.T) {
	t.Run("Init", func(t *testing.T) {
		w := stepflow.NewWorld()
		runOnce(t, w, once.InitRes[testResource]())
		if !stepflow.HasResource[testResource](w) {
			t.Fatal("resource not initialized")
		}
	})
	t.Run("Insert", func(t *testing.T) {
		w := stepflow.NewWorld()
		runOnce(t, w, once.InsertRes(testResource{v: 7}))
		if r, ok := stepflow.Resource[testResource](w); !ok || r.v != 7 {
			t.Fatal("resource not inserted")
		}
	})
	t.Run("Remove", func(t *testing.T) {
		w := stepflow.NewWorld()
		stepflow.InitResource[testResource](w)
		runOnce(t, w, once.RemoveRes[testResource]())
		if stepflow.HasResource[testResource](w) {
			t.Fatal("resource not removed")
		}
	})
	t.Run("Take", func(t *testing.T) {
		w := stepflow.NewWorld()
		stepflow.InsertResource(w, testResource{v: 3})
		got := runOnce(t, w, once.TakeRes[testResource]())
		if !got.OK || got.Value.v != 3 || stepflow.HasResource[testResource](w) {
			t.Fatalf("TakeRes output = %+v", got)
		}
		if got := runOnce(t, w, once.TakeRes[testResource]()); got.OK {
			t.Fatal("TakeRes reported a missing resource")
		}
	})
}

func TestSwitch(t *testing.T) {
	t.Run("On", func(t *testing.T) {
		app := stepflow.NewApp()
		turnedOn := false
		app.Schedule(func(task *stepflow.Task) {
			stepflow.Will(task, stepflow.Update, once.SwitchOn[testSwitch]())
		})
		app.AddSystem(stepflow.PostUpdate, func(w *stepflow.World) {
			if stepflow.SwitchJustTurnedOn[testSwitch](w) {
				turnedOn = true
			}
		})
		app.Update()
		if !turnedOn {
			t.Fatal("switch was not just turned on")
		}
	})
	t.Run("OnAfterOneTick", func(t *testing.T) {
		app := stepflow.NewApp()
		turnedOn := 0
		app.Schedule(func(task *stepflow.Task) {
			stepflow.Will(task, stepflow.Update, once.Do(func(*stepflow.World) {}))
			stepflow.Will(task, stepflow.Update, once.SwitchOn[testSwitch]())
		})
		app.AddSystem(stepflow.PostUpdate, func(w *stepflow.World) {
			if stepflow.SwitchJustTurnedOn[testSwitch](w) {
				turnedOn++
			}
		})
		app.Update()
		if turnedOn != 0 {
			t.Fatal("switch turned on too early")
		}
		app.Update()
		if turnedOn != 1 {
			t.Fatal("switch was not just turned on")
		}
		app.Update()
		if turnedOn != 1 {
			t.Fatal("switch still reported as just turned on a tick later")
		}
		if !stepflow.SwitchIsOn[testSwitch](app.World()) {
			t.Fatal("switch is not on")
		}
	})
	t.Run("Off", func(t *testing.T) {
		app := stepflow.NewApp()
		turnedOff := false
		app.Schedule(func(task *stepflow.Task) {
			stepflow.Will(task, stepflow.Update, once.SwitchOn[testSwitch]())
			stepflow.Will(task, stepflow.Update, once.SwitchOff[testSwitch]())
		})
		app.AddSystem(stepflow.PostUpdate, func(w *stepflow.World) {
			if stepflow.SwitchJustTurnedOff[testSwitch](w) {
				turnedOff = true
			}
		})
		app.Update()
		if turnedOff {
			t.Fatal("switch turned off too early")
		}
		app.Update()
		if !turnedOff || stepflow.SwitchIsOn[testSwitch](app.World()) {
			t.Fatal("switch was not just turned off")
		}
	})
}
