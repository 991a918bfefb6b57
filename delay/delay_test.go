package delay_test

import (
	"testing"
	"time"

	"github.com/b97tsk/stepflow"
	"github.com/b97tsk/stepflow/delay"
)

func TestTicks(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		app := stepflow.NewApp()
		done := 0
		app.Schedule(func(task *stepflow.Task) {
			stepflow.Will(task, stepflow.Update, delay.Ticks(n))
			done = int(app.World().Tick())
		})
		for app.Reactors() != 0 {
			app.Update()
		}
		if want := max(n, 1); done != want {
			t.Errorf("Ticks(%d) completed on tick %d; want %d", n, done, want)
		}
	}
}

func TestTime(t *testing.T) {
	now := time.Unix(0, 0)
	app := stepflow.NewApp(stepflow.WithClock(func() time.Time { return now }))
	var done uint64
	app.Schedule(func(task *stepflow.Task) {
		stepflow.Will(task, stepflow.Update, delay.Time(50*time.Millisecond))
		done = app.World().Tick()
	})
	for app.Reactors() != 0 && app.World().Tick() < 100 {
		app.Update()
		now = now.Add(20 * time.Millisecond)
	}
	// Elapsed is 0, 20, 40, 60 ms on ticks 1 to 4.
	if done != 4 {
		t.Fatalf("completed on tick %d; want 4", done)
	}
}

func TestCanceled(t *testing.T) {
	w := stepflow.NewWorld()
	token := stepflow.NewCancellationToken()
	out := stepflow.NewOutput[stepflow.Unit]()
	r := delay.Ticks(5).Runner(token, out)
	if r.Poll(w, token) != stepflow.Pending {
		t.Fatal("Ticks(5) completed on its first poll")
	}
	token.Cancel()
	if r.Poll(w, token) != stepflow.Completed || out.Filled() {
		t.Fatal("canceled Ticks did not complete without output")
	}
}
