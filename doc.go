// Package stepflow is a library for writing multi-tick control flow as
// ordinary sequential Go functions.
//
// Many programs run a discrete loop: a game, a simulation, a terminal UI.
// Each iteration, or tick, visits a fixed list of phases, and every piece of
// work a phase does must be short and must not block. Logic that spans many
// ticks ("do X, then wait for Y, then do Z") then tends to dissolve into
// flags and state machines scattered across systems.
// Stepflow lets one write that logic as a straight-line function instead.
//
// # Actions and Runners
//
// An [Action] describes one unit of work: an input bound to an [ActionSeed],
// which is a factory for [Runner] values. A Runner is the live, stateful
// form of an Action. The host polls it, at most once per phase per tick,
// until it reports [Completed]. By then, it must have written its result
// into the [Output] cell it was given.
//
// A Runner must not block. If it cannot finish in one poll, it returns
// [Pending] and does the rest of its work in later polls.
//
// Actions compose. [Then] chains two actions so that the second starts only
// after the first has completed, possibly within the same poll. [Sequence]
// does the same for any number of actions, whatever their types.
// [Map] and [Omit] transform outputs.
//
// # Reactors
//
// A [Reactor] drives a body function across ticks. The body calls [Will]
// whenever it wants to wait for an Action at a given [Phase]:
//
//	app.Schedule(func(t *stepflow.Task) {
//		stepflow.Will(t, stepflow.Update, wait.Res[Player]())
//		stepflow.Will(t, stepflow.Update, delay.Ticks(60))
//		stepflow.Will(t, stepflow.Update, once.Do(spawnEnemies))
//	})
//
// Will suspends the body, and the Reactor keeps the Action's Runner until it
// completes. The output is then handed back to the body, which continues
// right away, in the same poll, until it waits again or returns.
// A Reactor waits for at most one Action at a time.
//
// Bodies run on coroutines (see [iter.Pull]). They never run concurrently
// with the host, or with each other.
//
// # Cancellation
//
// Every Reactor has a root [CancellationToken]; every Action it waits for
// gets a child of that token, and combinators fork further children for
// their stages. Canceling a token cancels all of its descendants.
//
// Cancellation is cooperative. It is observed the next time a Runner is
// polled: a canceled Runner returns Completed without doing anything.
// A canceled Reactor polls its Runner once more for that purpose and then
// abandons its body. Code after the pending Will never runs; deferred calls
// do.
//
// # The Host
//
// An [App] is a minimal host. It owns a [World], a typed resource store,
// and calls [System] functions and polls live Reactors in a fixed phase
// order, once per [App.Update]. A [Time] resource tells Runners how much
// time the ticks cover.
//
// Stepflow is single-threaded. None of its types are safe for concurrent
// use; one App and everything attached to it should be driven by a single
// goroutine.
//
// # Leaf Actions
//
// Subpackages provide ready-made actions: [github.com/b97tsk/stepflow/once]
// for one-shot work, [github.com/b97tsk/stepflow/wait] for waiting on
// conditions, [github.com/b97tsk/stepflow/delay] for waiting on ticks or
// time, and [github.com/b97tsk/stepflow/record] for an undo/redo log.
// In this package, [Signal], [State], [WaitGroup] and [Semaphore] let
// reactors coordinate with each other.
package stepflow
