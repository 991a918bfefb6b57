// Package record provides an undo/redo log built out of actions.
//
// A [Record] is a world resource holding, per act type, the tracks pushed so
// far and the tracks that can be redone. Undoing a track replays its
// [Rollback]; while a replay is in progress, the record refuses edits with
// [ErrOperationInProgress].
package record

import (
	"errors"
	"slices"

	"github.com/b97tsk/stepflow"
)

// ErrOperationInProgress is the output of record actions when an undo or
// a redo of the same record is in progress.
var ErrOperationInProgress = errors.New("record: undo or redo in progress")

// A Record is the undo/redo log of acts of type Act.
type Record[Act any] struct {
	tracks     []Track[Act]
	redos      []redo[Act]
	inProgress bool
}

// Len returns the number of tracks that can be undone.
func (r *Record[Act]) Len() int {
	return len(r.tracks)
}

// RedoLen returns the number of tracks that can be redone.
func (r *Record[Act]) RedoLen() int {
	return len(r.redos)
}

// Acts returns the acts of the tracks that can be undone, oldest first.
func (r *Record[Act]) Acts() []Act {
	acts := make([]Act, len(r.tracks))
	for i, t := range r.tracks {
		acts[i] = t.Act
	}
	return acts
}

// InProgress reports whether an undo or a redo is being replayed.
func (r *Record[Act]) InProgress() bool {
	return r.inProgress
}

// A Track is one entry of a [Record]: an act and how to roll it back.
type Track[Act any] struct {
	Act      Act
	Rollback Rollback
}

// A Rollback describes how to undo a track and, optionally, how to redo it
// afterwards.
type Rollback struct {
	undo func() stepflow.Action[stepflow.Unit, RedoAction]
}

// NewRollback returns a [Rollback] that undoes with the action f creates.
// Tracks rolled back this way cannot be redone.
func NewRollback[I any](f func() stepflow.Action[I, stepflow.Unit]) Rollback {
	if f == nil {
		panic("record: nil rollback")
	}
	return Rollback{undo: func() stepflow.Action[stepflow.Unit, RedoAction] {
		a := stepflow.Map(f(), func(stepflow.Unit) RedoAction { return RedoAction{} })
		return stepflow.Seal(a)
	}}
}

// NewUndoRedo returns a [Rollback] that undoes with the action f creates.
// The [RedoAction] that action outputs is kept so that the track can be
// redone later.
func NewUndoRedo[I any](f func() stepflow.Action[I, RedoAction]) Rollback {
	if f == nil {
		panic("record: nil rollback")
	}
	return Rollback{undo: func() stepflow.Action[stepflow.Unit, RedoAction] {
		return stepflow.Seal(f())
	}}
}

// A RedoAction is the output of an undo action that can be redone.
// The zero value means no redo.
type RedoAction struct {
	action stepflow.Action[stepflow.Unit, stepflow.Unit]
	ok     bool
}

// NewRedoAction creates a [RedoAction] from a.
func NewRedoAction[I any](a stepflow.Action[I, stepflow.Unit]) RedoAction {
	return RedoAction{action: stepflow.Seal(a), ok: true}
}

type redo[Act any] struct {
	track  Track[Act]
	action stepflow.Action[stepflow.Unit, stepflow.Unit]
}

// PushTrack appends t to the [Record] of Act in w, creating the record if
// needed, and clears its redo stack.
// It returns [ErrOperationInProgress], leaving the record untouched, while
// an undo or a redo is in progress.
func PushTrack[Act any](w *stepflow.World, t Track[Act]) error {
	if t.Rollback.undo == nil {
		panic("record: track without rollback")
	}
	stepflow.InitResource[Record[Act]](w)
	rec := stepflow.MustResource[Record[Act]](w)
	if rec.inProgress {
		return ErrOperationInProgress
	}
	rec.tracks = append(rec.tracks, t)
	clear(rec.redos)
	rec.redos = rec.redos[:0]
	return nil
}

// Push returns an [stepflow.ActionSeed] that pushes its input onto the
// [Record] of Act. See [PushTrack].
func Push[Act any]() stepflow.ActionSeed[Track[Act], error] {
	return stepflow.NewSeed(func(t Track[Act], out *stepflow.Output[error]) stepflow.Runner {
		ran := false
		return stepflow.RunnerFunc(func(w *stepflow.World, token *stepflow.CancellationToken) stepflow.Status {
			if token.CancelRequested() || ran {
				return stepflow.Completed
			}
			ran = true
			out.Set(PushTrack(w, t))
			return stepflow.Completed
		})
	})
}

// Undo returns an action that pops the latest track of the [Record] of Act
// and replays its rollback. When the rollback yields a [RedoAction], the
// track becomes redoable.
//
// The output is nil on success, and also when there is nothing to undo.
// It is [ErrOperationInProgress] if another undo or redo is in progress.
//
// If canceled during the replay, the record leaves the in-progress state
// and the popped track is dropped; nothing is restored.
func Undo[Act any]() stepflow.Action[stepflow.Unit, error] {
	return replay(func(rec *Record[Act]) (stepflow.Action[stepflow.Unit, RedoAction], func(RedoAction), bool) {
		n := len(rec.tracks)
		if n == 0 {
			return stepflow.Action[stepflow.Unit, RedoAction]{}, nil, false
		}
		t := rec.tracks[n-1]
		rec.tracks[n-1] = Track[Act]{}
		rec.tracks = rec.tracks[:n-1]
		commit := func(ra RedoAction) {
			if ra.ok {
				rec.redos = append(rec.redos, redo[Act]{track: t, action: ra.action})
			}
		}
		return t.Rollback.undo(), commit, true
	})
}

// Redo returns an action that pops the latest redoable track of the
// [Record] of Act, replays its redo action and pushes the track back so that
// it can be undone again.
//
// Outputs and cancellation behave like those of [Undo].
func Redo[Act any]() stepflow.Action[stepflow.Unit, error] {
	return replay(func(rec *Record[Act]) (stepflow.Action[stepflow.Unit, RedoAction], func(RedoAction), bool) {
		n := len(rec.redos)
		if n == 0 {
			return stepflow.Action[stepflow.Unit, RedoAction]{}, nil, false
		}
		r := rec.redos[n-1]
		rec.redos[n-1] = redo[Act]{}
		rec.redos = rec.redos[:n-1]
		commit := func(RedoAction) {
			rec.tracks = append(rec.tracks, r.track)
		}
		a := stepflow.Map(r.action, func(stepflow.Unit) RedoAction { return RedoAction{} })
		return a, commit, true
	})
}

// Clear returns an action that empties the [Record] of Act.
// Its output is [ErrOperationInProgress] while a replay is in progress.
func Clear[Act any]() stepflow.Action[stepflow.Unit, error] {
	return stepflow.NewSeed(func(_ stepflow.Unit, out *stepflow.Output[error]) stepflow.Runner {
		return stepflow.RunnerFunc(func(w *stepflow.World, token *stepflow.CancellationToken) stepflow.Status {
			if token.CancelRequested() || out.Filled() {
				return stepflow.Completed
			}
			rec, ok := stepflow.Resource[Record[Act]](w)
			switch {
			case !ok:
				out.Set(nil)
			case rec.inProgress:
				out.Set(ErrOperationInProgress)
			default:
				rec.tracks = slices.Delete(rec.tracks, 0, len(rec.tracks))
				rec.redos = slices.Delete(rec.redos, 0, len(rec.redos))
				out.Set(nil)
			}
			return stepflow.Completed
		})
	}).With(stepflow.Unit{})
}

type pickFunc[Act any] func(rec *Record[Act]) (a stepflow.Action[stepflow.Unit, RedoAction], commit func(RedoAction), ok bool)

func replay[Act any](pick pickFunc[Act]) stepflow.Action[stepflow.Unit, error] {
	return stepflow.NewSeedWithToken(func(_ stepflow.Unit, token *stepflow.CancellationToken, out *stepflow.Output[error]) stepflow.Runner {
		return &replayRunner[Act]{pick: pick, token: token.Fork(), out: out}
	}).With(stepflow.Unit{})
}

type replayRunner[Act any] struct {
	pick   pickFunc[Act]
	rec    *Record[Act]
	inner  stepflow.Runner
	result *stepflow.Output[RedoAction]
	commit func(RedoAction)
	token  *stepflow.CancellationToken
	out    *stepflow.Output[error]
}

func (r *replayRunner[Act]) Poll(w *stepflow.World, token *stepflow.CancellationToken) stepflow.Status {
	if token.CancelRequested() {
		if r.inner != nil {
			r.inner.Poll(w, r.token)
			r.finish()
		}
		return stepflow.Completed
	}

	if r.out.Filled() {
		return stepflow.Completed
	}

	if r.inner == nil {
		rec, ok := stepflow.Resource[Record[Act]](w)
		if !ok {
			r.out.Set(nil)
			return stepflow.Completed
		}
		if rec.inProgress {
			r.out.Set(ErrOperationInProgress)
			return stepflow.Completed
		}
		a, commit, ok := r.pick(rec)
		if !ok {
			r.out.Set(nil)
			return stepflow.Completed
		}
		rec.inProgress = true
		r.rec = rec
		r.commit = commit
		r.result = stepflow.NewOutput[RedoAction]()
		r.inner = a.Runner(r.token, r.result)
	}

	if r.inner.Poll(w, r.token) == stepflow.Pending {
		return stepflow.Pending
	}

	ra, _ := r.result.Take()
	r.commit(ra)
	r.finish()
	r.out.Set(nil)
	return stepflow.Completed
}

func (r *replayRunner[Act]) finish() {
	r.inner = nil
	r.rec.inProgress = false
	r.rec = nil
}
