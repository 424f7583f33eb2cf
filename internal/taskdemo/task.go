// Package taskdemo is a small worked example of the flex-hook migration
// story: Task is the current format, TaskV0 (task_legacy.go) is the format
// it replaced, and a flex hook lets a HashIO store holding either kind
// decode transparently as a Task.
package taskdemo

import (
	"context"
	"time"

	"github.com/neosam/hashstore/codec"
	"github.com/neosam/hashstore/hash"
	"github.com/neosam/hashstore/hashio"
)

var taskTypeHash = hash.HashBytes([]byte("Task"))

// TaskTypeHash is Task's static type hash.
func TaskTypeHash() hash.Hash { return taskTypeHash }

// Task is a to-do item: a title, a done flag, and the wall-clock time it was
// last completed (used by IsCooledDown, spec's Open Question (b)).
type Task struct {
	Title       string
	Done        bool
	CompletedAt codec.Tm
}

// TypeHash implements hashio.Persistable.
func (Task) TypeHash() hash.Hash { return taskTypeHash }

// WriteFields implements hashio.Persistable.
func (t Task) WriteFields(_ context.Context, _ *hashio.Store, w *codec.Writer) error {
	if err := w.WriteString(t.Title); err != nil {
		return err
	}
	done := uint8(0)
	if t.Done {
		done = 1
	}
	if err := w.WriteU8(done); err != nil {
		return err
	}
	return w.WriteTm(t.CompletedAt)
}

// DecodeTask is Task's Factory.
func DecodeTask(_ context.Context, _ *hashio.Store, r *codec.Reader) (Task, error) {
	title, err := r.ReadString()
	if err != nil {
		return Task{}, err
	}
	done, err := r.ReadU8()
	if err != nil {
		return Task{}, err
	}
	completedAt, err := r.ReadTm()
	if err != nil {
		return Task{}, err
	}
	return Task{Title: title, Done: done != 0, CompletedAt: completedAt}, nil
}

// cooldown is how long after completion a task is considered settled rather
// than eligible for immediate repeat (the resolution of Open Question (b):
// cooldown compares wall-clock completion time, not a logical counter, so it
// survives a process restart).
const cooldown = 24 * time.Hour

// IsCooledDown reports whether t, if done, was completed long enough ago
// that it may be marked not-done and worked again.
func (t Task) IsCooledDown(now time.Time) bool {
	if !t.Done {
		return false
	}
	completed := time.Date(
		int(t.CompletedAt.Year)+1900, time.Month(t.CompletedAt.Mon)+1, int(t.CompletedAt.Mday),
		int(t.CompletedAt.Hour), int(t.CompletedAt.Min), int(t.CompletedAt.Sec), int(t.CompletedAt.Nsec),
		time.UTC,
	)
	return now.Sub(completed) >= cooldown
}

// NewTaskList builds an empty sequence of tasks, ready to have items
// appended and Put as a whole.
func NewTaskList() hashio.Seq[Task] {
	return hashio.NewSeq[Task](taskTypeHash)
}
