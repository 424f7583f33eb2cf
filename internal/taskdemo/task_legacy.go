package taskdemo

import (
	"context"
	"fmt"

	"github.com/neosam/hashstore/codec"
	"github.com/neosam/hashstore/hash"
	"github.com/neosam/hashstore/hashio"
	"github.com/neosam/hashstore/legacy"
)

// TaskV0 is the format Task replaced: a title and a done flag, with no
// completion timestamp (IsCooledDown did not exist yet). It is never
// written by this package, only read, via the flex hook registered in
// init.
type TaskV0 struct {
	Title string
	Done  bool
}

func init() {
	hashio.RegisterFlex[Task](taskTypeHash, decodeLegacyTask)
}

// decodeLegacyTask is Task's flex hook: given a hash whose stored version
// is older than hashio.CurrentVersion, it re-reads the raw bytes
// under the legacy framing and upgrades them to a current-format Task with
// a zero CompletedAt, since TaskV0 never recorded one.
func decodeLegacyTask(ctx context.Context, s *hashio.Store, h hash.Hash) (Task, bool, error) {
	raw, err := s.ReadRaw(h)
	if err != nil {
		return Task{}, false, err
	}
	r, err := legacy.Open(raw)
	if err != nil {
		return Task{}, false, fmt.Errorf("taskdemo: not a recognized legacy Task: %w", err)
	}
	title, err := r.ReadString()
	if err != nil {
		return Task{}, true, err
	}
	done, err := r.ReadU8()
	if err != nil {
		return Task{}, true, err
	}
	v0 := TaskV0{Title: title, Done: done != 0}
	return Task{Title: v0.Title, Done: v0.Done, CompletedAt: codec.Tm{}}, true, nil
}
