package iolog

import (
	"bytes"
	"context"
	"fmt"

	"github.com/neosam/hashstore/codec"
	"github.com/neosam/hashstore/hash"
	"github.com/neosam/hashstore/hashio"
)

// LogHashFailure reports that the bytes stored under Expected do not hash
// back to Expected: the file was overwritten in place without renaming,
// the one way a content-addressed store can go silently wrong. Actual is
// the digest the stored bytes actually hash to, so a caller can tell what
// the tampered content now claims to be as well as what it should be.
type LogHashFailure struct {
	Expected hash.Hash
	Actual   hash.Hash
}

func (e *LogHashFailure) Error() string {
	return fmt.Sprintf("iolog: tamper detected: stored content at %s now hashes to %s", e.Expected, e.Actual)
}

// parseParentHash reads just enough of a persisted entry's raw bytes (the
// header plus the first field) to recover its parent link, without
// decoding the payload. Verify uses this so a corrupted or unrecognized
// payload never prevents the chain walk itself from completing.
func parseParentHash(raw []byte) (hash.Hash, error) {
	r := codec.NewReader(bytes.NewReader(raw))
	if _, err := r.ReadU32(); err != nil {
		return hash.None, err
	}
	if _, err := r.ReadRawHash32(); err != nil {
		return hash.None, err
	}
	return r.ReadTaggedHash()
}

// Verify walks l's chain from its current head to genesis, independently
// recomputing the digest of each entry's raw bytes and comparing it to the
// hash the file is named after. Unlike Get/Next (which trust the filename),
// Verify is the only operation that re-derives the address from content, so
// it is the one guaranteed to notice an in-place overwrite. It returns the
// first mismatch found, or nil if the whole chain checks out.
func Verify[T hashio.Persistable](ctx context.Context, l *Log[T]) error {
	current := l.head
	for !current.IsNone() {
		raw, err := l.store.ReadRaw(current)
		if err != nil {
			return err
		}
		if got := hash.HashBytes(raw); got != current {
			return &LogHashFailure{Expected: current, Actual: got}
		}
		parent, err := parseParentHash(raw)
		if err != nil {
			return fmt.Errorf("iolog: parsing entry %s while verifying: %w", current, err)
		}
		current = parent
	}
	return nil
}
