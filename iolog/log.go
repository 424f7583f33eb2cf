package iolog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"context"

	"github.com/neosam/hashstore/codec"
	"github.com/neosam/hashstore/hash"
	"github.com/neosam/hashstore/hashio"
	"github.com/neosam/hashstore/internal/dlog"
)

// headFileName is the sibling of the object tree that records the current
// head entry's hash, written in the same tagged-hash wire form used for
// every other hash field (a 1-byte tag, plus 32 raw bytes unless the tag
// is None) rather than as hex text.
const headFileName = "head"

// NotFoundError describes an entry that the chain, walked back from the
// head, never reaches. No function in this package returns it: Get does
// not check reachability, and a missing entry file surfaces as the store's
// IOError.
type NotFoundError struct {
	Hash hash.Hash
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("iolog: entry %s is not reachable from the log head", e.Hash)
}

// Log is a hash-chained append-only log of entries carrying payloads of
// type T, persisted through a hashio.Store.
type Log[T hashio.Persistable] struct {
	store           *hashio.Store
	payloadTypeHash hash.Hash
	decode          hashio.Factory[T]
	headPath        string
	head            hash.Hash
}

// Open roots a Log at store, reading the current head from the store's
// base directory (a missing head file means an empty log).
func Open[T hashio.Persistable](store *hashio.Store, payloadTypeHash hash.Hash, decode hashio.Factory[T]) (*Log[T], error) {
	headPath := filepath.Join(store.BasePath(), headFileName)
	l := &Log[T]{store: store, payloadTypeHash: payloadTypeHash, decode: decode, headPath: headPath}

	data, err := os.ReadFile(headPath)
	if os.IsNotExist(err) {
		l.head = hash.None
		return l, nil
	}
	if err != nil {
		return nil, &hashio.IOError{Op: "read", Path: headPath, Err: err}
	}
	h, err := codec.NewReader(bytes.NewReader(data)).ReadTaggedHash()
	if err != nil {
		return nil, fmt.Errorf("iolog: corrupt head pointer %s: %w", headPath, err)
	}
	l.head = h
	return l, nil
}

// HeadHash returns the hash of the most recently pushed entry, or
// hash.None for an empty log.
func (l *Log[T]) HeadHash() hash.Hash {
	return l.head
}

// Push appends payload as a new entry whose parent is the current head,
// persists it, advances the head pointer on disk, and returns the new
// entry's hash.
func (l *Log[T]) Push(ctx context.Context, payload T) (hash.Hash, error) {
	entry := NewEntry(l.payloadTypeHash, payload, l.head)
	h, err := hashio.Put(ctx, l.store, entry)
	if err != nil {
		return hash.None, err
	}
	if err := l.setHead(ctx, h); err != nil {
		return hash.None, err
	}
	return h, nil
}

// ResetHead forcibly rewrites the head pointer to h without appending an
// entry.
func (l *Log[T]) ResetHead(ctx context.Context, h hash.Hash) error {
	return l.setHead(ctx, h)
}

func (l *Log[T]) setHead(ctx context.Context, h hash.Hash) error {
	var buf bytes.Buffer
	if err := codec.NewWriter(&buf).WriteTaggedHash(h); err != nil {
		return fmt.Errorf("iolog: encoding head pointer: %w", err)
	}
	tmp := l.headPath + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return &hashio.IOError{Op: "write", Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, l.headPath); err != nil {
		os.Remove(tmp)
		return &hashio.IOError{Op: "rename", Path: l.headPath, Err: err}
	}
	l.head = h
	dlog.GetLogger(ctx).Debugf("iolog: head advanced to %s", h)
	return nil
}

// BackupHead copies the current head pointer file to a sibling named
// head.<suffix>, for opt-in operational hygiene before a risky operation:
// iolog never calls this on its own, since a head pointer's only required
// durability comes from Push's atomic rename.
func (l *Log[T]) BackupHead(suffix string) (string, error) {
	dst := l.headPath + "." + suffix
	data, err := os.ReadFile(l.headPath)
	if err != nil {
		return "", &hashio.IOError{Op: "read", Path: l.headPath, Err: err}
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", &hashio.IOError{Op: "write", Path: dst, Err: err}
	}
	return dst, nil
}

// Get materializes the entry at h. It does not verify that h is on the
// chain reachable from the current head; callers that need that guarantee
// should walk the chain with a HashIterator instead.
func (l *Log[T]) Get(ctx context.Context, h hash.Hash) (Entry[T], error) {
	return hashio.Get[Entry[T]](ctx, l.store, h, EntryTypeHash(l.payloadTypeHash), DecodeEntry(l.payloadTypeHash, l.decode))
}

// ParentHash returns the parent link of the entry at h.
func (l *Log[T]) ParentHash(ctx context.Context, h hash.Hash) (hash.Hash, error) {
	e, err := l.Get(ctx, h)
	if err != nil {
		return hash.None, err
	}
	return e.ParentHash, nil
}
