// Package lazyio implements a deferred-load handle over a hashio value: on
// the wire it is indistinguishable from T itself (only its hash ever
// appears in a parent's serialization), but in memory it may hold either
// the materialized value or just the hash, loading on first access.
package lazyio

import (
	"context"
	"sync"

	"github.com/neosam/hashstore/hash"
	"github.com/neosam/hashstore/hashio"
)

// Lazy defers materializing a hashio.Persistable value until it is first
// needed. Unlike every other Persistable in this module, Lazy does not
// implement hashio.Persistable itself: a parent's WriteFields calls
// PersistRef directly so that only T's own version/type_hash/fields ever
// reach disk, never a wrapper around them.
type Lazy[T hashio.Persistable] struct {
	store  *hashio.Store
	decode hashio.Factory[T]
	mu     sync.Mutex
	h      hash.Hash
	loaded bool
	value  T
}

// Of wraps an already-materialized value v. store is required because a
// Lazy's digest is only knowable by persisting v's children, which AsHash
// does as a side effect of computing it; see DESIGN.md.
func Of[T hashio.Persistable](store *hashio.Store, decode hashio.Factory[T], v T) *Lazy[T] {
	return &Lazy[T]{store: store, decode: decode, value: v, loaded: true}
}

// Unloaded wraps a known hash without materializing the value behind it.
func Unloaded[T hashio.Persistable](store *hashio.Store, decode hashio.Factory[T], h hash.Hash) *Lazy[T] {
	return &Lazy[T]{store: store, decode: decode, h: h, loaded: false}
}

// IsLoaded reports whether the value currently lives in memory.
func (l *Lazy[T]) IsLoaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Unload drops the in-memory value, keeping only its hash. It panics if the
// hash has never been computed (the value was never persisted or loaded
// from one), since there would be nothing left to reconstitute it from.
func (l *Lazy[T]) Unload() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.h.IsNone() {
		panic("lazyio: cannot unload a value that has never been persisted")
	}
	var zero T
	l.value = zero
	l.loaded = false
}

// AsHash returns the content hash of the wrapped value, persisting it first
// if it has not been written yet.
func (l *Lazy[T]) AsHash(ctx context.Context) (hash.Hash, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.h.IsNone() {
		return l.h, nil
	}
	h, err := hashio.Put(ctx, l.store, l.value)
	if err != nil {
		return hash.None, err
	}
	l.h = h
	return h, nil
}

// Get returns the wrapped value, materializing it from the store on first
// access if it was constructed via Unloaded.
func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadLocked(ctx)
}

// Put overwrites the cached payload with v, as if a fresh Of had been
// constructed. The cached hash is discarded: a subsequent AsHash recomputes
// it from v rather than returning a digest of the value Put replaced.
func (l *Lazy[T]) Put(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.value = v
	l.loaded = true
	l.h = hash.None
}

// Modify loads the payload if needed, passes a pointer to it to fn for
// in-place mutation, and invalidates the cached hash so the next AsHash
// recomputes it from the mutated value. It is the mutable counterpart to
// Get's read-only access.
func (l *Lazy[T]) Modify(ctx context.Context, fn func(*T)) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.loadLocked(ctx); err != nil {
		return err
	}
	fn(&l.value)
	l.h = hash.None
	return nil
}

func (l *Lazy[T]) loadLocked(ctx context.Context) (T, error) {
	if l.loaded {
		return l.value, nil
	}
	var zero T
	v, err := hashio.Get[T](ctx, l.store, l.h, zero.TypeHash(), l.decode)
	if err != nil {
		return zero, err
	}
	l.value = v
	l.loaded = true
	return v, nil
}

// PersistRef persists the wrapped value if needed and returns its hash.
// Parent WriteFields implementations call this in place of hashio.Put so
// that a Lazy field is type-transparent on the wire: the parent's
// serialization carries exactly one tagged hash, never a second file
// wrapping T's own version/type_hash/fields.
func (l *Lazy[T]) PersistRef(ctx context.Context) (hash.Hash, error) {
	return l.AsHash(ctx)
}
