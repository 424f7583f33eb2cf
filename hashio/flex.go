package hashio

import (
	"context"
	"fmt"
	"sync"

	"github.com/neosam/hashstore/hash"
)

// CurrentVersion is the version field written by every Put. A flex hook is
// consulted whenever a stored object's version is older than this.
const CurrentVersion = 1

// flexFunc is the type-erased form of a registered flex hook: given the
// hash of an object that failed to decode as the expected type/version, it
// either recognizes the legacy bytes and returns the upgraded value (ok =
// true), or declines (ok = false) so the original error surfaces.
type flexFunc func(ctx context.Context, s *Store, h hash.Hash) (value any, ok bool, err error)

var (
	flexMu    sync.RWMutex
	flexHooks = map[hash.Hash]flexFunc{}
)

// RegisterFlex registers fn as the flex hook for typeHash, the TypeHash of
// the current-format type T that can absorb a legacy representation. It
// panics on duplicate registration for the same typeHash, mirroring the
// teacher's storage-driver factory registry (registry/storage/driver/
// factory.Register panics on a duplicate name) — a programming error, not a
// runtime condition to recover from.
func RegisterFlex[T Persistable](typeHash hash.Hash, fn func(ctx context.Context, s *Store, h hash.Hash) (T, bool, error)) {
	flexMu.Lock()
	defer flexMu.Unlock()
	if _, dup := flexHooks[typeHash]; dup {
		panic(fmt.Sprintf("hashio: flex hook already registered for type %s", typeHash))
	}
	flexHooks[typeHash] = func(ctx context.Context, s *Store, h hash.Hash) (any, bool, error) {
		return fn(ctx, s, h)
	}
}

func lookupFlex(typeHash hash.Hash) (flexFunc, bool) {
	flexMu.RLock()
	defer flexMu.RUnlock()
	fn, ok := flexHooks[typeHash]
	return fn, ok
}

// tryFlex invokes the flex hook registered for typeHash, if any, and
// type-asserts its result to T. handled reports whether a hook ran and
// produced a value or a terminal error; when handled is false the caller
// should return its own original error.
func tryFlex[T Persistable](ctx context.Context, s *Store, h hash.Hash, typeHash hash.Hash) (value T, handled bool, err error) {
	fn, ok := lookupFlex(typeHash)
	if !ok {
		return value, false, nil
	}
	raw, ok, err := fn(ctx, s, h)
	if !ok {
		return value, false, nil
	}
	if err != nil {
		return value, true, err
	}
	typed, ok := raw.(T)
	if !ok {
		return value, true, fmt.Errorf("hashio: flex hook for type %s returned an incompatible value", typeHash)
	}
	return typed, true, nil
}
