package iolog

import (
	"context"

	"github.com/neosam/hashstore/hash"
	"github.com/neosam/hashstore/hashio"
)

// HashIterator walks a Log's chain from the head back to genesis, yielding
// each entry's hash. It is a cursor-style iterator rather than a
// range-over-func one: callers call Next until it returns false.
type HashIterator[T hashio.Persistable] struct {
	log     *Log[T]
	ctx     context.Context
	current hash.Hash
	err     error
}

// Hashes returns an iterator over l's chain starting at its current head.
func (l *Log[T]) Hashes(ctx context.Context) *HashIterator[T] {
	return &HashIterator[T]{log: l, ctx: ctx, current: l.head}
}

// Next advances the iterator and reports whether a hash was produced. It
// returns false both at genesis and after an error; call Err to
// distinguish the two.
func (it *HashIterator[T]) Next() (hash.Hash, bool) {
	if it.err != nil || it.current.IsNone() {
		return hash.None, false
	}
	h := it.current
	parent, err := it.log.ParentHash(it.ctx, h)
	if err != nil {
		it.err = err
		return hash.None, false
	}
	it.current = parent
	return h, true
}

// Err returns the first error encountered while walking the chain, if any.
func (it *HashIterator[T]) Err() error {
	return it.err
}

// ItemIterator walks a Log's chain yielding materialized payloads instead
// of raw hashes.
type ItemIterator[T hashio.Persistable] struct {
	hashes *HashIterator[T]
	log    *Log[T]
	ctx    context.Context
	err    error
}

// Items returns an iterator over l's payloads, newest first.
func (l *Log[T]) Items(ctx context.Context) *ItemIterator[T] {
	return &ItemIterator[T]{hashes: l.Hashes(ctx), log: l, ctx: ctx}
}

// Next advances the iterator and reports whether a payload was produced.
func (it *ItemIterator[T]) Next() (T, bool) {
	var zero T
	h, ok := it.hashes.Next()
	if !ok {
		it.err = it.hashes.Err()
		return zero, false
	}
	entry, err := it.log.Get(it.ctx, h)
	if err != nil {
		it.err = err
		return zero, false
	}
	return entry.Payload, true
}

// Err returns the first error encountered while walking the chain, if any.
func (it *ItemIterator[T]) Err() error {
	return it.err
}
