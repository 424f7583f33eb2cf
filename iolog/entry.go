// Package iolog implements the hash-chained append-only log built on top
// of hashio: each entry references its predecessor by hash, so the chain
// from the head back to genesis is tamper-evident.
package iolog

import (
	"context"

	"github.com/neosam/hashstore/codec"
	"github.com/neosam/hashstore/hash"
	"github.com/neosam/hashstore/hashio"
)

var entryNameHash = hash.HashBytes([]byte("LogEntry"))

// EntryTypeHash composes the log entry container's type hash from its
// payload type's hash: H(H("LogEntry") || T::type_hash()).
func EntryTypeHash(payload hash.Hash) hash.Hash {
	return entryNameHash.With(payload)
}

// Entry is one link in the chain: a payload of type T plus the hash of the
// entry that preceded it (hash.None for the genesis entry).
type Entry[T hashio.Persistable] struct {
	Payload    T
	ParentHash hash.Hash

	payloadTypeHash hash.Hash
}

// NewEntry builds an Entry given its payload's static type hash (Go cannot
// ask a generic zero value for it).
func NewEntry[T hashio.Persistable](payloadTypeHash hash.Hash, payload T, parent hash.Hash) Entry[T] {
	return Entry[T]{Payload: payload, ParentHash: parent, payloadTypeHash: payloadTypeHash}
}

// TypeHash implements hashio.Persistable.
func (e Entry[T]) TypeHash() hash.Hash {
	return EntryTypeHash(e.payloadTypeHash)
}

// WriteFields implements hashio.Persistable: the parent link first, then
// the payload, mirroring the order a reader needs them (walk back before
// decoding forward).
func (e Entry[T]) WriteFields(ctx context.Context, s *hashio.Store, w *codec.Writer) error {
	if err := w.WriteTaggedHash(e.ParentHash); err != nil {
		return err
	}
	ph, err := hashio.Put(ctx, s, e.Payload)
	if err != nil {
		return err
	}
	return w.WriteTaggedHash(ph)
}

// DecodeEntry builds a hashio.Factory for Entry[T].
func DecodeEntry[T hashio.Persistable](payloadTypeHash hash.Hash, decode hashio.Factory[T]) hashio.Factory[Entry[T]] {
	return func(ctx context.Context, s *hashio.Store, r *codec.Reader) (Entry[T], error) {
		parent, err := r.ReadTaggedHash()
		if err != nil {
			return Entry[T]{}, err
		}
		ph, err := r.ReadTaggedHash()
		if err != nil {
			return Entry[T]{}, err
		}
		payload, err := hashio.Get[T](ctx, s, ph, payloadTypeHash, decode)
		if err != nil {
			return Entry[T]{}, err
		}
		return Entry[T]{Payload: payload, ParentHash: parent, payloadTypeHash: payloadTypeHash}, nil
	}
}
