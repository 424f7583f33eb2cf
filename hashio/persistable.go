package hashio

import (
	"context"

	"github.com/neosam/hashstore/codec"
	"github.com/neosam/hashstore/hash"
)

// Persistable is implemented by every type storable in a HashIO store. Its
// static type_hash and its field layout (scalars in declared order, then
// child hashes in declared order) are the serialization contract.
type Persistable interface {
	// TypeHash returns this type's static schema digest. It must be a pure
	// function of the type, never of the receiver's field values.
	TypeHash() hash.Hash

	// WriteFields writes this value's scalar fields, then recursively
	// Puts and writes the hash of each child field, in declared order.
	WriteFields(ctx context.Context, s *Store, w *codec.Writer) error
}

// Factory reconstructs a T by reading its fields from r, resolving child
// references through s. It is the deserialization half of a Persistable
// type's contract; Go's lack of per-type static dispatch means callers
// supply it explicitly rather than it being discovered by reflection.
type Factory[T Persistable] func(ctx context.Context, s *Store, r *codec.Reader) (T, error)
