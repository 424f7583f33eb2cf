package iolog

import (
	"context"

	"github.com/neosam/hashstore/hash"
	"github.com/neosam/hashstore/hashio"
)

// Rebuild replays src's chain, oldest entry first, into dst, producing a
// fresh log whose entries carry the same payloads. Every entry's address is
// re-derived by a fresh Push, so an entry whose payload and ancestry are
// unchanged keeps the hash it had in src, and the rebuilt chain is
// consistent with its own contents. Rebuild stops with the error of the
// first src entry it cannot read or decode.
func Rebuild[T hashio.Persistable](ctx context.Context, src *Log[T], dst *hashio.Store) (*Log[T], error) {
	var hashes []hash.Hash
	it := src.Hashes(ctx)
	for h, ok := it.Next(); ok; h, ok = it.Next() {
		hashes = append(hashes, h)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	out, err := Open[T](dst, src.payloadTypeHash, src.decode)
	if err != nil {
		return nil, err
	}
	for i := len(hashes) - 1; i >= 0; i-- {
		entry, err := src.Get(ctx, hashes[i])
		if err != nil {
			return nil, err
		}
		if _, err := out.Push(ctx, entry.Payload); err != nil {
			return nil, err
		}
	}
	return out, nil
}
