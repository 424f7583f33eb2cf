package hashio

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/neosam/hashstore/hash"
)

// PutMany persists every value in values concurrently, bounded to
// runtime.GOMAXPROCS in-flight puts at a time via g.SetLimit, and returns
// their hashes in the same order as values. If any Put fails, the first
// error is returned and the remaining puts are allowed to finish
// (writeIfAbsent never partially corrupts the store, so an abandoned
// concurrent write is harmless).
func PutMany(ctx context.Context, s *Store, values []Persistable) ([]hash.Hash, error) {
	hashes := make([]hash.Hash, len(values))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			h, err := Put(gctx, s, v)
			if err != nil {
				return err
			}
			hashes[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hashes, nil
}
