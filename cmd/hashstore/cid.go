package main

import (
	cid "github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"

	"github.com/neosam/hashstore/hash"
)

// cidFor renders h as a CIDv1 string (raw codec, SHA3-256 multihash), purely
// for interop with IPFS-family tooling that wants to address the same bytes
// by CID instead of by hashstore's native hex digest. hashstore never reads
// or writes CIDs itself; this is a display-only convenience.
func cidFor(h hash.Hash) (string, error) {
	digest, err := mh.Encode(h.Bytes(), mh.SHA3_256)
	if err != nil {
		return "", err
	}
	c := cid.NewCidV1(cid.Raw, digest)
	return c.String(), nil
}
