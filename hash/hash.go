// Package hash implements the content address used throughout hashstore: a
// tagged 256-bit SHA3-256 digest, its hex codec, and the composition
// operation used to derive type hashes.
package hash

import (
	"bytes"
	"encoding/hex"
	"fmt"

	digest "github.com/opencontainers/go-digest"
	"golang.org/x/crypto/sha3"
)

// Size is the number of digest bytes carried by a set Hash.
const Size = 32

// Algorithm is the name of the digest function used throughout the store.
// The wire format fixes this to SHA3-256; it is not pluggable.
const Algorithm = "sha3-256"

// Hash is a 256-bit digest, or the sentinel None value. The zero Hash is
// None. Hash values are copy-cheap and never mutated in place.
type Hash struct {
	set   bool
	bytes [Size]byte
}

// None is the absent digest. It must never be used as a stored file's name.
var None = Hash{}

// HashBytes returns the SHA3-256 digest of b.
func HashBytes(b []byte) Hash {
	return Hash{set: true, bytes: sha3.Sum256(b)}
}

// fromRaw wraps an already-computed 32-byte digest. Used by codecs that read
// raw digest bytes off the wire.
func fromRaw(b [Size]byte) Hash {
	return Hash{set: true, bytes: b}
}

// FromRawBytes wraps exactly Size bytes as a set Hash. It does not hash b;
// b is assumed to already be a digest.
func FromRawBytes(b []byte) (Hash, error) {
	if len(b) != Size {
		return None, fmt.Errorf("hash: raw digest must be %d bytes, got %d", Size, len(b))
	}
	var out [Size]byte
	copy(out[:], b)
	return fromRaw(out), nil
}

// IsNone reports whether h is the absent sentinel.
func (h Hash) IsNone() bool {
	return !h.set
}

// Bytes returns the byte view of h: empty for None, Size bytes otherwise.
// The returned slice must not be mutated.
func (h Hash) Bytes() []byte {
	if !h.set {
		return nil
	}
	return h.bytes[:]
}

// With computes H(h.Bytes() || other.Bytes()), the composition operation
// used to derive TypeHash values from their constituent parts.
func (h Hash) With(other Hash) Hash {
	buf := make([]byte, 0, len(h.Bytes())+len(other.Bytes()))
	buf = append(buf, h.Bytes()...)
	buf = append(buf, other.Bytes()...)
	return HashBytes(buf)
}

// Hex returns the lowercase, leading-zero-preserving hex form of h. None
// renders as the empty string.
func (h Hash) Hex() string {
	if !h.set {
		return ""
	}
	return hex.EncodeToString(h.bytes[:])
}

// String implements fmt.Stringer with an algorithm-qualified rendering,
// e.g. "sha3-256:7173b8...". This is a display convenience only; the wire
// format never carries the algorithm name (it is fixed).
func (h Hash) String() string {
	if !h.set {
		return "none"
	}
	return Algorithm + ":" + h.Hex()
}

// Digest renders h using the opencontainers/go-digest string type, purely
// for interoperable display (logging fields, CLI output). Validate()/
// Verifier() on the returned value are not meaningful: go-digest's built-in
// algorithm registry does not include sha3-256 (see DESIGN.md), so only the
// Algorithm()/Hex()/String() accessors, which are plain string slicing,
// should be used.
func (h Hash) Digest() digest.Digest {
	return digest.Digest(h.String())
}

// FromHex parses the strict 64-character lowercase hex form of a digest.
func FromHex(s string) (Hash, error) {
	if len(s) != Size*2 {
		return None, fmt.Errorf("hash: hex digest must be %d chars, got %d", Size*2, len(s))
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return None, fmt.Errorf("hash: hex digest %q contains non-lowercase-hex character %q", s, c)
		}
	}
	var out [Size]byte
	if _, err := hex.Decode(out[:], []byte(s)); err != nil {
		return None, fmt.Errorf("hash: decoding hex digest %q: %w", s, err)
	}
	return fromRaw(out), nil
}

// Less gives Hash a total order by byte representation; None sorts first.
func (h Hash) Less(other Hash) bool {
	return bytes.Compare(h.Bytes(), other.Bytes()) < 0
}

// Equal reports whether h and other are the same digest (or both None).
func (h Hash) Equal(other Hash) bool {
	return h == other
}
