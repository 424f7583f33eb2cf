// Package legacy reads the pre-type_hash object format that a flex hook
// upgrades on first access. Three framing differences from the current
// format are fixed by this package: no
// type_hash header field (only a version, always 0), u16 container counts
// instead of u32, and hash fields written as a raw 32 bytes with all-zero
// meaning None instead of a 1-byte tag.
package legacy

import (
	"bytes"
	"fmt"

	"github.com/neosam/hashstore/codec"
	"github.com/neosam/hashstore/hash"
)

// Version is the only version value this package's readers understand.
const Version = 0

// Reader wraps a legacy object's raw bytes, having already consumed and
// checked its version field.
type Reader struct {
	r *codec.Reader
}

// Open checks raw's leading version field and returns a Reader positioned
// at the start of the legacy fields, or an error if the version is not the
// one this package reads.
func Open(raw []byte) (*Reader, error) {
	r := codec.NewReader(bytes.NewReader(raw))
	version, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, fmt.Errorf("legacy: unrecognized legacy version %d", version)
	}
	return &Reader{r: r}, nil
}

// ReadU8 delegates to the underlying scalar reader.
func (r *Reader) ReadU8() (uint8, error) { return r.r.ReadU8() }

// ReadI32 delegates to the underlying scalar reader.
func (r *Reader) ReadI32() (int32, error) { return r.r.ReadI32() }

// ReadString delegates to the underlying scalar reader.
func (r *Reader) ReadString() (string, error) { return r.r.ReadString() }

// ReadCount reads a legacy container's u16 element count, where current
// format containers use u32.
func (r *Reader) ReadCount() (uint16, error) {
	return r.r.ReadU16()
}

// ReadLegacyHash reads a raw 32-byte hash field with no tag byte; all
// thirty-two bytes zero means None, matching the legacy writer's
// convention of never omitting the field entirely.
func (r *Reader) ReadLegacyHash() (hash.Hash, error) {
	buf, err := r.r.ReadRawBytes(hash.Size)
	if err != nil {
		return hash.None, err
	}
	allZero := true
	for _, b := range buf {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return hash.None, nil
	}
	return hash.FromRawBytes(buf)
}
