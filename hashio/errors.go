package hashio

import (
	"fmt"

	"github.com/neosam/hashstore/hash"
)

// IOError wraps an underlying filesystem failure (open/read/write/rename/
// mkdir), preserving its cause.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("hashio: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// VersionError is returned when a stored object's version is older than
// this reader's current version and no flex hook resolved it.
type VersionError struct {
	Version uint32
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("hashio: unsupported object version %d", e.Version)
}

// TypeError is returned when a stored object's type_hash does not match
// the caller's expected type and no flex hook resolved it.
type TypeError struct {
	Expected hash.Hash
	Actual   hash.Hash
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("hashio: type mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// UndefinedError is returned for tagged-union discriminators outside the
// known range, including an attempt to dereference the None hash.
type UndefinedError struct {
	Tag string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("hashio: undefined: %s", e.Tag)
}
