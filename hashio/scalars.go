package hashio

import (
	"context"

	"github.com/neosam/hashstore/codec"
	"github.com/neosam/hashstore/hash"
)

// Str is the persistable wrapper around a plain string.
type Str string

var strTypeHash = hash.HashBytes([]byte("String"))

// StrTypeHash is String's static type hash.
func StrTypeHash() hash.Hash { return strTypeHash }

// TypeHash implements Persistable.
func (Str) TypeHash() hash.Hash { return strTypeHash }

// WriteFields implements Persistable.
func (s Str) WriteFields(_ context.Context, _ *Store, w *codec.Writer) error {
	return w.WriteString(string(s))
}

// DecodeStr is Str's Factory.
func DecodeStr(_ context.Context, _ *Store, r *codec.Reader) (Str, error) {
	v, err := r.ReadString()
	return Str(v), err
}

// I32 is the persistable wrapper around a plain int32.
type I32 int32

var i32TypeHash = hash.HashBytes([]byte("I32"))

// I32TypeHash is I32's static type hash.
func I32TypeHash() hash.Hash { return i32TypeHash }

// TypeHash implements Persistable.
func (I32) TypeHash() hash.Hash { return i32TypeHash }

// WriteFields implements Persistable.
func (v I32) WriteFields(_ context.Context, _ *Store, w *codec.Writer) error {
	return w.WriteI32(int32(v))
}

// DecodeI32 is I32's Factory.
func DecodeI32(_ context.Context, _ *Store, r *codec.Reader) (I32, error) {
	v, err := r.ReadI32()
	return I32(v), err
}
