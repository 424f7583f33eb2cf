package legacy

import (
	"bytes"
	"testing"

	"github.com/neosam/hashstore/codec"
	"github.com/neosam/hashstore/hash"
)

func TestOpenRejectsWrongVersion(t *testing.T) {
	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	if err := w.WriteU32(7); err != nil {
		t.Fatalf("write version: %v", err)
	}
	if _, err := Open(buf.Bytes()); err == nil {
		t.Fatal("expected Open to reject a non-legacy version")
	}
}

func TestReadLegacyHashAllZeroIsNone(t *testing.T) {
	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	if err := w.WriteU32(Version); err != nil {
		t.Fatalf("write version: %v", err)
	}
	var zero [hash.Size]byte
	if _, err := buf.Write(zero[:]); err != nil {
		t.Fatalf("write zero hash: %v", err)
	}
	r, err := Open(buf.Bytes())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	h, err := r.ReadLegacyHash()
	if err != nil {
		t.Fatalf("read legacy hash: %v", err)
	}
	if !h.IsNone() {
		t.Fatalf("expected all-zero legacy hash to decode as None, got %s", h)
	}
}

func TestReadLegacyHashNonZero(t *testing.T) {
	want := hash.HashBytes([]byte("legacy payload"))
	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	if err := w.WriteU32(Version); err != nil {
		t.Fatalf("write version: %v", err)
	}
	if _, err := buf.Write(want.Bytes()); err != nil {
		t.Fatalf("write hash bytes: %v", err)
	}
	r, err := Open(buf.Bytes())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got, err := r.ReadLegacyHash()
	if err != nil {
		t.Fatalf("read legacy hash: %v", err)
	}
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestReadCountIsU16(t *testing.T) {
	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	if err := w.WriteU32(Version); err != nil {
		t.Fatalf("write version: %v", err)
	}
	if err := w.WriteU16(1234); err != nil {
		t.Fatalf("write count: %v", err)
	}
	r, err := Open(buf.Bytes())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	count, err := r.ReadCount()
	if err != nil {
		t.Fatalf("read count: %v", err)
	}
	if count != 1234 {
		t.Fatalf("got %d, want 1234", count)
	}
}
