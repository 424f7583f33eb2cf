package hashio

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/neosam/hashstore/hash"
)

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	h, err := Put(ctx, s, Str("hello"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := Get[Str](ctx, s, h, StrTypeHash(), DecodeStr)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "hello" {
		t.Fatalf("round trip: got %q, want %q", got, "hello")
	}
}

func TestPutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	h1, err := Put(ctx, s, Str("repeat"))
	if err != nil {
		t.Fatalf("put 1: %v", err)
	}
	path := s.pathFor(h1)
	before, err := s.ReadRaw(h1)
	if err != nil {
		t.Fatalf("read raw: %v", err)
	}

	h2, err := Put(ctx, s, Str("repeat"))
	if err != nil {
		t.Fatalf("put 2: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("expected identical hash on rewrite, got %s and %s", h1, h2)
	}
	after, err := s.ReadRaw(h2)
	if err != nil {
		t.Fatalf("read raw after: %v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("content changed across idempotent put at %s", path)
	}
}

func TestSharedContentDedups(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	a, err := Put(ctx, s, Str("shared"))
	if err != nil {
		t.Fatalf("put a: %v", err)
	}
	b, err := Put(ctx, s, Str("shared"))
	if err != nil {
		t.Fatalf("put b: %v", err)
	}
	if a != b {
		t.Fatalf("identical values must share one address: %s != %s", a, b)
	}

	seq := NewSeq[Str](StrTypeHash(), Str("shared"), Str("shared"))
	sh, err := Put(ctx, s, seq)
	if err != nil {
		t.Fatalf("put seq: %v", err)
	}
	decoded, err := Get[Seq[Str]](ctx, s, sh, SeqTypeHash(StrTypeHash()), DecodeSeq[Str](StrTypeHash(), DecodeStr))
	if err != nil {
		t.Fatalf("get seq: %v", err)
	}
	if len(decoded.Items) != 2 || decoded.Items[0] != decoded.Items[1] {
		t.Fatalf("seq round trip mismatch: %+v", decoded.Items)
	}
}

func TestGetNoneHashFails(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := Get[Str](ctx, s, hash.None, StrTypeHash(), DecodeStr); err == nil {
		t.Fatal("expected error reading the None hash")
	}
}

func TestGetTypeMismatchFails(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	h, err := Put(ctx, s, Str("oops"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := Get[I32](ctx, s, h, I32TypeHash(), DecodeI32); err == nil {
		t.Fatal("expected type mismatch error")
	}
}

func TestTwoLevelFanOut(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s, err := Open(base)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	h, err := Put(ctx, s, Str("fanout"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	hx := h.Hex()
	want := filepath.Join(base, hx[:2], hx[2:])
	if s.pathFor(h) != want {
		t.Fatalf("pathFor = %s, want %s", s.pathFor(h), want)
	}
}
