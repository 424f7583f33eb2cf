package hashio

import (
	"context"
	"testing"
)

func strLess(a, b Str) bool { return a < b }

func TestOMapPutGetOrdering(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	m := NewOMap[Str, I32](StrTypeHash(), I32TypeHash(), strLess)
	m.Put(Str("b"), I32(2))
	m.Put(Str("a"), I32(1))
	m.Put(Str("c"), I32(3))
	m.Put(Str("b"), I32(20))

	if len(m.Keys) != 3 {
		t.Fatalf("expected 3 keys after overwrite, got %d", len(m.Keys))
	}
	for i := 1; i < len(m.Keys); i++ {
		if !strLess(m.Keys[i-1], m.Keys[i]) {
			t.Fatalf("keys not in order: %v", m.Keys)
		}
	}
	v, ok := m.Get(Str("b"))
	if !ok || v != 20 {
		t.Fatalf("Get(b) = %v, %v; want 20, true", v, ok)
	}

	h, err := Put(ctx, s, m)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	decoded, err := Get[*OMap[Str, I32]](ctx, s, h, OMapTypeHash(StrTypeHash(), I32TypeHash()),
		DecodeOMap[Str, I32](StrTypeHash(), I32TypeHash(), DecodeStr, DecodeI32, strLess))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	dv, ok := decoded.Get(Str("a"))
	if !ok || dv != 1 {
		t.Fatalf("decoded Get(a) = %v, %v; want 1, true", dv, ok)
	}
}

func TestOMapCanonicalSerializationDedups(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	m1 := NewOMap[Str, I32](StrTypeHash(), I32TypeHash(), strLess)
	m1.Put(Str("x"), I32(1))
	m1.Put(Str("y"), I32(2))

	m2 := NewOMap[Str, I32](StrTypeHash(), I32TypeHash(), strLess)
	m2.Put(Str("y"), I32(2))
	m2.Put(Str("x"), I32(1))

	h1, err := Put(ctx, s, m1)
	if err != nil {
		t.Fatalf("put m1: %v", err)
	}
	h2, err := Put(ctx, s, m2)
	if err != nil {
		t.Fatalf("put m2: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("maps with same entries in different insertion order must serialize identically: %s != %s", h1, h2)
	}
}

func TestSeqEmptyRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	seq := NewSeq[Str](StrTypeHash())
	h, err := Put(ctx, s, seq)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	decoded, err := Get[Seq[Str]](ctx, s, h, SeqTypeHash(StrTypeHash()), DecodeSeq[Str](StrTypeHash(), DecodeStr))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(decoded.Items) != 0 {
		t.Fatalf("expected empty seq, got %v", decoded.Items)
	}
}
