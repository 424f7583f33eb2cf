package hashio

import (
	"context"
	"testing"
)

func TestPutManyReturnsHashesInInputOrder(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	values := []Persistable{Str("one"), Str("two"), Str("three")}
	got, err := PutMany(ctx, s, values)
	if err != nil {
		t.Fatalf("put many: %v", err)
	}
	if len(got) != len(values) {
		t.Fatalf("got %d hashes, want %d", len(got), len(values))
	}
	for i, v := range values {
		want, err := Put(ctx, s, v)
		if err != nil {
			t.Fatalf("direct put %d: %v", i, err)
		}
		if got[i] != want {
			t.Fatalf("hash %d = %s, want %s", i, got[i], want)
		}
	}
}

func TestPutManyEmptyInput(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got, err := PutMany(ctx, s, nil)
	if err != nil {
		t.Fatalf("put many: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d hashes, want 0", len(got))
	}
}
