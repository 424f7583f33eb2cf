package codec_test

import (
	"bytes"
	"testing"

	"github.com/neosam/hashstore/codec"
	"github.com/neosam/hashstore/hash"
)

func TestScalarRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	if err := w.WriteU8(7); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteU32(0xdeadbeef); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteI16(-5); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteI32(-70000); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteF32(3.5); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteString("hello"); err != nil {
		t.Fatal(err)
	}

	r := codec.NewReader(&buf)
	if v, err := r.ReadU8(); err != nil || v != 7 {
		t.Fatalf("ReadU8 = %v, %v", v, err)
	}
	if v, err := r.ReadU32(); err != nil || v != 0xdeadbeef {
		t.Fatalf("ReadU32 = %v, %v", v, err)
	}
	if v, err := r.ReadI16(); err != nil || v != -5 {
		t.Fatalf("ReadI16 = %v, %v", v, err)
	}
	if v, err := r.ReadI32(); err != nil || v != -70000 {
		t.Fatalf("ReadI32 = %v, %v", v, err)
	}
	if v, err := r.ReadF32(); err != nil || v != 3.5 {
		t.Fatalf("ReadF32 = %v, %v", v, err)
	}
	if v, err := r.ReadString(); err != nil || v != "hello" {
		t.Fatalf("ReadString = %q, %v", v, err)
	}
}

func TestTaggedHashRoundTrip(t *testing.T) {
	h := hash.HashBytes([]byte("x"))
	for _, v := range []hash.Hash{hash.None, h} {
		var buf bytes.Buffer
		w := codec.NewWriter(&buf)
		if err := w.WriteTaggedHash(v); err != nil {
			t.Fatal(err)
		}
		r := codec.NewReader(&buf)
		got, err := r.ReadTaggedHash()
		if err != nil {
			t.Fatal(err)
		}
		if got != v {
			t.Fatalf("round trip = %v, want %v", got, v)
		}
	}
}

func TestUndefinedTagFails(t *testing.T) {
	r := codec.NewReader(bytes.NewReader([]byte{0x07}))
	if _, err := r.ReadTaggedHash(); err == nil {
		t.Fatal("expected error for undefined tag")
	}
}

func TestShortReadFails(t *testing.T) {
	r := codec.NewReader(bytes.NewReader([]byte{0x00, 0x01}))
	if _, err := r.ReadU32(); err == nil {
		t.Fatal("expected short-read error")
	}
}

func TestInvalidUTF8Fails(t *testing.T) {
	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	if err := w.WriteU32(1); err != nil {
		t.Fatal(err)
	}
	if _, err := buf.Write([]byte{0xff}); err != nil {
		t.Fatal(err)
	}
	r := codec.NewReader(&buf)
	if _, err := r.ReadString(); err == nil {
		t.Fatal("expected invalid utf-8 error")
	}
}

func TestTmRoundTrip(t *testing.T) {
	tm := codec.Tm{Sec: 1, Min: 2, Hour: 3, Mday: 4, Mon: 5, Year: 124, Wday: 6, Yday: 7, Isdst: 0, Utcoff: -18000, Nsec: 999}
	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	if err := w.WriteTm(tm); err != nil {
		t.Fatal(err)
	}
	r := codec.NewReader(&buf)
	got, err := r.ReadTm()
	if err != nil {
		t.Fatal(err)
	}
	if got != tm {
		t.Fatalf("Tm round trip = %+v, want %+v", got, tm)
	}
}
