// Package codec implements the fixed-width, big-endian primitive readers and
// writers that every on-disk hashstore format is built from.
package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/neosam/hashstore/hash"
)

// ParseError is returned for short reads or malformed tags. Writers, by
// contrast, propagate the underlying io.Writer error verbatim.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("codec: parse error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("codec: parse error: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(reason string, err error) error {
	return &ParseError{Reason: reason, Err: err}
}

// Reader consumes the primitive wire types from an io.Reader.
type Reader struct {
	r io.Reader
}

// NewReader wraps r for primitive decoding.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (r *Reader) readFull(buf []byte, what string) error {
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return parseErr("short read of "+what, err)
	}
	return nil
}

// ReadU8 reads a single unsigned byte.
func (r *Reader) ReadU8() (uint8, error) {
	var buf [1]byte
	if err := r.readFull(buf[:], "u8"); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadU16 reads a big-endian uint16. Not part of the current wire format's
// scalar set; used by the legacy reader's older container framing.
func (r *Reader) ReadU16() (uint16, error) {
	var buf [2]byte
	if err := r.readFull(buf[:], "u16"); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

// ReadU32 reads a big-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	var buf [4]byte
	if err := r.readFull(buf[:], "u32"); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// ReadI16 reads a big-endian int16.
func (r *Reader) ReadI16() (int16, error) {
	var buf [2]byte
	if err := r.readFull(buf[:], "i16"); err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(buf[:])), nil
}

// ReadI32 reads a big-endian int32.
func (r *Reader) ReadI32() (int32, error) {
	var buf [4]byte
	if err := r.readFull(buf[:], "i32"); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

// ReadF32 reads a big-endian IEEE-754 float32.
func (r *Reader) ReadF32() (float32, error) {
	var buf [4]byte
	if err := r.readFull(buf[:], "f32"); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(buf[:])), nil
}

// ReadString reads a u32 length prefix followed by that many UTF-8 bytes.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadU32()
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if err := r.readFull(buf, "string bytes"); err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", parseErr("invalid utf-8 in string", nil)
	}
	return string(buf), nil
}

// ReadRawBytes reads exactly n bytes verbatim.
func (r *Reader) ReadRawBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := r.readFull(buf, "raw bytes"); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadRawHash32 reads exactly 32 untagged bytes, used only for the header's
// type_hash field (which is always a concrete digest, never None).
func (r *Reader) ReadRawHash32() (hash.Hash, error) {
	var buf [hash.Size]byte
	if err := r.readFull(buf[:], "type_hash"); err != nil {
		return hash.None, err
	}
	return hash.FromRawBytes(buf[:])
}

// ReadTaggedHash reads the 33-byte (or 1-byte, for None) tagged hash wire
// form: a 1-byte tag (0 = None, 1 = SHA3-256) followed by 32 bytes when the
// tag is 1.
func (r *Reader) ReadTaggedHash() (hash.Hash, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return hash.None, err
	}
	switch tag {
	case 0:
		return hash.None, nil
	case 1:
		buf, err := r.ReadRawBytes(hash.Size)
		if err != nil {
			return hash.None, err
		}
		return hash.FromRawBytes(buf)
	default:
		return hash.None, parseErr(fmt.Sprintf("undefined hash tag %d", tag), nil)
	}
}

// Tm is the eleven-field wall-clock time record used by the wire format,
// mirroring a C-style struct tm.
type Tm struct {
	Sec, Min, Hour, Mday, Mon, Year, Wday, Yday, Isdst, Utcoff, Nsec int32
}

// ReadTm reads the eleven i32 fields of a Tm in declared order.
func (r *Reader) ReadTm() (Tm, error) {
	var t Tm
	fields := []*int32{&t.Sec, &t.Min, &t.Hour, &t.Mday, &t.Mon, &t.Year, &t.Wday, &t.Yday, &t.Isdst, &t.Utcoff, &t.Nsec}
	for _, f := range fields {
		v, err := r.ReadI32()
		if err != nil {
			return Tm{}, err
		}
		*f = v
	}
	return t, nil
}

// Writer emits the primitive wire types to an io.Writer. Write errors are
// the underlying io.Writer's error, propagated verbatim.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w for primitive encoding.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteU8 writes a single unsigned byte.
func (w *Writer) WriteU8(v uint8) error {
	_, err := w.w.Write([]byte{v})
	return err
}

// WriteU16 writes a big-endian uint16.
func (w *Writer) WriteU16(v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	_, err := w.w.Write(buf[:])
	return err
}

// WriteU32 writes a big-endian uint32.
func (w *Writer) WriteU32(v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	_, err := w.w.Write(buf[:])
	return err
}

// WriteI16 writes a big-endian int16.
func (w *Writer) WriteI16(v int16) error {
	return w.WriteU16(uint16(v))
}

// WriteI32 writes a big-endian int32.
func (w *Writer) WriteI32(v int32) error {
	return w.WriteU32(uint32(v))
}

// WriteF32 writes a big-endian IEEE-754 float32.
func (w *Writer) WriteF32(v float32) error {
	return w.WriteU32(math.Float32bits(v))
}

// WriteString writes a u32 length prefix followed by the UTF-8 bytes of s.
func (w *Writer) WriteString(s string) error {
	if err := w.WriteU32(uint32(len(s))); err != nil {
		return err
	}
	_, err := w.w.Write([]byte(s))
	return err
}

// WriteRawHash32 writes exactly 32 untagged bytes; h must not be None.
func (w *Writer) WriteRawHash32(h hash.Hash) error {
	if h.IsNone() {
		return fmt.Errorf("codec: cannot write None as a raw 32-byte hash")
	}
	_, err := w.w.Write(h.Bytes())
	return err
}

// WriteTaggedHash writes the 33-byte (or 1-byte, for None) tagged hash wire
// form.
func (w *Writer) WriteTaggedHash(h hash.Hash) error {
	if h.IsNone() {
		return w.WriteU8(0)
	}
	if err := w.WriteU8(1); err != nil {
		return err
	}
	_, err := w.w.Write(h.Bytes())
	return err
}

// WriteTm writes the eleven i32 fields of a Tm in declared order.
func (w *Writer) WriteTm(t Tm) error {
	fields := []int32{t.Sec, t.Min, t.Hour, t.Mday, t.Mon, t.Year, t.Wday, t.Yday, t.Isdst, t.Utcoff, t.Nsec}
	for _, f := range fields {
		if err := w.WriteI32(f); err != nil {
			return err
		}
	}
	return nil
}
