package hashio

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"context"

	"github.com/google/uuid"
	"github.com/neosam/hashstore/codec"
	"github.com/neosam/hashstore/hash"
	"github.com/neosam/hashstore/internal/dlog"
)

// Store is a content-addressed object store rooted at a base directory.
// It is not safe for concurrent writers outside this process; a single
// Store value may be shared by readers and writers within it.
type Store struct {
	base string
}

// Open roots a Store at base, creating the directory if it does not exist
// yet (so that the head-pointer file, a sibling of the two-level object
// tree, has somewhere to live).
func Open(base string) (*Store, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, &IOError{Op: "mkdir", Path: base, Err: err}
	}
	return &Store{base: base}, nil
}

// BasePath returns the store's root directory.
func (s *Store) BasePath() string {
	return s.base
}

// pathFor returns the two-level fan-out path for h: <base>/<xx>/<rest>.
func (s *Store) pathFor(h hash.Hash) string {
	hx := h.Hex()
	return filepath.Join(s.base, hx[:2], hx[2:])
}

func (s *Store) exists(h hash.Hash) bool {
	_, err := os.Stat(s.pathFor(h))
	return err == nil
}

// ReadRaw returns the untouched bytes stored at h's address, without
// interpreting version/type_hash/fields. Used by the integrity checker
// (iolog.Verify), which must compare the file's literal bytes against its
// name rather than trust a successful decode.
func (s *Store) ReadRaw(h hash.Hash) ([]byte, error) {
	if h.IsNone() {
		return nil, &UndefinedError{Tag: "cannot read the None hash"}
	}
	path := s.pathFor(h)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

// writeIfAbsent is idempotent: if the target already exists, this is a
// no-op; otherwise the content is written to a temp sibling and atomically
// renamed into place, so observers never see a partial file.
func (s *Store) writeIfAbsent(ctx context.Context, h hash.Hash, content []byte) error {
	path := s.pathFor(h)
	if _, err := os.Stat(path); err == nil {
		dlog.GetLogger(ctx).Debugf("hashio: %s already present", h)
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IOError{Op: "mkdir", Path: dir, Err: err}
	}

	tmp := path + "." + uuid.NewString() + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return &IOError{Op: "create", Path: tmp, Err: err}
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(tmp)
		return &IOError{Op: "write", Path: tmp, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return &IOError{Op: "close", Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	dlog.GetLogger(ctx).Debugf("hashio: wrote %s", h)
	return nil
}

// Put serializes v (version, type_hash, then v's own fields) and makes it
// durable under its content digest, recursively persisting any child
// values v.WriteFields reaches along the way. Put is idempotent: calling
// it twice with byte-equal serializations performs at most one write.
func Put(ctx context.Context, s *Store, v Persistable) (hash.Hash, error) {
	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	if err := w.WriteU32(CurrentVersion); err != nil {
		return hash.None, err
	}
	typeHash := v.TypeHash()
	if err := w.WriteRawHash32(typeHash); err != nil {
		return hash.None, err
	}
	if err := v.WriteFields(ctx, s, w); err != nil {
		return hash.None, err
	}

	content := buf.Bytes()
	h := hash.HashBytes(content)
	if err := s.writeIfAbsent(ctx, h, content); err != nil {
		return hash.None, err
	}
	return h, nil
}

// Get materializes the object of declared type T at h, recursively
// materializing its children. If the stored version is older than
// CurrentVersion or the stored type_hash does not match typeHash, a flex
// hook registered for typeHash is tried before the mismatch is reported as
// an error.
func Get[T Persistable](ctx context.Context, s *Store, h hash.Hash, typeHash hash.Hash, decode Factory[T]) (T, error) {
	var zero T
	if h.IsNone() {
		return zero, &UndefinedError{Tag: "cannot get the None hash"}
	}

	data, err := s.ReadRaw(h)
	if err != nil {
		return zero, err
	}
	r := codec.NewReader(bytes.NewReader(data))

	version, err := r.ReadU32()
	if err != nil {
		return zero, err
	}
	if version < CurrentVersion {
		if v, handled, ferr := tryFlex[T](ctx, s, h, typeHash); handled {
			return v, ferr
		}
		return zero, &VersionError{Version: version}
	}

	gotType, err := r.ReadRawHash32()
	if err != nil {
		return zero, err
	}
	if gotType != typeHash {
		if v, handled, ferr := tryFlex[T](ctx, s, h, typeHash); handled {
			return v, ferr
		}
		return zero, &TypeError{Expected: typeHash, Actual: gotType}
	}

	v, err := decode(ctx, s, r)
	if err != nil {
		return zero, fmt.Errorf("hashio: decoding %s: %w", h, err)
	}
	return v, nil
}
