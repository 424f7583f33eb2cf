package hashio

import (
	"context"

	"github.com/neosam/hashstore/codec"
	"github.com/neosam/hashstore/hash"
)

var (
	seqNameHash  = hash.HashBytes([]byte("Vec"))
	omapNameHash = hash.HashBytes([]byte("BTreeMap"))
)

// SeqTypeHash composes the sequence container's type hash from its
// element's type hash: H(H("Vec") || T::type_hash()).
func SeqTypeHash(elem hash.Hash) hash.Hash {
	return seqNameHash.With(elem)
}

// OMapTypeHash composes the ordered-map container's type hash, per spec
// §4.2: H(H("BTreeMap") || K::type_hash() || V::type_hash()).
func OMapTypeHash(key, val hash.Hash) hash.Hash {
	buf := make([]byte, 0, 3*hash.Size)
	buf = append(buf, omapNameHash.Bytes()...)
	buf = append(buf, key.Bytes()...)
	buf = append(buf, val.Bytes()...)
	return hash.HashBytes(buf)
}

// Seq is the persistable sequence container ("Vec" on the wire): a u32
// count followed by that many tagged child hashes. Put persists every
// element before the sequence's own file is written.
type Seq[T Persistable] struct {
	Items        []T
	elemTypeHash hash.Hash
}

// NewSeq builds a Seq over items, given the element type's static type
// hash (Go has no way to ask a generic zero value for it).
func NewSeq[T Persistable](elemTypeHash hash.Hash, items ...T) Seq[T] {
	return Seq[T]{Items: items, elemTypeHash: elemTypeHash}
}

// TypeHash implements Persistable.
func (s Seq[T]) TypeHash() hash.Hash {
	return SeqTypeHash(s.elemTypeHash)
}

// WriteFields implements Persistable.
func (s Seq[T]) WriteFields(ctx context.Context, st *Store, w *codec.Writer) error {
	if err := w.WriteU32(uint32(len(s.Items))); err != nil {
		return err
	}
	for _, item := range s.Items {
		h, err := Put(ctx, st, item)
		if err != nil {
			return err
		}
		if err := w.WriteTaggedHash(h); err != nil {
			return err
		}
	}
	return nil
}

// DecodeSeq builds a Factory for Seq[T] given T's own type hash and
// Factory.
func DecodeSeq[T Persistable](elemTypeHash hash.Hash, decode Factory[T]) Factory[Seq[T]] {
	return func(ctx context.Context, st *Store, r *codec.Reader) (Seq[T], error) {
		count, err := r.ReadU32()
		if err != nil {
			return Seq[T]{}, err
		}
		items := make([]T, 0, count)
		for i := uint32(0); i < count; i++ {
			h, err := r.ReadTaggedHash()
			if err != nil {
				return Seq[T]{}, err
			}
			v, err := Get[T](ctx, st, h, elemTypeHash, decode)
			if err != nil {
				return Seq[T]{}, err
			}
			items = append(items, v)
		}
		return Seq[T]{Items: items, elemTypeHash: elemTypeHash}, nil
	}
}

// OMap is the persistable ordered-map container ("BTreeMap" on the wire):
// a u32 count followed by that many (key_hash, value_hash) pairs, written
// in key order so that two maps with the same entries always serialize
// identically regardless of insertion order, which is what lets identical
// maps dedup to the same content address. Both keys and values are
// themselves persisted (put) before the map's own file is written.
type OMap[K Persistable, V Persistable] struct {
	Keys   []K
	Values []V

	keyTypeHash, valTypeHash hash.Hash
	less                     func(a, b K) bool
}

// NewOMap builds an empty OMap. less must give K a strict total order;
// entries are kept sorted by it so serialization is canonical.
func NewOMap[K Persistable, V Persistable](keyTypeHash, valTypeHash hash.Hash, less func(a, b K) bool) *OMap[K, V] {
	return &OMap[K, V]{keyTypeHash: keyTypeHash, valTypeHash: valTypeHash, less: less}
}

// TypeHash implements Persistable.
func (m *OMap[K, V]) TypeHash() hash.Hash {
	return OMapTypeHash(m.keyTypeHash, m.valTypeHash)
}

// Put inserts or overwrites the value for k, maintaining key order.
func (m *OMap[K, V]) Put(k K, v V) {
	i := m.search(k)
	if i < len(m.Keys) && !m.less(k, m.Keys[i]) && !m.less(m.Keys[i], k) {
		m.Values[i] = v
		return
	}
	m.Keys = append(m.Keys, k)
	copy(m.Keys[i+1:], m.Keys[i:])
	m.Keys[i] = k

	m.Values = append(m.Values, v)
	copy(m.Values[i+1:], m.Values[i:])
	m.Values[i] = v
}

// Get looks up the value stored for k.
func (m *OMap[K, V]) Get(k K) (V, bool) {
	i := m.search(k)
	var zero V
	if i < len(m.Keys) && !m.less(k, m.Keys[i]) && !m.less(m.Keys[i], k) {
		return m.Values[i], true
	}
	return zero, false
}

func (m *OMap[K, V]) search(k K) int {
	lo, hi := 0, len(m.Keys)
	for lo < hi {
		mid := (lo + hi) / 2
		if m.less(m.Keys[mid], k) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// WriteFields implements Persistable.
func (m *OMap[K, V]) WriteFields(ctx context.Context, st *Store, w *codec.Writer) error {
	if err := w.WriteU32(uint32(len(m.Keys))); err != nil {
		return err
	}
	for i := range m.Keys {
		kh, err := Put(ctx, st, m.Keys[i])
		if err != nil {
			return err
		}
		vh, err := Put(ctx, st, m.Values[i])
		if err != nil {
			return err
		}
		if err := w.WriteTaggedHash(kh); err != nil {
			return err
		}
		if err := w.WriteTaggedHash(vh); err != nil {
			return err
		}
	}
	return nil
}

// DecodeOMap builds a Factory for *OMap[K, V].
func DecodeOMap[K Persistable, V Persistable](keyTypeHash, valTypeHash hash.Hash, decodeKey Factory[K], decodeVal Factory[V], less func(a, b K) bool) Factory[*OMap[K, V]] {
	return func(ctx context.Context, st *Store, r *codec.Reader) (*OMap[K, V], error) {
		count, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		m := NewOMap[K, V](keyTypeHash, valTypeHash, less)
		for i := uint32(0); i < count; i++ {
			kh, err := r.ReadTaggedHash()
			if err != nil {
				return nil, err
			}
			vh, err := r.ReadTaggedHash()
			if err != nil {
				return nil, err
			}
			k, err := Get[K](ctx, st, kh, keyTypeHash, decodeKey)
			if err != nil {
				return nil, err
			}
			v, err := Get[V](ctx, st, vh, valTypeHash, decodeVal)
			if err != nil {
				return nil, err
			}
			m.Keys = append(m.Keys, k)
			m.Values = append(m.Values, v)
		}
		return m, nil
	}
}
