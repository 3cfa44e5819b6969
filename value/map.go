package value

import (
	"bytes"
	"cmp"
	"sort"
	"strings"
)

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   Value
	Value Value
}

// Map is an ordered mapping kept sorted by Compare on its keys.
// Setting an existing key replaces its value.
type Map struct {
	entries []Entry
}

func NewMap() *Map { return &Map{} }

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

func (m *Map) search(k Value) (int, bool) {
	i := sort.Search(len(m.entries), func(i int) bool {
		return Compare(m.entries[i].Key, k) >= 0
	})
	return i, i < len(m.entries) && Compare(m.entries[i].Key, k) == 0
}

// Set inserts or replaces the value stored under k.
func (m *Map) Set(k, v Value) {
	i, found := m.search(k)
	if found {
		m.entries[i].Value = v
		return
	}
	m.entries = append(m.entries, Entry{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = Entry{Key: k, Value: v}
}

func (m *Map) Get(k Value) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	i, found := m.search(k)
	if !found {
		return Value{}, false
	}
	return m.entries[i].Value, true
}

// Entries returns the pairs in ascending key order. The slice must not be
// modified.
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	return m.entries
}

// Compare orders values first by kind (declaration order of the Kind
// constants) and then by payload. NaN sorts before every other float.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}
	switch a.kind {
	case KindBool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		}
		return 1
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return cmp.Compare(a.u, b.u)
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return cmp.Compare(a.i, b.i)
	case KindFloat32, KindFloat64:
		return cmp.Compare(a.f, b.f)
	case KindChar:
		return cmp.Compare(a.r, b.r)
	case KindString:
		return strings.Compare(a.s, b.s)
	case KindBytes:
		return bytes.Compare(a.bytes, b.bytes)
	case KindSeq:
		for i := 0; i < len(a.seq) && i < len(b.seq); i++ {
			if c := Compare(a.seq[i], b.seq[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(a.seq), len(b.seq))
	case KindMap:
		ae, be := a.m.Entries(), b.m.Entries()
		for i := 0; i < len(ae) && i < len(be); i++ {
			if c := Compare(ae[i].Key, be[i].Key); c != 0 {
				return c
			}
			if c := Compare(ae[i].Value, be[i].Value); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(ae), len(be))
	case KindNewtype, KindOption:
		switch {
		case a.inner == nil && b.inner == nil:
			return 0
		case a.inner == nil:
			return -1
		case b.inner == nil:
			return 1
		}
		return Compare(*a.inner, *b.inner)
	}
	return 0
}

// Equal reports whether a and b hold the same kind and payload. Source text
// is ignored.
func Equal(a, b Value) bool { return Compare(a, b) == 0 }
