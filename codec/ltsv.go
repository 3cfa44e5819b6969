package codec

import "github.com/unkn0wn-root/ltsv"

// LTSV is a Codec that renders V as a single LTSV line (no trailing
// newline). The zero value is ready to use.
//
// V must flatten to a map or sequence of scalars; see ltsv.Marshal. Decode
// expects exactly one line: an embedded newline ends up inside a value.
type LTSV[V any] struct{}

var _ Codec[map[string]any] = LTSV[map[string]any]{}

func (LTSV[V]) Encode(v V) ([]byte, error) {
	line, err := ltsv.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}

func (LTSV[V]) Decode(b []byte) (V, error) {
	return ltsv.Decode[V](string(b))
}
