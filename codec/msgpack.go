package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack is a Codec that serializes values using vmihailenco/msgpack/v5.
// The zero value is ready to use.
//
// Records decoded into map[string]any keep their integer widths, which makes
// msgpack the closest match to inferred LTSV scalars.
type Msgpack[V any] struct{}

var _ Codec[map[string]any] = Msgpack[map[string]any]{}

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	return msgpack.Marshal(v)
}
func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
