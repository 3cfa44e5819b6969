package codec

import "encoding/json"

// JSON is a Codec backed by encoding/json. The zero value is ready to use.
//
// Decoding a record into map[string]any turns every number into float64, and
// encoding rejects NaN and ±Inf, which LTSV happily infers from "nan" or
// "inf". Records with such values need one of the binary codecs.
type JSON[V any] struct{}

var _ Codec[map[string]any] = JSON[map[string]any]{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
