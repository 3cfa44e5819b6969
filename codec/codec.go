// Package codec converts values V to and from []byte.
//
// LTSV renders a single record as one line; JSON, Msgpack, CBOR and StructPB
// give the same record a structured encoding, which is what the transcode
// package uses to move lines between formats.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
