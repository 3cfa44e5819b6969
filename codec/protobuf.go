package codec

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Protobuf is a Codec for a concrete proto.Message type.
type Protobuf[T proto.Message] struct {
	new func() T // constructor for a concrete message (e.g., func() *mypb.User { return &mypb.User{} })
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(v)
}
func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}

// StructPB encodes records as a google.protobuf.Struct message.
//
// Struct only knows float64 numbers: integers above 2^53 lose precision and
// all numbers decode as float64.
type StructPB struct {
	pb Protobuf[*structpb.Struct]
}

var _ Codec[map[string]any] = StructPB{}

func NewStructPB() StructPB {
	return StructPB{pb: NewProtobuf(func() *structpb.Struct { return &structpb.Struct{} })}
}

func (c StructPB) Encode(m map[string]any) ([]byte, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("structpb: %w", err)
	}
	return c.pb.Encode(s)
}

func (c StructPB) Decode(b []byte) (map[string]any, error) {
	s, err := c.pb.Decode(b)
	if err != nil {
		return nil, err
	}
	return s.AsMap(), nil
}
