package rpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// codecName is registered with grpc-go's encoding package and must
// match the name grpc.Server negotiates over the wire (the "Content-
// Type: application/grpc+proto" convention); no compiled .proto file
// exists to generate a real protobuf codec against, so this codec
// marshals the same Go structs as plain JSON under the "proto" name.
const codecName = "proto"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec implements encoding.Codec.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	return b, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal into %T: %w", v, err)
	}
	return nil
}

func (jsonCodec) Name() string { return codecName }
