// Package wire encodes the pmx service messages in protobuf binary format.
//
// The schema is proto/pmx.proto. Messages are encoded field by field with
// protowire so the gRPC clients do not depend on generated code; Codec plugs
// the encoding into a gRPC connection with grpc.ForceCodec.
package wire

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// Message is implemented by every request and response of the pmx services.
type Message interface {
	// AppendWire appends the protobuf encoding of the message to b.
	AppendWire(b []byte) []byte
	// UnmarshalWire replaces the message contents with the decoded b.
	UnmarshalWire(b []byte) error
}

// Codec is a gRPC codec for Message values. Its name is "proto" so the
// content-type stays application/grpc+proto on the wire.
type Codec struct{}

var _ encoding.Codec = Codec{}

// Name implements encoding.Codec.
func (Codec) Name() string { return "proto" }

// Marshal implements encoding.Codec.
func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("wire: cannot marshal %T", v)
	}
	return m.AppendWire(nil), nil
}

// Unmarshal implements encoding.Codec.
func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("wire: cannot unmarshal into %T", v)
	}
	return m.UnmarshalWire(data)
}
