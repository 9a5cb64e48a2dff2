package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// walk calls visit for every field of an encoded message. visit returns the
// number of value bytes it consumed, 0 to have the field skipped as unknown,
// or a negative protowire error code.
func walk(b []byte, visit func(num protowire.Number, typ protowire.Type, v []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("wire: %w", protowire.ParseError(n))
		}
		b = b[n:]

		m, err := visit(num, typ, b)
		if err != nil {
			return err
		}
		if m == 0 {
			m = protowire.ConsumeFieldValue(num, typ, b)
		}
		if m < 0 {
			return fmt.Errorf("wire: field %d: %w", num, protowire.ParseError(m))
		}
		b = b[m:]
	}
	return nil
}

func consumeUint32(typ protowire.Type, b []byte) (uint32, int) {
	if typ != protowire.VarintType {
		return 0, 0
	}
	v, n := protowire.ConsumeVarint(b)
	return uint32(v), n
}

func consumeEnum(typ protowire.Type, b []byte) (int32, int) {
	if typ != protowire.VarintType {
		return 0, 0
	}
	v, n := protowire.ConsumeVarint(b)
	return int32(v), n
}

func consumeString(typ protowire.Type, b []byte) (string, int) {
	if typ != protowire.BytesType {
		return "", 0
	}
	return protowire.ConsumeString(b)
}

func consumeMessage(typ protowire.Type, b []byte) ([]byte, int) {
	if typ != protowire.BytesType {
		return nil, 0
	}
	return protowire.ConsumeBytes(b)
}

// appendUint32 follows proto3 implicit presence: zero is not encoded.
func appendUint32(b []byte, num protowire.Number, v uint32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

// appendOptionalUint32 encodes v whenever it is set, including zero.
func appendOptionalUint32(b []byte, num protowire.Number, v *uint32) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(*v))
}

func appendEnum(b []byte, num protowire.Number, v int32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

// appendMessage always encodes, so empty elements of repeated fields keep
// their position.
func appendMessage(b []byte, num protowire.Number, m []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m)
}
