// Package pbwire holds the low-level protobuf field plumbing shared by the
// armlink message types: packed double sequences, varint bool/int32 scalars,
// and unknown-field skipping. It is a thin layer over protowire and performs
// no cardinality validation; that belongs to the message layer.
package pbwire

import (
	"encoding/binary"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// AppendDoubles appends vals as a packed fixed64 field. An empty slice writes
// nothing (proto3 default).
func AppendDoubles(b []byte, num protowire.Number, vals []float64) []byte {
	if len(vals) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(8*len(vals)))
	for _, v := range vals {
		b = protowire.AppendFixed64(b, math.Float64bits(v))
	}
	return b
}

// AppendBool appends v as a varint field. false writes nothing.
func AppendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, 1)
}

// AppendInt32 appends v as a protobuf int32: a varint, sign-extended to 64
// bits when negative (10 bytes on the wire). Zero writes nothing.
func AppendInt32(b []byte, num protowire.Number, v int32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

// ConsumeDoubles consumes one occurrence of a repeated double field whose tag
// has already been read, appending the elements to dst. BytesType payloads
// are the packed form; a Fixed64Type value is a single unpacked element
// (protobuf parsers must accept both). Returns the extended slice and the
// remaining bytes.
func ConsumeDoubles(dst []float64, num protowire.Number, typ protowire.Type, b []byte) ([]float64, []byte, error) {
	switch typ {
	case protowire.BytesType:
		pack, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return dst, b, protowire.ParseError(n)
		}
		if len(pack)%8 != 0 {
			return dst, b, fmt.Errorf("pbwire: field %d: packed double payload of %d bytes is not a multiple of 8", num, len(pack))
		}
		if cap(dst)-len(dst) < len(pack)/8 {
			grown := make([]float64, len(dst), len(dst)+len(pack)/8)
			copy(grown, dst)
			dst = grown
		}
		for len(pack) > 0 {
			dst = append(dst, math.Float64frombits(binary.LittleEndian.Uint64(pack[:8])))
			pack = pack[8:]
		}
		return dst, b[n:], nil
	case protowire.Fixed64Type:
		v, n := protowire.ConsumeFixed64(b)
		if n < 0 {
			return dst, b, protowire.ParseError(n)
		}
		return append(dst, math.Float64frombits(v)), b[n:], nil
	default:
		return dst, b, fmt.Errorf("pbwire: field %d: unexpected wire type %d for doubles", num, typ)
	}
}

// ConsumeBool consumes a varint bool field whose tag has already been read.
// Any nonzero varint is true.
func ConsumeBool(num protowire.Number, typ protowire.Type, b []byte) (bool, []byte, error) {
	if typ != protowire.VarintType {
		return false, b, fmt.Errorf("pbwire: field %d: unexpected wire type %d for bool", num, typ)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return false, b, protowire.ParseError(n)
	}
	return v != 0, b[n:], nil
}

// ConsumeInt32 consumes a varint int32 field whose tag has already been read.
// The varint is truncated to 32 bits, matching protobuf int32 semantics.
func ConsumeInt32(num protowire.Number, typ protowire.Type, b []byte) (int32, []byte, error) {
	if typ != protowire.VarintType {
		return 0, b, fmt.Errorf("pbwire: field %d: unexpected wire type %d for int32", num, typ)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, b, protowire.ParseError(n)
	}
	return int32(v), b[n:], nil
}

// Skip consumes an unknown field's value, including nested groups. A
// malformed value is an error, not a silent skip.
func Skip(num protowire.Number, typ protowire.Type, b []byte) ([]byte, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return b, protowire.ParseError(n)
	}
	return b[n:], nil
}
