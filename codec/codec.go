// Package codec exposes serialization of armlink records behind a generic
// Codec[V] interface. Wire is the contract-bearing protobuf encoding; JSON,
// CBOR and Msgpack serve consumers that log, export or snapshot messages in
// other formats and carry no wire-compatibility guarantee.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
