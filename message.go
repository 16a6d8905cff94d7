package armlink

import "fmt"

// Fixed cardinalities of the flattened vector/matrix fields. Matrices are
// row-major: PoseLen is a 3x3, JacobianLen a 9x7.
const (
	NumJoints   = 6
	PoseLen     = 9
	JacobianLen = 63
)

// Kind identifies one of the three wire record shapes. The zero value is not
// a valid kind.
type Kind uint8

const (
	KindCommand Kind = 1
	KindState   Kind = 2
	KindRequest Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindState:
		return "state"
	case KindRequest:
		return "request"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Message is implemented by Command, State and Request. The codec methods are
// unexported: the three shapes are fixed by the wire contract and cannot be
// extended outside this package.
type Message interface {
	Kind() Kind

	// Validate reports the first fixed-size field whose length is neither
	// zero nor its documented cardinality, as a *CardinalityError.
	Validate() error

	appendWire(b []byte) []byte
	decodeWire(b []byte, strict bool) error
}

// NewMessage returns a zero record of the shape identified by k.
func NewMessage(k Kind) (Message, error) {
	switch k {
	case KindCommand:
		return &Command{}, nil
	case KindState:
		return &State{}, nil
	case KindRequest:
		return &Request{}, nil
	default:
		return nil, fmt.Errorf("armlink: unknown message kind %d", uint8(k))
	}
}

func checkLen(k Kind, field string, got, want int) error {
	if got == 0 || got == want {
		return nil
	}
	return &CardinalityError{Kind: k, Field: field, Len: got, Want: want}
}
