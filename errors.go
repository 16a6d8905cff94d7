package armlink

import (
	"fmt"
)

// CardinalityError reports a fixed-size sequence field whose length is
// neither zero (absent) nor its documented cardinality.
type CardinalityError struct {
	Kind  Kind
	Field string
	Len   int
	Want  int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("armlink: %s.%s has %d elements, want 0 or %d",
		e.Kind, e.Field, e.Len, e.Want)
}

// EncodeError reports a record rejected by Marshal. The only encode failure
// is a cardinality violation; the cause is always a *CardinalityError.
type EncodeError struct {
	Kind Kind
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("armlink: encode %s: %v", e.Kind, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError reports wire bytes rejected by Unmarshal: truncated mid-field,
// a malformed tag or varint, a ragged packed payload, or (strict mode) a
// cardinality violation found after parsing.
type DecodeError struct {
	Kind Kind
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("armlink: decode %s: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
