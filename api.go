package armlink

// Marshal encodes m into its wire representation, validating fixed-size
// cardinalities first. A fixed-size field may be wholly absent (nothing is
// written, the proto3 default) or carry exactly its documented length;
// anything else fails with *EncodeError.
func Marshal(m Message) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, &EncodeError{Kind: m.Kind(), Err: err}
	}
	return m.appendWire(nil), nil
}

// MarshalLoose encodes m without cardinality validation; whatever lengths the
// record carries go on the wire. Encoding is total: the returned error is
// always nil and exists only for Codec symmetry.
func MarshalLoose(m Message) ([]byte, error) {
	return m.appendWire(nil), nil
}

// Append appends m's wire encoding to b and returns the extended buffer.
// No validation is performed.
func Append(b []byte, m Message) []byte {
	return m.appendWire(b)
}

// Unmarshal decodes b into m, enforcing fixed-size cardinalities. Unknown
// fields are skipped; truncated or malformed input fails with *DecodeError.
// m is replaced wholesale on success and left untouched on failure. Empty
// input yields the all-default record.
func Unmarshal(b []byte, m Message) error {
	if err := m.decodeWire(b, true); err != nil {
		return &DecodeError{Kind: m.Kind(), Err: err}
	}
	return nil
}

// UnmarshalLoose is Unmarshal without the cardinality check: sequence fields
// of any length decode as-is.
func UnmarshalLoose(b []byte, m Message) error {
	if err := m.decodeWire(b, false); err != nil {
		return &DecodeError{Kind: m.Kind(), Err: err}
	}
	return nil
}
