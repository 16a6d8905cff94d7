package codec

import "github.com/unkn0wn-root/armlink"

// Wire adapts the armlink wire format to the Codec interface.
// Construct with NewWire and a constructor for the concrete record
// (e.g. func() *armlink.State { return &armlink.State{} }).
type Wire[M armlink.Message] struct {
	new   func() M
	loose bool
}

func NewWire[M armlink.Message](ctor func() M) Wire[M] {
	return Wire[M]{new: ctor}
}

// NewWireLoose is NewWire without fixed-size cardinality validation:
// sequence fields of any length encode and decode as-is.
func NewWireLoose[M armlink.Message](ctor func() M) Wire[M] {
	return Wire[M]{new: ctor, loose: true}
}

func (c Wire[M]) Encode(v M) ([]byte, error) {
	if c.loose {
		return armlink.MarshalLoose(v)
	}
	return armlink.Marshal(v)
}

func (c Wire[M]) Decode(b []byte) (M, error) {
	m := c.new()
	var err error
	if c.loose {
		err = armlink.UnmarshalLoose(b, m)
	} else {
		err = armlink.Unmarshal(b, m)
	}
	return m, err
}
