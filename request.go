package armlink

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/unkn0wn-root/armlink/internal/pbwire"
)

// Request field numbers. Fixed by the wire contract; never renumber.
const (
	reqFieldID      protowire.Number = 1
	reqFieldOffsets protowire.Number = 2
)

// Request asks the arm for end-effector offset data. EEOffsets is a flattened
// row-major 3x3; ID correlates the request to the State carrying the answer.
type Request struct {
	ID        int32     `json:"id" cbor:"id" msgpack:"id"`
	EEOffsets []float64 `json:"ee_offsets" cbor:"ee_offsets" msgpack:"ee_offsets"`
}

func (r *Request) Kind() Kind { return KindRequest }

func (r *Request) Validate() error {
	return checkLen(KindRequest, "ee_offsets", len(r.EEOffsets), PoseLen)
}

func (r *Request) appendWire(b []byte) []byte {
	b = pbwire.AppendInt32(b, reqFieldID, r.ID)
	b = pbwire.AppendDoubles(b, reqFieldOffsets, r.EEOffsets)
	return b
}

func (r *Request) decodeWire(b []byte, strict bool) error {
	var out Request
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		var err error
		switch num {
		case reqFieldID:
			if out.ID, b, err = pbwire.ConsumeInt32(num, typ, b); err != nil {
				return fmt.Errorf("id: %w", err)
			}
		case reqFieldOffsets:
			if out.EEOffsets, b, err = pbwire.ConsumeDoubles(out.EEOffsets, num, typ, b); err != nil {
				return fmt.Errorf("ee_offsets: %w", err)
			}
		default:
			if b, err = pbwire.Skip(num, typ, b); err != nil {
				return err
			}
		}
	}
	if strict {
		if err := out.Validate(); err != nil {
			return err
		}
	}
	*r = out
	return nil
}
