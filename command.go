package armlink

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/unkn0wn-root/armlink/internal/pbwire"
)

// Command field numbers. Fixed by the wire contract; never renumber.
const (
	cmdFieldCommand protowire.Number = 1
	cmdFieldIsPos   protowire.Number = 2
	cmdFieldOffsets protowire.Number = 3
	cmdFieldID      protowire.Number = 4
)

// Command is a motor/position target issued by a controller to the arm.
// Command carries a joint-space or cartesian target depending on
// IsPositionCommand (false means velocity/effort); EEOffsets is a flattened
// row-major 3x3. ID correlates the command to a State or Request reply; the
// codec imposes no uniqueness or ordering on it.
type Command struct {
	Command           []float64 `json:"command" cbor:"command" msgpack:"command"`
	IsPositionCommand bool      `json:"is_position_command" cbor:"is_position_command" msgpack:"is_position_command"`
	EEOffsets         []float64 `json:"ee_offsets" cbor:"ee_offsets" msgpack:"ee_offsets"`
	ID                int32     `json:"id" cbor:"id" msgpack:"id"`
}

func (c *Command) Kind() Kind { return KindCommand }

func (c *Command) Validate() error {
	if err := checkLen(KindCommand, "command", len(c.Command), NumJoints); err != nil {
		return err
	}
	return checkLen(KindCommand, "ee_offsets", len(c.EEOffsets), PoseLen)
}

func (c *Command) appendWire(b []byte) []byte {
	b = pbwire.AppendDoubles(b, cmdFieldCommand, c.Command)
	b = pbwire.AppendBool(b, cmdFieldIsPos, c.IsPositionCommand)
	b = pbwire.AppendDoubles(b, cmdFieldOffsets, c.EEOffsets)
	b = pbwire.AppendInt32(b, cmdFieldID, c.ID)
	return b
}

func (c *Command) decodeWire(b []byte, strict bool) error {
	var out Command
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		var err error
		switch num {
		case cmdFieldCommand:
			if out.Command, b, err = pbwire.ConsumeDoubles(out.Command, num, typ, b); err != nil {
				return fmt.Errorf("command: %w", err)
			}
		case cmdFieldIsPos:
			if out.IsPositionCommand, b, err = pbwire.ConsumeBool(num, typ, b); err != nil {
				return fmt.Errorf("is_position_command: %w", err)
			}
		case cmdFieldOffsets:
			if out.EEOffsets, b, err = pbwire.ConsumeDoubles(out.EEOffsets, num, typ, b); err != nil {
				return fmt.Errorf("ee_offsets: %w", err)
			}
		case cmdFieldID:
			if out.ID, b, err = pbwire.ConsumeInt32(num, typ, b); err != nil {
				return fmt.Errorf("id: %w", err)
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
	*c = out
	return nil
}
