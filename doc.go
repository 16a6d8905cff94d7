// Package armlink implements the wire codec for a robot-arm control interface:
// three record shapes exchanged between a controller and the arm, encoded with
// the standard protobuf binary format (tagged fields, packed little-endian
// fixed64 doubles, varint scalars).
//
// Messages:
//   - Command: motor/position target sent to the arm (joint-space or cartesian,
//     per IsPositionCommand) plus a 3x3 end-effector offset matrix.
//   - State: sensor snapshot reported by the arm (joint velocities, angles,
//     efforts, end-effector pose/velocity, 9x7 points Jacobian).
//   - Request: asks the arm for end-effector offsets.
//
// All flattened matrices are row-major. Marshal and Unmarshal validate the
// fixed cardinalities (6, 9 or 63 elements, or wholly absent); the Loose
// variants skip that check and round-trip whatever lengths are present.
// Unknown fields are skipped on decode, never rejected. Every call is a pure
// transformation with no shared state, safe for concurrent use.
//
// Typical exchange:
//
//	b, _ := armlink.Marshal(&armlink.Command{Command: target, ID: seq})
//	// ... transport delivers b ...
//	var st armlink.State
//	if err := armlink.Unmarshal(reply, &st); err != nil { ... }
//
// The frame subpackage adds self-identifying length-delimited framing for
// streaming transports; the codec subpackage exposes the wire format (and
// JSON/CBOR/msgpack alternatives for snapshot export) behind a generic
// Codec[V] interface.
package armlink
