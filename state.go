package armlink

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/unkn0wn-root/armlink/internal/pbwire"
)

// State field numbers. Fixed by the wire contract; never renumber.
const (
	stateFieldVelocity    protowire.Number = 1
	stateFieldJointAngles protowire.Number = 2
	stateFieldEffort      protowire.Number = 3
	stateFieldEEPos       protowire.Number = 4
	stateFieldJacobian    protowire.Number = 5
	stateFieldEEVelocity  protowire.Number = 6
	stateFieldID          protowire.Number = 7
)

// State is a sensor snapshot reported by the arm. Velocity, JointAngles and
// Effort are per-joint vectors; EEPos and EEVelocity are flattened row-major
// 3x3 matrices; EEPointsJacobian is a flattened row-major 9x7. ID correlates
// the snapshot to the Command or Request that prompted it.
type State struct {
	Velocity         []float64 `json:"velocity" cbor:"velocity" msgpack:"velocity"`
	JointAngles      []float64 `json:"joint_angles" cbor:"joint_angles" msgpack:"joint_angles"`
	Effort           []float64 `json:"effort" cbor:"effort" msgpack:"effort"`
	EEPos            []float64 `json:"ee_pos" cbor:"ee_pos" msgpack:"ee_pos"`
	EEPointsJacobian []float64 `json:"ee_points_jacobian" cbor:"ee_points_jacobian" msgpack:"ee_points_jacobian"`
	EEVelocity       []float64 `json:"ee_velocity" cbor:"ee_velocity" msgpack:"ee_velocity"`
	ID               int32     `json:"id" cbor:"id" msgpack:"id"`
}

func (s *State) Kind() Kind { return KindState }

func (s *State) Validate() error {
	checks := []struct {
		field string
		got   int
		want  int
	}{
		{"velocity", len(s.Velocity), NumJoints},
		{"joint_angles", len(s.JointAngles), NumJoints},
		{"effort", len(s.Effort), NumJoints},
		{"ee_pos", len(s.EEPos), PoseLen},
		{"ee_points_jacobian", len(s.EEPointsJacobian), JacobianLen},
		{"ee_velocity", len(s.EEVelocity), PoseLen},
	}
	for _, c := range checks {
		if err := checkLen(KindState, c.field, c.got, c.want); err != nil {
			return err
		}
	}
	return nil
}

func (s *State) appendWire(b []byte) []byte {
	b = pbwire.AppendDoubles(b, stateFieldVelocity, s.Velocity)
	b = pbwire.AppendDoubles(b, stateFieldJointAngles, s.JointAngles)
	b = pbwire.AppendDoubles(b, stateFieldEffort, s.Effort)
	b = pbwire.AppendDoubles(b, stateFieldEEPos, s.EEPos)
	b = pbwire.AppendDoubles(b, stateFieldJacobian, s.EEPointsJacobian)
	b = pbwire.AppendDoubles(b, stateFieldEEVelocity, s.EEVelocity)
	b = pbwire.AppendInt32(b, stateFieldID, s.ID)
	return b
}

func (s *State) decodeWire(b []byte, strict bool) error {
	var out State
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		var err error
		switch num {
		case stateFieldVelocity:
			if out.Velocity, b, err = pbwire.ConsumeDoubles(out.Velocity, num, typ, b); err != nil {
				return fmt.Errorf("velocity: %w", err)
			}
		case stateFieldJointAngles:
			if out.JointAngles, b, err = pbwire.ConsumeDoubles(out.JointAngles, num, typ, b); err != nil {
				return fmt.Errorf("joint_angles: %w", err)
			}
		case stateFieldEffort:
			if out.Effort, b, err = pbwire.ConsumeDoubles(out.Effort, num, typ, b); err != nil {
				return fmt.Errorf("effort: %w", err)
			}
		case stateFieldEEPos:
			if out.EEPos, b, err = pbwire.ConsumeDoubles(out.EEPos, num, typ, b); err != nil {
				return fmt.Errorf("ee_pos: %w", err)
			}
		case stateFieldJacobian:
			if out.EEPointsJacobian, b, err = pbwire.ConsumeDoubles(out.EEPointsJacobian, num, typ, b); err != nil {
				return fmt.Errorf("ee_points_jacobian: %w", err)
			}
		case stateFieldEEVelocity:
			if out.EEVelocity, b, err = pbwire.ConsumeDoubles(out.EEVelocity, num, typ, b); err != nil {
				return fmt.Errorf("ee_velocity: %w", err)
			}
		case stateFieldID:
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
	*s = out
	return nil
}
