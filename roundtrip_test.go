package armlink

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"sync"
	"testing"
)

// seq returns n doubles with distinct values so element order mistakes show up.
func seq(n int, base float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base + 0.5*float64(i)
	}
	return out
}

func eqF64s(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] || math.Signbit(a[i]) != math.Signbit(b[i]) {
			return false
		}
	}
	return true
}

func mustMarshal(t *testing.T, m Message) []byte {
	t.Helper()
	b, err := Marshal(m)
	if err != nil {
		t.Fatalf("Marshal(%s): %v", m.Kind(), err)
	}
	return b
}

func mustUnmarshal(t *testing.T, b []byte, m Message) {
	t.Helper()
	if err := Unmarshal(b, m); err != nil {
		t.Fatalf("Unmarshal(%s): %v", m.Kind(), err)
	}
}

func TestCommandRoundTrip(t *testing.T) {
	cases := []Command{
		{}, // all defaults
		{Command: seq(NumJoints, 1), ID: 7},
		{Command: seq(NumJoints, -3), IsPositionCommand: true, EEOffsets: seq(PoseLen, 100), ID: 12345},
		{EEOffsets: seq(PoseLen, 0.25)},
		{Command: []float64{0, math.Inf(1), math.Inf(-1), math.MaxFloat64, math.SmallestNonzeroFloat64, math.Copysign(0, -1)}, ID: -1},
	}
	for i, in := range cases {
		enc := mustMarshal(t, &in)
		var out Command
		mustUnmarshal(t, enc, &out)
		if !eqF64s(out.Command, in.Command) || !eqF64s(out.EEOffsets, in.EEOffsets) ||
			out.IsPositionCommand != in.IsPositionCommand || out.ID != in.ID {
			t.Fatalf("case %d: round trip mismatch: got %+v want %+v", i, out, in)
		}
	}
}

func TestStateRoundTrip(t *testing.T) {
	in := State{
		Velocity:         seq(NumJoints, 1),
		JointAngles:      seq(NumJoints, 10),
		Effort:           seq(NumJoints, -5),
		EEPos:            seq(PoseLen, 0),
		EEPointsJacobian: seq(JacobianLen, 1000),
		EEVelocity:       seq(PoseLen, -0.125),
		ID:               99,
	}
	enc := mustMarshal(t, &in)
	var out State
	mustUnmarshal(t, enc, &out)
	if !eqF64s(out.Velocity, in.Velocity) || !eqF64s(out.JointAngles, in.JointAngles) ||
		!eqF64s(out.Effort, in.Effort) || !eqF64s(out.EEPos, in.EEPos) ||
		!eqF64s(out.EEPointsJacobian, in.EEPointsJacobian) || !eqF64s(out.EEVelocity, in.EEVelocity) ||
		out.ID != in.ID {
		t.Fatalf("round trip mismatch: got %+v want %+v", out, in)
	}
}

// TestRequestGoldenBytes pins the exact encoding of the identity-offset
// request: id as a one-byte varint, offsets as a packed field of nine
// little-endian doubles.
func TestRequestGoldenBytes(t *testing.T) {
	in := Request{
		ID:        42,
		EEOffsets: []float64{1, 0, 0, 0, 1, 0, 0, 0, 1},
	}
	enc := mustMarshal(t, &in)

	want := []byte{0x08, 0x2a, 0x12, 0x48}
	for _, v := range in.EEOffsets {
		want = binary.LittleEndian.AppendUint64(want, math.Float64bits(v))
	}
	if !bytes.Equal(enc, want) {
		t.Fatalf("golden mismatch:\n got %x\nwant %x", enc, want)
	}

	var out Request
	mustUnmarshal(t, enc, &out)
	if out.ID != 42 || !eqF64s(out.EEOffsets, in.EEOffsets) {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

// TestCommandZeroesOmitDefaults checks the all-zero command with id 1: the
// packed fields are present (zero-valued doubles still occupy wire bytes) but
// the false bool is absent, and decodes back to false.
func TestCommandZeroesOmitDefaults(t *testing.T) {
	in := Command{
		Command:   make([]float64, NumJoints),
		EEOffsets: make([]float64, PoseLen),
		ID:        1,
	}
	enc := mustMarshal(t, &in)

	want := []byte{0x0a, 0x30}
	want = append(want, make([]byte, 8*NumJoints)...)
	want = append(want, 0x1a, 0x48)
	want = append(want, make([]byte, 8*PoseLen)...)
	want = append(want, 0x20, 0x01)
	if !bytes.Equal(enc, want) {
		t.Fatalf("golden mismatch:\n got %x\nwant %x", enc, want)
	}

	var out Command
	mustUnmarshal(t, enc, &out)
	if out.IsPositionCommand {
		t.Fatal("absent bool must decode to false")
	}
	if out.ID != 1 || !eqF64s(out.Command, in.Command) || !eqF64s(out.EEOffsets, in.EEOffsets) {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestNegativeIDSignExtended(t *testing.T) {
	in := Request{ID: -7}
	enc := mustMarshal(t, &in)

	// tag + 10-byte sign-extended varint
	if len(enc) != 11 {
		t.Fatalf("expected 11 wire bytes for a negative id, got %d (%x)", len(enc), enc)
	}
	var out Request
	mustUnmarshal(t, enc, &out)
	if out.ID != -7 {
		t.Fatalf("id mismatch: got %d", out.ID)
	}
}

func TestEmptyInputDecodesToDefaults(t *testing.T) {
	for _, k := range []Kind{KindCommand, KindState, KindRequest} {
		m, err := NewMessage(k)
		if err != nil {
			t.Fatalf("NewMessage(%s): %v", k, err)
		}
		if err := Unmarshal(nil, m); err != nil {
			t.Fatalf("Unmarshal(%s, empty): %v", k, err)
		}
	}
	var c Command
	mustUnmarshal(t, []byte{}, &c)
	if c.IsPositionCommand || c.ID != 0 || len(c.Command) != 0 || len(c.EEOffsets) != 0 {
		t.Fatalf("expected all-default record, got %+v", c)
	}
}

func TestCardinalityBothDirections(t *testing.T) {
	bad := Command{Command: seq(5, 0)} // one joint short

	if _, err := Marshal(&bad); err == nil {
		t.Fatal("strict Marshal must reject 5 joints")
	} else {
		var ee *EncodeError
		var ce *CardinalityError
		if !errors.As(err, &ee) || !errors.As(err, &ce) {
			t.Fatalf("want EncodeError wrapping CardinalityError, got %T: %v", err, err)
		}
		if ce.Field != "command" || ce.Len != 5 || ce.Want != NumJoints {
			t.Fatalf("unexpected cardinality detail: %+v", ce)
		}
	}

	enc, err := MarshalLoose(&bad)
	if err != nil {
		t.Fatalf("MarshalLoose: %v", err)
	}

	var strict Command
	if err := Unmarshal(enc, &strict); err == nil {
		t.Fatal("strict Unmarshal must reject 5 joints")
	} else {
		var de *DecodeError
		var ce *CardinalityError
		if !errors.As(err, &de) || !errors.As(err, &ce) {
			t.Fatalf("want DecodeError wrapping CardinalityError, got %T: %v", err, err)
		}
	}

	var loose Command
	if err := UnmarshalLoose(enc, &loose); err != nil {
		t.Fatalf("UnmarshalLoose: %v", err)
	}
	if !eqF64s(loose.Command, bad.Command) {
		t.Fatalf("loose round trip must keep the actual length: %+v", loose)
	}
}

func TestAppendExtendsBuffer(t *testing.T) {
	prefix := []byte{0xDE, 0xAD}
	b := Append(append([]byte(nil), prefix...), &Request{ID: 42})
	if !bytes.Equal(b[:2], prefix) {
		t.Fatal("Append must preserve the existing buffer")
	}
	var out Request
	mustUnmarshal(t, b[2:], &out)
	if out.ID != 42 {
		t.Fatalf("id mismatch: %d", out.ID)
	}
}

func TestConcurrentCodecCalls(t *testing.T) {
	in := State{
		Velocity:    seq(NumJoints, 2),
		JointAngles: seq(NumJoints, 4),
		ID:          3,
	}
	enc := mustMarshal(t, &in)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				b, err := Marshal(&in)
				if err != nil || !bytes.Equal(b, enc) {
					panic("concurrent encode diverged")
				}
				var out State
				if err := Unmarshal(enc, &out); err != nil || out.ID != 3 {
					panic("concurrent decode diverged")
				}
			}
		}()
	}
	wg.Wait()
}
