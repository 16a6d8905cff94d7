// Package frame delimits armlink messages on streaming transports. Each frame
// is self-identifying: the header carries the record kind, so a receiver can
// decode without out-of-band type agreement. The bare codec stays framing-free
// for transports that already delimit messages (datagrams, pub/sub payloads).
package frame

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/unkn0wn-root/armlink"
)

const (
	version byte = 1

	// magic(4) | ver(1) | kind(1) | plen(u32 be) | payload(plen)
	headerLen = 4 + 1 + 1 + 4
)

var (
	ErrCorrupt = errors.New("armlink/frame: corrupt frame")
	magic4     = [...]byte{'A', 'R', 'M', 'L'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Encode wraps m's validated wire encoding in a single frame.
func Encode(m armlink.Message) ([]byte, error) {
	payload, err := armlink.Marshal(m)
	if err != nil {
		return nil, err
	}
	return encodePayload(m.Kind(), payload), nil
}

func encodePayload(k armlink.Kind, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(headerLen + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(byte(k))

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// Decode parses exactly one frame from b and returns the decoded record.
// Short headers, bad magic/version, unknown kinds, payloads shorter than
// announced, and trailing bytes all fail with ErrCorrupt (wrapped); every
// strict prefix of a valid frame is rejected.
func Decode(b []byte) (armlink.Message, error) {
	k, payload, err := split(b)
	if err != nil {
		return nil, err
	}

	m, err := armlink.NewMessage(k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := armlink.Unmarshal(payload, m); err != nil {
		return nil, err
	}
	return m, nil
}

func split(b []byte) (armlink.Kind, []byte, error) {
	if len(b) < headerLen || !hasMagic(b) || b[4] != version {
		return 0, nil, ErrCorrupt
	}

	k := armlink.Kind(b[5])
	plen := int(binary.BigEndian.Uint32(b[6:headerLen]))
	if plen != len(b)-headerLen { // rejects both short payloads and trailing junk
		return 0, nil, ErrCorrupt
	}

	return k, b[headerLen:], nil
}
