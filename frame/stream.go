package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/unkn0wn-root/armlink"
)

// ErrTooLarge is returned by Reader.Next when a frame announces a payload
// longer than Options.MaxPayload, before any payload is read.
var ErrTooLarge = errors.New("armlink/frame: payload exceeds limit")

// Options tune Writer and Reader. The zero value is ready to use.
type Options struct {
	Loose      bool           // skip fixed-size cardinality validation
	MaxPayload int            // read-side payload cap in bytes; 0 => 1 MiB
	Logger     armlink.Logger // nil => NopLogger
}

func (o Options) withDefaults() Options {
	o.MaxPayload = coalesce(o.MaxPayload, 1<<20)
	if o.Logger == nil {
		o.Logger = armlink.NopLogger{}
	}
	return o
}

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// Writer frames messages onto w. Not safe for concurrent use; wrap with your
// own mutex if several goroutines share one transport.
type Writer struct {
	w     io.Writer
	loose bool
	log   armlink.Logger
	buf   []byte
}

func NewWriter(w io.Writer, opts Options) *Writer {
	opts = opts.withDefaults()
	return &Writer{w: w, loose: opts.Loose, log: opts.Logger}
}

// Write frames m and writes it in a single w.Write call.
func (fw *Writer) Write(m armlink.Message) error {
	var (
		payload []byte
		err     error
	)
	if fw.loose {
		payload, err = armlink.MarshalLoose(m)
	} else {
		payload, err = armlink.Marshal(m)
	}
	if err != nil {
		return err
	}

	fw.buf = fw.buf[:0]
	fw.buf = append(fw.buf, magic4[:]...)
	fw.buf = append(fw.buf, version, byte(m.Kind()))
	fw.buf = binary.BigEndian.AppendUint32(fw.buf, uint32(len(payload)))
	fw.buf = append(fw.buf, payload...)

	if _, err := fw.w.Write(fw.buf); err != nil {
		return fmt.Errorf("armlink/frame: write: %w", err)
	}
	fw.log.Debug("frame written", armlink.Fields{"kind": m.Kind().String(), "payload_bytes": len(payload)})
	return nil
}

// Reader reads one frame at a time from r. Not safe for concurrent use.
type Reader struct {
	r     io.Reader
	max   int
	loose bool
	log   armlink.Logger
	hdr   [headerLen]byte
}

func NewReader(r io.Reader, opts Options) *Reader {
	opts = opts.withDefaults()
	return &Reader{r: r, max: opts.MaxPayload, loose: opts.Loose, log: opts.Logger}
}

// Next reads and decodes exactly one frame. io.EOF is returned only when the
// stream ends on a frame boundary; a stream cut inside a header or payload
// yields an error wrapping io.ErrUnexpectedEOF.
func (fr *Reader) Next() (armlink.Message, error) {
	if _, err := io.ReadFull(fr.r, fr.hdr[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: short header: %w", ErrCorrupt, err)
	}
	if !hasMagic(fr.hdr[:]) || fr.hdr[4] != version {
		return nil, ErrCorrupt
	}

	kind := armlink.Kind(fr.hdr[5])
	m, err := armlink.NewMessage(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	plen := int(binary.BigEndian.Uint32(fr.hdr[6:headerLen]))
	if plen > fr.max {
		fr.log.Warn("oversized frame rejected", armlink.Fields{"kind": kind.String(), "payload_bytes": plen, "limit": fr.max})
		return nil, fmt.Errorf("%w: %d > %d", ErrTooLarge, plen, fr.max)
	}

	payload := make([]byte, plen)
	if _, err := io.ReadFull(fr.r, payload); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("%w: short payload: %w", ErrCorrupt, err)
	}

	if fr.loose {
		err = armlink.UnmarshalLoose(payload, m)
	} else {
		err = armlink.Unmarshal(payload, m)
	}
	if err != nil {
		fr.log.Warn("undecodable frame", armlink.Fields{"kind": kind.String(), "payload_bytes": plen, "err": err.Error()})
		return nil, err
	}

	fr.log.Debug("frame read", armlink.Fields{"kind": kind.String(), "payload_bytes": plen})
	return m, nil
}
