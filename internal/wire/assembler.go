package wire

import (
	"fmt"
	"io"

	"github.com/daq-tools/tracesink/internal/domain"
)

// AssembleBuffer reconstructs one logical buffer from its wire segments.
// For each segment index it asks ReadExact for the size the header declares
// and appends the result to the accumulator. A zero segment count yields an
// empty buffer without reading from r at all.
//
// Assembly is all-or-nothing: any read failure propagates unchanged and no
// partial buffer is ever returned. The function knows nothing about where the
// buffer goes afterwards; it is a pure transform from (header, stream) to bytes.
func AssembleBuffer(r io.Reader, h domain.FrameHeader) ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	// The claimed size is a capacity hint, never an allocation commitment:
	// a header naming a huge total must not reserve that memory before any
	// data has arrived.
	capHint := h.TotalSize()
	if capHint > maxPrealloc {
		capHint = maxPrealloc
	}
	buf := make([]byte, 0, capHint)
	for i := 0; i < int(h.SegmentCount); i++ {
		seg, err := ReadExact(r, h.SegmentSize(i))
		if err != nil {
			return nil, err
		}
		buf = append(buf, seg...)
	}
	return buf, nil
}

// ReadFrame reads one complete frame (header plus all segments) from r.
func ReadFrame(r io.Reader) (domain.FrameHeader, []byte, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return domain.FrameHeader{}, nil, err
	}
	data, err := AssembleBuffer(r, h)
	if err != nil {
		return domain.FrameHeader{}, nil, err
	}
	return h, data, nil
}

// WriteFrame sends one buffer the way the instrument does: a header followed
// by the payload sliced into segments of at most segmentSize bytes. An empty
// payload produces a header with a zero segment count and no data; a
// non-empty payload requires a positive segment size.
func WriteFrame(w io.Writer, payload []byte, segmentSize int) error {
	if len(payload) > 0 && segmentSize <= 0 {
		return fmt.Errorf("wire: non-positive segment size %d", segmentSize)
	}
	h := HeaderFor(len(payload), segmentSize)
	if _, err := w.Write(EncodeHeader(h)); err != nil {
		return err
	}
	for off := 0; off < len(payload); {
		end := off + segmentSize
		if end > len(payload) {
			end = len(payload)
		}
		if _, err := w.Write(payload[off:end]); err != nil {
			return err
		}
		off = end
	}
	return nil
}
