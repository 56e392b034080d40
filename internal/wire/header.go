package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/daq-tools/tracesink/internal/domain"
)

// HeaderSize is the fixed wire size of a frame header: three 4-byte
// signed integers (segment count, regular segment size, last segment size).
const HeaderSize = 12

// ByteOrder is the integer byte order of the instrument's wire format.
// The protocol has no negotiation step, so this is a fixed configuration
// constant matching the little-endian SoC that produces the stream; it is
// never auto-detected.
var ByteOrder = binary.LittleEndian

// DecodeHeader interprets exactly HeaderSize bytes as a frame header.
// Inputs of any other length fail with domain.ErrMalformedHeader, as do
// headers whose fields are out of range.
func DecodeHeader(b []byte) (domain.FrameHeader, error) {
	if len(b) != HeaderSize {
		return domain.FrameHeader{}, fmt.Errorf("%w: got %d bytes, want %d", domain.ErrMalformedHeader, len(b), HeaderSize)
	}
	h := domain.FrameHeader{
		SegmentCount:       int32(ByteOrder.Uint32(b[0:4])),
		RegularSegmentSize: int32(ByteOrder.Uint32(b[4:8])),
		LastSegmentSize:    int32(ByteOrder.Uint32(b[8:12])),
	}
	if err := h.Validate(); err != nil {
		return domain.FrameHeader{}, err
	}
	return h, nil
}

// EncodeHeader encodes a frame header to its HeaderSize-byte wire form.
// The receiver never sends headers; this exists for the sender helpers and
// for tests that fabricate instrument traffic.
func EncodeHeader(h domain.FrameHeader) []byte {
	b := make([]byte, HeaderSize)
	ByteOrder.PutUint32(b[0:4], uint32(h.SegmentCount))
	ByteOrder.PutUint32(b[4:8], uint32(h.RegularSegmentSize))
	ByteOrder.PutUint32(b[8:12], uint32(h.LastSegmentSize))
	return b
}

// ReadHeader reads and decodes the next frame header from r.
func ReadHeader(r io.Reader) (domain.FrameHeader, error) {
	b, err := ReadExact(r, HeaderSize)
	if err != nil {
		return domain.FrameHeader{}, err
	}
	return DecodeHeader(b)
}

// HeaderFor computes the header an instrument would send for a buffer of
// size bytes split into segments of at most segmentSize bytes. The final
// segment carries the remainder, or a full segment when size divides evenly.
// A non-positive segment size yields the empty-buffer header.
func HeaderFor(size, segmentSize int) domain.FrameHeader {
	if size <= 0 || segmentSize <= 0 {
		return domain.FrameHeader{}
	}
	count := (size + segmentSize - 1) / segmentSize
	last := size % segmentSize
	if last == 0 {
		last = segmentSize
	}
	return domain.FrameHeader{
		SegmentCount:       int32(count),
		RegularSegmentSize: int32(segmentSize),
		LastSegmentSize:    int32(last),
	}
}
