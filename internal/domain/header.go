package domain

import "fmt"

// FrameHeader describes one buffer transfer on the wire. The instrument sends
// it as three consecutive 4-byte signed integers immediately before the
// buffer's data segments. There is no magic number or version field; a header
// is distinguished from data only by its position in the stream.
type FrameHeader struct {
	// SegmentCount is the number of data segments that follow the header.
	// Zero means an empty buffer with no data segments at all.
	SegmentCount int32

	// RegularSegmentSize is the size in bytes of every segment except the last.
	RegularSegmentSize int32

	// LastSegmentSize is the size in bytes of the final segment.
	LastSegmentSize int32
}

// Validate checks that the header fields describe a readable buffer.
// Returns an error wrapping ErrMalformedHeader otherwise.
func (h FrameHeader) Validate() error {
	if h.SegmentCount < 0 {
		return fmt.Errorf("%w: negative segment count %d", ErrMalformedHeader, h.SegmentCount)
	}
	if h.SegmentCount == 0 {
		return nil
	}
	if h.RegularSegmentSize <= 0 {
		return fmt.Errorf("%w: non-positive regular segment size %d", ErrMalformedHeader, h.RegularSegmentSize)
	}
	if h.LastSegmentSize <= 0 {
		return fmt.Errorf("%w: non-positive last segment size %d", ErrMalformedHeader, h.LastSegmentSize)
	}
	return nil
}

// TotalSize returns the total buffer size in bytes described by the header.
func (h FrameHeader) TotalSize() int {
	if h.SegmentCount <= 0 {
		return 0
	}
	return int(h.RegularSegmentSize)*(int(h.SegmentCount)-1) + int(h.LastSegmentSize)
}

// SegmentSize returns the expected size of segment i, which is
// RegularSegmentSize for every segment but the last.
func (h FrameHeader) SegmentSize(i int) int {
	if i == int(h.SegmentCount)-1 {
		return int(h.LastSegmentSize)
	}
	return int(h.RegularSegmentSize)
}
