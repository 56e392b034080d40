package ports

import (
	"context"

	"github.com/daq-tools/tracesink/internal/domain"
)

// FrameSource delivers complete frames from the instrument connection.
type FrameSource interface {
	// NextFrame blocks until the next frame (header plus all segments) has
	// been fully read, and returns the decoded header with the reassembled
	// buffer. Returns domain.ErrConnectionBroken when the peer goes away
	// mid-frame; no partial buffer is ever returned.
	NextFrame(ctx context.Context) (domain.FrameHeader, []byte, error)

	// Close releases the underlying connection. Closing unblocks a read in
	// progress, which is how cancellation reaches a blocked session.
	Close() error
}
