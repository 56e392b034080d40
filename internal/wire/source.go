package wire

import (
	"context"
	"net"
	"sync/atomic"
	"time"

	"github.com/daq-tools/tracesink/internal/domain"
)

// Source reads complete frames from an accepted instrument connection.
// It implements ports.FrameSource.
//
// An optional per-read timeout is applied as a deadline before every Read on
// the connection, so a stalled instrument surfaces as a timeout error instead
// of blocking the session forever. A timeout of zero keeps the original
// behavior of waiting indefinitely.
type Source struct {
	conn    net.Conn
	timeout atomic.Int64 // nanoseconds, 0 = no deadline
}

// NewSource wraps an accepted connection.
func NewSource(conn net.Conn, readTimeout time.Duration) *Source {
	s := &Source{conn: conn}
	s.timeout.Store(int64(readTimeout))
	return s
}

// SetReadTimeout changes the per-read timeout. Safe to call while a frame is
// being read; the new value applies from the next read onward.
func (s *Source) SetReadTimeout(d time.Duration) {
	s.timeout.Store(int64(d))
}

// NextFrame blocks until the next complete frame has been read.
// Cancellation is cooperative: the context is checked before the header read,
// and the caller is expected to close the connection to unblock a read in
// progress when it cancels.
func (s *Source) NextFrame(ctx context.Context) (domain.FrameHeader, []byte, error) {
	if err := ctx.Err(); err != nil {
		return domain.FrameHeader{}, nil, err
	}
	return ReadFrame(deadlineReader{s})
}

// Close closes the underlying connection.
func (s *Source) Close() error {
	return s.conn.Close()
}

// deadlineReader arms the read deadline before every Read so the configured
// timeout bounds each individual transport read, not the whole frame.
type deadlineReader struct {
	s *Source
}

func (d deadlineReader) Read(p []byte) (int, error) {
	if t := d.s.timeout.Load(); t > 0 {
		if err := d.s.conn.SetReadDeadline(time.Now().Add(time.Duration(t))); err != nil {
			return 0, err
		}
	}
	return d.s.conn.Read(p)
}
