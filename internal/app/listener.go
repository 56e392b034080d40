package app

import (
	"context"
	"fmt"
	"net"

	"github.com/daq-tools/tracesink/internal/ports"
)

// Listener binds the collector's address and accepts exactly one instrument
// connection. Serving one instrument at a time is a design boundary of the
// protocol, not an oversight: there is no client identification on the wire,
// so a second connection could not be told apart from the first.
type Listener struct {
	ln     net.Listener
	logger ports.Logger
}

// Listen binds a TCP listener on addr.
func Listen(addr string, logger ports.Logger) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	logger.Info("listening", ports.Str("addr", ln.Addr().String()))
	return &Listener{ln: ln, logger: logger}, nil
}

// Addr returns the bound address, useful when listening on port 0.
func (l *Listener) Addr() string {
	return l.ln.Addr().String()
}

// AcceptOne blocks until a client connects, then closes the listening socket
// so no further connections are accepted. Canceling the context unblocks the
// wait and returns the context's error.
func (l *Listener) AcceptOne(ctx context.Context) (net.Conn, error) {
	stop := context.AfterFunc(ctx, func() { l.ln.Close() })
	defer stop()

	conn, err := l.ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("accept: %w", err)
	}

	// Single-client by design: refuse everything after the first accept.
	l.ln.Close()
	l.logger.Info("client connected", ports.Str("remote", conn.RemoteAddr().String()))
	return conn, nil
}

// Close releases the listening socket. Safe to call more than once.
func (l *Listener) Close() error {
	return l.ln.Close()
}
