package app

import (
	"context"

	"github.com/daq-tools/tracesink/internal/domain"
	"github.com/daq-tools/tracesink/internal/ports"
)

// SessionConfig contains configuration for one connection session.
type SessionConfig struct {
	// MaxCycles stops the session cleanly after this many complete cycles.
	// Zero means run until the connection breaks or the context is canceled,
	// which is the instrument's normal mode: it streams until stopped.
	MaxCycles uint64
}

// SessionEmitter is notified as buffers and cycles complete.
type SessionEmitter interface {
	OnBufferPersisted(cycle uint64, kind domain.BufferKind, bytes int, path string)
	OnCycleComplete(cycle uint64)
}

// Session owns one accepted instrument connection and drives the receive
// loop: for every cycle, one power buffer, one traces buffer, and one online
// buffer, each read as a complete frame and persisted before the next read.
//
// The loop is strictly sequential. A buffer is never reported persisted until
// its bytes are handed to the file system, and the cycle index only advances
// after all three kinds of a cycle are on disk.
type Session struct {
	cfg     SessionConfig
	source  ports.FrameSource
	sink    ports.BufferSink
	logger  ports.Logger
	emitter SessionEmitter
}

// NewSession creates a session over an accepted connection.
func NewSession(cfg SessionConfig, source ports.FrameSource, sink ports.BufferSink, logger ports.Logger, emitter SessionEmitter) *Session {
	return &Session{cfg: cfg, source: source, sink: sink, logger: logger, emitter: emitter}
}

// Run executes the receive loop until the context is canceled, the
// connection breaks, persistence fails, or MaxCycles is reached.
// Cancellation is checked before every frame, so an interrupt is observed
// at worst one buffer after it arrives.
func (s *Session) Run(ctx context.Context) error {
	for cycle := uint64(0); ; cycle++ {
		if s.cfg.MaxCycles > 0 && cycle >= s.cfg.MaxCycles {
			s.logger.Info("cycle limit reached", ports.Uint64("cycles", cycle))
			return nil
		}

		for _, kind := range domain.Kinds {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			header, data, err := s.source.NextFrame(ctx)
			if err != nil {
				// A read unblocked by cancellation reports a connection
				// error; the cancellation is the real cause.
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return err
			}

			s.logger.Info("buffer received",
				ports.Uint64("cycle", cycle),
				ports.Str("kind", kind.String()),
				ports.Int("segments", int(header.SegmentCount)),
				ports.Int("bytes", len(data)))

			path, err := s.sink.Persist(ctx, kind, cycle, data)
			if err != nil {
				return err
			}
			if s.emitter != nil {
				s.emitter.OnBufferPersisted(cycle, kind, len(data), path)
			}
		}

		if s.emitter != nil {
			s.emitter.OnCycleComplete(cycle)
		}
	}
}
