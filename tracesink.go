// Package tracesink collects binary trace buffers streamed by a remote
// instrument over TCP and persists each one to a uniquely named file.
//
// Example usage:
//
//	cfg := tracesink.DefaultConfig()
//	cfg.OutputDir = "/data/run42"
//	if err := tracesink.Run(context.Background(), cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// For finer control (background operation, events, plugins), use the
// pkg/tracesink package directly.
package tracesink

import (
	"context"
	"time"

	collector "github.com/daq-tools/tracesink/pkg/tracesink"
)

// Config holds the configuration for the collector.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = collector.Config

// DefaultConfig returns a Config with sensible default values.
// At minimum, you must set OutputDir before calling Run.
func DefaultConfig() Config {
	return collector.DefaultConfig()
}

// Run starts the collector with the given configuration and blocks until the
// context is canceled, the configured cycle limit is reached, or the session
// fails. Cancellation produces a clean shutdown and a nil return.
func Run(ctx context.Context, cfg Config, opts ...collector.Option) error {
	c, err := collector.New(cfg, opts...)
	if err != nil {
		return err
	}
	if err := c.Start(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = c.Stop()
			return nil
		case <-ticker.C:
			switch c.Status() {
			case collector.StateStopped:
				return nil
			case collector.StateCrashed:
				_ = c.Stop()
				return c.Err()
			}
		}
	}
}
