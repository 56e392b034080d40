package tracesink

import (
	"fmt"
	"time"

	"github.com/daq-tools/tracesink/internal/domain"
)

// DefaultListenAddr is the endpoint the collector binds when none is given.
// The port matches the instrument firmware's fixed value.
const DefaultListenAddr = "0.0.0.0:4242"

// Config holds the configuration for an embedded collector.
// Use DefaultConfig() to get a Config with sensible defaults; at minimum
// OutputDir must be set before calling New.
type Config struct {
	// OutputDir is the root directory for persisted buffer files. The
	// collector creates traces/ and outputs/ subdirectories beneath it.
	OutputDir string

	// ListenAddr is the host:port endpoint to bind.
	ListenAddr string

	// ReadTimeout bounds each individual read on the instrument connection.
	// Zero waits indefinitely, matching the original protocol's behavior.
	ReadTimeout time.Duration

	// MaxCycles stops the collector cleanly after this many complete
	// cycles. Zero runs until the connection breaks or Stop is called.
	MaxCycles uint64

	// MetricsAddr, when non-empty, serves Prometheus metrics on this
	// endpoint for the collector's lifetime.
	MetricsAddr string

	// ConfigPath is the TOML file the config watcher plugin monitors,
	// if that plugin is enabled. Optional.
	ConfigPath string
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{ListenAddr: DefaultListenAddr}
}

// SetDefaults fills in zero-valued fields that have defaults.
func (c *Config) SetDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
}

// Validate checks the configuration, wrapping domain.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("%w: OutputDir is required", domain.ErrInvalidConfig)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("%w: ReadTimeout must not be negative", domain.ErrInvalidConfig)
	}
	return nil
}
