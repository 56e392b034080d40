package tracesink

import (
	"context"
	"time"

	"github.com/daq-tools/tracesink/pkg/log"
)

// Plugin extends a collector with optional behavior. Plugins are initialized
// in registration order when the collector starts and shut down in reverse
// order when it stops.
type Plugin interface {
	// Name returns the plugin identifier used in log messages.
	Name() string

	// Initialize starts the plugin. The context is the collector's run
	// context; plugin goroutines should exit when it is canceled.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown stops the plugin and releases its resources.
	Shutdown(ctx context.Context) error
}

// PluginConfig carries the collector's settings and hooks into plugins.
type PluginConfig struct {
	OutputDir  string
	ListenAddr string
	ConfigPath string
	Logger     log.Logger
	Reloader   Reloader
}

// Reload describes runtime-adjustable settings. Nil or empty fields are
// left unchanged.
type Reload struct {
	// LogLevel is a zerolog level name ("debug", "info", ...).
	LogLevel string

	// ReadTimeout replaces the per-read timeout on the instrument
	// connection. Applies from the next read onward.
	ReadTimeout *time.Duration
}

// Reloader applies runtime configuration changes to a running collector.
// *Collector implements it.
type Reloader interface {
	ApplyReload(Reload) error
}
