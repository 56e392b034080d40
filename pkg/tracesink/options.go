package tracesink

import "github.com/daq-tools/tracesink/pkg/log"

// Logger is the structured logging interface accepted by WithLogger.
type Logger = log.Logger

// Option configures optional behavior of a Collector.
type Option func(*options)

// options holds the optional configuration for a Collector instance.
type options struct {
	logger       log.Logger
	eventHandler EventHandler
	plugins      []Plugin
}

func defaultOptions() options {
	return options{logger: log.NewNoopLogger()}
}

// WithLogger sets a custom logger. If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler for collector events.
// Events are called synchronously from the session goroutine.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when the collector starts.
// Plugins are initialized in registration order and shut down in reverse order.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}
