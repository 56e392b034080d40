package tracesink

import (
	"context"
	"errors"
	"sync"

	"github.com/daq-tools/tracesink/internal/adapters/fs"
	"github.com/daq-tools/tracesink/internal/app"
	"github.com/daq-tools/tracesink/internal/domain"
	"github.com/daq-tools/tracesink/internal/metrics"
	"github.com/daq-tools/tracesink/internal/ports"
	"github.com/daq-tools/tracesink/internal/wire"
)

// Collector receives trace buffers from a single instrument over TCP and
// persists each one to disk. Use New() to create an instance, then Start()
// to bind, accept, and begin receiving.
type Collector struct {
	config    Config
	opts      options
	lifecycle *app.Lifecycle
	sink      *fs.BufferSink
	metrics   *metrics.Metrics
	logger    ports.Logger
	emitter   *eventEmitter

	mu       sync.RWMutex
	listener *app.Listener
	source   *wire.Source
	cancel   context.CancelFunc
	runErr   error
}

// New creates a new Collector with the given configuration.
// The instance is created in StateStopped; call Start() to begin.
func New(cfg Config, opts ...Option) (*Collector, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var m *metrics.Metrics
	if cfg.MetricsAddr != "" {
		m = metrics.New()
	}

	emitter := &eventEmitter{handler: o.eventHandler, metrics: m}

	return &Collector{
		config:    cfg,
		opts:      o,
		lifecycle: app.NewLifecycle(o.logger, emitter),
		sink:      fs.NewBufferSink(cfg.OutputDir, o.logger),
		metrics:   m,
		logger:    o.logger,
		emitter:   emitter,
	}, nil
}

// Start binds the listen address and begins receiving in the background.
// It returns once the listener is bound, so Addr() is valid immediately
// after a successful Start. Returns an error if already running, if the
// output directories cannot be created, or if the bind fails.
func (c *Collector) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if err := c.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	if err := c.sink.Init(); err != nil {
		_ = c.lifecycle.TransitionTo(app.StateCrashed, "output directories unavailable")
		return err
	}

	listener, err := app.Listen(c.config.ListenAddr, c.logger)
	if err != nil {
		_ = c.lifecycle.TransitionTo(app.StateCrashed, "bind failed")
		return err
	}
	c.listener = listener

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.lifecycle.SetCancel(cancel)

	pluginCfg := PluginConfig{
		OutputDir:  c.config.OutputDir,
		ListenAddr: listener.Addr(),
		ConfigPath: c.config.ConfigPath,
		Logger:     c.logger,
		Reloader:   c,
	}
	for _, p := range c.opts.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			c.logger.Error("plugin initialization failed",
				ports.Str("plugin", p.Name()),
				ports.Err(err))
			cancel()
			listener.Close()
			_ = c.lifecycle.TransitionTo(app.StateCrashed, "plugin init failed: "+p.Name())
			return err
		}
		c.logger.Info("plugin initialized", ports.Str("plugin", p.Name()))
	}

	if c.metrics != nil {
		go c.metrics.Serve(runCtx, c.config.MetricsAddr, c.logger)
	}

	c.lifecycle.AddWorker()
	go func() {
		defer c.lifecycle.WorkerDone()

		if err := c.lifecycle.TransitionTo(app.StateRunning, "session starting"); err != nil {
			c.logger.Error("failed to transition to running", ports.Err(err))
			return
		}

		err := c.run(runCtx)
		switch {
		case err == nil:
			// MaxCycles reached; wind down cleanly.
			_ = c.lifecycle.TransitionTo(app.StateStopping, "session complete")
			_ = c.lifecycle.TransitionTo(app.StateStopped, "session complete")
		case errors.Is(err, context.Canceled):
			// Stop() or an interrupt; Stop() finishes the transitions.
		default:
			c.metrics.SessionError()
			c.logger.Error("session failed", ports.Err(err))
			c.mu.Lock()
			c.runErr = err
			c.mu.Unlock()
			_ = c.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		}
	}()

	return nil
}

// run accepts the single instrument connection and drives the session loop.
func (c *Collector) run(ctx context.Context) error {
	conn, err := c.listener.AcceptOne(ctx)
	if err != nil {
		return err
	}

	source := wire.NewSource(conn, c.config.ReadTimeout)
	c.mu.Lock()
	c.source = source
	c.mu.Unlock()
	defer source.Close()

	// Closing the connection is what unblocks a read in progress when the
	// context is canceled.
	stop := context.AfterFunc(ctx, func() { source.Close() })
	defer stop()

	session := app.NewSession(
		app.SessionConfig{MaxCycles: c.config.MaxCycles},
		source, c.sink, c.logger, c.emitter,
	)
	return session.Run(ctx)
}

// Stop gracefully shuts down the collector, waiting up to the lifecycle's
// shutdown timeout for the session to exit. Returns nil on graceful
// shutdown, domain.ErrShutdownTimeout if the wait expires.
func (c *Collector) Stop() error {
	c.mu.Lock()
	if !c.lifecycle.CanStop() {
		c.mu.Unlock()
		return domain.ErrNotRunning
	}
	if err := c.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.cancel != nil {
		c.cancel()
	}
	listener := c.listener
	c.mu.Unlock()

	err := c.lifecycle.WaitWithTimeout(app.ShutdownTimeout)

	if listener != nil {
		listener.Close()
	}

	shutdownCtx := context.Background()
	for i := len(c.opts.plugins) - 1; i >= 0; i-- {
		p := c.opts.plugins[i]
		if shutdownErr := p.Shutdown(shutdownCtx); shutdownErr != nil {
			c.logger.Error("plugin shutdown failed",
				ports.Str("plugin", p.Name()),
				ports.Err(shutdownErr))
		}
	}

	if err != nil {
		_ = c.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = c.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}
	return err
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (c *Collector) Status() State {
	return convertState(c.lifecycle.State())
}

// Err returns the error that crashed the session, or nil.
func (c *Collector) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.runErr
}

// Addr returns the bound listen address, or "" before Start. Useful when
// the configured address uses port 0.
func (c *Collector) Addr() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.listener == nil {
		return ""
	}
	return c.listener.Addr()
}

// ApplyReload applies runtime-adjustable settings to a running collector.
// Used by the config watcher plugin.
func (c *Collector) ApplyReload(r Reload) error {
	if r.LogLevel != "" {
		if lv, ok := c.logger.(interface{ SetLevel(string) error }); ok {
			if err := lv.SetLevel(r.LogLevel); err != nil {
				return err
			}
			c.logger.Info("log level changed", ports.Str("level", r.LogLevel))
		}
	}
	if r.ReadTimeout != nil {
		c.mu.Lock()
		c.config.ReadTimeout = *r.ReadTimeout
		source := c.source
		c.mu.Unlock()
		if source != nil {
			source.SetReadTimeout(*r.ReadTimeout)
		}
		c.logger.Info("read timeout changed", ports.Dur("timeout", *r.ReadTimeout))
	}
	return nil
}
