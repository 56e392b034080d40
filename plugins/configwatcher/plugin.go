// Package configwatcher provides live configuration reload for tracesink.
// When enabled, it watches the collector's TOML config file and applies
// changes to the runtime-adjustable settings (log level, read timeout)
// without restarting the collector.
package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/daq-tools/tracesink/pkg/log"
	"github.com/daq-tools/tracesink/pkg/tracesink"
)

// Plugin implements config file watching. It monitors the config file's
// directory (editors typically replace the file rather than write in place,
// so watching the file itself would lose the watch on the first save) and
// applies reloadable settings after a debounce delay.
type Plugin struct {
	mu sync.Mutex

	debounceDelay time.Duration

	configPath string
	reloader   tracesink.Reloader
	logger     log.Logger
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	debounce   *time.Timer
}

// Config holds configuration options for the config watcher plugin.
type Config struct {
	// DebounceDelay is the delay to wait after a file change before
	// reloading. Default: 100 milliseconds.
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{DebounceDelay: 100 * time.Millisecond}
}

// New creates a new config watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Plugin{debounceDelay: cfg.DebounceDelay}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "configwatcher"
}

// Initialize starts watching the config file named in the collector config.
// With no config path the plugin disables itself rather than failing, so it
// is safe to enable unconditionally.
func (p *Plugin) Initialize(ctx context.Context, cfg tracesink.PluginConfig) error {
	p.mu.Lock()
	p.configPath = cfg.ConfigPath
	p.reloader = cfg.Reloader
	p.logger = cfg.Logger
	p.mu.Unlock()

	if p.configPath == "" || p.reloader == nil {
		p.logger.Warn("config watcher disabled: no config file path")
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.watchLoop(watchCtx)

	p.logger.Info("config watcher initialized", log.String("path", p.configPath))
	return nil
}

// Shutdown stops the watcher loop.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	return nil
}

// watchLoop reacts to changes of the config file.
func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Error("config watcher: failed to create watcher", log.Err(err))
		return
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(p.configPath)); err != nil {
		p.logger.Error("config watcher: failed to watch directory", log.Err(err))
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(p.configPath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.scheduleReload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("config watcher: watcher error", log.Err(err))
		}
	}
}

// scheduleReload debounces bursts of write events into one reload.
func (p *Plugin) scheduleReload() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.debounceDelay, p.reload)
}

// reloadableConfig is the subset of the config file that can change at runtime.
type reloadableConfig struct {
	LogLevel    string `toml:"log_level"`
	ReadTimeout string `toml:"read_timeout"`
}

// reload re-reads the config file and applies the reloadable settings.
func (p *Plugin) reload() {
	b, err := os.ReadFile(p.configPath)
	if err != nil {
		p.logger.Error("config watcher: read config", log.Err(err))
		return
	}

	var rc reloadableConfig
	if err := toml.Unmarshal(b, &rc); err != nil {
		p.logger.Error("config watcher: parse config", log.Err(err))
		return
	}

	r := tracesink.Reload{LogLevel: rc.LogLevel}
	if rc.ReadTimeout != "" {
		d, err := time.ParseDuration(rc.ReadTimeout)
		if err != nil {
			p.logger.Error("config watcher: parse read_timeout", log.Err(err))
			return
		}
		r.ReadTimeout = &d
	}

	if err := p.reloader.ApplyReload(r); err != nil {
		p.logger.Error("config watcher: apply reload", log.Err(err))
		return
	}
	p.logger.Info("configuration reloaded", log.String("path", p.configPath))
}
