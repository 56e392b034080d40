package configwatcher

import "github.com/daq-tools/tracesink/pkg/tracesink"

// WithConfigWatcher returns an option that enables the config watcher plugin
// on a collector:
//
//	c, err := tracesink.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.DefaultConfig()))
func WithConfigWatcher(cfg Config) tracesink.Option {
	return tracesink.WithPlugin(New(cfg))
}
