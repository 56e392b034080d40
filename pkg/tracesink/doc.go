// Package tracesink provides an embeddable collector for instrument trace
// buffers streamed over TCP.
//
// The collector binds an address, accepts exactly one instrument connection,
// and then loops forever over acquisition cycles: a power buffer, a traces
// buffer, and an online-output buffer per cycle, each delivered as a
// length-prefixed frame and written to its own file under the output
// directory.
//
// # Basic usage
//
//	cfg := tracesink.DefaultConfig()
//	cfg.OutputDir = "/data/run42"
//	c, err := tracesink.New(cfg, tracesink.WithLogger(log.NewZerologAdapter()))
//	if err != nil {
//	    // handle
//	}
//	if err := c.Start(ctx); err != nil {
//	    // handle
//	}
//	defer c.Stop()
//
// # Events
//
// To observe buffers and lifecycle transitions, implement [EventHandler]
// and pass it via [WithEventHandler].
//
// # Plugins
//
// Optional behavior ships as plugins registered with [WithPlugin]; see
// the plugins/configwatcher package for live configuration reload.
package tracesink
