// Package log provides the logging abstraction used across the collector.
//
// A Logger interface decouples components from the concrete library; the
// provided implementations are a zerolog console adapter and a no-op logger
// for embedding and tests:
//
//	logger := log.NewZerologAdapter()
//	logger.Info("client connected", log.String("remote", addr))
//
// Implement the Logger interface to route output into existing logging
// infrastructure instead.
package log
