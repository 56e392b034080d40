// Package metrics exposes collector counters over Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/daq-tools/tracesink/internal/ports"
)

// Metrics holds the collector's Prometheus counters on a private registry.
// All methods are safe on a nil receiver so instrumentation can stay inline
// whether or not a metrics endpoint is configured.
type Metrics struct {
	registry *prometheus.Registry

	bytesReceived    prometheus.Counter
	buffersPersisted *prometheus.CounterVec
	cyclesCompleted  prometheus.Counter
	sessionErrors    prometheus.Counter
}

// New creates and registers the collector metrics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		bytesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracesink_bytes_received_total",
			Help: "Payload bytes received and persisted.",
		}),
		buffersPersisted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracesink_buffers_persisted_total",
			Help: "Buffers persisted to disk, by kind.",
		}, []string{"kind"}),
		cyclesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracesink_cycles_completed_total",
			Help: "Acquisition cycles fully persisted (all three kinds).",
		}),
		sessionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracesink_session_errors_total",
			Help: "Fatal session errors (broken connection, malformed header, persistence).",
		}),
	}
	m.registry.MustRegister(m.bytesReceived, m.buffersPersisted, m.cyclesCompleted, m.sessionErrors)
	return m
}

// BufferPersisted records one persisted buffer.
func (m *Metrics) BufferPersisted(kind string, bytes int) {
	if m == nil {
		return
	}
	m.bytesReceived.Add(float64(bytes))
	m.buffersPersisted.WithLabelValues(kind).Inc()
}

// CycleCompleted records one completed cycle.
func (m *Metrics) CycleCompleted() {
	if m == nil {
		return
	}
	m.cyclesCompleted.Inc()
}

// SessionError records one fatal session error.
func (m *Metrics) SessionError() {
	if m == nil {
		return
	}
	m.sessionErrors.Inc()
}

// Handler returns the scrape handler for the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve runs a metrics HTTP server on addr until the context is canceled.
// Intended to run in its own goroutine; the error is logged, not fatal to
// the collector.
func (m *Metrics) Serve(ctx context.Context, addr string, logger ports.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics endpoint listening", ports.Str("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server failed", ports.Err(err))
	}
}
