package ports

import (
	"context"

	"github.com/daq-tools/tracesink/internal/domain"
)

// BufferSink persists one reassembled buffer per (cycle, kind) pair.
type BufferSink interface {
	// Persist writes data to a destination derived from the kind and cycle
	// index, and returns the path it wrote. The write must be complete and
	// durable before Persist returns; no destination is ever written twice.
	// Failures are reported wrapping domain.ErrPersistence and must not
	// leave a partial file under the final name.
	Persist(ctx context.Context, kind domain.BufferKind, cycle uint64, data []byte) (string, error)
}
