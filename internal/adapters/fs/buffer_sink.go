// Package fs persists reassembled buffers as binary files on disk.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/daq-tools/tracesink/internal/domain"
	"github.com/daq-tools/tracesink/internal/ports"
)

// Subdirectories of the output root. Power and trace signals share the
// traces directory; online-model outputs get their own, matching the layout
// the downstream analysis tooling expects.
const (
	tracesDir  = "traces"
	outputsDir = "outputs"
)

// BufferSink writes one file per (cycle, kind) pair under a root directory.
// Files are written to a temporary name and renamed into place so a crash
// mid-write never leaves a partial file under the final name.
type BufferSink struct {
	root   string
	logger ports.Logger
}

// NewBufferSink creates a sink rooted at dir.
func NewBufferSink(dir string, logger ports.Logger) *BufferSink {
	return &BufferSink{root: dir, logger: logger}
}

// Init creates the output subdirectories.
func (s *BufferSink) Init() error {
	for _, d := range []string{tracesDir, outputsDir} {
		if err := os.MkdirAll(filepath.Join(s.root, d), 0o755); err != nil {
			return fmt.Errorf("%w: create %s: %v", domain.ErrPersistence, d, err)
		}
	}
	return nil
}

// Persist writes data to the file for the given kind and cycle.
// The destination name is deterministic and never reused: the cycle index
// increments monotonically and each kind has a fixed label, so no two calls
// ever target the same path.
func (s *BufferSink) Persist(ctx context.Context, kind domain.BufferKind, cycle uint64, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := s.Path(kind, cycle)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("%w: write %s: %v", domain.ErrPersistence, tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("%w: rename %s: %v", domain.ErrPersistence, path, err)
	}

	s.logger.Debug("buffer persisted",
		ports.Str("path", path),
		ports.Int("bytes", len(data)))
	return path, nil
}

// Path returns the destination file for a kind and cycle index, following
// the instrument tooling's naming scheme.
func (s *BufferSink) Path(kind domain.BufferKind, cycle uint64) string {
	switch kind {
	case domain.KindPower:
		return filepath.Join(s.root, tracesDir, fmt.Sprintf("CON_%d.BIN", cycle))
	case domain.KindTraces:
		return filepath.Join(s.root, tracesDir, fmt.Sprintf("SIG_%d.BIN", cycle))
	default:
		return filepath.Join(s.root, outputsDir, fmt.Sprintf("online_%d.bin", cycle))
	}
}
