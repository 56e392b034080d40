package wire

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/daq-tools/tracesink/internal/domain"
)

// maxPrealloc caps how much memory a size field from the wire can reserve
// up front. Larger reads still succeed; memory beyond the cap is grown only
// as bytes actually arrive, so a hostile 12-byte header cannot demand an
// arbitrarily large allocation before sending anything.
const maxPrealloc = 1 << 20

// ReadExact reads exactly n bytes from r or fails. TCP delivers arbitrary,
// possibly short, chunks; every read in the protocol must go through this
// function so a short delivery can never be mistaken for a complete record.
//
// A stream that ends before n bytes arrive means the peer closed or the
// connection broke; that is reported as domain.ErrConnectionBroken and never
// retried, because a frame with no resynchronization marker cannot be resumed
// mid-transfer. n = 0 succeeds trivially without touching r.
func ReadExact(r io.Reader, n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("wire: negative read size %d", n)
	}
	if n == 0 {
		return []byte{}, nil
	}
	var buf bytes.Buffer
	if n < maxPrealloc {
		buf.Grow(n)
	} else {
		buf.Grow(maxPrealloc)
	}
	got, err := io.CopyN(&buf, r, int64(n))
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: stream ended after %d of %d bytes", domain.ErrConnectionBroken, got, n)
		}
		return nil, err
	}
	return buf.Bytes(), nil
}
