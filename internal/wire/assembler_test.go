package wire

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daq-tools/tracesink/internal/domain"
)

func TestAssembleBuffer(t *testing.T) {
	want := pattern(240)
	h := domain.FrameHeader{SegmentCount: 3, RegularSegmentSize: 100, LastSegmentSize: 40}

	// The transport's chunking must not matter: assemble from sources that
	// deliver the same payload in different chunk sizes.
	for _, chunk := range []int{1, 40, 100, 240} {
		got, err := AssembleBuffer(&chunkReader{data: append([]byte(nil), want...), chunk: chunk}, h)
		require.NoError(t, err, "chunk size %d", chunk)
		require.Equal(t, want, got, "chunk size %d", chunk)
	}
}

func TestAssembleBuffer_EmptyReadsNothing(t *testing.T) {
	got, err := AssembleBuffer(failReader{t}, domain.FrameHeader{})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestAssembleBuffer_ShortPayload(t *testing.T) {
	h := domain.FrameHeader{SegmentCount: 2, RegularSegmentSize: 5, LastSegmentSize: 3}

	// Stream ends mid-segment: all-or-nothing, no partial buffer.
	got, err := AssembleBuffer(bytes.NewReader(pattern(6)), h)
	require.ErrorIs(t, err, domain.ErrConnectionBroken)
	require.Nil(t, got)
}

func TestAssembleBuffer_HugeClaimedSize(t *testing.T) {
	// Every field is individually in range, but the claimed total is ~2^62.
	// Assembly must fail on the short stream without first trying to reserve
	// the claimed size.
	h := domain.FrameHeader{
		SegmentCount:       math.MaxInt32,
		RegularSegmentSize: math.MaxInt32,
		LastSegmentSize:    1,
	}
	require.NoError(t, h.Validate())

	got, err := AssembleBuffer(bytes.NewReader(pattern(100)), h)
	require.ErrorIs(t, err, domain.ErrConnectionBroken)
	require.Nil(t, got)
}

func TestReadFrame_HugeClaimedSizeOnWire(t *testing.T) {
	// The same hostile header as 12 raw bytes followed by a truncated stream,
	// the way a peer would actually deliver it.
	h := domain.FrameHeader{
		SegmentCount:       math.MaxInt32,
		RegularSegmentSize: math.MaxInt32,
		LastSegmentSize:    1,
	}
	stream := append(EncodeHeader(h), pattern(100)...)

	_, _, err := ReadFrame(bytes.NewReader(stream))
	require.ErrorIs(t, err, domain.ErrConnectionBroken)
}

func TestAssembleBuffer_MalformedHeader(t *testing.T) {
	h := domain.FrameHeader{SegmentCount: -2, RegularSegmentSize: 5, LastSegmentSize: 3}

	_, err := AssembleBuffer(failReader{t}, h)
	require.ErrorIs(t, err, domain.ErrMalformedHeader)
}

func TestAssembleBuffer_Deterministic(t *testing.T) {
	h := domain.FrameHeader{SegmentCount: 3, RegularSegmentSize: 100, LastSegmentSize: 40}
	captured := pattern(240)

	first, err := AssembleBuffer(bytes.NewReader(captured), h)
	require.NoError(t, err)
	second, err := AssembleBuffer(bytes.NewReader(captured), h)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestWriteFrame_ReadFrame_RoundTrip(t *testing.T) {
	for _, size := range []int{0, 1, 3, 5, 8, 10, 123} {
		payload := pattern(size)

		var buf bytes.Buffer
		require.NoError(t, WriteFrame(&buf, payload, 5))

		h, got, err := ReadFrame(&buf)
		require.NoError(t, err, "payload size %d", size)
		require.Equal(t, payload, got, "payload size %d", size)
		require.Equal(t, size, h.TotalSize())
		require.Zero(t, buf.Len(), "frame must consume exactly its own bytes")
	}
}

func TestWriteFrame_NonPositiveSegmentSize(t *testing.T) {
	var buf bytes.Buffer

	require.Error(t, WriteFrame(&buf, pattern(10), 0))
	require.Error(t, WriteFrame(&buf, pattern(10), -1))
	require.Zero(t, buf.Len())

	// An empty payload needs no segmentation, so any segment size is fine.
	require.NoError(t, WriteFrame(&buf, nil, 0))
	h, got, err := ReadFrame(&buf)
	require.NoError(t, err)
	require.Zero(t, h.SegmentCount)
	require.Empty(t, got)
}

func TestReadFrame_BackToBackFrames(t *testing.T) {
	var buf bytes.Buffer
	first := pattern(10)
	second := pattern(8)
	require.NoError(t, WriteFrame(&buf, first, 10))
	require.NoError(t, WriteFrame(&buf, second, 5))
	require.NoError(t, WriteFrame(&buf, nil, 5))

	_, got, err := ReadFrame(&buf)
	require.NoError(t, err)
	require.Equal(t, first, got)

	h, got, err := ReadFrame(&buf)
	require.NoError(t, err)
	require.Equal(t, domain.FrameHeader{SegmentCount: 2, RegularSegmentSize: 5, LastSegmentSize: 3}, h)
	require.Equal(t, second, got)

	h, got, err = ReadFrame(&buf)
	require.NoError(t, err)
	require.Zero(t, h.SegmentCount)
	require.Empty(t, got)
}
