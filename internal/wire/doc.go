// Package wire implements the instrument's framed-transfer protocol.
//
// A frame is a fixed 12-byte header followed by the segments it declares.
// The header carries a segment count, the size of every segment but the last,
// and the size of the last segment; integers are little-endian with no magic
// number, checksum, or version field. Frames repeat back to back on the
// stream with no delimiter, so the receiver must read exact byte counts:
// ReadExact is the primitive every other read is built on.
package wire
