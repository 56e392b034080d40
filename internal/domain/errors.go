package domain

import "errors"

// Domain errors represent error conditions in the tracesink domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrConnectionBroken is returned when the instrument closes or resets the
	// connection before the expected byte count was delivered. The protocol has
	// no resynchronization marker, so a partial frame cannot be recovered and
	// the whole session terminates.
	ErrConnectionBroken = errors.New("tracesink: connection broken")

	// ErrMalformedHeader is returned when a frame header cannot be decoded,
	// either because the input is not exactly one header long or because its
	// fields are out of range.
	ErrMalformedHeader = errors.New("tracesink: malformed frame header")

	// ErrPersistence is returned when a received buffer cannot be written to
	// its destination file. Fatal to the session.
	ErrPersistence = errors.New("tracesink: persistence failure")

	// ErrAlreadyRunning is returned when Start() is called on a running collector.
	ErrAlreadyRunning = errors.New("tracesink: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped collector.
	ErrNotRunning = errors.New("tracesink: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("tracesink: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("tracesink: invalid configuration")
)
