package ports

import "github.com/daq-tools/tracesink/pkg/log"

// Logger is the structured logging port. It aliases pkg/log so internal
// packages can log without importing the public package path everywhere.
type Logger = log.Logger

// Field aliases the structured log field type.
type Field = log.Field

// Field constructors re-exported for convenience.
var (
	Str    = log.String
	Int    = log.Int
	Uint64 = log.Uint64
	Dur    = log.Duration
	Err    = log.Err
)
