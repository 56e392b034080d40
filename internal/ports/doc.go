// Package ports defines the interfaces that connect the session loop in
// internal/app to infrastructure adapters.
//
// The application layer depends only on these interfaces; concrete
// implementations live in internal/wire (frame source over a TCP connection),
// internal/adapters/fs (buffer files on disk), and pkg/log (zerolog).
// Keeping the boundaries here lets the session be tested with in-memory
// fakes and keeps the dependency direction pointing inward.
package ports
