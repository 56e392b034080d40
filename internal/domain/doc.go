// Package domain contains the core entities and errors of the tracesink
// collector: the wire frame header, the buffer kinds that make up an
// acquisition cycle, and the sentinel errors surfaced by the public API.
//
// The package has no dependencies on infrastructure; everything here is plain
// data and invariants shared by all layers.
package domain
