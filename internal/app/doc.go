// Package app contains the application layer of the collector: the listener
// that accepts the single instrument connection, the session loop that drives
// frame reception and persistence cycle by cycle, and the lifecycle state
// machine the embeddable facade is built on.
package app
