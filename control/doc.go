// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime counters for the edge-triggered event loop.
//
// The loop updates counters from its single thread; snapshots may be taken
// from any goroutine.
package control
