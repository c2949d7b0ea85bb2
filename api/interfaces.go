// File: api/interfaces.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Contracts between the event loop and its collaborators: the readiness
// registry and the non-blocking sockets it multiplexes.

package api

// Registry is an edge-triggered readiness multiplexer.
type Registry interface {
	// Register adds exactly one interest entry for fd.
	Register(fd int, interest Interest) error

	// Deregister removes the interest entry for fd.
	Deregister(fd int) error

	// Wait blocks until at least one registered descriptor has a readiness
	// edge or timeoutMs elapses (negative means forever). It fills at most
	// len(events) entries and returns how many were written. Readiness not
	// returned by this call stays pending for a later one.
	Wait(events []Event, timeoutMs int) (int, error)

	// Close releases the multiplexer.
	Close() error
}

// Conn is a connected peer socket. The event loop makes it non-blocking
// before registering it.
type Conn interface {
	// Fd returns the OS-level descriptor.
	Fd() int

	// SetNonblock switches the socket to non-blocking mode.
	SetNonblock() error

	// Read returns ErrWouldBlock when no bytes are available and (0, nil)
	// on orderly remote shutdown.
	Read(p []byte) (n int, err error)

	// PeerName returns the numeric host and port of the remote end.
	PeerName() (host, port string, err error)

	Close() error
}

// Listener is a non-blocking listening socket.
type Listener interface {
	Fd() int

	// Accept returns ErrWouldBlock when no connection is pending.
	Accept() (Conn, error)

	Close() error
}
