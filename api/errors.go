// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error values shared by the reactor, transport and event loop.

package api

import "github.com/nikandfor/errors"

// Common errors used across the module.
var (
	// ErrWouldBlock reports that a non-blocking accept or read has nothing
	// available right now. It is the normal "fully drained" signal.
	ErrWouldBlock = errors.New("operation would block")

	ErrBind          = errors.New("could not bind")
	ErrRegistration  = errors.New("readiness registration failed")
	ErrNotRegistered = errors.New("descriptor not registered")
	ErrSinkWrite     = errors.New("sink write failed")
	ErrClosed        = errors.New("descriptor is closed")
	ErrNotSupported  = errors.New("operation not supported")
)
