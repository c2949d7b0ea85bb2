// File: server/types.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"io"
	"log/slog"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-epoll/api"
	"github.com/momentics/hioload-epoll/control"
)

// Config holds all event loop parameters.
type Config struct {
	ReadBufferSize int  // bytes per read call on a peer
	MaxEvents      int  // readiness batch capacity per wait
	DrainLimit     int  // max accepts/reads per notification, 0 = until would-block
	WaitTimeout    int  // wait timeout in milliseconds, negative = forever
	PinCPU         bool // pin the thread executing Run to CPU
	CPU            int
}

// DefaultConfig returns the defaults: 512-byte reads, 64-entry batches,
// unbounded drains and an infinite wait.
func DefaultConfig() *Config {
	return &Config{
		ReadBufferSize: 512,
		MaxEvents:      64,
		DrainLimit:     0,
		WaitTimeout:    -1,
		PinCPU:         false,
	}
}

// Loop is a single-threaded, edge-triggered accept/drain event loop.
// All methods except Stats must be called from one goroutine.
type Loop struct {
	cfg      Config
	registry api.Registry
	table    map[int]*descriptor
	batch    []api.Event // reused by every wait
	buf      []byte      // reused by every read
	deferred *queue.Queue

	sink    io.Writer
	log     *slog.Logger
	metrics *control.Counters
}

// descriptor is a socket owned by the loop, tagged with its role.
type descriptor struct {
	fd       int
	role     api.Role
	ln       api.Listener // set for RoleListener
	conn     api.Conn     // set for RolePeer
	closed   bool
	deferred bool // queued for a resumed drain
}

const (
	listenerInterest = api.InterestRead | api.InterestEdgeTriggered
	peerInterest     = api.InterestRead | api.InterestEdgeTriggered
)
