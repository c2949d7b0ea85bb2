// File: api/events.go
// Package api defines readiness event types for hioload-epoll.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Role tags a descriptor owned by the event loop.
type Role uint8

const (
	RoleListener Role = iota + 1
	RolePeer
)

func (r Role) String() string {
	switch r {
	case RoleListener:
		return "listener"
	case RolePeer:
		return "peer"
	default:
		return "unknown"
	}
}

// Interest describes what a registered descriptor wants to be notified about.
type Interest uint8

const (
	InterestRead          Interest = 0x1
	InterestEdgeTriggered Interest = 0x2
)

// EventFlags is the set of conditions observed on a ready descriptor.
type EventFlags uint16

const (
	EventRead       EventFlags = 0x1
	EventError      EventFlags = 0x2
	EventHangup     EventFlags = 0x4
	EventReadHangup EventFlags = 0x8
)

// Readable reports whether the entry is a plain readability edge, i.e. the
// readable condition is present and neither error nor hangup is.
func (f EventFlags) Readable() bool {
	return f&EventRead != 0 && f&(EventError|EventHangup) == 0
}

// String returns a string representation of EventFlags.
func (f EventFlags) String() (str string) {
	name := func(flag EventFlags, name string) {
		if f&flag == 0 {
			return
		}
		if str != "" {
			str += "|"
		}
		str += name
	}

	name(EventRead, "EventRead")
	name(EventError, "EventError")
	name(EventHangup, "EventHangup")
	name(EventReadHangup, "EventReadHangup")

	if str == "" {
		str = "none"
	}
	return
}

// Event is one entry of a readiness batch.
type Event struct {
	Fd    int        // descriptor reported ready
	Flags EventFlags // conditions observed on it
}
