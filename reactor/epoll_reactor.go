//go:build linux
// +build linux

// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor - Linux epoll implementation.

package reactor

import (
	"github.com/nikandfor/errors"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-epoll/api"
)

// Epoll implements api.Registry using Linux epoll.
// It is not safe for concurrent use; the event loop is its only caller.
type Epoll struct {
	epfd int
	raw  []unix.EpollEvent // reused between Wait calls
}

var _ api.Registry = (*Epoll)(nil)

// NewEpoll creates a new epoll instance.
func NewEpoll() (*Epoll, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, errors.Wrap(err, "epoll create")
	}

	return &Epoll{epfd: epfd}, nil
}

// Register adds a file descriptor to the epoll interest list.
func (r *Epoll) Register(fd int, interest api.Interest) error {
	ev := unix.EpollEvent{
		Events: epollMask(interest),
		Fd:     int32(fd),
	}

	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return errors.Wrap(api.ErrRegistration, "epoll ctl add fd %d: %v", fd, err)
	}

	return nil
}

// Deregister removes a file descriptor from the epoll interest list.
func (r *Epoll) Deregister(fd int) error {
	err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	switch {
	case err == nil:
		return nil
	case err == unix.ENOENT, err == unix.EBADF:
		return errors.Wrap(api.ErrNotRegistered, "epoll ctl del fd %d", fd)
	default:
		return errors.Wrap(err, "epoll ctl del fd %d", fd)
	}
}

// Wait blocks for readiness on registered descriptors.
// timeoutMs < 0 means block infinitely. An interrupted wait reports zero
// events and no error.
func (r *Epoll) Wait(events []api.Event, timeoutMs int) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	if cap(r.raw) < len(events) {
		r.raw = make([]unix.EpollEvent, len(events))
	}
	raw := r.raw[:len(events)]

	if timeoutMs < 0 {
		timeoutMs = -1
	}

	n, err := unix.EpollWait(r.epfd, raw, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, errors.Wrap(err, "epoll wait")
	}

	for i := 0; i < n; i++ {
		events[i] = api.Event{
			Fd:    int(raw[i].Fd),
			Flags: eventFlags(raw[i].Events),
		}
	}

	return n, nil
}

// Close releases the epoll file descriptor.
func (r *Epoll) Close() error {
	if r.epfd < 0 {
		return nil
	}
	err := unix.Close(r.epfd)
	r.epfd = -1
	return err
}

func epollMask(interest api.Interest) uint32 {
	var mask uint32
	if interest&api.InterestRead != 0 {
		mask |= unix.EPOLLIN
	}
	if interest&api.InterestEdgeTriggered != 0 {
		mask |= unix.EPOLLET
	}
	return mask
}

func eventFlags(mask uint32) (f api.EventFlags) {
	if mask&unix.EPOLLIN != 0 {
		f |= api.EventRead
	}
	if mask&unix.EPOLLERR != 0 {
		f |= api.EventError
	}
	if mask&unix.EPOLLHUP != 0 {
		f |= api.EventHangup
	}
	if mask&unix.EPOLLRDHUP != 0 {
		f |= api.EventReadHangup
	}
	return f
}
