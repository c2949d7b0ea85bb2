//go:build !linux
// +build !linux

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package reactor

import (
	"github.com/nikandfor/errors"

	"github.com/momentics/hioload-epoll/api"
)

// Epoll is unavailable outside Linux.
type Epoll struct{}

// NewEpoll returns an error for unsupported platforms.
func NewEpoll() (*Epoll, error) {
	return nil, errors.Wrap(api.ErrNotSupported, "reactor: edge-triggered epoll")
}

func (*Epoll) Register(int, api.Interest) error   { return api.ErrNotSupported }
func (*Epoll) Deregister(int) error               { return api.ErrNotSupported }
func (*Epoll) Wait([]api.Event, int) (int, error) { return 0, api.ErrNotSupported }
func (*Epoll) Close() error                       { return nil }
