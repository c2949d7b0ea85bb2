//go:build linux
// +build linux

// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package tcp - non-blocking socket primitive.

package tcp

import (
	"net"
	"strconv"

	"github.com/nikandfor/errors"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-epoll/api"
)

// SetNonblock switches fd to non-blocking mode. Subsequent accept and read
// calls fail with EAGAIN instead of suspending the calling thread.
func SetNonblock(fd int) error {
	if err := unix.SetNonblock(fd, true); err != nil {
		return errors.Wrap(err, "set non-blocking fd %d", fd)
	}
	return nil
}

// Conn is an accepted peer socket addressed by its raw descriptor.
type Conn struct {
	fd   int
	peer unix.Sockaddr
}

var _ api.Conn = (*Conn)(nil)

// Fd returns the raw descriptor, or -1 once closed.
func (c *Conn) Fd() int { return c.fd }

// SetNonblock makes the connection non-blocking.
func (c *Conn) SetNonblock() error {
	if c.fd < 0 {
		return api.ErrClosed
	}
	return SetNonblock(c.fd)
}

// Read reads into p. It returns api.ErrWouldBlock when the socket buffer is
// empty and (0, nil) when the peer has shut down its write side.
func (c *Conn) Read(p []byte) (int, error) {
	if c.fd < 0 {
		return 0, api.ErrClosed
	}
	for {
		n, err := unix.Read(c.fd, p)
		switch {
		case err == nil:
			return n, nil
		case err == unix.EINTR:
			continue
		case wouldBlock(err):
			return 0, api.ErrWouldBlock
		default:
			return 0, errors.Wrap(err, "read fd %d", c.fd)
		}
	}
}

// PeerName renders the remote address numerically.
func (c *Conn) PeerName() (host, port string, err error) {
	return nameInfo(c.peer)
}

// Close closes the descriptor. Calling Close again is a no-op.
func (c *Conn) Close() error {
	if c.fd < 0 {
		return nil
	}
	err := unix.Close(c.fd)
	c.fd = -1
	if err != nil {
		return errors.Wrap(err, "close")
	}
	return nil
}

func wouldBlock(err error) bool {
	return err == unix.EAGAIN || err == unix.EWOULDBLOCK
}

// nameInfo is the numeric-host, numeric-service rendering of a socket address.
func nameInfo(sa unix.Sockaddr) (host, port string, err error) {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return net.IP(a.Addr[:]).String(), strconv.Itoa(a.Port), nil
	case *unix.SockaddrInet6:
		host = net.IP(a.Addr[:]).String()
		if a.ZoneId != 0 {
			host += "%" + zoneName(a.ZoneId)
		}
		return host, strconv.Itoa(a.Port), nil
	case nil:
		return "", "", errors.New("no address")
	default:
		return "", "", errors.New("unsupported address family %T", sa)
	}
}

func zoneName(idx uint32) string {
	if ifi, err := net.InterfaceByIndex(int(idx)); err == nil {
		return ifi.Name
	}
	return strconv.FormatUint(uint64(idx), 10)
}
