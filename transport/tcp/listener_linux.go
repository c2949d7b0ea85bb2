//go:build linux
// +build linux

// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package tcp - dual-stack non-blocking listener.

package tcp

import (
	"github.com/nikandfor/errors"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-epoll/api"
)

// ListenConfig holds configuration for the TCP listener.
type ListenConfig struct {
	Backlog   int      // listen backlog, unix.SOMAXCONN when zero
	ReuseAddr bool     // set SO_REUSEADDR before bind
	Resolver  Resolver // bind candidates, PassiveResolver when nil
}

// DefaultListenConfig returns the configuration used by BindAndListen when
// none is given.
func DefaultListenConfig() *ListenConfig {
	return &ListenConfig{
		Backlog:   unix.SOMAXCONN,
		ReuseAddr: false,
		Resolver:  PassiveResolver{},
	}
}

// Listener is a bound, non-blocking, listening socket.
type Listener struct {
	fd     int
	family int
}

var _ api.Listener = (*Listener)(nil)

// BindAndListen resolves every local candidate for port, binds the first one
// that accepts a bind, makes it non-blocking and starts listening.
func BindAndListen(port string, cfg *ListenConfig) (*Listener, error) {
	if cfg == nil {
		cfg = DefaultListenConfig()
	}
	res := cfg.Resolver
	if res == nil {
		res = PassiveResolver{}
	}
	backlog := cfg.Backlog
	if backlog <= 0 {
		backlog = unix.SOMAXCONN
	}

	cands, err := res.Resolve(port)
	if err != nil {
		return nil, errors.Wrap(err, "resolve")
	}

	fd, family, lastErr := -1, 0, error(nil)
	for _, c := range cands {
		s, err := unix.Socket(c.Family, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
		if err != nil {
			lastErr = err
			continue
		}
		if cfg.ReuseAddr {
			_ = unix.SetsockoptInt(s, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
		}
		if err := unix.Bind(s, c.Sockaddr); err != nil {
			lastErr = err
			unix.Close(s)
			continue
		}
		fd, family = s, c.Family
		break
	}
	if fd < 0 {
		return nil, errors.Wrap(api.ErrBind, "port %q: %v", port, lastErr)
	}

	if err := SetNonblock(fd); err != nil {
		unix.Close(fd)
		return nil, err
	}
	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "listen")
	}

	return &Listener{fd: fd, family: family}, nil
}

// Fd returns the listening descriptor, or -1 once closed.
func (l *Listener) Fd() int { return l.fd }

// Family reports the address family of the bound candidate.
func (l *Listener) Family() int { return l.family }

// Addr returns the bound host and port in numeric form.
func (l *Listener) Addr() (host, port string, err error) {
	if l.fd < 0 {
		return "", "", api.ErrClosed
	}
	sa, err := unix.Getsockname(l.fd)
	if err != nil {
		return "", "", errors.Wrap(err, "getsockname")
	}
	return nameInfo(sa)
}

// Accept takes one pending connection. It returns api.ErrWouldBlock once the
// accept queue is empty. The returned Conn is still in blocking mode.
func (l *Listener) Accept() (api.Conn, error) {
	if l.fd < 0 {
		return nil, api.ErrClosed
	}
	for {
		nfd, sa, err := unix.Accept4(l.fd, unix.SOCK_CLOEXEC)
		switch {
		case err == nil:
			return &Conn{fd: nfd, peer: sa}, nil
		case err == unix.EINTR:
			continue
		case wouldBlock(err):
			return nil, api.ErrWouldBlock
		default:
			return nil, errors.Wrap(err, "accept")
		}
	}
}

// Close closes the listening socket. Calling Close again is a no-op.
func (l *Listener) Close() error {
	if l.fd < 0 {
		return nil
	}
	err := unix.Close(l.fd)
	l.fd = -1
	if err != nil {
		return errors.Wrap(err, "close")
	}
	return nil
}
