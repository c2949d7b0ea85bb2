// File: server/accept.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"github.com/nikandfor/errors"

	"github.com/momentics/hioload-epoll/api"
)

// acceptAll takes every pending connection off the listener. One edge may
// stand for any number of them, so it stops only at would-block, at an
// accept error or at the drain limit.
func (l *Loop) acceptAll(d *descriptor) error {
	for i := 0; ; i++ {
		if l.cfg.DrainLimit > 0 && i >= l.cfg.DrainLimit {
			l.deferDrain(d)
			return nil
		}

		c, err := d.ln.Accept()
		if errors.Is(err, api.ErrWouldBlock) {
			return nil
		}
		if err != nil {
			// The listener stays registered.
			l.log.Error("accept", "fd", d.fd, "err", err)
			l.metrics.AcceptError()
			return nil
		}
		l.metrics.Accepted()

		if host, port, err := c.PeerName(); err == nil {
			l.log.Info("accepted connection", "fd", c.Fd(), "host", host, "port", port)
		} else {
			l.log.Debug("peer name", "fd", c.Fd(), "err", err)
		}

		if err := l.adopt(c); err != nil {
			return err
		}
	}
}

// adopt makes c non-blocking and registers it. On failure c is closed
// before the error is returned.
func (l *Loop) adopt(c api.Conn) (err error) {
	fd := c.Fd()
	defer func() {
		if err != nil {
			_ = c.Close()
			l.metrics.Closed()
		}
	}()

	if err = c.SetNonblock(); err != nil {
		return errors.Wrap(err, "peer fd %d", fd)
	}
	if _, dup := l.table[fd]; dup {
		return errors.Wrap(api.ErrRegistration, "peer fd %d already owned", fd)
	}
	if err = l.registry.Register(fd, peerInterest); err != nil {
		return errors.Wrap(err, "register peer")
	}

	l.table[fd] = &descriptor{fd: fd, role: api.RolePeer, conn: c}

	return nil
}
