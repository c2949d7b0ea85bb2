// File: server/conn.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"io"

	"github.com/nikandfor/errors"

	"github.com/momentics/hioload-epoll/api"
)

// drain reads a peer until would-block and forwards every chunk to the sink.
// No second notification arrives for bytes left behind.
func (l *Loop) drain(d *descriptor) error {
	done := false

	for i := 0; ; i++ {
		if l.cfg.DrainLimit > 0 && i >= l.cfg.DrainLimit {
			l.deferDrain(d)
			break
		}

		n, err := d.conn.Read(l.buf)
		if errors.Is(err, api.ErrWouldBlock) {
			break
		}
		if err != nil {
			l.log.Error("read", "fd", d.fd, "err", err)
			l.metrics.ReadError()
			done = true
			break
		}
		if n == 0 {
			done = true
			break
		}

		if err := l.forward(d.fd, l.buf[:n]); err != nil {
			return err
		}
	}

	if done {
		l.release(d)
		l.log.Info("closed connection", "fd", d.fd)
	}

	return nil
}

// forward writes p to the sink in full. Any failure is fatal.
func (l *Loop) forward(fd int, p []byte) error {
	n, err := l.sink.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		l.log.Error("sink write", "fd", fd, "err", err)
		return errors.Wrap(api.ErrSinkWrite, "fd %d: %v", fd, err)
	}

	l.metrics.Forwarded(n)

	return nil
}
