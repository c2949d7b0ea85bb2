// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"github.com/eapache/queue"

	"github.com/momentics/hioload-epoll/api"
)

// Listener hands out queued connections and errors, then api.ErrWouldBlock.
type Listener struct {
	FD int

	Accepts    int
	CloseCalls int

	backlog *queue.Queue // of api.Conn or error
}

var _ api.Listener = (*Listener)(nil)

func NewListener(fd int) *Listener {
	return &Listener{FD: fd, backlog: queue.New()}
}

// Queue appends pending connections.
func (l *Listener) Queue(conns ...api.Conn) *Listener {
	for _, c := range conns {
		l.backlog.Add(c)
	}
	return l
}

// QueueErr appends an accept failure.
func (l *Listener) QueueErr(err error) *Listener {
	l.backlog.Add(err)
	return l
}

// Backlog reports how many entries are still queued.
func (l *Listener) Backlog() int { return l.backlog.Length() }

func (l *Listener) Fd() int { return l.FD }

func (l *Listener) Accept() (api.Conn, error) {
	if l.CloseCalls > 0 {
		return nil, api.ErrClosed
	}
	l.Accepts++
	if l.backlog.Length() == 0 {
		return nil, api.ErrWouldBlock
	}
	switch v := l.backlog.Remove().(type) {
	case error:
		return nil, v
	default:
		return v.(api.Conn), nil
	}
}

func (l *Listener) Close() error {
	l.CloseCalls++
	return nil
}
