// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"github.com/eapache/queue"

	"github.com/momentics/hioload-epoll/api"
)

type segment struct {
	data []byte
	eof  bool
	err  error
}

// Conn is a non-blocking peer socket fed by queued segments. Once the queue
// is exhausted Read reports api.ErrWouldBlock; an EOF marker is sticky.
type Conn struct {
	FD   int
	Host string
	Port string

	NameErr     error
	NonblockErr error

	Nonblocking     bool
	Reads           int
	ReadsAfterClose int
	CloseCalls      int

	segments *queue.Queue
	off      int
}

var _ api.Conn = (*Conn)(nil)

func NewConn(fd int) *Conn {
	return &Conn{
		FD:       fd,
		Host:     "192.0.2.10",
		Port:     "40000",
		segments: queue.New(),
	}
}

// Push queues one transport-level segment.
func (c *Conn) Push(p []byte) *Conn {
	if len(p) > 0 {
		c.segments.Add(&segment{data: append([]byte(nil), p...)})
	}
	return c
}

// PushEOF queues an orderly remote shutdown.
func (c *Conn) PushEOF() *Conn {
	c.segments.Add(&segment{eof: true})
	return c
}

// PushErr queues a read failure.
func (c *Conn) PushErr(err error) *Conn {
	c.segments.Add(&segment{err: err})
	return c
}

func (c *Conn) Fd() int { return c.FD }

func (c *Conn) SetNonblock() error {
	if c.NonblockErr != nil {
		return c.NonblockErr
	}
	c.Nonblocking = true
	return nil
}

func (c *Conn) Read(p []byte) (int, error) {
	if c.CloseCalls > 0 {
		c.ReadsAfterClose++
		return 0, api.ErrClosed
	}
	c.Reads++

	if c.segments.Length() == 0 {
		return 0, api.ErrWouldBlock
	}

	seg := c.segments.Peek().(*segment)
	switch {
	case seg.err != nil:
		c.segments.Remove()
		return 0, seg.err
	case seg.eof:
		return 0, nil
	}

	n := copy(p, seg.data[c.off:])
	c.off += n
	if c.off == len(seg.data) {
		c.segments.Remove()
		c.off = 0
	}
	return n, nil
}

func (c *Conn) PeerName() (string, string, error) {
	if c.NameErr != nil {
		return "", "", c.NameErr
	}
	return c.Host, c.Port, nil
}

func (c *Conn) Close() error {
	c.CloseCalls++
	return nil
}

// Closed reports whether Close was called.
func (c *Conn) Closed() bool { return c.CloseCalls > 0 }
