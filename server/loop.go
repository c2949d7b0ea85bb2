// File: server/loop.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Edge-triggered event loop: one wait, then dispatch of every batch entry
// to the accept or connection handler according to the descriptor role.

package server

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/eapache/queue"
	"github.com/nikandfor/errors"

	"github.com/momentics/hioload-epoll/affinity"
	"github.com/momentics/hioload-epoll/api"
	"github.com/momentics/hioload-epoll/control"
)

// New builds a loop that owns ln and registry. The listener is registered
// for edge-triggered readability; failure to do so is fatal.
func New(ln api.Listener, registry api.Registry, opts ...Option) (*Loop, error) {
	l := &Loop{
		cfg:      *DefaultConfig(),
		registry: registry,
		table:    make(map[int]*descriptor),
		deferred: queue.New(),
		sink:     os.Stdout,
	}
	for _, o := range opts {
		o(l)
	}

	def := DefaultConfig()
	if l.cfg.ReadBufferSize <= 0 {
		l.cfg.ReadBufferSize = def.ReadBufferSize
	}
	if l.cfg.MaxEvents <= 0 {
		l.cfg.MaxEvents = def.MaxEvents
	}
	if l.cfg.DrainLimit < 0 {
		l.cfg.DrainLimit = 0
	}
	if l.log == nil {
		l.log = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	l.log = l.log.With("component", "eventloop")
	if l.metrics == nil {
		l.metrics = control.NewCounters()
	}

	l.batch = make([]api.Event, l.cfg.MaxEvents)
	l.buf = make([]byte, l.cfg.ReadBufferSize)

	if err := l.AddListener(ln); err != nil {
		return nil, err
	}

	return l, nil
}

// AddListener registers another listening socket with the loop.
func (l *Loop) AddListener(ln api.Listener) error {
	fd := ln.Fd()
	if _, dup := l.table[fd]; dup {
		return errors.Wrap(api.ErrRegistration, "listener fd %d already owned", fd)
	}
	if err := l.registry.Register(fd, listenerInterest); err != nil {
		return errors.Wrap(err, "register listener")
	}

	l.table[fd] = &descriptor{fd: fd, role: api.RoleListener, ln: ln}
	l.log.Debug("listener registered", "fd", fd)

	return nil
}

// Run polls forever. It returns only on a fatal error.
// With Config.PinCPU set, the calling goroutine is locked to its OS thread and
// stays locked after Run returns.
func (l *Loop) Run() error {
	if l.cfg.PinCPU {
		runtime.LockOSThread()
		if err := affinity.Pin(l.cfg.CPU); err != nil {
			l.log.Warn("cpu pinning", "cpu", l.cfg.CPU, "err", err)
		} else {
			l.log.Debug("pinned", "cpu", l.cfg.CPU)
		}
	}

	for {
		if err := l.Poll(); err != nil {
			return err
		}
	}
}

// Poll performs one wait and consumes the whole readiness batch, then
// resumes drains deferred by the drain limit. Recoverable failures are
// logged and absorbed; the returned error is always fatal.
func (l *Loop) Poll() error {
	timeout := l.cfg.WaitTimeout
	if l.deferred.Length() > 0 {
		timeout = 0
	}

	n, err := l.registry.Wait(l.batch, timeout)
	l.metrics.Waited()
	if err != nil {
		return errors.Wrap(err, "wait")
	}

	for _, ev := range l.batch[:n] {
		if err := l.dispatch(ev); err != nil {
			return err
		}
	}

	return l.resumeDeferred()
}

func (l *Loop) dispatch(ev api.Event) error {
	d, ok := l.table[ev.Fd]
	if !ok {
		l.log.Debug("readiness for unowned descriptor", "fd", ev.Fd, "flags", ev.Flags)
		return nil
	}

	// Applied to listeners too.
	if !ev.Flags.Readable() {
		l.log.Error("unexpected readiness", "fd", d.fd, "role", d.role, "flags", ev.Flags)
		l.metrics.Unexpected()
		l.release(d)
		return nil
	}

	switch d.role {
	case api.RoleListener:
		return l.acceptAll(d)
	case api.RolePeer:
		return l.drain(d)
	default:
		return nil
	}
}

func (l *Loop) deferDrain(d *descriptor) {
	l.metrics.Deferred()
	if d.deferred {
		return
	}
	d.deferred = true
	l.deferred.Add(d)
}

func (l *Loop) resumeDeferred() error {
	for n := l.deferred.Length(); n > 0; n-- {
		d := l.deferred.Remove().(*descriptor)
		d.deferred = false
		if d.closed {
			continue
		}

		var err error
		switch d.role {
		case api.RoleListener:
			err = l.acceptAll(d)
		case api.RolePeer:
			err = l.drain(d)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// release is the single exit point of a descriptor: it drops the interest
// entry and the table slot, then closes the socket. Safe to call twice.
func (l *Loop) release(d *descriptor) {
	if d.closed {
		return
	}
	d.closed = true
	delete(l.table, d.fd)

	if err := l.registry.Deregister(d.fd); err != nil && !errors.Is(err, api.ErrNotRegistered) {
		l.log.Warn("deregister", "fd", d.fd, "err", err)
	}

	var err error
	switch d.role {
	case api.RoleListener:
		err = d.ln.Close()
	case api.RolePeer:
		err = d.conn.Close()
		l.metrics.Closed()
	}
	if err != nil {
		l.log.Error("close", "fd", d.fd, "role", d.role, "err", err)
	}
}

// Close releases every owned descriptor and the registry.
func (l *Loop) Close() error {
	for _, d := range l.table {
		l.release(d)
	}
	for l.deferred.Length() > 0 {
		l.deferred.Remove()
	}
	return l.registry.Close()
}

// Descriptors reports how many sockets the loop currently owns.
func (l *Loop) Descriptors() int { return len(l.table) }

// Stats returns a snapshot of the loop counters.
func (l *Loop) Stats() map[string]any { return l.metrics.Snapshot() }
