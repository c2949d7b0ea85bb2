// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"github.com/eapache/queue"
	"github.com/nikandfor/errors"

	"github.com/momentics/hioload-epoll/api"
)

// Registry is an edge-triggered api.Registry driven by Fire. Edges for the
// same descriptor coalesce until a Wait hands them out; edges of a
// descriptor deregistered in the meantime are dropped.
type Registry struct {
	Interests map[int]api.Interest

	// RegisterErr, keyed by fd, makes Register fail.
	RegisterErr map[int]error
	// WaitErr makes the next Wait fail once.
	WaitErr error

	WaitCalls  int
	Timeouts   []int
	Registered []int // every fd ever registered, in order
	Closed     bool

	pending *queue.Queue // of *api.Event
	byFd    map[int]*api.Event
}

var _ api.Registry = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{
		Interests:   make(map[int]api.Interest),
		RegisterErr: make(map[int]error),
		pending:     queue.New(),
		byFd:        make(map[int]*api.Event),
	}
}

func (r *Registry) Register(fd int, interest api.Interest) error {
	if err := r.RegisterErr[fd]; err != nil {
		return err
	}
	if fd < 0 {
		return errors.Wrap(api.ErrRegistration, "invalid fd %d", fd)
	}
	if _, ok := r.Interests[fd]; ok {
		return errors.Wrap(api.ErrRegistration, "fd %d already registered", fd)
	}
	r.Interests[fd] = interest
	r.Registered = append(r.Registered, fd)
	return nil
}

func (r *Registry) Deregister(fd int) error {
	if _, ok := r.Interests[fd]; !ok {
		return api.ErrNotRegistered
	}
	delete(r.Interests, fd)
	if ev, ok := r.byFd[fd]; ok {
		ev.Flags = 0 // dropped on dequeue
		delete(r.byFd, fd)
	}
	return nil
}

// IsRegistered reports whether fd has an interest entry.
func (r *Registry) IsRegistered(fd int) bool {
	_, ok := r.Interests[fd]
	return ok
}

// Fire records a readiness edge for fd. It is ignored for descriptors
// without an interest entry.
func (r *Registry) Fire(fd int, flags api.EventFlags) {
	if !r.IsRegistered(fd) {
		return
	}
	if ev, ok := r.byFd[fd]; ok {
		ev.Flags |= flags
		return
	}
	ev := &api.Event{Fd: fd, Flags: flags}
	r.byFd[fd] = ev
	r.pending.Add(ev)
}

// Pending reports how many edges are waiting to be handed out.
func (r *Registry) Pending() int { return len(r.byFd) }

// Wait never blocks: it returns whatever is pending, up to len(events).
func (r *Registry) Wait(events []api.Event, timeoutMs int) (int, error) {
	r.WaitCalls++
	r.Timeouts = append(r.Timeouts, timeoutMs)
	if err := r.WaitErr; err != nil {
		r.WaitErr = nil
		return 0, err
	}

	n := 0
	for n < len(events) && r.pending.Length() > 0 {
		ev := r.pending.Remove().(*api.Event)
		if ev.Flags == 0 {
			continue
		}
		delete(r.byFd, ev.Fd)
		events[n] = *ev
		n++
	}
	return n, nil
}

func (r *Registry) Close() error {
	r.Closed = true
	return nil
}
