// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector for the event loop.

package control

import (
	"sync/atomic"
	"time"
)

// Metric keys reported by Snapshot.
const (
	MetricAccepted       = "accepted"
	MetricClosed         = "closed"
	MetricOpen           = "open"
	MetricBytesForwarded = "bytes_forwarded"
	MetricAcceptErrors   = "accept_errors"
	MetricReadErrors     = "read_errors"
	MetricUnexpected     = "unexpected_readiness"
	MetricDeferred       = "deferred_drains"
	MetricWaits          = "waits"
	MetricUpdated        = "updated"
)

// Counters holds monotonically increasing loop counters.
type Counters struct {
	accepted     atomic.Int64
	closed       atomic.Int64
	bytes        atomic.Int64
	acceptErrors atomic.Int64
	readErrors   atomic.Int64
	unexpected   atomic.Int64
	deferred     atomic.Int64
	waits        atomic.Int64
	updated      atomic.Int64 // unix nanos
}

// NewCounters creates a zeroed counter set.
func NewCounters() *Counters {
	return &Counters{}
}

func (c *Counters) touch() { c.updated.Store(time.Now().UnixNano()) }

// Accepted counts a connection taken off the accept queue.
func (c *Counters) Accepted() {
	c.accepted.Add(1)
	c.touch()
}

// Closed counts a descriptor released by the loop.
func (c *Counters) Closed() {
	c.closed.Add(1)
	c.touch()
}

// Forwarded adds n bytes written to the sink.
func (c *Counters) Forwarded(n int) {
	c.bytes.Add(int64(n))
	c.touch()
}

func (c *Counters) AcceptError() {
	c.acceptErrors.Add(1)
	c.touch()
}

func (c *Counters) ReadError() {
	c.readErrors.Add(1)
	c.touch()
}

// Unexpected counts batch entries closed for error, hangup or missing
// readability.
func (c *Counters) Unexpected() {
	c.unexpected.Add(1)
	c.touch()
}

// Deferred counts drains cut short by the drain limit.
func (c *Counters) Deferred() {
	c.deferred.Add(1)
	c.touch()
}

func (c *Counters) Waited() { c.waits.Add(1) }

// Snapshot returns the latest values keyed by the Metric* constants.
func (c *Counters) Snapshot() map[string]any {
	accepted, closed := c.accepted.Load(), c.closed.Load()

	out := map[string]any{
		MetricAccepted:       accepted,
		MetricClosed:         closed,
		MetricOpen:           accepted - closed,
		MetricBytesForwarded: c.bytes.Load(),
		MetricAcceptErrors:   c.acceptErrors.Load(),
		MetricReadErrors:     c.readErrors.Load(),
		MetricUnexpected:     c.unexpected.Load(),
		MetricDeferred:       c.deferred.Load(),
		MetricWaits:          c.waits.Load(),
	}
	if ns := c.updated.Load(); ns != 0 {
		out[MetricUpdated] = time.Unix(0, ns)
	}
	return out
}
