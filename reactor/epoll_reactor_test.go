//go:build linux
// +build linux

package reactor_test

import (
	"errors"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-epoll/api"
	"github.com/momentics/hioload-epoll/reactor"
)

func socketPair(t *testing.T) (int, int) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		t.Fatalf("socketpair: %v", err)
	}
	t.Cleanup(func() {
		unix.Close(fds[0])
		unix.Close(fds[1])
	})
	return fds[0], fds[1]
}

func newEpoll(t *testing.T) *reactor.Epoll {
	t.Helper()
	ep, err := reactor.NewEpoll()
	if err != nil {
		t.Fatalf("NewEpoll: %v", err)
	}
	t.Cleanup(func() { ep.Close() })
	return ep
}

func TestEdgeIsReportedOnce(t *testing.T) {
	ep := newEpoll(t)
	a, b := socketPair(t)

	if err := ep.Register(a, api.InterestRead|api.InterestEdgeTriggered); err != nil {
		t.Fatalf("Register: %v", err)
	}

	events := make([]api.Event, 64)
	if n, _ := ep.Wait(events, 0); n != 0 {
		t.Fatalf("idle wait returned %d events", n)
	}

	unix.Write(b, []byte("ping"))
	n, err := ep.Wait(events, 1000)
	if err != nil || n != 1 {
		t.Fatalf("Wait = %d, %v", n, err)
	}
	if events[0].Fd != a || !events[0].Flags.Readable() {
		t.Fatalf("event = %+v", events[0])
	}

	// Data left unread: edge-triggered interest does not re-arm.
	if n, _ := ep.Wait(events, 0); n != 0 {
		t.Fatalf("edge reported again: %d", n)
	}

	unix.Write(b, []byte("more"))
	if n, _ := ep.Wait(events, 1000); n != 1 {
		t.Fatalf("new activity not reported: %d", n)
	}
}

func TestWaitIsCappedByBuffer(t *testing.T) {
	ep := newEpoll(t)

	var writers []int
	for i := 0; i < 5; i++ {
		a, b := socketPair(t)
		if err := ep.Register(a, api.InterestRead|api.InterestEdgeTriggered); err != nil {
			t.Fatalf("Register: %v", err)
		}
		writers = append(writers, b)
	}
	for _, w := range writers {
		unix.Write(w, []byte{1})
	}

	events := make([]api.Event, 2)
	total := 0
	for i := 0; i < 3; i++ {
		n, err := ep.Wait(events, 100)
		if err != nil {
			t.Fatalf("Wait: %v", err)
		}
		if n > len(events) {
			t.Fatalf("Wait overflowed: %d", n)
		}
		total += n
	}
	if total != 5 {
		t.Errorf("collected %d events over three waits, want 5", total)
	}
}

func TestRegisterErrors(t *testing.T) {
	ep := newEpoll(t)
	a, _ := socketPair(t)

	if err := ep.Register(a, api.InterestRead); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := ep.Register(a, api.InterestRead); !errors.Is(err, api.ErrRegistration) {
		t.Errorf("duplicate register err = %v", err)
	}
	if err := ep.Register(-1, api.InterestRead); !errors.Is(err, api.ErrRegistration) {
		t.Errorf("invalid fd err = %v", err)
	}
	if err := ep.Deregister(a); err != nil {
		t.Errorf("Deregister: %v", err)
	}
	if err := ep.Deregister(a); !errors.Is(err, api.ErrNotRegistered) {
		t.Errorf("second Deregister err = %v", err)
	}
}

func TestHangupFlags(t *testing.T) {
	ep := newEpoll(t)
	a, b := socketPair(t)
	if err := ep.Register(a, api.InterestRead|api.InterestEdgeTriggered); err != nil {
		t.Fatalf("Register: %v", err)
	}

	unix.Shutdown(a, unix.SHUT_RDWR)
	_ = b

	events := make([]api.Event, 4)
	n, err := ep.Wait(events, 1000)
	if err != nil || n != 1 {
		t.Fatalf("Wait = %d, %v", n, err)
	}
	if events[0].Flags&api.EventHangup == 0 || events[0].Flags.Readable() {
		t.Errorf("flags = %v", events[0].Flags)
	}
}
