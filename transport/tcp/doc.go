// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package tcp implements the non-blocking TCP socket primitives used by the
// edge-triggered event loop: a dual-stack listener bound with a
// resolve-then-first-bind policy, and raw-descriptor peer connections whose
// accept and read calls report api.ErrWouldBlock instead of suspending.
package tcp
