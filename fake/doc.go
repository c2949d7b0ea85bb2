// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

// Package fake provides in-memory test doubles for the readiness registry,
// the listener and peer sockets. Nothing here touches the kernel.
package fake
