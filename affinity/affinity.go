// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in separate files guarded by build tags.

package affinity

// Pin binds the calling OS thread to one logical CPU. The caller must hold
// runtime.LockOSThread for the pin to stay with its goroutine.
func Pin(cpuID int) error {
	return pinPlatform(cpuID)
}
