//go:build !linux
// +build !linux

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package affinity

import "github.com/nikandfor/errors"

func pinPlatform(cpuID int) error {
	return errors.New("affinity: not supported on this platform")
}

// Allowed is not supported on this platform.
func Allowed() ([]int, error) {
	return nil, errors.New("affinity: not supported on this platform")
}
