// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import "bytes"

// Sink collects forwarded bytes. Once Fail is set every write fails; with
// Short set writes report one byte less than given.
type Sink struct {
	bytes.Buffer

	Fail   error
	Short  bool
	Writes int
}

func (s *Sink) Write(p []byte) (int, error) {
	s.Writes++
	if s.Fail != nil {
		return 0, s.Fail
	}
	if s.Short && len(p) > 0 {
		return s.Buffer.Write(p[:len(p)-1])
	}
	return s.Buffer.Write(p)
}
