//go:build !unix

package registry

import "errors"

// ErrNoCPUClock indicates the host has no process CPU time source; the
// session falls back to the inert backend.
var ErrNoCPUClock = errors.New("process cpu times unavailable on this platform")

func probeCPUClock() error {
	return ErrNoCPUClock
}

func cpuTimes() (user, sys float64) {
	return 0, 0
}
