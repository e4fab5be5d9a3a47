//go:build unix

package registry

import "syscall"

// probeCPUClock verifies that getrusage works on this host before the
// registry advertises CPU-time components.
func probeCPUClock() error {
	var ru syscall.Rusage

	return syscall.Getrusage(syscall.RUSAGE_SELF, &ru)
}

// cpuTimes returns the process user and system CPU times in seconds.
func cpuTimes() (user, sys float64) {
	var ru syscall.Rusage

	err := syscall.Getrusage(syscall.RUSAGE_SELF, &ru)
	if err != nil {
		return 0, 0
	}

	user = float64(ru.Utime.Sec) + float64(ru.Utime.Usec)/1e6
	sys = float64(ru.Stime.Sec) + float64(ru.Stime.Usec)/1e6

	return user, sys
}
