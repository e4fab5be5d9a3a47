package mark

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"
	"sync/atomic"

	"go.jacobcolvin.com/perfmark/settings"
)

// ErrProfilerActive indicates a nested profiler activation. CPU profiling
// is process-global and cannot stack, so the second activation fails fast
// and the caller must restructure to avoid nesting.
var ErrProfilerActive = errors.New("profiler already active")

// CPUProfileFile is the profile file name written under the configured
// output directory.
const CPUProfileFile = "cpu.prof"

var profilerActive atomic.Bool

// Profiler measures every function executed within its scope rather than
// a single region boundary: the dynamic extent is CPU-profiled via
// [runtime/pprof], attributing samples to function, file, and line, while
// a boundary [Marker] measures the scope itself. Display mode is always
// [ModeFull]; per-call attribution requires source location.
//
// Create instances with [NewProfiler]. At most one Profiler may be active
// in the process at a time.
type Profiler struct {
	m       *Marker
	cpuFile *os.File
	guarded bool
	started bool
}

// NewProfiler constructs a [Profiler] using the global component set plus
// any supplied options. A caller-supplied display mode is overridden to
// [ModeFull].
func NewProfiler(opts ...Option) (*Profiler, error) {
	opts = append(opts, WithMode(ModeFull), withSkip(1))

	m, err := New("profile", opts...)
	if err != nil {
		return nil, err
	}

	return &Profiler{m: m}, nil
}

// Start installs the scope-wide CPU profile and starts the boundary
// marker. A concurrent active profiler fails with [ErrProfilerActive].
// In fallback or disabled mode no profile is installed and no file is
// written.
func (p *Profiler) Start() error {
	if p.started {
		return nil
	}

	p.started = true

	if p.m.enabled {
		if !profilerActive.CompareAndSwap(false, true) {
			p.started = false

			return ErrProfilerActive
		}

		p.guarded = true

		err := p.startProfile()
		if err != nil {
			p.release()
			p.started = false

			return err
		}
	}

	p.m.Start()

	return nil
}

// Stop uninstalls the profile unconditionally, stops the boundary marker,
// and hands its samples to the backend.
func (p *Profiler) Stop() error {
	if !p.started {
		return nil
	}

	p.m.Stop()

	var closeErr error

	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		closeErr = p.cpuFile.Close()
		p.cpuFile = nil
	}

	p.release()

	if closeErr != nil {
		return fmt.Errorf("closing cpu profile: %w", closeErr)
	}

	return nil
}

// Region profiles fn's dynamic extent. The profile is uninstalled on every
// exit path, including panics, before the failure propagates.
func (p *Profiler) Region(fn func() error) (err error) {
	err = p.Start()
	if err != nil {
		return err
	}

	defer func() {
		stopErr := p.Stop()
		if err == nil {
			err = stopErr
		}
	}()

	return fn()
}

func (p *Profiler) startProfile() error {
	path, err := outputPath(CPUProfileFile)
	if err != nil {
		return err
	}

	f, err := os.Create(path) //nolint:gosec // Profile path derives from configured output dir.
	if err != nil {
		return fmt.Errorf("creating cpu profile: %w", err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		_ = f.Close()

		return fmt.Errorf("starting cpu profile: %w", err)
	}

	p.cpuFile = f

	return nil
}

func (p *Profiler) release() {
	if p.guarded {
		profilerActive.Store(false)
		p.guarded = false
	}
}

// outputPath joins name onto the configured output directory, creating
// the directory if needed.
func outputPath(name string) (string, error) {
	dir := settings.Snapshot().OutputDir
	if dir == "" {
		return name, nil
	}

	err := os.MkdirAll(dir, 0o750)
	if err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	return filepath.Join(dir, name), nil
}
