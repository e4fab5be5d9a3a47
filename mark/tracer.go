package mark

import (
	"errors"
	"fmt"
	"os"
	"runtime/trace"
	"sync/atomic"
)

// ErrTracerActive indicates a nested tracer activation. Execution tracing
// is process-global and cannot stack, so the second activation fails fast.
var ErrTracerActive = errors.New("tracer already active")

// TraceFile is the execution trace file name written under the configured
// output directory.
const TraceFile = "trace.out"

var tracerActive atomic.Bool

// Tracer records everything executed within its scope at the finest
// granularity the runtime offers, via [runtime/trace], while a boundary
// [Marker] measures the scope itself. Tracing overhead is expected to
// dominate the traced code's own cost; that is a deliberate trade of
// fidelity for cost.
//
// Create instances with [NewTracer]. At most one Tracer may be active in
// the process at a time.
type Tracer struct {
	m       *Marker
	out     *os.File
	guarded bool
	started bool
}

// NewTracer constructs a [Tracer] using the global component set plus any
// supplied options. A caller-supplied display mode is overridden to
// [ModeFull].
func NewTracer(opts ...Option) (*Tracer, error) {
	opts = append(opts, WithMode(ModeFull), withSkip(1))

	m, err := New("trace", opts...)
	if err != nil {
		return nil, err
	}

	return &Tracer{m: m}, nil
}

// Start installs the scope-wide execution trace and starts the boundary
// marker. A concurrent active tracer fails with [ErrTracerActive]. In
// fallback or disabled mode no trace is installed and no file is written.
func (t *Tracer) Start() error {
	if t.started {
		return nil
	}

	t.started = true

	if t.m.enabled {
		if !tracerActive.CompareAndSwap(false, true) {
			t.started = false

			return ErrTracerActive
		}

		t.guarded = true

		err := t.startTrace()
		if err != nil {
			t.release()
			t.started = false

			return err
		}
	}

	t.m.Start()

	return nil
}

// Stop uninstalls the trace unconditionally, stops the boundary marker,
// and hands its samples to the backend.
func (t *Tracer) Stop() error {
	if !t.started {
		return nil
	}

	t.m.Stop()

	var closeErr error

	if t.out != nil {
		trace.Stop()

		closeErr = t.out.Close()
		t.out = nil
	}

	t.release()

	if closeErr != nil {
		return fmt.Errorf("closing trace: %w", closeErr)
	}

	return nil
}

// Region traces fn's dynamic extent. The trace is uninstalled on every
// exit path, including panics, before the failure propagates.
func (t *Tracer) Region(fn func() error) (err error) {
	err = t.Start()
	if err != nil {
		return err
	}

	defer func() {
		stopErr := t.Stop()
		if err == nil {
			err = stopErr
		}
	}()

	return fn()
}

func (t *Tracer) startTrace() error {
	path, err := outputPath(TraceFile)
	if err != nil {
		return err
	}

	f, err := os.Create(path) //nolint:gosec // Trace path derives from configured output dir.
	if err != nil {
		return fmt.Errorf("creating trace: %w", err)
	}

	err = trace.Start(f)
	if err != nil {
		_ = f.Close()

		return fmt.Errorf("starting trace: %w", err)
	}

	t.out = f

	return nil
}

func (t *Tracer) release() {
	if t.guarded {
		tracerActive.Store(false)
		t.guarded = false
	}
}
