package mark

import "go.jacobcolvin.com/perfmark/settings"

// Instrumenter runs a function under some form of measurement.
type Instrumenter interface {
	Do(fn func() error) error
}

// recordLabel is the label carried by the process-wide default recorder.
const recordLabel = "record"

// DefaultFromSettings returns the process-wide default recorder selected
// by the configured options: a [Profiler] when profiling was requested, a
// [Tracer] when tracing was requested, and a plain [Marker] region
// otherwise.
func DefaultFromSettings() Instrumenter {
	s := settings.Snapshot()

	switch {
	case s.Profile:
		return profilerRecorder{}
	case s.Trace:
		return tracerRecorder{}
	}

	return markerRecorder{}
}

// Record measures fn with the default recorder.
func Record(fn func() error) error {
	return DefaultFromSettings().Do(fn)
}

type markerRecorder struct{}

func (markerRecorder) Do(fn func() error) error {
	return Do(recordLabel, fn)
}

type profilerRecorder struct{}

func (profilerRecorder) Do(fn func() error) error {
	p, err := NewProfiler()
	if err != nil {
		return err
	}

	return p.Region(fn)
}

type tracerRecorder struct{}

func (tracerRecorder) Do(fn func() error) error {
	t, err := NewTracer()
	if err != nil {
		return err
	}

	return t.Region(fn)
}
