// Package mark provides composable measurement handles for code regions.
//
// A [Marker] bundles an arbitrary set of measurement components behind one
// lightweight handle. Attach it to code either as a scoped region or as a
// wrapped function:
//
//	err := mark.Do("stage-1", func() error {
//	    return runStage1()
//	}, mark.WithComponents(component.CPUClock))
//
//	run := mark.Wrap("inference", runInference)
//	for range batches {
//	    err := run() // fresh marker per call
//	}
//
// Components stop on every exit path, including panics, and the wrapped
// function's error propagates unchanged. The marker's component set is the
// configured global set plus any [WithComponents] additions, captured as a
// settings snapshot at construction.
//
// [Profiler] and [Tracer] widen the measured surface from the region
// boundary to everything executed within the region's dynamic extent,
// using the runtime's CPU profiler and execution tracer respectively.
// Both are process-global and fail fast on nested activation.
//
// When measurement is disabled or the backend is unavailable, every
// handle in this package degrades to an inert variant that runs the
// wrapped code unchanged.
package mark
