// Package timer provides single-component measurement handles.
//
// A [Timer] wraps exactly one measurement component of a chosen [Kind]
// and accumulates laps across repeated start/stop cycles:
//
//	t, err := timer.New(timer.Wall, "load-batch")
//	t.Start()
//	// ... work ...
//	t.Stop()
//	fmt.Println(t.Get(), t.DisplayUnits(), t.Laps())
//
// In fallback mode (no measurement backend) timers resolve to inert
// components and Get reports zero.
package timer
