// Package session owns the process-wide measurement lifecycle: [Init]
// selects the measurement backend, [Results] exposes the aggregated data,
// and [Finalize] flushes reports and releases the backend at shutdown.
//
// The backend selection is deliberately fail-open. When the native
// registry cannot be constructed, the failure is logged once and every
// later marker and timer degrades to an inert variant: wrapped code runs
// unchanged, timers read zero, and no report files are written.
//
//	func main() {
//	    session.Init()
//	    defer func() { _ = session.Finalize() }()
//	    // ... construct markers and timers ...
//	}
package session
