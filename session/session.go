package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"go.jacobcolvin.com/perfmark/component"
	"go.jacobcolvin.com/perfmark/registry"
	"go.jacobcolvin.com/perfmark/report"
	"go.jacobcolvin.com/perfmark/settings"
)

// ErrRegistryUnavailable indicates the native measurement backend could
// not be constructed. It is reported once to the diagnostic log and the
// process continues with inert instrumentation; it is never fatal to the
// application.
var ErrRegistryUnavailable = errors.New("measurement registry unavailable")

var (
	mu          sync.Mutex
	backend     component.Registry
	initialized bool
	fallback    bool
	finalized   bool
)

// Init constructs the measurement backend. It is idempotent and must run
// before markers or timers are constructed; [Backend] calls it lazily as a
// safety net.
//
// When the native registry cannot be constructed, Init logs the failure
// once and installs the inert backend instead: instrumentation fails open
// and never blocks the measured application.
func Init() {
	mu.Lock()
	defer mu.Unlock()

	initLocked()
}

func initLocked() {
	if initialized {
		return
	}

	initialized = true

	reg, err := registry.New()
	if err != nil {
		slog.Warn("continuing without measurement",
			"error", fmt.Errorf("%w: %w", ErrRegistryUnavailable, err))

		backend = registry.NewNoop()
		fallback = true

		return
	}

	backend = reg
}

// Backend returns the active measurement backend, initializing it if
// needed.
func Backend() component.Registry {
	mu.Lock()
	defer mu.Unlock()

	initLocked()

	return backend
}

// Fallback reports whether the process degraded to the inert backend.
func Fallback() bool {
	mu.Lock()
	defer mu.Unlock()

	return fallback
}

// Results returns the aggregated measurement data. When dump is true it
// also prints an indented JSON rendering to stdout.
func Results(dump bool) component.Results {
	res := Backend().Results()

	if dump {
		b, err := json.MarshalIndent(res, "", "    ")
		if err != nil {
			slog.Error("rendering results", "error", err)

			return res
		}

		fmt.Fprintf(os.Stdout, "\n%s\n", b)
	}

	return res
}

// Finalize flushes aggregated results through the configured report
// writers and releases the backend. Call it exactly once at process
// shutdown; later calls are no-ops. Marker and timer operations after
// Finalize are undefined.
func Finalize() error {
	mu.Lock()

	if finalized {
		mu.Unlock()

		return nil
	}

	finalized = true

	initLocked()

	reg := backend
	inert := fallback
	mu.Unlock()

	s := settings.Snapshot()

	if s.Enabled && !inert {
		err := report.Write(reg.Results(), s)
		if err != nil {
			return fmt.Errorf("flushing results: %w", err)
		}
	}

	return reg.Close()
}

// SetBackend installs reg as the active backend, marking it as a
// deliberate fallback when inert is true. It exists for tests; production
// code relies on [Init].
func SetBackend(reg component.Registry, inert bool) {
	mu.Lock()
	defer mu.Unlock()

	backend = reg
	initialized = true
	fallback = inert
	finalized = false
}

// ResetForTesting restores the uninitialized state.
func ResetForTesting() {
	mu.Lock()
	defer mu.Unlock()

	backend = nil
	initialized = false
	fallback = false
	finalized = false
}
