package component

import "errors"

// Name identifies a measurement capability, such as wall-clock duration or
// accumulated CPU time. Names are opaque to the core; a [Registry] decides
// which names it can resolve.
type Name string

// Built-in component names resolvable by the native registry.
const (
	WallClock Name = "wall_clock"
	CPUClock  Name = "cpu_clock"
	CUDAEvent Name = "cuda_event"
	UserClock Name = "user_clock"
	SysClock  Name = "sys_clock"
)

// ErrUnresolved indicates a component name the registry cannot resolve.
// Unknown names are a configuration error, never a silent no-op.
var ErrUnresolved = errors.New("unresolved component")

// Component is a single live measurement instance produced by a [Registry].
//
// Start and Stop bound one lap of measurement. Value reports the
// accumulated measurement in the component's native units; it is valid
// both while running (partial) and after stopping (final).
type Component interface {
	Start()
	Stop()
	Value() float64
	Laps() int
	Units() string
	DisplayUnits() string
}

// Registry resolves component names to live measurement instances and
// collects the samples they produce.
//
// Resolve returns a fresh [Component] per call, so every marker activation
// measures independently. Submit and Results must be safe for concurrent
// use; markers submit from arbitrary goroutines.
type Registry interface {
	Resolve(name Name) (Component, error)
	Submit(s Sample)
	Results() Results
	Close() error
}
