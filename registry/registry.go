package registry

import (
	"fmt"
	"sync"

	"go.jacobcolvin.com/perfmark/component"
)

// Factory constructs a fresh measurement instance for one component name.
type Factory func() component.Component

// Registry is the native in-process measurement backend. It resolves the
// built-in component names to clock instances and aggregates the samples
// submitted by markers and timers.
//
// Create instances with [New]. Safe for concurrent use.
type Registry struct {
	factories map[component.Name]Factory
	samples   component.Results
	mu        sync.Mutex
	closed    bool
}

// Option configures a [Registry].
type Option func(*Registry)

// WithComponent registers an additional component factory, or overrides a
// built-in one.
func WithComponent(name component.Name, f Factory) Option {
	return func(r *Registry) {
		r.factories[name] = f
	}
}

// New creates a [Registry] with the built-in clock components registered.
// It fails when the host cannot provide process CPU times, in which case
// callers are expected to fall back to [NewNoop].
func New(opts ...Option) (*Registry, error) {
	err := probeCPUClock()
	if err != nil {
		return nil, fmt.Errorf("probing cpu clock source: %w", err)
	}

	r := &Registry{
		factories: map[component.Name]Factory{
			component.WallClock: newWallClock,
			component.CPUClock:  newCPUClock,
			component.UserClock: newUserClock,
			component.SysClock:  newSysClock,
			component.CUDAEvent: newCUDAEvent,
		},
		samples: component.Results{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Resolve returns a fresh instance of the named component.
func (r *Registry) Resolve(name component.Name) (component.Component, error) {
	r.mu.Lock()
	f, ok := r.factories[name]
	r.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", component.ErrUnresolved, name)
	}

	return f(), nil
}

// Submit records one aggregated sample.
func (r *Registry) Submit(s component.Sample) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	r.samples[s.Component] = append(r.samples[s.Component], s)
}

// Results returns a copy of all samples collected so far, keyed by
// component name in submission order.
func (r *Registry) Results() component.Results {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(component.Results, len(r.samples))
	for name, ss := range r.samples {
		cp := make([]component.Sample, len(ss))
		copy(cp, ss)
		out[name] = cp
	}

	return out
}

// Close stops accepting samples. Idempotent.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true

	return nil
}
