package timer

import (
	"errors"
	"fmt"
	"strings"

	"go.jacobcolvin.com/perfmark/component"
	"go.jacobcolvin.com/perfmark/session"
)

// Kind selects the measurement component backing a [Timer].
type Kind string

const (
	// Wall measures wall-clock time.
	Wall Kind = "wall"
	// CPU measures combined user and system CPU time.
	CPU Kind = "cpu"
	// CUDAEvent measures device event time.
	CUDAEvent Kind = "cuda_event"
	// User measures user-mode CPU time.
	User Kind = "user"
	// System measures kernel-mode CPU time.
	System Kind = "system"
)

// ErrInvalidKind indicates an unrecognized timer kind.
var ErrInvalidKind = errors.New("invalid timer kind")

var kindComponents = map[Kind]component.Name{
	Wall:      component.WallClock,
	CPU:       component.CPUClock,
	CUDAEvent: component.CUDAEvent,
	User:      component.UserClock,
	System:    component.SysClock,
}

// ParseKind parses a kind string, accepting unambiguous prefixes the way
// the kinds are usually spelled ("wall", "walltime", "sys", "system").
func ParseKind(s string) (Kind, error) {
	k := strings.ToLower(s)

	switch {
	case strings.HasPrefix(k, "wall"):
		return Wall, nil
	case strings.HasPrefix(k, "cuda"):
		return CUDAEvent, nil
	case strings.HasPrefix(k, "cpu"):
		return CPU, nil
	case strings.HasPrefix(k, "user"):
		return User, nil
	case strings.HasPrefix(k, "sys"):
		return System, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Timer is a single named measurement wrapping exactly one component.
//
// Start and Stop toggle between running and idle and are idempotent, so
// instrumentation entered twice by mistake cannot double-count. Laps
// accumulate across repeated start/stop cycles. A Timer is
// goroutine-confined.
//
// Create instances with [New].
type Timer struct {
	comp    component.Component
	label   string
	units   string
	display string
	running bool
}

// Option configures a [Timer].
type Option func(*config)

type config struct {
	reg component.Registry
}

// WithRegistry resolves the timer's component through reg instead of the
// session backend.
func WithRegistry(reg component.Registry) Option {
	return func(c *config) {
		c.reg = reg
	}
}

// New creates a [Timer] of the given kind. Unknown kinds fail with
// [ErrInvalidKind]. Units and display units are fixed at construction.
func New(kind Kind, label string, opts ...Option) (*Timer, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.reg == nil {
		cfg.reg = session.Backend()
	}

	name, ok := kindComponents[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	comp, err := cfg.reg.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", name, err)
	}

	return &Timer{
		comp:    comp,
		label:   label,
		units:   comp.Units(),
		display: comp.DisplayUnits(),
	}, nil
}

// Start begins a lap. Starting a running timer is a no-op.
func (t *Timer) Start() {
	if t.running {
		return
	}

	t.running = true
	t.comp.Start()
}

// Stop completes the current lap. Stopping an idle timer is a no-op.
func (t *Timer) Stop() {
	if !t.running {
		return
	}

	t.comp.Stop()
	t.running = false
}

// Get returns the accumulated measurement in the component's native
// units: partial while running, final while idle.
func (t *Timer) Get() float64 {
	return t.comp.Value()
}

// Laps returns the count of completed start/stop cycles.
func (t *Timer) Laps() int {
	return t.comp.Laps()
}

// Label returns the timer's label.
func (t *Timer) Label() string {
	return t.label
}

// Units returns the unit symbol fixed at construction.
func (t *Timer) Units() string {
	return t.units
}

// DisplayUnits returns the human-readable unit string fixed at
// construction.
func (t *Timer) DisplayUnits() string {
	return t.display
}
