package mark

import (
	"fmt"
	"log/slog"
	"runtime"

	"go.jacobcolvin.com/perfmark/component"
	"go.jacobcolvin.com/perfmark/session"
	"go.jacobcolvin.com/perfmark/settings"
)

// Mode controls how much context a marker records per sample.
type Mode string

const (
	// ModeBrief records the label only.
	ModeBrief Mode = "brief"
	// ModeFull also records the calling function, file, and line.
	ModeFull Mode = "full"
)

// State is a marker's lifecycle state.
type State int

const (
	// StateIdle is a constructed marker that has not started.
	StateIdle State = iota
	// StateRunning is a marker whose components are started.
	StateRunning
	// StateStopped is a marker that has stopped and submitted its samples.
	StateStopped
)

// Option configures marker construction.
type Option func(*options)

type options struct {
	components []component.Name
	mode       Mode
	reg        component.Registry
	loc        *component.Location
	skip       int
}

// WithComponents adds component names to the marker's set, on top of the
// configured global components.
func WithComponents(names ...component.Name) Option {
	return func(o *options) {
		o.components = append(o.components, names...)
	}
}

// WithMode sets the display mode. The default is [ModeBrief].
func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithRegistry resolves components through reg instead of the session
// backend.
func WithRegistry(reg component.Registry) Option {
	return func(o *options) {
		o.reg = reg
	}
}

// withLocation pins a pre-captured source location, used by [Wrap] so
// every invocation reports the wrap site.
func withLocation(loc *component.Location) Option {
	return func(o *options) {
		o.loc = loc
	}
}

// withSkip adjusts caller-frame capture for helpers that construct markers
// on behalf of their own caller.
func withSkip(n int) Option {
	return func(o *options) {
		o.skip += n
	}
}

// resolved pairs a component name with its live instance.
type resolved struct {
	name component.Name
	comp component.Component
}

// Marker is a named bundle of measurement components bounding one code
// region. A Marker is constructed fresh per region activation or wrapped
// call, is goroutine-confined, and is not reused after stopping.
//
// Create instances with [New], or use [Do] and [Wrap] which manage the
// lifecycle.
type Marker struct {
	label   string
	mode    Mode
	set     component.Set
	comps   []resolved
	reg     component.Registry
	loc     *component.Location
	state   State
	enabled bool
}

// New constructs a [Marker] measuring the global component set plus any
// components supplied via [WithComponents], in insertion order. Every name
// is resolved before any component starts; an unresolvable name fails
// construction with no partial measurement state.
//
// When measurement is disabled the returned marker is inert.
func New(label string, opts ...Option) (*Marker, error) {
	o := options{mode: ModeBrief}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Marker{
		label: label,
		mode:  o.mode,
	}

	s := settings.Snapshot()
	if !s.Enabled {
		return m, nil
	}

	m.enabled = true

	m.reg = o.reg
	if m.reg == nil {
		m.reg = session.Backend()
	}

	m.set = s.Components.Clone()
	m.set.Add(o.components...)

	for _, name := range m.set.Names() {
		comp, err := m.reg.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("marker %q: %w", label, err)
		}

		m.comps = append(m.comps, resolved{name: name, comp: comp})
	}

	if o.mode == ModeFull {
		m.loc = o.loc
		if m.loc == nil {
			m.loc = callerLocation(o.skip + 1)
		}
	}

	return m, nil
}

// Label returns the marker's label.
func (m *Marker) Label() string {
	return m.label
}

// Mode returns the display mode fixed at construction.
func (m *Marker) Mode() Mode {
	return m.mode
}

// State returns the current lifecycle state.
func (m *Marker) State() State {
	return m.state
}

// Components returns the resolved component names in measurement order.
func (m *Marker) Components() []component.Name {
	return m.set.Names()
}

// Start starts every component in the bundle. Starting a running or
// stopped marker is a no-op.
func (m *Marker) Start() {
	if !m.enabled || m.state != StateIdle {
		return
	}

	m.state = StateRunning

	for _, r := range m.comps {
		r.comp.Start()
	}
}

// Stop stops every component and submits one sample per component to the
// backend. Stopping a marker that is not running is a no-op.
func (m *Marker) Stop() {
	if !m.enabled || m.state != StateRunning {
		return
	}

	// Release in reverse start order.
	for i := len(m.comps) - 1; i >= 0; i-- {
		m.comps[i].comp.Stop()
	}

	m.state = StateStopped

	for _, r := range m.comps {
		m.reg.Submit(component.Sample{
			Label:        m.label,
			Component:    r.name,
			Value:        r.comp.Value(),
			Units:        r.comp.Units(),
			DisplayUnits: r.comp.DisplayUnits(),
			Laps:         r.comp.Laps(),
			Location:     m.loc,
		})
	}
}

// End stops the marker. A non-nil err is logged with the marker's label;
// it is never swallowed here, so propagation stays with the caller.
func (m *Marker) End(err error) {
	if err != nil {
		slog.Error("instrumented region failed", "label", m.label, "error", err)
	}

	m.Stop()
}

// Do measures fn as a scoped region: a fresh marker starts before fn runs
// and stops on every exit path, including panics, before the failure
// propagates. The error returned by fn is returned unchanged.
func Do(label string, fn func() error, opts ...Option) error {
	m, err := New(label, append(opts, withSkip(1))...)
	if err != nil {
		return err
	}

	m.Start()

	var ferr error
	defer func() { m.End(ferr) }()

	ferr = fn()

	return ferr
}

// Wrap returns a function that measures every invocation of fn with a
// fresh marker, so recursive and concurrent calls measure independently.
// The components stop on every exit path and fn's error and panics
// propagate unchanged.
//
// In full mode, samples report the wrap site.
func Wrap(label string, fn func() error, opts ...Option) func() error {
	opts = append(opts, withLocation(callerLocation(1)))

	return func() error {
		m, err := New(label, opts...)
		if err != nil {
			return err
		}

		m.Start()
		defer m.Stop()

		return fn()
	}
}

// WrapFunc is [Wrap] for functions that also return a value. The value
// passes through unchanged.
func WrapFunc[T any](label string, fn func() (T, error), opts ...Option) func() (T, error) {
	opts = append(opts, withLocation(callerLocation(1)))

	return func() (T, error) {
		m, err := New(label, opts...)
		if err != nil {
			var zero T

			return zero, err
		}

		m.Start()
		defer m.Stop()

		return fn()
	}
}

// callerLocation captures the function, file, and line of the caller skip
// frames above the caller of callerLocation.
func callerLocation(skip int) *component.Location {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return nil
	}

	loc := &component.Location{
		File: file,
		Line: line,
	}

	if fn := runtime.FuncForPC(pc); fn != nil {
		loc.Function = fn.Name()
	}

	return loc
}
