package registry

import "go.jacobcolvin.com/perfmark/component"

// NewNoop returns an inert backend used when the native registry cannot be
// constructed. Every name resolves to a component that measures nothing,
// and submitted samples are discarded, so instrumented code runs unchanged
// with no measurement side effects.
func NewNoop() component.Registry {
	return noopRegistry{}
}

type noopRegistry struct{}

func (noopRegistry) Resolve(component.Name) (component.Component, error) {
	return noopComponent{}, nil
}

func (noopRegistry) Submit(component.Sample) {}

func (noopRegistry) Results() component.Results {
	return component.Results{}
}

func (noopRegistry) Close() error {
	return nil
}

type noopComponent struct{}

func (noopComponent) Start()               {}
func (noopComponent) Stop()                {}
func (noopComponent) Value() float64       { return 0 }
func (noopComponent) Laps() int            { return 0 }
func (noopComponent) Units() string        { return "" }
func (noopComponent) DisplayUnits() string { return "" }
