package settings

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.jacobcolvin.com/perfmark/component"
)

// OutputMode selects a report writer for the final flush.
type OutputMode string

const (
	// ModeText writes an aligned table to results.txt.
	ModeText OutputMode = "text"
	// ModeJSON writes results.json plus a schema for the document.
	ModeJSON OutputMode = "json"
	// ModeCout writes the table to stdout.
	ModeCout OutputMode = "cout"
	// ModeFlamegraph writes collapsed stacks to results.folded.
	ModeFlamegraph OutputMode = "flamegraph"
	// ModePlot writes a bar chart to results.png.
	ModePlot OutputMode = "plot"
)

var (
	// ErrAlreadyConfigured indicates [Configure] was called more than once.
	ErrAlreadyConfigured = errors.New("settings already configured")
	// ErrUnknownOutputMode indicates an unrecognized output mode string.
	ErrUnknownOutputMode = errors.New("unknown output mode")
)

// Settings is the process-wide measurement configuration. It is mutated
// exactly once by [Configure] and read through [Snapshot] copies afterward,
// so in-flight measurements never observe later changes.
type Settings struct {
	Enabled     bool
	Components  component.Set
	OutputDir   string
	OutputModes []OutputMode
	Profile     bool
	Trace       bool
}

// Options is the resolved option struct consumed by [Configure], produced
// by the CLI layer ([Config]) or an options file ([LoadFile]).
type Options struct {
	Disable     bool
	Metrics     []string
	Profile     bool
	Trace       bool
	OutputDir   string
	OutputModes []string
}

var (
	mu         sync.RWMutex
	global     = defaults()
	configured bool
)

func defaults() Settings {
	return Settings{
		Enabled:     true,
		Components:  component.NewSet(component.WallClock),
		OutputModes: []OutputMode{ModeCout, ModeText},
	}
}

// Configure applies opts to the global settings, exactly once per process.
// A second call returns [ErrAlreadyConfigured]. Disabling clears the
// component set and short-circuits all later measurement to no-ops.
func Configure(opts Options) error {
	modes, err := parseOutputModes(opts.OutputModes)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	if configured {
		return ErrAlreadyConfigured
	}

	configured = true

	if opts.Disable {
		global.Enabled = false
		global.Components = component.Set{}

		return nil
	}

	if len(opts.Metrics) > 0 {
		global.Components = component.SetFromStrings(opts.Metrics)
	}

	global.Profile = opts.Profile
	global.Trace = opts.Trace

	if opts.OutputDir != "" {
		global.OutputDir = opts.OutputDir
	}

	if len(modes) > 0 {
		global.OutputModes = modes
	}

	return nil
}

// Snapshot returns an independent copy of the current global settings.
// Markers and timers capture a snapshot at construction time.
func Snapshot() Settings {
	mu.RLock()
	defer mu.RUnlock()

	s := global
	s.Components = global.Components.Clone()
	s.OutputModes = slices.Clone(global.OutputModes)

	return s
}

// Configured reports whether [Configure] has run.
func Configured() bool {
	mu.RLock()
	defer mu.RUnlock()

	return configured
}

// Reset restores built-in defaults and re-arms [Configure]. It exists for
// tests; production code configures once and never resets.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	global = defaults()
	configured = false
}

// ParseOutputMode parses a single output mode string.
func ParseOutputMode(s string) (OutputMode, error) {
	m := OutputMode(strings.ToLower(s))
	if slices.Contains(allOutputModes, m) {
		return m, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownOutputMode, s)
}

var allOutputModes = []OutputMode{ModeText, ModeJSON, ModeCout, ModeFlamegraph, ModePlot}

// AllOutputModeStrings returns every valid output mode, for flag help and
// shell completion.
func AllOutputModeStrings() []string {
	out := make([]string, len(allOutputModes))
	for i, m := range allOutputModes {
		out[i] = string(m)
	}

	return out
}

func parseOutputModes(ss []string) ([]OutputMode, error) {
	modes := make([]OutputMode, 0, len(ss))

	for _, s := range ss {
		m, err := ParseOutputMode(s)
		if err != nil {
			return nil, err
		}

		modes = append(modes, m)
	}

	return modes, nil
}
