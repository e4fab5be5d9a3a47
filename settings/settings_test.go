package settings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/perfmark/component"
	"go.jacobcolvin.com/perfmark/settings"
)

// Configure mutates process-wide state, so these tests run sequentially
// against settings.Reset instead of t.Parallel.

func TestSnapshot_Defaults(t *testing.T) {
	settings.Reset()
	t.Cleanup(settings.Reset)

	s := settings.Snapshot()

	assert.True(t, s.Enabled)
	assert.Equal(t, []component.Name{component.WallClock}, s.Components.Names())
	assert.Equal(t, []settings.OutputMode{settings.ModeCout, settings.ModeText}, s.OutputModes)
	assert.False(t, settings.Configured())
}

func TestConfigure(t *testing.T) {
	settings.Reset()
	t.Cleanup(settings.Reset)

	err := settings.Configure(settings.Options{
		Metrics:     []string{"wall_clock", "cpu_clock"},
		OutputDir:   "out",
		OutputModes: []string{"json", "text"},
	})
	require.NoError(t, err)

	s := settings.Snapshot()
	assert.True(t, s.Enabled)
	assert.Equal(t, []component.Name{component.WallClock, component.CPUClock}, s.Components.Names())
	assert.Equal(t, "out", s.OutputDir)
	assert.Equal(t, []settings.OutputMode{settings.ModeJSON, settings.ModeText}, s.OutputModes)
	assert.True(t, settings.Configured())
}

func TestConfigure_Twice(t *testing.T) {
	settings.Reset()
	t.Cleanup(settings.Reset)

	require.NoError(t, settings.Configure(settings.Options{}))

	err := settings.Configure(settings.Options{})
	assert.ErrorIs(t, err, settings.ErrAlreadyConfigured)
}

func TestConfigure_Disable(t *testing.T) {
	settings.Reset()
	t.Cleanup(settings.Reset)

	err := settings.Configure(settings.Options{
		Disable: true,
		Metrics: []string{"cpu_clock"},
	})
	require.NoError(t, err)

	s := settings.Snapshot()
	assert.False(t, s.Enabled)
	assert.Zero(t, s.Components.Len(), "disabling clears the component set")
}

func TestConfigure_UnknownOutputMode(t *testing.T) {
	settings.Reset()
	t.Cleanup(settings.Reset)

	err := settings.Configure(settings.Options{
		OutputModes: []string{"text", "hologram"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, settings.ErrUnknownOutputMode)

	// A failed Configure does not consume the one-shot.
	assert.False(t, settings.Configured())
	require.NoError(t, settings.Configure(settings.Options{}))
}

func TestSnapshot_Isolation(t *testing.T) {
	settings.Reset()
	t.Cleanup(settings.Reset)

	before := settings.Snapshot()

	err := settings.Configure(settings.Options{
		Metrics: []string{"cpu_clock", "sys_clock"},
	})
	require.NoError(t, err)

	// The earlier snapshot still holds the defaults.
	assert.Equal(t, []component.Name{component.WallClock}, before.Components.Names())

	after := settings.Snapshot()
	after.Components.Add(component.CUDAEvent)

	// Mutating a snapshot never leaks back into the global settings.
	assert.Equal(t,
		[]component.Name{component.CPUClock, component.SysClock},
		settings.Snapshot().Components.Names())
}

func TestParseOutputMode(t *testing.T) {
	tcs := map[string]struct {
		input       string
		want        settings.OutputMode
		expectError bool
	}{
		"text":             {input: "text", want: settings.ModeText},
		"json":             {input: "json", want: settings.ModeJSON},
		"cout":             {input: "cout", want: settings.ModeCout},
		"flamegraph":       {input: "flamegraph", want: settings.ModeFlamegraph},
		"plot":             {input: "plot", want: settings.ModePlot},
		"case insensitive": {input: "JSON", want: settings.ModeJSON},
		"unknown":          {input: "xml", expectError: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := settings.ParseOutputMode(tc.input)

			if tc.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, settings.ErrUnknownOutputMode)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
