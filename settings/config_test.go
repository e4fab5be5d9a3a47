package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/perfmark/settings"
)

func TestConfig_RegisterFlags(t *testing.T) {
	t.Parallel()

	cfg := settings.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	cfg.RegisterFlags(flags)

	wantFlags := []string{
		"disable-prof",
		"metrics",
		"profile",
		"trace",
		"perf-output-dir",
		"perf-output-mode",
		"perf-config",
	}

	for _, name := range wantFlags {
		flag := flags.Lookup(name)
		require.NotNil(t, flag, "flag %s should be registered", name)
	}
}

func TestConfig_RegisterFlags_Parsing(t *testing.T) {
	t.Parallel()

	cfg := settings.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	cfg.RegisterFlags(flags)

	err := flags.Parse([]string{
		"--disable-prof",
		"--metrics=wall_clock,cuda_event",
		"-P",
		"-T",
		"--perf-output-dir=perf",
		"--perf-output-mode=json,flamegraph",
	})
	require.NoError(t, err)

	assert.True(t, cfg.Disable)
	assert.Equal(t, []string{"wall_clock", "cuda_event"}, cfg.Metrics)
	assert.True(t, cfg.Profile)
	assert.True(t, cfg.Trace)
	assert.Equal(t, "perf", cfg.OutputDir)
	assert.Equal(t, []string{"json", "flamegraph"}, cfg.OutputModes)
}

func TestConfig_Options_Defaults(t *testing.T) {
	t.Parallel()

	cfg := settings.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	require.NoError(t, flags.Parse(nil))

	opts, err := cfg.Options()
	require.NoError(t, err)

	assert.False(t, opts.Disable)
	assert.Equal(t, []string{"wall_clock"}, opts.Metrics)
	assert.Equal(t, []string{"cout", "text"}, opts.OutputModes)
}

func TestConfig_Options_File(t *testing.T) {
	t.Parallel()

	path := writeOptionsFile(t, `
metrics: [wall_clock, cpu_clock]
output_dir: perf-results
output_modes: [json]
profile: true
`)

	cfg := settings.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	require.NoError(t, flags.Parse([]string{"--perf-config=" + path}))

	opts, err := cfg.Options()
	require.NoError(t, err)

	assert.Equal(t, []string{"wall_clock", "cpu_clock"}, opts.Metrics)
	assert.Equal(t, "perf-results", opts.OutputDir)
	assert.Equal(t, []string{"json"}, opts.OutputModes)
	assert.True(t, opts.Profile)
	assert.False(t, opts.Trace)
}

func TestConfig_Options_FlagsBeatFile(t *testing.T) {
	t.Parallel()

	path := writeOptionsFile(t, `
metrics: [cpu_clock]
output_modes: [plot]
`)

	cfg := settings.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	require.NoError(t, flags.Parse([]string{
		"--perf-config=" + path,
		"--metrics=cuda_event",
	}))

	opts, err := cfg.Options()
	require.NoError(t, err)

	// Explicit flag wins; untouched flags defer to the file.
	assert.Equal(t, []string{"cuda_event"}, opts.Metrics)
	assert.Equal(t, []string{"plot"}, opts.OutputModes)
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := settings.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, settings.ErrLoadOptions)
}

func TestLoadFile_Malformed(t *testing.T) {
	t.Parallel()

	path := writeOptionsFile(t, "metrics: [unterminated")

	_, err := settings.LoadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, settings.ErrLoadOptions)
}

func writeOptionsFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "perf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}
