package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/perfmark/component"
	"go.jacobcolvin.com/perfmark/registry"
	"go.jacobcolvin.com/perfmark/report"
	"go.jacobcolvin.com/perfmark/session"
	"go.jacobcolvin.com/perfmark/settings"
	"go.jacobcolvin.com/perfmark/timer"
)

// The session owns process-wide state, so these tests run sequentially
// against the testing hooks instead of t.Parallel.

func TestInit_Idempotent(t *testing.T) {
	session.ResetForTesting()
	t.Cleanup(session.ResetForTesting)

	session.Init()
	first := session.Backend()

	session.Init()
	assert.Same(t, first, session.Backend())
}

func TestBackend_LazyInit(t *testing.T) {
	session.ResetForTesting()
	t.Cleanup(session.ResetForTesting)

	assert.NotNil(t, session.Backend())
}

func TestResults(t *testing.T) {
	session.ResetForTesting()
	t.Cleanup(session.ResetForTesting)

	reg, err := registry.New()
	require.NoError(t, err)

	session.SetBackend(reg, false)

	reg.Submit(component.Sample{Label: "x", Component: component.WallClock, Value: 1})

	res := session.Results(false)
	require.Len(t, res[component.WallClock], 1)
	assert.Equal(t, "x", res[component.WallClock][0].Label)
}

func TestFallback_TimerReadsZero(t *testing.T) {
	session.ResetForTesting()
	t.Cleanup(session.ResetForTesting)

	session.SetBackend(registry.NewNoop(), true)

	assert.True(t, session.Fallback())

	tm, err := timer.New(timer.Wall, "t")
	require.NoError(t, err)

	tm.Start()
	tm.Stop()

	assert.Zero(t, tm.Get())
}

func TestFinalize_FlushesReports(t *testing.T) {
	session.ResetForTesting()
	settings.Reset()
	t.Cleanup(session.ResetForTesting)
	t.Cleanup(settings.Reset)

	dir := t.TempDir()
	require.NoError(t, settings.Configure(settings.Options{
		OutputDir:   dir,
		OutputModes: []string{"text", "json"},
	}))

	reg, err := registry.New()
	require.NoError(t, err)

	session.SetBackend(reg, false)

	reg.Submit(component.Sample{
		Label: "stage", Component: component.WallClock,
		Value: 0.5, Units: "sec", DisplayUnits: "sec", Laps: 1,
	})

	require.NoError(t, session.Finalize())

	for _, name := range []string{report.TextFile, report.JSONFile, report.SchemaFile} {
		_, statErr := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, statErr, "expected %s after finalize", name)
	}

	// Finalize is a no-op the second time.
	require.NoError(t, session.Finalize())

	// The backend stopped accepting samples.
	reg.Submit(component.Sample{Label: "late", Component: component.WallClock})
	assert.Empty(t, reg.Results()[component.WallClock])
}

func TestFinalize_FallbackWritesNothing(t *testing.T) {
	session.ResetForTesting()
	settings.Reset()
	t.Cleanup(session.ResetForTesting)
	t.Cleanup(settings.Reset)

	dir := t.TempDir()
	require.NoError(t, settings.Configure(settings.Options{
		OutputDir:   dir,
		OutputModes: []string{"text"},
	}))

	session.SetBackend(registry.NewNoop(), true)

	require.NoError(t, session.Finalize())

	_, statErr := os.Stat(filepath.Join(dir, report.TextFile))
	assert.True(t, os.IsNotExist(statErr), "fallback mode writes no report files")
}
