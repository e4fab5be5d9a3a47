package report_test

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/perfmark/component"
	"go.jacobcolvin.com/perfmark/report"
	"go.jacobcolvin.com/perfmark/settings"
	"go.jacobcolvin.com/perfmark/stringtest"
)

func sampleResults() component.Results {
	return component.Results{
		component.WallClock: {
			{Label: "main", Component: component.WallClock, Value: 1.5, Units: "sec", DisplayUnits: "sec", Laps: 1},
			{Label: "fib", Component: component.WallClock, Value: 0.25, Units: "sec", DisplayUnits: "sec", Laps: 2,
				Location: &component.Location{Function: "main.fib", File: "main.go", Line: 42}},
		},
		component.CPUClock: {
			{Label: "main", Component: component.CPUClock, Value: 1.25, Units: "sec", DisplayUnits: "sec", Laps: 1},
		},
	}
}

func TestWrite_Text(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := report.Write(sampleResults(), settings.Settings{
		Enabled:     true,
		OutputDir:   dir,
		OutputModes: []settings.OutputMode{settings.ModeText},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, report.TextFile))
	require.NoError(t, err)

	want := stringtest.JoinLF(
		"COMPONENT   LABEL  LAPS  VALUE     UNITS  LOCATION",
		"cpu_clock   main   1     1.250000  sec    ",
		"wall_clock  main   1     1.500000  sec    ",
		"wall_clock  fib    2     0.250000  sec    main.go:42",
		"",
	)
	assert.Equal(t, want, string(data))
}

func TestWrite_JSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := report.Write(sampleResults(), settings.Settings{
		Enabled:     true,
		OutputDir:   dir,
		OutputModes: []settings.OutputMode{settings.ModeJSON},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, report.JSONFile))
	require.NoError(t, err)

	var decoded map[string][]map[string]any

	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded["wall_clock"], 2)
	assert.Equal(t, "main", decoded["wall_clock"][0]["label"])
	assert.InDelta(t, 1.5, decoded["wall_clock"][0]["value"], 1e-9)

	// Brief-mode samples omit the location key entirely.
	_, hasLoc := decoded["wall_clock"][0]["location"]
	assert.False(t, hasLoc)

	schema, err := os.ReadFile(filepath.Join(dir, report.SchemaFile))
	require.NoError(t, err)

	var schemaDoc map[string]any

	require.NoError(t, json.Unmarshal(schema, &schemaDoc))
	assert.Equal(t, "object", schemaDoc["type"])
}

func TestWrite_Flamegraph(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := report.Write(sampleResults(), settings.Settings{
		Enabled:     true,
		OutputDir:   dir,
		OutputModes: []settings.OutputMode{settings.ModeFlamegraph},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, report.FoldedFile))
	require.NoError(t, err)

	want := stringtest.JoinLF(
		"main;cpu_clock 1250000",
		"main;wall_clock 1500000",
		"fib;wall_clock 250000",
		"",
	)
	assert.Equal(t, want, string(data))
}

func TestWrite_Plot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := report.Write(sampleResults(), settings.Settings{
		Enabled:     true,
		OutputDir:   dir,
		OutputModes: []settings.OutputMode{settings.ModePlot},
	})
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, report.PlotFile))
	require.NoError(t, err)

	t.Cleanup(func() { _ = f.Close() })

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Positive(t, img.Bounds().Dy())
}

func TestWrite_MultipleModes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := report.Write(sampleResults(), settings.Settings{
		Enabled:     true,
		OutputDir:   dir,
		OutputModes: []settings.OutputMode{settings.ModeText, settings.ModeJSON, settings.ModeFlamegraph},
	})
	require.NoError(t, err)

	for _, name := range []string{report.TextFile, report.JSONFile, report.SchemaFile, report.FoldedFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "expected %s to exist", name)
	}
}

func TestWrite_EmptyResults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := report.Write(component.Results{}, settings.Settings{
		Enabled:     true,
		OutputDir:   dir,
		OutputModes: []settings.OutputMode{settings.ModeText, settings.ModeFlamegraph, settings.ModePlot},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, report.TextFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "COMPONENT")
}

func TestWrite_CoutGoesToStdout(t *testing.T) {
	// Redirects the process stdout, so this test is not parallel.
	orig := os.Stdout

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w

	defer func() { os.Stdout = orig }()

	err = report.Write(sampleResults(), settings.Settings{
		Enabled:     true,
		OutputModes: []settings.OutputMode{settings.ModeCout},
	})

	require.NoError(t, w.Close())

	os.Stdout = orig

	require.NoError(t, err)

	var buf bytes.Buffer

	_, readErr := buf.ReadFrom(r)
	require.NoError(t, readErr)

	assert.Contains(t, buf.String(), "wall_clock")
	assert.Contains(t, buf.String(), "fib")
}
