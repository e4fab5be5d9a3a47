package report

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.jacobcolvin.com/perfmark/component"
	"go.jacobcolvin.com/perfmark/settings"
)

// Output file names written under the configured output directory.
const (
	TextFile   = "results.txt"
	JSONFile   = "results.json"
	SchemaFile = "results.schema.json"
	FoldedFile = "results.folded"
	PlotFile   = "results.png"
)

// Write flushes res through every writer selected by s.OutputModes,
// creating s.OutputDir if needed. It is the synchronous, possibly slow
// flush step run once at finalization.
func Write(res component.Results, s settings.Settings) error {
	dir := s.OutputDir
	if dir != "" {
		err := os.MkdirAll(dir, 0o750)
		if err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	for _, mode := range s.OutputModes {
		var err error

		switch mode {
		case settings.ModeText:
			err = writeTextFile(res, filepath.Join(dir, TextFile))
		case settings.ModeCout:
			err = writeCout(res, os.Stdout)
		case settings.ModeJSON:
			err = writeJSON(res, dir)
		case settings.ModeFlamegraph:
			err = writeFolded(res, filepath.Join(dir, FoldedFile))
		case settings.ModePlot:
			err = writePlot(res, filepath.Join(dir, PlotFile))
		default:
			err = fmt.Errorf("%w: %q", settings.ErrUnknownOutputMode, mode)
		}

		if err != nil {
			return fmt.Errorf("writing %s output: %w", mode, err)
		}
	}

	return nil
}

// orderedNames returns the component names of res sorted for stable
// output.
func orderedNames(res component.Results) []component.Name {
	names := make([]component.Name, 0, len(res))
	for name := range res {
		names = append(names, name)
	}

	// Results is a map; sort for deterministic reports.
	slices.Sort(names)

	return names
}
