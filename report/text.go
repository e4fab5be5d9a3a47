package report

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"golang.org/x/term"

	"go.jacobcolvin.com/perfmark/component"
)

// writeTextFile renders the results table to path.
func writeTextFile(res component.Results, path string) error {
	f, err := os.Create(path) //nolint:gosec // Report path derives from configured output dir.
	if err != nil {
		return fmt.Errorf("creating text report: %w", err)
	}

	err = writeTable(res, f, 0)
	if err != nil {
		_ = f.Close()

		return err
	}

	return f.Close()
}

// writeCout renders the results table to w, clamping labels to the
// terminal width when w is a terminal.
func writeCout(res component.Results, w io.Writer) error {
	width := 0

	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		cols, _, err := term.GetSize(int(f.Fd()))
		if err == nil {
			width = cols
		}
	}

	return writeTable(res, w, width)
}

// writeTable renders one row per sample, grouped by component in sorted
// order and keeping each component's samples in submission order. width 0
// means unconstrained.
func writeTable(res component.Results, w io.Writer, width int) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	_, err := fmt.Fprintln(tw, "COMPONENT\tLABEL\tLAPS\tVALUE\tUNITS\tLOCATION")
	if err != nil {
		return fmt.Errorf("writing report table: %w", err)
	}

	for _, name := range orderedNames(res) {
		for _, s := range res[name] {
			loc := ""
			if s.Location != nil {
				loc = fmt.Sprintf("%s:%d", s.Location.File, s.Location.Line)
			}

			_, err = fmt.Fprintf(tw, "%s\t%s\t%d\t%.6f\t%s\t%s\n",
				s.Component, clampLabel(s.Label, width), s.Laps, s.Value, s.DisplayUnits, loc)
			if err != nil {
				return fmt.Errorf("writing report table: %w", err)
			}
		}
	}

	err = tw.Flush()
	if err != nil {
		return fmt.Errorf("writing report table: %w", err)
	}

	return nil
}

// clampLabel shortens long labels so narrow terminals keep one sample per
// line. The table carries five other columns; reserve roughly half the
// width for them.
func clampLabel(label string, width int) string {
	if width <= 0 {
		return label
	}

	maxLabel := max(width/2, 16)
	if len(label) <= maxLabel {
		return label
	}

	return label[:maxLabel-1] + "…"
}
