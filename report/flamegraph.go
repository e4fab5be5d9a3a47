package report

import (
	"fmt"
	"os"
	"strings"

	"go.jacobcolvin.com/perfmark/component"
)

// writeFolded renders collapsed-stack lines consumable by flamegraph
// tooling: one line per sample, "label;component value", with the value
// scaled to integral microunits.
func writeFolded(res component.Results, path string) error {
	var b strings.Builder

	for _, name := range orderedNames(res) {
		for _, s := range res[name] {
			// Flamegraph counts are integers; keep six digits of precision.
			fmt.Fprintf(&b, "%s;%s %d\n", sanitizeFrame(s.Label), s.Component, int64(s.Value*1e6))
		}
	}

	err := os.WriteFile(path, []byte(b.String()), 0o600)
	if err != nil {
		return fmt.Errorf("writing folded stacks: %w", err)
	}

	return nil
}

// sanitizeFrame strips the characters the folded format reserves.
func sanitizeFrame(s string) string {
	s = strings.ReplaceAll(s, ";", ":")

	return strings.ReplaceAll(s, " ", "_")
}
