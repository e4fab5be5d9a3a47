// Package report writes aggregated measurement results in the configured
// output modes.
//
// [Write] dispatches one writer per selected mode: an aligned table to
// results.txt (text) or stdout (cout, clamped to the terminal width), an
// indented results.json plus a JSON Schema for the document (json),
// collapsed stacks for flamegraph tooling (flamegraph), and a bar-chart
// results.png (plot). All files land in the configured output directory.
//
// Write runs once, synchronously, at session finalization; it is the only
// blocking I/O step in the measurement path.
package report
