// Package settings holds the process-wide measurement configuration.
//
// The lifecycle is configure-once, snapshot-many: [Configure] applies a
// resolved [Options] struct exactly once (a second call returns
// [ErrAlreadyConfigured]), and every marker or timer constructed afterward
// captures an immutable [Snapshot]. Instances constructed before Configure
// see the built-in default component set {wall_clock}.
//
// [Config] integrates with CLI applications in the usual way:
//
//	cfg := settings.NewConfig()
//	cfg.RegisterFlags(rootCmd.Flags())
//	_ = cfg.RegisterCompletions(rootCmd)
//
//	// After flag parsing:
//	opts, err := cfg.Options()
//	err = settings.Configure(opts)
//
// Options may also come from a YAML file via [LoadFile] or the perf-config
// flag; explicitly set flags take precedence over file values.
package settings
