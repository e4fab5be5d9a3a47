// Package log provides structured logging handler construction for use
// with [log/slog].
//
// It supports multiple output formats ([FormatText], [FormatLogfmt], and
// [FormatJSON]) and severity levels ([LevelError], [LevelWarn],
// [LevelInfo], and [LevelDebug]). Use [NewHandler] to create a handler
// directly, or use [Config] with CLI flag integration via
// [github.com/spf13/pflag] and shell completion support via
// [github.com/spf13/cobra]:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	_ = cfg.RegisterCompletions(rootCmd)
//
//	handler, err := cfg.NewHandler(os.Stderr)
//	slog.SetDefault(slog.New(handler))
//
// A [Publisher] fans out log output to multiple subscribers, which is how
// the live results view shows recent log lines. Combine it with
// [io.MultiWriter] to also keep writing to stderr:
//
//	pub := log.NewPublisher()
//	handler := log.NewHandler(io.MultiWriter(os.Stderr, pub), log.LevelInfo, log.FormatText)
//	slog.SetDefault(slog.New(handler))
//
//	sub := pub.Subscribe()
//	go func() {
//	    for entry := range sub.C() {
//	        // Deliver entry to the view.
//	    }
//	}()
package log
