// Package main provides the CLI entry point for perfmark, a demo workload
// runner showing the measurement facade end to end: flag-driven
// configuration, decorated and manual timers, and report output.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/perfmark/component"
	"go.jacobcolvin.com/perfmark/log"
	"go.jacobcolvin.com/perfmark/mark"
	"go.jacobcolvin.com/perfmark/session"
	"go.jacobcolvin.com/perfmark/settings"
	"go.jacobcolvin.com/perfmark/timer"
	"go.jacobcolvin.com/perfmark/version"
)

func main() {
	perfCfg := settings.NewConfig()
	logCfg := log.NewConfig()

	var (
		fib  int
		live bool
	)

	rootCmd := &cobra.Command{
		Use:   "perfmark [flags]",
		Short: "Run a demo workload under configurable measurement",
		Long: `perfmark runs a recursive Fibonacci workload under the measurement
facade, collecting the configured metric components and writing reports in
the configured output modes.`,
		Version:       version.String(),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(perfCfg, logCfg, fib, live)
		},
	}

	perfCfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.Flags())

	rootCmd.Flags().IntVar(&fib, "fib", 25, "fibonacci input for the demo workload")
	rootCmd.Flags().BoolVar(&live, "live", false, "show a live results view while running")

	completionErr := perfCfg.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	completionErr = logCfg.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(perfCfg *settings.Config, logCfg *log.Config, fib int, live bool) error {
	pub := log.NewPublisher()
	defer pub.Close()

	// In live mode logs go to subscribers only; stderr writes would tear
	// the terminal view.
	var logOut io.Writer = os.Stderr
	if live {
		logOut = pub
	}

	handler, err := logCfg.NewHandler(logOut)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))

	opts, err := perfCfg.Options()
	if err != nil {
		return err
	}

	err = settings.Configure(opts)
	if err != nil {
		return err
	}

	session.Init()

	workload := mark.Wrap("main", func() error {
		manual, timerErr := timer.New(timer.Wall, "manual")
		if timerErr != nil {
			return timerErr
		}

		manual.Start()

		recordErr := mark.Record(func() error {
			slog.Info("computed fibonacci", "n", fib, "result", fibonacci(fib))

			return nil
		})

		manual.Stop()

		slog.Info("manual timer",
			"label", manual.Label(),
			"value", manual.Get(),
			"units", manual.DisplayUnits(),
			"laps", manual.Laps())

		return recordErr
	}, mark.WithComponents(component.CPUClock), mark.WithMode(mark.ModeFull))

	if live {
		return runLive(pub, workload)
	}

	err = workload()
	if err != nil {
		return err
	}

	return session.Finalize()
}

func fibonacci(n int) int {
	if n < 2 {
		return n
	}

	return fibonacci(n-1) + fibonacci(n-2)
}
