package settings

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/perfmark/component"
)

// Flags holds CLI flag names for measurement configuration, allowing
// callers to customize flag names while keeping sensible defaults via
// [NewConfig].
type Flags struct {
	Disable     string
	Metrics     string
	Profile     string
	Trace       string
	OutputDir   string
	OutputModes string
	File        string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for measurement configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.Options] to resolve flag and options
// file values into the [Options] consumed by [Configure].
type Config struct {
	Flags Flags

	Disable     bool
	Metrics     []string
	Profile     bool
	Trace       bool
	OutputDir   string
	OutputModes []string
	File        string

	flagSet *pflag.FlagSet
}

// NewConfig returns a new [Config] with default flag names.
// Use [Config.RegisterFlags] to add CLI flags, or set values directly.
func NewConfig() *Config {
	f := Flags{
		Disable:     "disable-prof",
		Metrics:     "metrics",
		Profile:     "profile",
		Trace:       "trace",
		OutputDir:   "perf-output-dir",
		OutputModes: "perf-output-mode",
		File:        "perf-config",
	}

	return f.NewConfig()
}

// RegisterFlags adds measurement flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	c.flagSet = flags

	flags.BoolVar(&c.Disable, c.Flags.Disable, false,
		"disable performance analysis")
	flags.StringSliceVarP(&c.Metrics, c.Flags.Metrics, "c", []string{string(component.WallClock)},
		"metrics to collect")
	flags.BoolVarP(&c.Profile, c.Flags.Profile, "P", false,
		"profile every call in the instrumented scope")
	flags.BoolVarP(&c.Trace, c.Flags.Trace, "T", false,
		"trace execution of the instrumented scope")
	flags.StringVar(&c.OutputDir, c.Flags.OutputDir, "",
		"report output directory")
	flags.StringSliceVar(&c.OutputModes, c.Flags.OutputModes, []string{string(ModeCout), string(ModeText)},
		fmt.Sprintf("report output modes, any of: %s", strings.Join(AllOutputModeStrings(), ", ")))
	flags.StringVar(&c.File, c.Flags.File, "",
		"YAML file with measurement options")
}

// RegisterCompletions registers shell completions for measurement flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	metrics := []string{
		string(component.WallClock),
		string(component.CPUClock),
		string(component.CUDAEvent),
		string(component.UserClock),
		string(component.SysClock),
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.Metrics,
		cobra.FixedCompletions(metrics, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Metrics, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.OutputModes,
		cobra.FixedCompletions(AllOutputModeStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.OutputModes, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.OutputDir,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.OutputDir, err)
	}

	return nil
}

// Options resolves the effective [Options] from flag values and, when the
// options file flag is set, from the file. Flags set explicitly on the
// command line take precedence over file values.
func (c *Config) Options() (Options, error) {
	opts := Options{
		Disable:     c.Disable,
		Metrics:     c.Metrics,
		Profile:     c.Profile,
		Trace:       c.Trace,
		OutputDir:   c.OutputDir,
		OutputModes: c.OutputModes,
	}

	if c.File == "" {
		return opts, nil
	}

	fileOpts, err := LoadFile(c.File)
	if err != nil {
		return Options{}, err
	}

	if !c.changed(c.Flags.Disable) && fileOpts.Disable {
		opts.Disable = true
	}

	if !c.changed(c.Flags.Metrics) && len(fileOpts.Metrics) > 0 {
		opts.Metrics = fileOpts.Metrics
	}

	if !c.changed(c.Flags.Profile) && fileOpts.Profile {
		opts.Profile = true
	}

	if !c.changed(c.Flags.Trace) && fileOpts.Trace {
		opts.Trace = true
	}

	if !c.changed(c.Flags.OutputDir) && fileOpts.OutputDir != "" {
		opts.OutputDir = fileOpts.OutputDir
	}

	if !c.changed(c.Flags.OutputModes) && len(fileOpts.OutputModes) > 0 {
		opts.OutputModes = fileOpts.OutputModes
	}

	return opts, nil
}

// changed reports whether the named flag was set explicitly. Before
// [Config.RegisterFlags] runs there is no flag set and nothing counts as
// explicitly set.
func (c *Config) changed(name string) bool {
	return c.flagSet != nil && c.flagSet.Changed(name)
}
