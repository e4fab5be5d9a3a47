package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ErrLoadOptions indicates an options file could not be read or parsed.
var ErrLoadOptions = errors.New("loading options file")

// fileOptions mirrors [Options] with YAML field names.
type fileOptions struct {
	Disable     bool     `yaml:"disable"`
	Metrics     []string `yaml:"metrics"`
	Profile     bool     `yaml:"profile"`
	Trace       bool     `yaml:"trace"`
	OutputDir   string   `yaml:"output_dir"`
	OutputModes []string `yaml:"output_modes"`
}

// LoadFile reads measurement [Options] from a YAML file.
func LoadFile(path string) (Options, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Options path from CLI flag is expected.
	if err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrLoadOptions, err)
	}

	var fo fileOptions

	err = yaml.Unmarshal(data, &fo)
	if err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrLoadOptions, err)
	}

	return Options{
		Disable:     fo.Disable,
		Metrics:     fo.Metrics,
		Profile:     fo.Profile,
		Trace:       fo.Trace,
		OutputDir:   fo.OutputDir,
		OutputModes: fo.OutputModes,
	}, nil
}
