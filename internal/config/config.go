// Package config resolves zibox settings from a .zibox.yaml file merged
// with command-line flags, and lowers them into the typed inputs the
// pipeline consumes. All validation that counts as a configuration error
// lives here, so the core stages never see malformed input.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/zibox/internal/ir"
	"github.com/yourusername/zibox/internal/scheduler"
)

// FileName is the config file zibox looks for, first in the working
// directory and then in the user's home directory.
const FileName = ".zibox.yaml"

// Config models the file plus the flag overrides layered on top of it.
type Config struct {
	OutputFormat      string   `yaml:"output_format"`
	OutputFile        string   `yaml:"output_file,omitempty"`
	WorkdayStart      string   `yaml:"workday_start"`
	WorkdayEnd        string   `yaml:"workday_end"`
	ScheduleMode      string   `yaml:"schedule_mode"`
	OptimizationLevel int      `yaml:"optimization_level"`
	FocusTags         []string `yaml:"focus_tags,omitempty"`
	MaxParallel       int      `yaml:"max_parallel"`
	DeepworkTag       string   `yaml:"deepwork_tag"`

	// Flag-only switches; never read from the file.
	DryRun    bool `yaml:"-"`
	ShowIR    bool `yaml:"-"`
	Visualize bool `yaml:"-"`
}

// Default returns the built-in configuration: markdown output, a
// 09:00-17:00 workday, naive scheduling, level-1 optimization.
func Default() Config {
	return Config{
		OutputFormat:      "markdown",
		WorkdayStart:      "09:00",
		WorkdayEnd:        "17:00",
		ScheduleMode:      "naive",
		OptimizationLevel: 1,
		MaxParallel:       1,
		DeepworkTag:       "deepwork",
	}
}

// Load reads the first config file found in the search path, layered over
// the defaults. A missing file is not an error; a malformed one is.
func Load() (Config, error) {
	paths := []string{FileName}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, FileName))
	}
	for _, path := range paths {
		cfg, err := LoadFile(path)
		if err == nil {
			return cfg, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return Config{}, err
	}
	return Default(), nil
}

// LoadFile reads one config file layered over the defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Metadata validates and lowers the scheduling settings. This is the
// boundary where time strings become times of day; a failure here is fatal
// to the compile before any stage runs.
func (c Config) Metadata() (ir.Metadata, error) {
	start, err := ir.ParseTimeOfDay(c.WorkdayStart)
	if err != nil {
		return ir.Metadata{}, fmt.Errorf("workday_start: %w", err)
	}
	end, err := ir.ParseTimeOfDay(c.WorkdayEnd)
	if err != nil {
		return ir.Metadata{}, fmt.Errorf("workday_end: %w", err)
	}
	if end.MinutesFromMidnight() <= start.MinutesFromMidnight() {
		return ir.Metadata{}, fmt.Errorf("workday_end %s must be after workday_start %s", end, start)
	}
	if c.MaxParallel < 1 {
		return ir.Metadata{}, fmt.Errorf("max_parallel must be at least 1, got %d", c.MaxParallel)
	}
	if c.OptimizationLevel < 0 {
		return ir.Metadata{}, fmt.Errorf("optimization_level must not be negative, got %d", c.OptimizationLevel)
	}
	tag := c.DeepworkTag
	if tag == "" {
		tag = scheduler.DefaultDeepworkTag
	}
	return ir.Metadata{
		WorkdayStart:      start,
		WorkdayEnd:        end,
		MaxParallel:       c.MaxParallel,
		FocusTags:         append([]string(nil), c.FocusTags...),
		OptimizationLevel: c.OptimizationLevel,
		DeepworkTag:       tag,
	}, nil
}

// Mode resolves the schedule_mode string.
func (c Config) Mode() (scheduler.Mode, error) {
	return scheduler.ParseMode(c.ScheduleMode)
}
