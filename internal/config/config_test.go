package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yourusername/zibox/internal/ir"
	"github.com/yourusername/zibox/internal/scheduler"
)

func TestDefaultLowersCleanly(t *testing.T) {
	cfg := Default()

	md, err := cfg.Metadata()
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if md.WorkdayStart != (ir.TimeOfDay{Hour: 9}) {
		t.Errorf("WorkdayStart = %v, want 09:00", md.WorkdayStart)
	}
	if md.WorkdayEnd != (ir.TimeOfDay{Hour: 17}) {
		t.Errorf("WorkdayEnd = %v, want 17:00", md.WorkdayEnd)
	}
	if md.OptimizationLevel != 1 {
		t.Errorf("OptimizationLevel = %d, want 1", md.OptimizationLevel)
	}
	if md.DeepworkTag != "deepwork" {
		t.Errorf("DeepworkTag = %q, want deepwork", md.DeepworkTag)
	}

	mode, err := cfg.Mode()
	if err != nil {
		t.Fatalf("Mode: %v", err)
	}
	if mode != scheduler.ModeNaive {
		t.Errorf("Mode = %v, want naive", mode)
	}
}

func TestLoadFileLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	body := strings.Join([]string{
		"workday_start: \"08:30\"",
		"schedule_mode: early-bird",
		"optimization_level: 3",
		"focus_tags:",
		"  - design",
		"  - code",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.WorkdayStart != "08:30" {
		t.Errorf("WorkdayStart = %q, want 08:30", cfg.WorkdayStart)
	}
	// Untouched keys keep their defaults.
	if cfg.WorkdayEnd != "17:00" {
		t.Errorf("WorkdayEnd = %q, want default 17:00", cfg.WorkdayEnd)
	}
	if cfg.OutputFormat != "markdown" {
		t.Errorf("OutputFormat = %q, want default markdown", cfg.OutputFormat)
	}
	if cfg.OptimizationLevel != 3 {
		t.Errorf("OptimizationLevel = %d, want 3", cfg.OptimizationLevel)
	}
	if len(cfg.FocusTags) != 2 || cfg.FocusTags[0] != "design" || cfg.FocusTags[1] != "code" {
		t.Errorf("FocusTags = %v, want [design code]", cfg.FocusTags)
	}

	mode, err := cfg.Mode()
	if err != nil {
		t.Fatalf("Mode: %v", err)
	}
	if mode != scheduler.ModeEarlyBird {
		t.Errorf("Mode = %v, want early-bird", mode)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), FileName)); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("workday_start: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestMetadataValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad start", func(c *Config) { c.WorkdayStart = "nine" }},
		{"bad end", func(c *Config) { c.WorkdayEnd = "25:00" }},
		{"inverted window", func(c *Config) { c.WorkdayStart = "17:00"; c.WorkdayEnd = "09:00" }},
		{"empty window", func(c *Config) { c.WorkdayEnd = c.WorkdayStart }},
		{"zero parallel", func(c *Config) { c.MaxParallel = 0 }},
		{"negative level", func(c *Config) { c.OptimizationLevel = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if _, err := cfg.Metadata(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestMetadataEmptyDeepworkTagFallsBack(t *testing.T) {
	cfg := Default()
	cfg.DeepworkTag = ""
	md, err := cfg.Metadata()
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if md.DeepworkTag != scheduler.DefaultDeepworkTag {
		t.Errorf("DeepworkTag = %q, want %q", md.DeepworkTag, scheduler.DefaultDeepworkTag)
	}
}

func TestModeUnknown(t *testing.T) {
	cfg := Default()
	cfg.ScheduleMode = "frantic"
	if _, err := cfg.Mode(); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
