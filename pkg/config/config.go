// Package config provides configuration management for the koatl
// toolchain: TOML project/user settings plus the TranspileOptions
// passed directly into pkg/lower.TransformAST.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// TranspileMode selects the top-level shape the lowering pass treats
// the input block as (SPEC_FULL.md §6 "External interfaces").
type TranspileMode string

const (
	// ModeModule lowers the block as a module body: `export` is legal
	// at the top level and populates the module's export table.
	ModeModule TranspileMode = "module"

	// ModePrelude lowers the block the same way as ModeModule, except its
	// own final expression is kept as a trailing expression statement
	// rather than discarded: the emitter splices the result ahead of
	// every module instead of running it standalone, and that trailing
	// value is how a prelude hands a result to what follows it.
	ModePrelude TranspileMode = "prelude"

	// ModeInteractive lowers one block at a time (a REPL cell): the
	// final expression of the block, if any, is kept rather than
	// discarded or required.
	ModeInteractive TranspileMode = "interactive"

	// ModeScript lowers the block as a top-level script body: like
	// ModeModule, but its own final expression is kept rather than
	// discarded, the same as ModePrelude and ModeInteractive.
	ModeScript TranspileMode = "script"
)

// IsValid reports whether m is one of the modes TransformAST accepts.
func (m TranspileMode) IsValid() bool {
	switch m {
	case ModeModule, ModePrelude, ModeInteractive, ModeScript:
		return true
	default:
		return false
	}
}

// TranspileOptions is the options value threaded into one
// TransformAST call.
type TranspileOptions struct {
	Mode TranspileMode `toml:"mode"`

	// ModuleName is not read by pkg/lower or pkg/diag; it does not
	// affect lowering.
	ModuleName string `toml:"-"`
}

// DiagnosticsConfig controls how pkg/diag renders collected lowering
// errors.
type DiagnosticsConfig struct {
	// Color enables ANSI styling of rendered diagnostics. Disabled
	// automatically when stdout isn't a terminal regardless of this
	// setting; see pkg/diag.
	Color bool `toml:"color"`

	// ContextLines is how many source lines of context to print around
	// a diagnostic's span.
	ContextLines int `toml:"context_lines"`
}

// Config is the complete koatl project configuration, loaded from
// koatl.toml.
type Config struct {
	Transpile   TranspileOptions  `toml:"transpile"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

// DefaultConfig returns the configuration used when no koatl.toml is
// present and no overrides are given.
func DefaultConfig() *Config {
	return &Config{
		Transpile: TranspileOptions{
			Mode: ModeModule,
		},
		Diagnostics: DiagnosticsConfig{
			Color:        true,
			ContextLines: 2,
		},
	}
}

// Load loads configuration from multiple sources with precedence:
//  1. overrides (highest priority, typically CLI flags)
//  2. project koatl.toml (current directory)
//  3. user config (~/.koatl/config.toml)
//  4. built-in defaults (lowest priority)
func Load(overrides *Config) (*Config, error) {
	cfg := DefaultConfig()

	userConfigPath := filepath.Join(os.Getenv("HOME"), ".koatl", "config.toml")
	if err := loadConfigFile(userConfigPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	projectConfigPath := "koatl.toml"
	if err := loadConfigFile(projectConfigPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	if overrides != nil {
		if overrides.Transpile.Mode != "" {
			cfg.Transpile.Mode = overrides.Transpile.Mode
		}
		if overrides.Transpile.ModuleName != "" {
			cfg.Transpile.ModuleName = overrides.Transpile.ModuleName
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadConfigFile loads a TOML configuration file into cfg. A missing
// file is not an error: the caller's existing defaults are kept.
func loadConfigFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return nil
}

// Validate checks that every enum-shaped field holds a recognized value.
func (c *Config) Validate() error {
	if !c.Transpile.Mode.IsValid() {
		return fmt.Errorf("invalid transpile.mode: %q (must be %q, %q, %q, or %q)",
			c.Transpile.Mode, ModeModule, ModePrelude, ModeInteractive, ModeScript)
	}
	if c.Diagnostics.ContextLines < 0 {
		return fmt.Errorf("invalid diagnostics.context_lines: %d (must be >= 0)", c.Diagnostics.ContextLines)
	}
	return nil
}
