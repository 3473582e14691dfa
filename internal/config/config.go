// Package config loads the optional project-level nyx.toml, grounded on
// miaomiao1992-dingo/pkg/config: a single TOML-backed Config struct with
// a DefaultConfig constructor, decoded with BurntSushi/toml rather than
// hand-rolled flag parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// CaseConvention selects the identifier-case policy the checker stage
// enforces (spec.md §4.2, Open Question: resolved in favor of defaulting
// to the original's sole, strict behavior while still letting a project
// opt into a relaxed one).
type CaseConvention string

const (
	// Snake matches the original's only behavior: every variable,
	// function and argument name must be snake_case.
	Snake CaseConvention = "snake"

	// SnakeOrCamel additionally accepts camelCase names — a supplemented
	// relaxation the original never offered.
	SnakeOrCamel CaseConvention = "snake_or_camel"
)

// IsValid reports whether c is a recognized convention.
func (c CaseConvention) IsValid() bool {
	return c == Snake || c == SnakeOrCamel
}

// Config is the complete nyx.toml shape.
type Config struct {
	// CaseConvention controls which identifier spellings the checker
	// stage accepts without a warning. Defaults to Snake.
	CaseConvention CaseConvention `toml:"case_convention"`

	// WarningsAsErrors promotes every Warning-severity diagnostic to a
	// build-failing one for the purposes of the driver's exit code
	// (spec.md §6 only ever mentions Error severity; this is an ambient
	// CLI knob layered on top, not a change to how diagnostics are
	// classified).
	WarningsAsErrors bool `toml:"warnings_as_errors"`
}

// DefaultConfig is the configuration used when no nyx.toml is present or
// a project's file omits a key.
func DefaultConfig() *Config {
	return &Config{
		CaseConvention:   Snake,
		WarningsAsErrors: false,
	}
}

// Load reads and decodes the TOML file at path, filling in defaults for
// anything the file omits. A missing file is not an error: it yields
// DefaultConfig() unchanged, matching dingo's "config is optional"
// stance.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if !cfg.CaseConvention.IsValid() {
		return nil, fmt.Errorf("config: %s: invalid case_convention %q (want %q or %q)",
			path, cfg.CaseConvention, Snake, SnakeOrCamel)
	}

	return cfg, nil
}
