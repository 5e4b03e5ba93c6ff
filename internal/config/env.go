package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Environment holds CLI defaults read from the environment. Explicit flags
// take precedence over these values.
type Environment struct {
	Format    string `env:"COLLEGEPLAN_FORMAT"`
	OutputDir string `env:"COLLEGEPLAN_OUTPUT_DIR"`
	Verbose   bool   `env:"COLLEGEPLAN_VERBOSE"`
}

// LoadEnvironment parses the COLLEGEPLAN_* variables.
func LoadEnvironment() (Environment, error) {
	var e Environment
	if err := env.Parse(&e); err != nil {
		return Environment{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// FormatOr returns the environment's report format, or fallback when unset.
func (e Environment) FormatOr(fallback string) string {
	if e.Format == "" {
		return fallback
	}
	return e.Format
}
