package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvOverrides are settings that can be supplied through the environment
// (or a .env file) on top of the YAML config
type EnvOverrides struct {
	Addr      string `envconfig:"ROI_ADDR" default:""`
	LogLevel  string `envconfig:"ROI_LOG_LEVEL" default:""`
	Theme     string `envconfig:"ROI_THEME" default:""`
	Currency  string `envconfig:"ROI_CURRENCY" default:""`
	ExportDir string `envconfig:"ROI_EXPORT_DIR" default:""`
	Strict    *bool  `envconfig:"ROI_STRICT"`
}

// LoadEnvOverrides reads envFile if it exists and then processes ROI_*
// variables. A missing envFile is not an error.
func LoadEnvOverrides(envFile string) (*EnvOverrides, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	var env EnvOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return &env, nil
}

// Apply copies every non-empty override into config
func (e *EnvOverrides) Apply(config *Config) error {
	if e.Addr != "" {
		config.Server.Addr = e.Addr
	}
	if e.LogLevel != "" {
		config.Server.LogLevel = e.LogLevel
	}
	if e.Theme != "" {
		theme := Theme(strings.ToLower(e.Theme))
		if !theme.Valid() {
			return ValidationError{Field: "ROI_THEME", Message: fmt.Sprintf("unknown theme %q (use light or dark)", e.Theme)}
		}
		config.Display.Theme = theme
	}
	if e.Currency != "" {
		config.Display.CurrencySymbol = e.Currency
	}
	if e.ExportDir != "" {
		config.Server.ExportDir = e.ExportDir
	}
	if e.Strict != nil {
		config.Strict = *e.Strict
	}
	return nil
}
