package main

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed default-config.yaml
var defaultConfigYAML string

// Theme selects the colour scheme of the web UI and reports
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Valid reports whether t is a known theme
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// DefaultLabels are the form labels shown next to each input
var DefaultLabels = map[string]string{
	"service_fee_a":  "Monthly Retainer (Traditional Setup)",
	"install_fee_b":  "One-Time Setup Fee (Your Model)",
	"ad_spend_daily": "Daily Ad Budget",
	"lead_cost":      "Average Cost per Lead",
	"leads_per_deal": "Leads Needed to Win a Listing",
	"deal_value":     "GCI per Listing ($)",
}

// DisplayConfig is presentation-only configuration injected into the console,
// the web UI and the report generators. It never affects the calculation.
type DisplayConfig struct {
	Title          string            `yaml:"title,omitempty" json:"title,omitempty"`
	Theme          Theme             `yaml:"theme" json:"theme"`
	CurrencySymbol string            `yaml:"currency_symbol" json:"currency_symbol"`
	Labels         map[string]string `yaml:"labels,omitempty" json:"labels,omitempty"`
}

// Currency returns the configured symbol, "$" if unset
func (d DisplayConfig) Currency() string {
	if d.CurrencySymbol == "" {
		return "$"
	}
	return d.CurrencySymbol
}

// PageTitle returns the configured title or the default one
func (d DisplayConfig) PageTitle() string {
	if d.Title == "" {
		return "Lead Gen ROI Calculator"
	}
	return d.Title
}

// Label returns the display label for an input field
func (d DisplayConfig) Label(field string) string {
	if l, ok := d.Labels[field]; ok && l != "" {
		return l
	}
	if l, ok := DefaultLabels[field]; ok {
		return l
	}
	return field
}

// ThemeOrDefault returns the configured theme, falling back to dark
func (d DisplayConfig) ThemeOrDefault() Theme {
	if d.Theme.Valid() {
		return d.Theme
	}
	return ThemeDark
}

// SensitivityConfig defines the grid for the sensitivity analysis
type SensitivityConfig struct {
	AdSpendMin   float64 `yaml:"ad_spend_min" json:"ad_spend_min"`
	AdSpendMax   float64 `yaml:"ad_spend_max" json:"ad_spend_max"`
	AdSpendStep  float64 `yaml:"ad_spend_step" json:"ad_spend_step"`
	LeadCostMin  float64 `yaml:"lead_cost_min" json:"lead_cost_min"`
	LeadCostMax  float64 `yaml:"lead_cost_max" json:"lead_cost_max"`
	LeadCostStep float64 `yaml:"lead_cost_step" json:"lead_cost_step"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Addr           string   `yaml:"addr" json:"addr"`
	RateLimit      int      `yaml:"rate_limit" json:"rate_limit"`           // Requests per client per window (0 = unlimited)
	RateWindowSecs int      `yaml:"rate_window_secs" json:"rate_window_secs"` // Window length in seconds
	AllowedOrigins []string `yaml:"allowed_origins,omitempty" json:"allowed_origins,omitempty"`
	ExportDir      string   `yaml:"export_dir" json:"export_dir"`
	LogLevel       string   `yaml:"log_level" json:"log_level"`
}

// Config holds the complete configuration
type Config struct {
	Inputs      CalculationInputs `yaml:"inputs" json:"inputs"`
	Horizon     Horizon           `yaml:"horizon" json:"horizon"`
	Display     DisplayConfig     `yaml:"display" json:"display"`
	Sensitivity SensitivityConfig `yaml:"sensitivity" json:"sensitivity"`
	Server      ServerConfig      `yaml:"server" json:"server"`
	Strict      bool              `yaml:"strict" json:"strict"` // Reject non-positive divisors instead of propagating NaN/Inf
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return parseConfig(string(data))
}

// LoadDefaultConfig loads the embedded default-config.yaml
func LoadDefaultConfig() (*Config, error) {
	return parseConfig(defaultConfigYAML)
}

// LoadConfigOrDefault loads filename, falling back to the embedded defaults
// when the file does not exist
func LoadConfigOrDefault(filename string) (*Config, error) {
	config, err := LoadConfig(filename)
	if err == nil {
		return config, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading %s: %w", filename, err)
	}
	return LoadDefaultConfig()
}

func parseConfig(content string) (*Config, error) {
	var config Config
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := normalizeMoney(&doc); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if doc.Kind != 0 {
		if err := doc.Decode(&config); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}
	config.Horizon = config.Horizon.orDefault()
	return &config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	header := []byte(`# Lead Gen ROI Calculator Configuration
# Generated by the calculator - feel free to edit manually
#
# inputs:     the six values compared between Option A and Option B
#   service_fee_a   monthly retainer (Option A, paid every month)
#   install_fee_b   one-time setup fee (Option B)
#   ad_spend_daily  daily ad budget shared by both options
#   lead_cost       average cost per lead
#   leads_per_deal  leads needed to win one listing
#   deal_value      GCI per listing
#
# Money values may be written as 2000, $2,000 or 2k.
#
#   ./goLeadGenROI                 Interactive console
#   ./goLeadGenROI -web            Web UI in your browser
#   ./goLeadGenROI -sensitivity    Sensitivity grid (ad spend × lead cost)
#   ./goLeadGenROI -help           Show all options

`)
	return os.WriteFile(filename, append(header, data...), 0644)
}

// moneySections are the top-level keys whose values are amounts and may be
// written as "$2,000", "2k" or "-$1.5m"
var moneySections = map[string]bool{"inputs": true, "sensitivity": true}

// normalizeMoney rewrites shorthand string scalars under moneySections into
// plain floats so yaml.v3 can decode them into float64 fields. Scalars that
// yaml already resolves as numbers are left alone.
func normalizeMoney(doc *yaml.Node) error {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		section := root.Content[i+1]
		if !moneySections[root.Content[i].Value] || section.Kind != yaml.MappingNode {
			continue
		}
		for j := 0; j+1 < len(section.Content); j += 2 {
			v := section.Content[j+1]
			if v.Kind != yaml.ScalarNode || v.ShortTag() != "!!str" {
				continue
			}
			num, err := ParseInputValue(v.Value)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", root.Content[i].Value, section.Content[j].Value, err)
			}
			v.Value = strconv.FormatFloat(num, 'f', -1, 64)
			v.Tag = "!!float"
			v.Style = 0
		}
	}
	return nil
}
