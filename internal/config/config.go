// Package config provides configuration management for the cleaning
// pipelines.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingCustomersPath  = errors.New("inputs.customers is required")
	ErrNoCatalogSources      = errors.New("at least one catalog source is required")
	ErrCatalogSourceNoName   = errors.New("catalog source name is required")
	ErrCatalogSourceNoPath   = errors.New("catalog source path is required")
	ErrMissingMappingPath    = errors.New("inputs.category_mapping is required")
	ErrMissingSalesPath      = errors.New("inputs.sales is required")
	ErrMissingCleanDir       = errors.New("output.clean_dir is required")
	ErrMissingReportsDir     = errors.New("output.reports_dir is required")
	ErrInvalidUSDRate        = errors.New("currency.usd_rate must be positive")
	ErrMissingCurrencySymbol = errors.New("currency.symbol is required")
	ErrMissingPhonePrefix    = errors.New("phone.default_country_code is required")
	ErrInvalidLogLevel       = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete pipeline configuration.
type Config struct {
	Inputs    InputsConfig      `yaml:"inputs"`
	Output    OutputConfig      `yaml:"output"`
	Currency  CurrencyConfig    `yaml:"currency"`
	Phone     PhoneConfig       `yaml:"phone"`
	Countries map[string]string `yaml:"countries"`
	Logging   LoggingConfig     `yaml:"logging"`
}

// InputsConfig locates the raw source tables.
type InputsConfig struct {
	Customers       string          `yaml:"customers"`
	CatalogSources  []CatalogSource `yaml:"catalog_sources"`
	CategoryMapping string          `yaml:"category_mapping"`
	Sales           string          `yaml:"sales"`
}

// CatalogSource is one regional product catalog file. Name becomes the
// provenance column value on every row loaded from it.
type CatalogSource struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// OutputConfig defines where clean tables and QC reports are written.
type OutputConfig struct {
	CleanDir   string `yaml:"clean_dir"`
	ReportsDir string `yaml:"reports_dir"`
}

// CurrencyConfig holds the canonical currency and the conversion rate
// applied to USD-denominated prices and amounts. The rate is injected
// into every conversion call, never read through package state, so
// pipelines stay testable with different rates.
type CurrencyConfig struct {
	USDRate float64 `yaml:"usd_rate"`
	Symbol  string  `yaml:"symbol"`
}

// PhoneConfig holds the prefix prepended to short phone numbers.
type PhoneConfig struct {
	DefaultCountryCode string `yaml:"default_country_code"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultCountryAliases replicates the source system's country alias
// table. Entries are keyed by the trimmed, lower-cased raw value.
func DefaultCountryAliases() map[string]string {
	return map[string]string{
		"fr":              "France",
		"france":          "France",
		"french republic": "France",
		"be":              "Belgique",
		"belgique":        "Belgique",
		"ch":              "suisse",
	}
}

// LoadConfig loads configuration from a YAML file, fills in defaults
// and validates the result.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Currency.USDRate == 0 {
		c.Currency.USDRate = 0.92
	}

	if c.Currency.Symbol == "" {
		c.Currency.Symbol = "€"
	}

	if c.Phone.DefaultCountryCode == "" {
		c.Phone.DefaultCountryCode = "33"
	}

	if c.Countries == nil {
		c.Countries = DefaultCountryAliases()
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Inputs.Customers == "" {
		return ErrMissingCustomersPath
	}

	if len(c.Inputs.CatalogSources) == 0 {
		return ErrNoCatalogSources
	}

	for i, src := range c.Inputs.CatalogSources {
		if src.Name == "" {
			return fmt.Errorf("%w: catalog_sources[%d]", ErrCatalogSourceNoName, i)
		}

		if src.Path == "" {
			return fmt.Errorf("%w: catalog_sources[%d]", ErrCatalogSourceNoPath, i)
		}
	}

	if c.Inputs.CategoryMapping == "" {
		return ErrMissingMappingPath
	}

	if c.Inputs.Sales == "" {
		return ErrMissingSalesPath
	}

	if c.Output.CleanDir == "" {
		return ErrMissingCleanDir
	}

	if c.Output.ReportsDir == "" {
		return ErrMissingReportsDir
	}

	if c.Currency.USDRate <= 0 {
		return ErrInvalidUSDRate
	}

	if c.Currency.Symbol == "" {
		return ErrMissingCurrencySymbol
	}

	if c.Phone.DefaultCountryCode == "" {
		return ErrMissingPhonePrefix
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// String returns a short description of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{CatalogSources: %d, USDRate: %.2f, CleanDir: %s}",
		len(c.Inputs.CatalogSources),
		c.Currency.USDRate,
		c.Output.CleanDir,
	)
}
