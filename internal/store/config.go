package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Locator struct {
		DealsMarker     string   `yaml:"deals_marker" validate:"required"`
		HeaderFields    []string `yaml:"header_fields" validate:"min=1,dive,required"`
		LegacyFields    []string `yaml:"legacy_fields" validate:"min=1,dive,required"`
		MarkerScanLimit int      `yaml:"marker_scan_limit" validate:"gt=0"`
	} `yaml:"locator"`
	Extractor struct {
		ExcludedType string `yaml:"excluded_type" validate:"required"`
	} `yaml:"extractor"`
	Aggregator struct {
		ProfitPolicy string `yaml:"profit_policy" validate:"oneof=drop zero"`
		Order        string `yaml:"order" validate:"oneof=row time"`
	} `yaml:"aggregator"`
	Report struct {
		Format         string `yaml:"format" validate:"oneof=text json yaml csv html pdf"`
		OutputDir      string `yaml:"output_dir"`
		IncludeRecords bool   `yaml:"include_records"`
		Chart          bool   `yaml:"chart"`
		RetentionDays  int    `yaml:"retention_days" validate:"gte=0"`
	} `yaml:"report"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Locator.DealsMarker == "" {
		c.Locator.DealsMarker = "Deals"
	}
	if len(c.Locator.HeaderFields) == 0 {
		c.Locator.HeaderFields = []string{"Time", "Profit"}
	}
	if len(c.Locator.LegacyFields) == 0 {
		c.Locator.LegacyFields = []string{"Profit", "Order"}
	}
	if c.Locator.MarkerScanLimit == 0 {
		c.Locator.MarkerScanLimit = 50000
	}
	if c.Extractor.ExcludedType == "" {
		c.Extractor.ExcludedType = "balance"
	}
	if c.Aggregator.ProfitPolicy == "" {
		c.Aggregator.ProfitPolicy = "drop"
	}
	if c.Aggregator.Order == "" {
		c.Aggregator.Order = "row"
	}
	if c.Report.Format == "" {
		c.Report.Format = "text"
	}
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "reports"
	}
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	for _, f := range c.Locator.HeaderFields {
		if f == c.Locator.DealsMarker {
			return fmt.Errorf("locator.header_fields must not contain the deals marker %q", f)
		}
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

// LoadConfigOrDefault is LoadConfig, falling back to DefaultConfig when the file does not exist.
// The boolean reports whether the file was found.
func LoadConfigOrDefault(path string) (*Config, bool, error) {
	c, err := LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}
