package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the optional config.yaml overlay.
// Publication cadences and the indicator catalog are easier to manage in
// YAML than env vars.
type YAMLConfig struct {
	Freshness         map[string]WindowConfig `yaml:"freshness"`          // keyed by cadence name
	Indicators        []IndicatorConfig       `yaml:"indicators"`         // extra national indicators
	RefreshIndicators []string                `yaml:"refresh_indicators"` // keys warmed by the background job
}

// WindowConfig overrides the freshness window for one cadence. Durations use
// Go syntax, e.g. "720h".
type WindowConfig struct {
	Interval string `yaml:"interval"`
	Grace    string `yaml:"grace"`
}

// IndicatorConfig registers an extra national indicator in the catalog.
type IndicatorConfig struct {
	Key      string `yaml:"key"`
	SeriesID string `yaml:"series_id"`
	Title    string `yaml:"title"`
}

// ParseWindow converts the string durations into time.Durations.
func (w WindowConfig) ParseWindow() (interval, grace time.Duration, err error) {
	if w.Interval != "" {
		if interval, err = time.ParseDuration(w.Interval); err != nil {
			return 0, 0, fmt.Errorf("invalid freshness interval %q: %w", w.Interval, err)
		}
	}
	if w.Grace != "" {
		if grace, err = time.ParseDuration(w.Grace); err != nil {
			return 0, 0, fmt.Errorf("invalid freshness grace %q: %w", w.Grace, err)
		}
	}
	return interval, grace, nil
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}
