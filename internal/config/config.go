// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Candidates string `json:"candidates,omitempty"` // Path to candidate batch JSON file
	Job        string `json:"job,omitempty"`        // Path to job requirement JSON file
	Rules      string `json:"rules,omitempty"`      // Path to automation rule snapshot JSON file
	Intake     string `json:"intake,omitempty"`     // Path to shared intake document text file

	// Behavior
	APIKey        string `json:"api_key,omitempty"`         // Gemini API key
	Model         string `json:"model,omitempty"`           // Model tier: lite, standard, advanced
	Concurrency   int    `json:"concurrency,omitempty"`     // Max in-flight inference calls
	MinIntervalMS int    `json:"min_interval_ms,omitempty"` // Minimum spacing between inference calls
	Verbose       bool   `json:"verbose,omitempty"`         // Print detailed debug information
	DatabaseURL   string `json:"database_url,omitempty"`    // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// MergeWithDefaults fills unset fields from defaults and returns the result.
// Explicitly set values always win.
func (c Config) MergeWithDefaults(defaults Config) Config {
	if c.Model == "" {
		c.Model = defaults.Model
	}
	if c.Concurrency == 0 {
		c.Concurrency = defaults.Concurrency
	}
	if c.MinIntervalMS == 0 {
		c.MinIntervalMS = defaults.MinIntervalMS
	}
	if c.Rules == "" {
		c.Rules = defaults.Rules
	}
	return c
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.MinIntervalMS < 0 {
		return fmt.Errorf("config error: 'min_interval_ms' must be non-negative")
	}

	switch c.Model {
	case "", "lite", "standard", "advanced":
	default:
		return fmt.Errorf("config error: 'model' must be one of lite, standard, advanced")
	}

	// Validate file paths exist (if specified)
	for name, path := range map[string]string{
		"candidates": c.Candidates,
		"job":        c.Job,
		"rules":      c.Rules,
		"intake":     c.Intake,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}
