// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags or the environment.
type Config struct {
	// Job
	Job        string `json:"job,omitempty"`         // Path to job description text file
	JobURL     string `json:"job_url,omitempty"`     // URL to fetch the job posting from
	JobTitle   string `json:"job_title,omitempty"`   // Role title shown to the model
	Department string `json:"department,omitempty"`  // Department shown to the model
	Fields     string `json:"fields,omitempty"`      // Path to the custom field descriptor file (JSON or YAML)

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	Parallelism int    `json:"parallelism,omitempty"`  // Concurrent model calls during batch evaluation
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty disables persistence

	// Server
	Addr string `json:"addr,omitempty"` // HTTP listen address for serve mode

	// Models
	LiteModel     string `json:"lite_model,omitempty"`     // Model name for the lite tier
	StandardModel string `json:"standard_model,omitempty"` // Model name for the standard tier
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

// FromEnv fills unset fields from the environment.
func (c *Config) FromEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.Addr == "" {
		c.Addr = os.Getenv("LISTEN_ADDR")
	}
}

// Validate checks that the configuration has valid values.
// Required fields are checked after flag merging, not here.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.Parallelism < 0 {
		return fmt.Errorf("config error: 'parallelism' must be non-negative")
	}

	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}
	if c.Fields != "" {
		if _, err := os.Stat(c.Fields); os.IsNotExist(err) {
			return fmt.Errorf("config error: fields file not found: %s", c.Fields)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.JobTitle == "" {
		result.JobTitle = defaults.JobTitle
	}
	if result.Department == "" {
		result.Department = defaults.Department
	}
	if result.Fields == "" {
		result.Fields = defaults.Fields
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Addr == "" {
		result.Addr = defaults.Addr
	}
	if result.LiteModel == "" {
		result.LiteModel = defaults.LiteModel
	}
	if result.StandardModel == "" {
		result.StandardModel = defaults.StandardModel
	}

	if result.Parallelism == 0 {
		result.Parallelism = defaults.Parallelism
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
