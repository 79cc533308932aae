// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Run parameters
	Sector      string `json:"sector,omitempty"`       // Industry sector to discover
	Location    string `json:"location,omitempty"`     // Geographic region ("global" for worldwide)
	TargetCount int    `json:"target_count,omitempty"` // Companies to find (0 = unlimited)
	SearchQuery string `json:"search_query,omitempty"` // Override for the derived discovery query

	// Credentials
	APIKey         string `json:"api_key,omitempty"`          // Gemini API key
	SearchAPIKey   string `json:"search_api_key,omitempty"`   // Google Custom Search API key
	SearchEngineID string `json:"search_engine_id,omitempty"` // Custom Search engine ID (cx)
	DatabaseURL    string `json:"database_url,omitempty"`     // PostgreSQL connection URL (optional)

	// Behavior
	Output     string `json:"output,omitempty"`      // CSV output path
	CorpusDir  string `json:"corpus_dir,omitempty"`  // Directory of partnership corpus documents
	UseBrowser bool   `json:"use_browser,omitempty"` // Use headless browser for SPA sites
	Verbose    bool   `json:"verbose,omitempty"`     // Print detailed debug information
}

// validate is shared across calls; validator instances cache struct metadata.
var validate = validator.New()

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

// Validate checks that the configuration has valid values.
// Required fields are checked after flag merging, not here.
func (c *Config) Validate() error {
	if c.TargetCount < 0 {
		return fmt.Errorf("config error: 'target_count' must be non-negative")
	}
	if c.CorpusDir != "" {
		if _, err := os.Stat(c.CorpusDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: corpus directory not found: %s", c.CorpusDir)
		}
	}
	return nil
}

// ValidateStruct runs tag-based validation on any struct carrying
// `validate` tags, reporting the first offending field.
func ValidateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return fmt.Errorf("invalid %s: failed '%s' validation", verrs[0].Field(), verrs[0].Tag())
		}
		return err
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Sector == "" {
		result.Sector = defaults.Sector
	}
	if result.Location == "" {
		result.Location = defaults.Location
	}
	if result.SearchQuery == "" {
		result.SearchQuery = defaults.SearchQuery
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.SearchEngineID == "" {
		result.SearchEngineID = defaults.SearchEngineID
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.CorpusDir == "" {
		result.CorpusDir = defaults.CorpusDir
	}

	if result.TargetCount == 0 {
		result.TargetCount = defaults.TargetCount
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
