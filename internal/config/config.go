// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-diff/internal/annotate"
)

// EnvConfigPath names the environment variable holding the default config file path.
const EnvConfigPath = "RESUME_DIFF_CONFIG"

// Output formats for the compare command.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or are set by CLI flags.
type Config struct {
	// Rendering
	ReservedKeys []string `json:"reserved_keys,omitempty" validate:"dive,required"` // Top-level keys never shown as sections
	MaxDepth     int      `json:"max_depth,omitempty" validate:"gte=0,lte=1024"`     // Deepest level rendered
	ChangedOnly  bool     `json:"changed_only,omitempty"`                            // Only render sections the change-set touches

	// Output
	Format   string `json:"format,omitempty" validate:"omitempty,oneof=text json yaml"`        // compare output format
	LogLevel string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"` // slog level
	Verbose  bool   `json:"verbose,omitempty"`                                                // Print detailed debug information
}

// Defaults returns the configuration used when no file is given.
func Defaults() Config {
	return Config{
		ReservedKeys: append([]string(nil), annotate.DefaultReservedKeys...),
		MaxDepth:     annotate.DefaultMaxDepth,
		Format:       FormatText,
		LogLevel:     "info",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ReservedKeys == nil {
		result.ReservedKeys = append([]string(nil), defaults.ReservedKeys...)
	}
	if result.MaxDepth == 0 {
		result.MaxDepth = defaults.MaxDepth
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Options converts the rendering fields to annotator options.
func (c *Config) Options() annotate.Options {
	opts := annotate.DefaultOptions()
	if c.ReservedKeys != nil {
		opts.ReservedKeys = append([]string(nil), c.ReservedKeys...)
	}
	if c.MaxDepth > 0 {
		opts.MaxDepth = c.MaxDepth
	}
	opts.ChangedOnly = c.ChangedOnly
	return opts
}
