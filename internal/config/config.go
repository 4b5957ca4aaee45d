// Package config loads calcg settings from a TOML or YAML file.
//
// Loading runs in four steps: ${VAR} references in the raw file are expanded
// from the environment, the document is decoded into a generic map, the map is
// validated against the embedded JSON schema, and finally it is applied on top
// of the defaults and checked by the semantic rules.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/githubnext/calcg/internal/calculator"
	"github.com/githubnext/calcg/internal/logger"
	"github.com/goccy/go-yaml"
)

var logConfig = logger.New("config:config")

// Config holds the effective calcg settings
type Config struct {
	Name      string `json:"name"`
	Output    string `json:"output"`
	Precision int    `json:"precision"`
	LogDir    string `json:"log_dir,omitempty"`
}

// Default returns the settings used when no config file is present
func Default() *Config {
	return &Config{
		Name:      calculator.DefaultName,
		Output:    "text",
		Precision: -1,
	}
}

// LoadFromFile loads configuration from path. The format is chosen by extension:
// .toml, or .yaml/.yml.
func LoadFromFile(path string) (*Config, error) {
	logConfig.Printf("Loading config from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data, filepath.Ext(path))
}

// LoadOptional behaves like LoadFromFile but returns the defaults when path does not exist
func LoadOptional(path string) (*Config, error) {
	cfg, err := LoadFromFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logConfig.Printf("No config at %s, using defaults", path)
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes data in the format named by ext (".toml", ".yaml" or ".yml")
func Parse(data []byte, ext string) (*Config, error) {
	expanded, err := ExpandVariables(data)
	if err != nil {
		return nil, err
	}

	raw := make(map[string]any)
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(expanded), &raw); err != nil {
			return nil, fmt.Errorf("failed to decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(expanded, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
		if raw == nil {
			raw = make(map[string]any)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}

	doc, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize config: %w", err)
	}

	if err := validateJSONSchema(doc); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(doc, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	logConfig.Printf("Config loaded: name=%s, output=%s, precision=%d", cfg.Name, cfg.Output, cfg.Precision)
	return cfg, nil
}
