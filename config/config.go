package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	// APIURL is the base URL of the DocumentAI API. It carries the yaml key
	// the web client used for browser storage. Empty means not signed in.
	APIURL string `yaml:"documentai_api_url"`
	Log    struct {
		File string `yaml:"file"`
	} `yaml:"log"`
}

// Load loads configuration from file or returns defaults
func Load() (*Config, error) {
	cfg := Default()

	configPath := Path()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to file
func (c *Config) Save() error {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(Path(), data, 0644)
}

// Default returns default configuration
func Default() *Config {
	cfg := &Config{}

	cfg.APIURL = ""
	cfg.Log.File = filepath.Join(Dir(), "documentai.log")

	return cfg
}

// Dir returns the directory holding the config and log files
func Dir() string {
	return filepath.Join(os.Getenv("HOME"), ".documentai")
}

// Path returns the config file location
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// ValidateURL checks that raw is a syntactically valid absolute URL. All
// request paths are derived from this value, so it is validated once at
// sign-in rather than before each call.
func ValidateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("API URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid API URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API URL: must be absolute, e.g. http://127.0.0.1:8000")
	}
	return nil
}
