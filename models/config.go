// Package models defines the data model shared by the summarizer client:
// configuration, summary length preferences, workflow status and failures.
package models

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the address of the hosted summarization backend.
	DefaultBaseURL = "https://document-summary-assistant-1-n59r.onrender.com"
	DefaultTimeout = 2 * time.Minute
	// DefaultPreviewLimit is the number of characters shown before "Show More".
	DefaultPreviewLimit = 300
	DefaultUserAgent    = "doc-summarizer/1.0"

	// BaseURLEnv overrides base_url from the config file.
	BaseURLEnv = "DOCSUM_BASE_URL"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime configuration. Values come from compiled defaults, an
// optional YAML file, the DOCSUM_BASE_URL environment variable and CLI flags,
// in that order of precedence.
type Config struct {
	BaseURL       string        `yaml:"base_url" json:"base_url"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout"`
	PreviewLimit  int           `yaml:"preview_limit" json:"preview_limit"`
	DefaultLength SummaryLength `yaml:"default_length" json:"default_length"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:       DefaultBaseURL,
		Timeout:       DefaultTimeout,
		PreviewLimit:  DefaultPreviewLimit,
		DefaultLength: LengthMedium,
		UserAgent:     DefaultUserAgent,
	}
}

// LoadConfig reads path on top of the defaults and validates the result.
// An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadConfig is LoadConfig without validation, for callers that apply
// further overrides first.
func ReadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(BaseURLEnv)); v != "" {
		cfg.BaseURL = v
	}
	return cfg, nil
}

// Validate checks the config and normalizes the base URL.
func (c *Config) Validate() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: base_url %q must be an absolute http(s) URL", ErrInvalidConfig, c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}
	if c.PreviewLimit <= 0 {
		return fmt.Errorf("%w: preview_limit must be positive, got %d", ErrInvalidConfig, c.PreviewLimit)
	}
	if c.DefaultLength == "" {
		c.DefaultLength = LengthMedium
	}
	if !c.DefaultLength.Valid() {
		return fmt.Errorf("%w: default_length: %w", ErrInvalidConfig, ErrInvalidLength)
	}
	return nil
}
