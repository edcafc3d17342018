package models

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(BaseURLEnv, "")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.Timeout != DefaultTimeout || cfg.PreviewLimit != DefaultPreviewLimit {
		t.Errorf("Timeout = %s, PreviewLimit = %d", cfg.Timeout, cfg.PreviewLimit)
	}
	if cfg.DefaultLength != LengthMedium {
		t.Errorf("DefaultLength = %q, want medium", cfg.DefaultLength)
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv(BaseURLEnv, "")
	path := writeConfig(t, `
base_url: http://localhost:8000/
timeout: 30s
preview_limit: 120
default_length: long
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q, trailing slash should be trimmed", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s, want 30s", cfg.Timeout)
	}
	if cfg.PreviewLimit != 120 {
		t.Errorf("PreviewLimit = %d, want 120", cfg.PreviewLimit)
	}
	if cfg.DefaultLength != LengthLong {
		t.Errorf("DefaultLength = %q, want long", cfg.DefaultLength)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q, unset keys keep defaults", cfg.UserAgent)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "base_url: http://from-file:8000\n")
	t.Setenv(BaseURLEnv, "https://from-env.example.com")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.BaseURL != "https://from-env.example.com" {
		t.Errorf("BaseURL = %q, want env value", cfg.BaseURL)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Setenv(BaseURLEnv, "")

	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{name: "not yaml", content: "base_url: [", invalid: false},
		{name: "relative url", content: "base_url: /api", invalid: true},
		{name: "ftp scheme", content: "base_url: ftp://host", invalid: true},
		{name: "zero timeout", content: "timeout: 0s", invalid: true},
		{name: "negative preview", content: "preview_limit: -1", invalid: true},
		{name: "bad length", content: "default_length: tiny", invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrInvalidConfig); got != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalidConfig) = %v, want %v (err: %v)", got, tt.invalid, err)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadConfigDefersValidation(t *testing.T) {
	t.Setenv(BaseURLEnv, "")
	path := writeConfig(t, "base_url: not-a-url\n")

	cfg, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Validate() error = %v, want ErrInvalidConfig", err)
	}

	cfg.BaseURL = "http://override.example.com/"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() after override error = %v", err)
	}
	if cfg.BaseURL != "http://override.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}
