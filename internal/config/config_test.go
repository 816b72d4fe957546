package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	// t.Setenv registers the restore; unset so an empty value does not
	// shadow the defaults
	for _, k := range []string{"TODOC_BASE_URL", "TODOC_TIMEOUT_SECONDS", "TODOC_LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeConfigFile(t *testing.T, content string) {
	t.Helper()
	dir, err := Dir()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("got %q", cfg.BaseURL)
	}
	if cfg.Timeout() != time.Duration(DefaultTimeoutSeconds)*time.Second {
		t.Fatalf("got %v", cfg.Timeout())
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("got %q", cfg.LogLevel)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	isolate(t)
	writeConfigFile(t, "base_url = \"https://todos.example.com\"\ntimeout_seconds = 3\n")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "https://todos.example.com" {
		t.Fatalf("got %q", cfg.BaseURL)
	}
	if cfg.Timeout() != 3*time.Second {
		t.Fatalf("got %v", cfg.Timeout())
	}
}

func TestEnvOverridesConfigFile(t *testing.T) {
	isolate(t)
	writeConfigFile(t, "base_url = \"https://from-file.example.com\"\n")
	t.Setenv("TODOC_BASE_URL", "https://from-env.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "https://from-env.example.com" {
		t.Fatalf("got %q", cfg.BaseURL)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	isolate(t)
	writeConfigFile(t, "base_url = [not toml")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a malformed config file")
	}
}

func TestNonPositiveTimeoutFallsBack(t *testing.T) {
	isolate(t)
	writeConfigFile(t, "timeout_seconds = -5\n")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Fatalf("got %d", cfg.TimeoutSeconds)
	}
}
