package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_MissingFileWritesDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := LoadFrom(p)

	if cfg.ScrollbackLines != DefaultScrollbackLines {
		t.Fatalf("expected default scrollback, got %d", cfg.ScrollbackLines)
	}
	if _, err := os.Stat(p); err != nil {
		t.Fatalf("expected defaults to be written to %s: %v", p, err)
	}
}

func TestLoadFrom_MergesPartialOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte("default_shell: /bin/fish\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := LoadFrom(p)
	if cfg.DefaultShell != "/bin/fish" {
		t.Fatalf("expected override to take effect, got %q", cfg.DefaultShell)
	}
	if cfg.AIProviderBaseURL != DefaultConfig().AIProviderBaseURL {
		t.Fatalf("expected default base URL to survive partial override, got %q", cfg.AIProviderBaseURL)
	}
}

func TestLoadFrom_ClampsOutOfRangeValues(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	content := "scrollback_lines: -5\ncoalesce_interval_millis: 5000\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := LoadFrom(p)
	if cfg.ScrollbackLines != 0 {
		t.Fatalf("expected negative scrollback clamped to 0, got %d", cfg.ScrollbackLines)
	}
	if cfg.CoalesceIntervalMillis != 1000 {
		t.Fatalf("expected coalesce interval clamped to 1000, got %d", cfg.CoalesceIntervalMillis)
	}
}

func TestLoadFrom_EmptyBaseURLFallsBackToDefault(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte("ai_provider_base_url: \"\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := LoadFrom(p)
	if cfg.AIProviderBaseURL != DefaultConfig().AIProviderBaseURL {
		t.Fatalf("expected default base URL, got %q", cfg.AIProviderBaseURL)
	}
}
