// Package config loads and provides ambient application configuration:
// everything spec.md treats as a process-wide default rather than a
// per-profile or per-provider secret. Terminal profiles (spec.md §6) and
// provider API keys live in internal/profile and internal/keychain
// instead, each pinned to its own persisted format.
//
// On first run, a default YAML config is written to
// ~/.config/spellcaster-terminal/config.yaml. Subsequent runs read and
// merge that file with built-in defaults.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/spellcaster-labs/terminal-core/internal/aicontext"
)

// Config holds ambient, non-profile settings.
type Config struct {
	// DefaultShell is the shell spawned for a pane when a profile doesn't
	// override it. Empty means the $SHELL environment variable.
	DefaultShell string `yaml:"default_shell"`

	// ScrollbackLines bounds each grid's scrollback ring (spec.md §9
	// Open Question (a): 10,000 default).
	ScrollbackLines int `yaml:"scrollback_lines"`

	// CoalesceIntervalMillis is the UI notification coalescing window
	// from spec.md §5 Backpressure ("~60 Hz, one redraw per 16ms").
	CoalesceIntervalMillis int `yaml:"coalesce_interval_millis"`

	// AIProviderBaseURL is the default {baseURL} spec.md §6 posts
	// "/chat/completions" under.
	AIProviderBaseURL string `yaml:"ai_provider_base_url"`

	// AIModels lists the selectable models for the AI sidebar.
	AIModels []ModelEntry `yaml:"ai_models"`

	// DefaultContextToggles seeds a fresh profile's toggle state
	// (spec.md §4.7) when one isn't otherwise specified.
	DefaultContextToggles aicontext.ContextToggles `yaml:"default_context_toggles"`
}

// ModelEntry is a selectable AI model in the sidebar's model picker.
type ModelEntry struct {
	Label string `yaml:"label"`
	ID    string `yaml:"id"`
}

// DefaultScrollbackLines matches spec.md §9's fixed default.
const DefaultScrollbackLines = 10000

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		DefaultShell:           "",
		ScrollbackLines:        DefaultScrollbackLines,
		CoalesceIntervalMillis: 16,
		AIProviderBaseURL:      "https://api.openai.com/v1",
		AIModels: []ModelEntry{
			{Label: "Default", ID: ""},
			{Label: "GPT-4o", ID: "gpt-4o"},
			{Label: "GPT-4o mini", ID: "gpt-4o-mini"},
		},
		DefaultContextToggles: aicontext.ContextToggles{
			IncludeCurrentDirectory: true,
			IncludeRecentOutput:     true,
			IncludeLastCommand:      true,
			IncludeGitStatus:        false,
			IncludeEnvironment:      false,
			IncludeScrollback:       false,
		},
	}
}

// path returns the path to the ambient config file.
func path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "spellcaster-terminal", "config.yaml")
}

// Load reads the config file, falling back to defaults for missing
// fields and clamping any out-of-range values it finds.
func Load() Config {
	p := path()
	if p == "" {
		return DefaultConfig()
	}
	return LoadFrom(p)
}

// LoadFrom reads the config file at an explicit path, writing out
// defaults if it doesn't yet exist. Split out from Load so callers (and
// tests) can point it at a location other than the per-user default.
func LoadFrom(p string) Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(p)
	if err != nil {
		writeDefaults(p, cfg)
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	if cfg.ScrollbackLines < 0 {
		cfg.ScrollbackLines = 0
	}
	if cfg.ScrollbackLines > 1_000_000 {
		cfg.ScrollbackLines = 1_000_000
	}
	if cfg.CoalesceIntervalMillis < 1 {
		cfg.CoalesceIntervalMillis = 1
	}
	if cfg.CoalesceIntervalMillis > 1000 {
		cfg.CoalesceIntervalMillis = 1000
	}
	if cfg.AIProviderBaseURL == "" {
		cfg.AIProviderBaseURL = DefaultConfig().AIProviderBaseURL
	}

	return cfg
}

// writeDefaults persists the default configuration to disk so a fresh
// install has an editable file to find.
func writeDefaults(path string, cfg Config) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	header := []byte("# spellcaster terminal configuration\n# Edit this file to customize defaults.\n\n")
	_ = os.WriteFile(path, append(header, data...), 0o644)
}
