// Package profile persists terminal profiles as a JSON array, the
// explicit wire format spec.md §6 pins for the key "terminal-profiles".
// It is an external collaborator: the core engine never reads or writes
// profiles directly, it only consumes the Shell/ContextToggles fields a
// caller extracts from one.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spellcaster-labs/terminal-core/internal/aicontext"
)

// StoreKey is the application-defaults key spec.md §6 names for the
// persisted profile array.
const StoreKey = "terminal-profiles"

// Profile is one saved terminal configuration: shell, working directory,
// appearance, and the default AI context toggles a new pane opened from
// this profile should start with.
type Profile struct {
	ID              string                   `json:"id"`
	Name            string                   `json:"name"`
	Shell           string                   `json:"shell"`
	Args            []string                 `json:"args,omitempty"`
	WorkingDir      string                   `json:"workingDirectory,omitempty"`
	Env             map[string]string        `json:"env,omitempty"`
	FontFamily      string                   `json:"fontFamily,omitempty"`
	FontSize        float64                  `json:"fontSize,omitempty"`
	Columns         int                      `json:"columns,omitempty"`
	Rows            int                      `json:"rows,omitempty"`
	DefaultToggles  aicontext.ContextToggles `json:"defaultContextToggles"`
	AIProvider      string                   `json:"aiProvider,omitempty"`
	AIModel         string                   `json:"aiModel,omitempty"`
}

// Store reads and writes the profile array. The zero value is not usable;
// construct with New.
type Store struct {
	path string
}

// New returns a Store backed by path. Callers own exactly one Store per
// process and pass it down by reference (spec.md §9 Singletons note).
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath mirrors the teacher's GetConfigPath: an OS-appropriate
// per-user config directory, falling back to a relative file if the home
// directory can't be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "terminal-profiles.json"
	}
	dir := filepath.Join(home, ".config", "spellcaster-terminal")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "profiles.json")
}

// Load reads the profile array from disk. A missing file is not an error:
// it yields an empty slice, matching the teacher's Load-returns-defaults
// behavior for a fresh install.
func (s *Store) Load() ([]Profile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Profile{}, nil
		}
		return nil, fmt.Errorf("profile: load failed: %w", err)
	}
	var profiles []Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("profile: malformed store at %s: %w", s.path, err)
	}
	return profiles, nil
}

// Save writes the profile array to disk, replacing any existing content.
func (s *Store) Save(profiles []Profile) error {
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("profile: marshal failed: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("profile: save failed: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("profile: save failed: %w", err)
	}
	return nil
}

// Upsert inserts or replaces the profile matching p.ID and persists the
// result.
func (s *Store) Upsert(p Profile) ([]Profile, error) {
	profiles, err := s.Load()
	if err != nil {
		return nil, err
	}
	replaced := false
	for i, existing := range profiles {
		if existing.ID == p.ID {
			profiles[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		profiles = append(profiles, p)
	}
	if err := s.Save(profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Delete removes the profile with the given ID, if present, and persists
// the result.
func (s *Store) Delete(id string) ([]Profile, error) {
	profiles, err := s.Load()
	if err != nil {
		return nil, err
	}
	out := profiles[:0]
	for _, p := range profiles {
		if p.ID != id {
			out = append(out, p)
		}
	}
	if err := s.Save(out); err != nil {
		return nil, err
	}
	return out, nil
}
