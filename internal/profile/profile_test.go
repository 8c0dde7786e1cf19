package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRaw(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func TestStore_LoadMissingFileYieldsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does-not-exist.json"))
	profiles, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(profiles) != 0 {
		t.Fatalf("expected empty slice, got %v", profiles)
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "profiles.json"))
	in := []Profile{
		{ID: "1", Name: "Default", Shell: "/bin/zsh", Columns: 80, Rows: 24},
		{ID: "2", Name: "Work", Shell: "/bin/bash", WorkingDir: "/srv/app"},
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 2 || out[0].Name != "Default" || out[1].WorkingDir != "/srv/app" {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestStore_UpsertInsertsThenReplaces(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "profiles.json"))
	if _, err := s.Upsert(Profile{ID: "1", Name: "Default", Shell: "/bin/zsh"}); err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}
	profiles, err := s.Upsert(Profile{ID: "1", Name: "Renamed", Shell: "/bin/zsh"})
	if err != nil {
		t.Fatalf("Upsert replace: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Name != "Renamed" {
		t.Fatalf("expected single renamed profile, got %+v", profiles)
	}
}

func TestStore_DeleteRemovesMatchingID(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "profiles.json"))
	_, _ = s.Upsert(Profile{ID: "1", Name: "A"})
	_, _ = s.Upsert(Profile{ID: "2", Name: "B"})
	profiles, err := s.Delete("1")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(profiles) != 1 || profiles[0].ID != "2" {
		t.Fatalf("expected only profile 2 to remain, got %+v", profiles)
	}
}

func TestStore_LoadMalformedJSONErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	s := New(path)
	if err := writeRaw(path, "{not valid json"); err != nil {
		t.Fatalf("writeRaw: %v", err)
	}
	if _, err := s.Load(); err == nil {
		t.Fatal("expected error for malformed store")
	}
}
