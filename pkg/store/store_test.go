package store

import (
	"os"
	"path/filepath"
	"testing"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/richtext"
)

type testConfig string

func (c testConfig) BasePath() string { return string(c) }

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Load(testConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	return s
}

func TestEntriesRoundTrip(t *testing.T) {
	s := testStore(t)

	e := entry.New("2026-03-09")
	e.Content = richtext.FromText("dear diary")
	e.Tags = []string{"travel"}
	e.UpdatedAt = 100

	if err := s.SaveEntries(entry.Set{e.ID: e}); err != nil {
		t.Fatalf("save: %v", err)
	}

	set := s.Entries()
	got, ok := set["2026-03-09"]
	if !ok {
		t.Fatalf("entry missing after reload")
	}
	if got.Content.PlainText() != "dear diary" {
		t.Fatalf("content lost: %q", got.Content.PlainText())
	}
	if len(got.Tags) != 1 || got.Tags[0] != "travel" {
		t.Fatalf("tags lost: %v", got.Tags)
	}
	if got.UpdatedAt != 100 {
		t.Fatalf("updatedAt lost: %d", got.UpdatedAt)
	}
}

func TestEntriesMissingBlobIsEmptySet(t *testing.T) {
	s := testStore(t)
	if set := s.Entries(); len(set) != 0 {
		t.Fatalf("expected empty set, got %d entries", len(set))
	}
}

func TestEntriesCorruptBlobIsEmptySet(t *testing.T) {
	dir := t.TempDir()
	s, err := Load(testConfig(dir))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "entries"), []byte("{nope"), 0o644); err != nil {
		t.Fatalf("write corrupt blob: %v", err)
	}
	if set := s.Entries(); len(set) != 0 {
		t.Fatalf("expected empty set from corrupt blob, got %d entries", len(set))
	}
}

func TestSettingsDefaultsBackfilled(t *testing.T) {
	dir := t.TempDir()
	s, err := Load(testConfig(dir))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}

	// A partial blob from an older version: only darkMode present.
	if err := os.WriteFile(filepath.Join(dir, "settings"), []byte(`{"darkMode":true}`), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	cfg := s.Settings()
	def := DefaultSettings()
	if !cfg.DarkMode {
		t.Fatalf("stored field lost")
	}
	if cfg.EditorFontSize != def.EditorFontSize {
		t.Fatalf("missing font size not backfilled: %d", cfg.EditorFontSize)
	}
	if cfg.EditorFont != def.EditorFont {
		t.Fatalf("missing font not backfilled: %s", cfg.EditorFont)
	}
	if cfg.EditorColor != def.EditorColor {
		t.Fatalf("missing color not backfilled: %s", cfg.EditorColor)
	}
}

func TestSettingsInvalidColorReverts(t *testing.T) {
	s := testStore(t)
	cfg := DefaultSettings()
	cfg.EditorColor = "reddish"
	if err := s.SaveSettings(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := s.Settings().EditorColor; got != DefaultSettings().EditorColor {
		t.Fatalf("invalid color survived: %s", got)
	}
}

func TestCredentialsLifecycle(t *testing.T) {
	s := testStore(t)

	if s.LoadCredentials().SignedIn() {
		t.Fatalf("expected signed out by default")
	}

	c := Credentials{Endpoint: "https://example.test/rest/v1", Token: "secret"}
	if err := s.SaveCredentials(c); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := s.LoadCredentials(); !got.SignedIn() || got.Endpoint != c.Endpoint {
		t.Fatalf("credentials lost: %#v", got)
	}

	if err := s.ClearCredentials(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s.LoadCredentials().SignedIn() {
		t.Fatalf("expected signed out after clear")
	}
}
