package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/baaaaaaaka/termenu/internal/tui"
)

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath error: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("termenu", "config.json")) {
		t.Fatalf("unexpected default path: %q", path)
	}
}

func TestStorePath(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, "custom.json")
	store, err := NewStore(override)
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	if store.Path() != override {
		t.Fatalf("expected store path %q, got %q", override, store.Path())
	}
	exists, err := store.Exists()
	if err != nil || exists {
		t.Fatalf("expected missing file, got exists=%v err=%v", exists, err)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Default()
	if !cfg.EndTag() {
		t.Fatalf("expected end tag on by default")
	}
	if cfg.ColorScheme != nil {
		t.Fatalf("expected no color scheme by default, got %+v", cfg.ColorScheme)
	}
	tmpl := Template(tui.DefaultColorScheme())
	if err := tmpl.Validate(); err != nil {
		t.Fatalf("template invalid: %v", err)
	}
	if tmpl.ColorScheme == nil || *tmpl.ColorScheme != tui.DefaultColorScheme() {
		t.Fatalf("expected template colors, got %+v", tmpl.ColorScheme)
	}
}
