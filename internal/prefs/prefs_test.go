package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if p.Theme != defaultTheme {
		t.Fatalf("theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.Player != "" {
		t.Fatalf("player = %q, want empty", p.Player)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	want := Prefs{Player: "192.168.1.38:11000", Theme: "paper"}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got := Load(path)
	if got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}
}

func TestLoad_BadTomlFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := Save(path, Prefs{Player: "x"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	// Overwrite with garbage; load should degrade, not fail.
	if err := os.WriteFile(path, []byte("theme = [broken"), 0o644); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	p := Load(path)
	if p.Theme != defaultTheme {
		t.Fatalf("theme = %q, want default after bad toml", p.Theme)
	}
}
