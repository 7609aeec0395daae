package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv(DirEnv, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Fatalf("base url = %q", cfg.APIBaseURL)
	}
	if cfg.IsLoggedIn() {
		t.Fatalf("fresh config reports logged in")
	}
}

func TestSaveRoundTripKeepsTokenPrivate(t *testing.T) {
	t.Setenv(DirEnv, filepath.Join(t.TempDir(), "nested"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.AccessToken = "tok-123"
	cfg.Username = "jane@example.com"
	cfg.RememberJob("abc123", "https://cdn.test/abc123.json")
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(Path())
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Fatalf("config file mode = %o, want 0600", perm)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !loaded.IsLoggedIn() || loaded.AccessToken != "tok-123" {
		t.Fatalf("token not persisted: %+v", loaded)
	}
	if loaded.LastJobID != "abc123" {
		t.Fatalf("last job not persisted: %+v", loaded)
	}

	loaded.ClearAuth()
	if loaded.IsLoggedIn() || loaded.Username != "" {
		t.Fatalf("ClearAuth left auth state: %+v", loaded)
	}
}
