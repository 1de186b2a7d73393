package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/cardspace/internal/config"
)

func TestDefaultPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	cfgPath, err := config.Path()
	if err != nil {
		t.Fatalf("config.Path() error: %v", err)
	}
	if want := filepath.Join(home, ".config", appName, "config.toml"); cfgPath != want {
		t.Errorf("config.Path() = %q, want %q", cfgPath, want)
	}
}

func TestXDGPaths(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(root, "cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	cfgPath, err := config.Path()
	if err != nil {
		t.Fatalf("config.Path() error: %v", err)
	}
	if want := filepath.Join(root, "config", appName, "config.toml"); cfgPath != want {
		t.Errorf("config.Path() = %q, want %q", cfgPath, want)
	}
}

func TestFileCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(os.Stderr, LogError)

	def, err := c.fileCacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want, _ := cacheDir(); def != want {
		t.Errorf("fileCacheDir() = %q, want XDG default %q", def, want)
	}

	c.cfg.Cache.Dir = "/var/cache/cards"
	if got, _ := c.fileCacheDir(); got != "/var/cache/cards" {
		t.Errorf("fileCacheDir() = %q, want configured dir", got)
	}
}
