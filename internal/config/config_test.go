package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/cardspace/pkg/errors"
	"github.com/matzehuels/cardspace/pkg/layout"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if diff := cmp.Diff(layout.DefaultOptions(), *cfg.LayoutOptions()); diff != "" {
		t.Errorf("LayoutOptions mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.FrameInterval(); got != time.Second/60 {
		t.Errorf("FrameInterval() = %v, want %v", got, time.Second/60)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
[layout]
initial = "helix"
sphere_radius = 800
tetra_face_center = true

[transition]
duration = "1500ms"

[source]
kind = "sheet"
url = "https://example.com/pub?output=csv"

[cache]
backend = "redis"
redis_addr = "localhost:6379"
`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	want := Default()
	want.Layout.Initial = "helix"
	want.Layout.SphereRadius = 800
	want.Layout.TetraFaceCenter = true
	want.Transition.Duration = Duration{1500 * time.Millisecond}
	want.Source.Kind = "sheet"
	want.Source.URL = "https://example.com/pub?output=csv"
	want.Cache.Backend = "redis"
	want.Cache.RedisAddr = "localhost:6379"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.LayoutOptions().SphereRadius; got != 800 {
		t.Errorf("LayoutOptions().SphereRadius = %v, want 800", got)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"syntax", `[layout`},
		{"unknown key", "[layout]\nsize = 3\n"},
		{"unknown layout", "[layout]\ninitial = \"spiral\"\n"},
		{"zero columns", "[layout]\ntable_columns = 0\n"},
		{"bad duration", "[transition]\nduration = \"soon\"\n"},
		{"zero duration", "[transition]\nduration = \"0s\"\n"},
		{"fps", "[transition]\nfps = 0\n"},
		{"negative count", "[source]\ncount = -1\n"},
		{"sheet without url", "[source]\nkind = \"sheet\"\n"},
		{"mongo without uri", "[source]\nkind = \"mongo\"\n"},
		{"unknown source", "[source]\nkind = \"ftp\"\n"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n"},
		{"unknown backend", "[cache]\nbackend = \"memcached\"\n"},
		{"empty addr", "[server]\naddr = \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	// Missing default file: defaults.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load without file mismatch (-want +got):\n%s", diff)
	}

	// Missing explicit file: error.
	if _, err := Load(filepath.Join(dir, "nope.toml")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load(missing) error = %v, want INVALID_CONFIG", err)
	}

	path, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "cardspace", "config.toml"); path != want {
		t.Errorf("Path() = %s, want %s", path, want)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[server]\naddr = \":9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q, want :9000", cfg.Server.Addr)
	}
}
