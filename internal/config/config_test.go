package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Animation.Speed != 2.5 || cfg.Animation.FPS != 30 {
		t.Fatalf("animation defaults = %+v", cfg.Animation)
	}
	if cfg.Animation.EndOfRoute != PolicyLoop {
		t.Fatalf("EndOfRoute = %q, want %q", cfg.Animation.EndOfRoute, PolicyLoop)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
animation:
  speed: 4.0
  endOfRoute: halt
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Animation.Speed != 4.0 {
		t.Fatalf("Speed = %v, want 4.0", cfg.Animation.Speed)
	}
	// Unset fields keep their defaults.
	if cfg.Animation.FPS != 30 {
		t.Fatalf("FPS = %d, want default 30", cfg.Animation.FPS)
	}
	if cfg.Animation.EndOfRoute != PolicyHalt {
		t.Fatalf("EndOfRoute = %q, want %q", cfg.Animation.EndOfRoute, PolicyHalt)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad policy", "animation:\n  endOfRoute: bounce\n"},
		{"zero speed", "animation:\n  speed: 0\n"},
		{"negative fps", "animation:\n  fps: -1\n"},
		{"fps too high", "animation:\n  fps: 1000\n"},
		{"not yaml", "{{{\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, c.body)); err == nil {
				t.Fatalf("Load accepted invalid config %q", c.body)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatalf("Load accepted a missing file")
	}
}
