package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, s string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultName)
	if err := os.WriteFile(path, []byte(s), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
data_dir = "/opt/tortoize"
timeout = "90s"
[plot]
log_scale = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	def := Default()
	if cfg.DataDir != "/opt/tortoize" {
		t.Fatalf("unexpected data_dir: %q", cfg.DataDir)
	}
	if cfg.Timeout != 90*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Timeout)
	}
	if !cfg.Plot.LogScale || cfg.Plot.Width != def.Plot.Width {
		t.Fatalf("unexpected plot: %+v", cfg.Plot)
	}
	if cfg.Workers != def.Workers || cfg.SourceDir != def.SourceDir {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestTemplateLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultName)
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Workers != 4 || cfg.Output != "-" || cfg.Timeout != 0 {
		t.Fatalf("unexpected template values: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	for _, s := range []string{
		`workers = 0`,
		`timeout = "soon"`,
		`data_dir = ""`,
		`nonsense = 1`,
		`[plot]
width = 10`,
		`data_dir = `,
	} {
		if _, err := Load(writeConfig(t, s)); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestLoadOptional(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file should be fine: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("want defaults, got %+v", cfg)
	}
	if _, err := LoadOptional(writeConfig(t, `workers = -1`)); err == nil ||
		!strings.Contains(err.Error(), "workers") {
		t.Fatalf("bad file should fail: %v", err)
	}
}
