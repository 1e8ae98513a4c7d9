package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "backdrop.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Density != 15000 {
		t.Errorf("Expected default density 15000, got %v", cfg.Density)
	}
	if cfg.LinkDistance != 120 {
		t.Errorf("Expected default link distance 120, got %v", cfg.LinkDistance)
	}
	if !cfg.ReseedOnResize {
		t.Error("Expected default config to reseed on resize")
	}
	if cfg.Pulse != 1.5 {
		t.Errorf("Expected default pulse 1.5, got %v", cfg.Pulse)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
width = 1500
height = 1000
seed = 7
reseed_on_resize = false

[theme]
particle = "#ff0000"

[[stat]]
label = "Stars"
value = "10+"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Width != 1500 || cfg.Height != 1000 {
		t.Errorf("size = %dx%d, want 1500x1000", cfg.Width, cfg.Height)
	}
	if cfg.Seed != 7 {
		t.Errorf("seed = %d, want 7", cfg.Seed)
	}
	if cfg.ReseedOnResize {
		t.Error("reseed_on_resize = true, want false")
	}
	if cfg.TPS != 60 {
		t.Errorf("tps = %d, want default 60", cfg.TPS)
	}
	if cfg.Theme.Particle != "#ff0000" {
		t.Errorf("theme.particle = %q", cfg.Theme.Particle)
	}
	if cfg.Theme.Link != Default().Theme.Link {
		t.Errorf("theme.link = %q, want default", cfg.Theme.Link)
	}
	if len(cfg.Stats) != 1 || cfg.Stats[0].Label != "Stars" {
		t.Errorf("stats = %#v, want the single configured stat", cfg.Stats)
	}
	if len(cfg.Sections) != len(Default().Sections) {
		t.Errorf("sections = %d, want default %d", len(cfg.Sections), len(Default().Sections))
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "widht = 10\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() error = nil, want unknown key error")
	}
	if !strings.Contains(err.Error(), "widht") {
		t.Errorf("error %q does not name the key", err)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"negative width":  "width = -1\n",
		"zero density":    "density = 0.0\n",
		"bad color":       "[theme]\nlink = \"#zzzzzz\"\n",
		"duplicate id":    "[[section]]\nid = \"a\"\nheight = 10.0\n[[section]]\nid = \"a\"\nheight = 10.0\n",
		"section no size": "[[section]]\nid = \"a\"\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, content)); err == nil {
				t.Error("Load() error = nil")
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#00f2ff", color.NRGBA{R: 0, G: 242, B: 255, A: 255}},
		{"#00f2ffb3", color.NRGBA{R: 0, G: 242, B: 255, A: 0xb3}},
		{"#000000", color.NRGBA{A: 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseColor("#00f2ffzz"); err == nil {
		t.Error("ParseColor with bad alpha: error = nil")
	}
}
