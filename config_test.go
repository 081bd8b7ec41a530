package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sandbox.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoadConfigOverlay(t *testing.T) {
	path := writeConfig(t, `{"FontSize": 32, "Text": "Łódź", "MeshPath": "assets/cube.glb"}`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FontSize != 32 || cfg.Text != "Łódź" || cfg.MeshPath != "assets/cube.glb" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Width != 800 || cfg.FontPath != "" || cfg.CameraSpeed != 6 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `{"FontSize": }`},
		{"size", `{"FontSize": 0}`},
		{"window", `{"Width": -1}`},
		{"delay", `{"TypewriterMs": -5}`},
		{"level", `{"LogLevel": "verbose"}`},
		{"pattern", `{"Pattern": "plaid"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.body)); err == nil {
				t.Error("accepted")
			}
		})
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("missing file accepted")
	}
}
