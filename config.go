package main

import (
	"github.com/memmaker/glsandbox/engine/util"
	"github.com/pkg/errors"
)

type Config struct {
	Title  string
	Width  int
	Height int

	// FontPath is a TrueType/OpenType file. Empty selects the embedded Go Regular.
	FontPath     string
	FontSize     int
	Text         string
	TextColor    [4]float32
	Normalize    bool
	TypewriterMs int

	MeshPath    string
	TexturePath string
	// Pattern is the generated texture used without TexturePath: "checker" or "noise".
	Pattern     string
	CameraSpeed float32

	LogLevel string
}

func DefaultConfig() Config {
	return Config{
		Title:        "glsandbox",
		Width:        800,
		Height:       600,
		FontSize:     24,
		Text:         "Hello, Wörld!\nWASD QE to fly, click to look around, Esc to release.",
		TextColor:    [4]float32{1, 1, 1, 1},
		Normalize:    true,
		TypewriterMs: 40,
		Pattern:      "checker",
		CameraSpeed:  6,
		LogLevel:     "info",
	}
}

// LoadConfig returns the defaults overlaid with the JSON file at path. An
// empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if err := util.ReadJsonFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(err, "config")
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("config: invalid window size %dx%d", c.Width, c.Height)
	}
	if c.FontSize <= 0 {
		return errors.Errorf("config: invalid font size %d", c.FontSize)
	}
	if c.TypewriterMs < 0 {
		return errors.Errorf("config: negative typewriter delay %d", c.TypewriterMs)
	}
	if c.Pattern != "checker" && c.Pattern != "noise" {
		return errors.Errorf("config: unknown texture pattern %q", c.Pattern)
	}
	if _, ok := util.ParseLogLevel(c.LogLevel); !ok {
		return errors.Errorf("config: unknown log level %q", c.LogLevel)
	}
	return nil
}
