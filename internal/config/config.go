package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file path, relative to the process working directory.
const DefaultPath = "config/gizmos.yaml"

// Config holds the demo program settings. The overlay core reads only Interaction.
type Config struct {
	Window      Window      `yaml:"window"`
	Interaction Interaction `yaml:"interaction"`
	Meshes      Meshes      `yaml:"meshes"`
	Log         Log         `yaml:"log"`
	Debug       Debug       `yaml:"debug"`
}

// Window sets up the raylib window.
type Window struct {
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int32  `yaml:"target_fps"`
}

// Interaction tunes hover and click dispatch.
type Interaction struct {
	// MaxRegistrationAge is how many ticks an orphaned hover/click registration is kept.
	MaxRegistrationAge int  `yaml:"max_registration_age"`
	NearestOnly        bool `yaml:"nearest_only"`
}

// Meshes sets the tessellation of the primitive gizmo meshes.
type Meshes struct {
	SphereRings   int32 `yaml:"sphere_rings"`
	SphereSlices  int32 `yaml:"sphere_slices"`
	TorusRadSeg   int32 `yaml:"torus_radial_segments"`
	TorusSides    int32 `yaml:"torus_sides"`
	CapsuleSlices int32 `yaml:"capsule_slices"`
}

// Log selects the log level and optional log file.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// File is appended to; empty keeps logs in memory only.
	File string `yaml:"file,omitempty"`
}

// Debug toggles the on-screen HUD and the editor grid.
type Debug struct {
	ShowFPS     bool `yaml:"show_fps"`
	ShowStats   bool `yaml:"show_stats"`
	ShowLog     bool `yaml:"show_log"`
	GridVisible bool `yaml:"grid_visible"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Window: Window{
			Width:     1280,
			Height:    720,
			Title:     "gizmos",
			TargetFPS: 60,
		},
		Interaction: Interaction{
			MaxRegistrationAge: 2,
		},
		Meshes: Meshes{
			SphereRings:   16,
			SphereSlices:  16,
			TorusRadSeg:   16,
			TorusSides:    24,
			CapsuleSlices: 16,
		},
		Log: Log{
			Level: "info",
			File:  "logs/gizmos.log",
		},
		Debug: Debug{
			ShowFPS:     true,
			ShowStats:   true,
			GridVisible: true,
		},
	}
}

// Load reads the config at path on top of Default. A missing file yields Default and no
// error; an unreadable or invalid file yields Default and the error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("config: read %s: %w", path, err)
	}
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Interaction.MaxRegistrationAge < 0:
		return fmt.Errorf("negative max_registration_age %d", c.Interaction.MaxRegistrationAge)
	case c.Meshes.SphereRings < 3 || c.Meshes.SphereSlices < 3:
		return errors.New("sphere needs at least 3 rings and slices")
	case c.Meshes.TorusRadSeg < 3 || c.Meshes.TorusSides < 3:
		return errors.New("torus needs at least 3 segments and sides")
	case c.Meshes.CapsuleSlices < 3:
		return errors.New("capsule needs at least 3 slices")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a config level name to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
