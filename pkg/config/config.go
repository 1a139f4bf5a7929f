// Package config handles loading and saving impgraph configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/impgraph/config.yaml
//   - State:   ~/.local/state/impgraph/ (camera cache, recent files)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PhysicsConfig tunes the force simulation. Zero values mean "use the
// built-in default" so a partial config file only overrides what it names.
type PhysicsConfig struct {
	Charge    float64 `yaml:"charge,omitempty"`
	Spring    float64 `yaml:"spring,omitempty"`
	RestLen   float64 `yaml:"rest_length,omitempty"`
	Damping   float64 `yaml:"damping,omitempty"`
	Centering float64 `yaml:"centering,omitempty"`
	Theta     float64 `yaml:"theta,omitempty"`
}

// ViewConfig holds display preferences.
type ViewConfig struct {
	Theme     string `yaml:"theme,omitempty"`     // default, midnight, ember, minimal
	FPS       int    `yaml:"fps,omitempty"`       // frame rate for interactive viewing
	Particles bool   `yaml:"particles,omitempty"` // ambient background particles
}

// ExportConfig holds defaults for static exports.
type ExportConfig struct {
	Width       int `yaml:"width,omitempty"`
	Height      int `yaml:"height,omitempty"`
	SettleTicks int `yaml:"settle_ticks,omitempty"` // simulation steps before a snapshot
}

// Config is the top-level configuration for impgraph.
type Config struct {
	Physics PhysicsConfig     `yaml:"physics,omitempty"`
	View    ViewConfig        `yaml:"view,omitempty"`
	Export  ExportConfig      `yaml:"export,omitempty"`
	Colors  map[string]string `yaml:"colors,omitempty"` // cluster name -> CSS color
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		View: ViewConfig{
			Theme: "default",
			FPS:   30,
		},
		Export: ExportConfig{
			Width:       1280,
			Height:      800,
			SettleTicks: 300,
		},
		Colors: make(map[string]string),
	}
}

// ConfigDir returns the XDG config directory for impgraph.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "impgraph")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "impgraph")
}

// StateDir returns the XDG state directory for impgraph.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "impgraph")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "impgraph")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Colors == nil {
		cfg.Colors = make(map[string]string)
	}
	if cfg.View.FPS <= 0 {
		cfg.View.FPS = 30
	}

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ExpandPath resolves a leading ~ against the user's home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
