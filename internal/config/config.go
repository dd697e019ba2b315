// Package config persists user-facing solver defaults: a Store with
// Load/LoadFrom/Save/normalize, holding the fields this CLI exposes.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/xumarcus/minesweeper/internal/board"
)

// Theme selects the TUI's color scheme.
type Theme string

const (
	ThemeMatrix Theme = "matrix"
	ThemeAmber  Theme = "amber"
)

// Config stores user preferences persisted to disk.
type Config struct {
	DefaultDifficulty string `json:"default_difficulty"`
	AutoplayTickMs    int    `json:"autoplay_tick_ms"`
	Theme             Theme  `json:"theme"`
	LogLevel          string `json:"log_level"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultDifficulty: board.Beginner.String(),
		AutoplayTickMs:    300,
		Theme:             ThemeMatrix,
		LogLevel:          "info",
	}
}

// Store manages config persistence.
type Store struct {
	path   string
	Config Config
}

// Load reads the config from the default location,
// ~/.minesweeper-solver/config.json.
func Load() (*Store, error) {
	return LoadFrom("")
}

// LoadFrom reads the config from a specific path. If path is empty, uses
// the default location. A missing file is not an error: Load returns
// defaults.
func LoadFrom(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return &Store{Config: DefaultConfig()}, err
		}
		path = filepath.Join(home, ".minesweeper-solver", "config.json")
	}

	s := &Store{path: path, Config: DefaultConfig()}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is from UserHomeDir or test-controlled input
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}

	if err := json.Unmarshal(data, &s.Config); err != nil {
		return s, err
	}
	s.normalize()
	return s, nil
}

// Save writes the config to disk.
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.Config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// normalize ensures all config values are valid, falling back to defaults.
func (s *Store) normalize() {
	if _, err := board.ParseDifficulty(s.Config.DefaultDifficulty); err != nil {
		s.Config.DefaultDifficulty = board.Beginner.String()
	}
	switch s.Config.Theme {
	case ThemeMatrix, ThemeAmber:
	default:
		s.Config.Theme = ThemeMatrix
	}
	if s.Config.AutoplayTickMs <= 0 {
		s.Config.AutoplayTickMs = 300
	}
}
