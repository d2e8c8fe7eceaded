// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
// Nil fields are unset and leave the lower-precedence value in place.
type FileConfig struct {
	Game    GameConfig    `toml:"game"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// GameConfig maps play-related settings.
type GameConfig struct {
	Difficulty *string `toml:"difficulty"`
	Plain      *bool   `toml:"plain"`
	NoColor    *bool   `toml:"no-color"`
}

// StorageConfig maps persistence settings.
type StorageConfig struct {
	DataDir *string `toml:"data-dir"`
	History *bool   `toml:"history"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Merge returns base with every field set in over replacing it.
func Merge(base, over FileConfig) FileConfig {
	out := base
	pick(&out.Game.Difficulty, over.Game.Difficulty)
	pick(&out.Game.Plain, over.Game.Plain)
	pick(&out.Game.NoColor, over.Game.NoColor)
	pick(&out.Storage.DataDir, over.Storage.DataDir)
	pick(&out.Storage.History, over.Storage.History)
	pick(&out.Log.Level, over.Log.Level)
	return out
}

func pick[T any](target **T, value *T) {
	if value != nil {
		*target = value
	}
}
