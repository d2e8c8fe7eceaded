package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment keys.
const (
	EnvDifficulty = "NUMGUESS_DIFFICULTY"
	EnvPlain      = "NUMGUESS_PLAIN"
	EnvNoColor    = "NUMGUESS_NO_COLOR"
	EnvDataDir    = "NUMGUESS_DATA_DIR"
	EnvHistory    = "NUMGUESS_HISTORY"
	EnvLogLevel   = "NUMGUESS_LOG_LEVEL"

	// EnvNoColorStandard disables color when set to any value.
	EnvNoColorStandard = "NO_COLOR"
)

// LoadEnv reads .env (if present) into the process environment and returns the
// settings found there.
func LoadEnv() (FileConfig, error) {
	// Missing .env is the common case.
	_ = godotenv.Load()
	return EnvConfig(os.LookupEnv)
}

// EnvConfig builds a FileConfig from environment lookups. Empty values are unset.
func EnvConfig(lookup func(string) (string, bool)) (FileConfig, error) {
	var cfg FileConfig
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvDifficulty); ok {
		cfg.Game.Difficulty = &v
	}
	if v, ok := get(EnvDataDir); ok {
		cfg.Storage.DataDir = &v
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.Log.Level = &v
	}

	var err error
	if cfg.Game.Plain, err = envBool(get, EnvPlain); err != nil {
		return FileConfig{}, err
	}
	if cfg.Storage.History, err = envBool(get, EnvHistory); err != nil {
		return FileConfig{}, err
	}
	if cfg.Game.NoColor, err = envBool(get, EnvNoColor); err != nil {
		return FileConfig{}, err
	}
	if _, ok := get(EnvNoColorStandard); ok {
		on := true
		cfg.Game.NoColor = &on
	}
	return cfg, nil
}

func envBool(get func(string) (string, bool), key string) (*bool, error) {
	v, ok := get(key)
	if !ok {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
	return &b, nil
}
