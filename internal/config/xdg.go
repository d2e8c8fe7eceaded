package config

import (
	"os"
	"path/filepath"
)

const appName = "numguess"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultDataDir returns the directory holding stats, scores, history and logs.
func DefaultDataDir() string {
	return filepath.Join(XDGDataHome(), appName)
}

// StatsPath returns the aggregate stats document inside dataDir.
func StatsPath(dataDir string) string {
	return filepath.Join(dataDir, "game-stats.json")
}

// ScoresPath returns the high-score document inside dataDir.
func ScoresPath(dataDir string) string {
	return filepath.Join(dataDir, "scores.json")
}

// HistoryPath returns the SQLite game history inside dataDir.
func HistoryPath(dataDir string) string {
	return filepath.Join(dataDir, "history.db")
}

// LogPath returns the log file used while the full-screen UI owns the terminal.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, appName+".log")
}
