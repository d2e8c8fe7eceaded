package main

import (
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/numguess/internal/config"
	"github.com/verte-zerg/numguess/internal/model"
)

func TestApplyConfigRespectsChangedFlags(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--difficulty", "hard"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	fromFile := "easy"
	applyStringConfig(cmd, "difficulty", &playDifficulty, &fromFile)
	if playDifficulty != "hard" {
		t.Fatalf("flag should win, got %q", playDifficulty)
	}

	on := true
	playPlain = false
	applyBoolConfig(cmd, "plain", &playPlain, &on)
	if !playPlain {
		t.Fatalf("unset flag should take the config value")
	}
	applyBoolConfig(cmd, "plain", &playPlain, nil)
	if !playPlain {
		t.Fatalf("nil value should leave the target alone")
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	if _, err := toml.Decode(defaultConfigTemplate(), &cfg); err != nil {
		t.Fatalf("template should be valid TOML: %v", err)
	}
	if cfg.Game.Difficulty != nil || cfg.Storage.History != nil || cfg.Log.Level != nil {
		t.Fatalf("template values should all be commented out: %+v", cfg)
	}
	for _, section := range []string{"[game]", "[storage]", "[log]"} {
		if !strings.Contains(defaultConfigTemplate(), section) {
			t.Fatalf("template missing %s", section)
		}
	}
}

func TestValidateConfig(t *testing.T) {
	cfg := model.Config{DataDir: "/tmp/numguess", LogLevel: "info"}
	if err := validateConfig(&cfg, "3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Difficulty != model.Hard {
		t.Fatalf("expected hard, got %q", cfg.Difficulty)
	}

	bad := []struct {
		cfg        model.Config
		difficulty string
	}{
		{model.Config{DataDir: "d", LogLevel: "warn"}, "legendary"},
		{model.Config{DataDir: "d", LogLevel: "chatty"}, ""},
		{model.Config{LogLevel: "warn"}, ""},
	}
	for _, tc := range bad {
		cfg := tc.cfg
		if err := validateConfig(&cfg, tc.difficulty); err == nil {
			t.Fatalf("expected error for %+v difficulty=%q", tc.cfg, tc.difficulty)
		}
	}
}

func TestHistoryFilter(t *testing.T) {
	f, err := historyFilter("Expert", " LOST ", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := model.HistoryFilter{Difficulty: model.Expert, Result: "lost", Last: 5}
	if f != want {
		t.Fatalf("expected %+v, got %+v", want, f)
	}
	if _, err := historyFilter("", "draw", 0); err == nil {
		t.Fatalf("expected result error")
	}
	if _, err := historyFilter("", "", -1); err == nil {
		t.Fatalf("expected last error")
	}
}
