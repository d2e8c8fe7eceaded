package game

import "github.com/verte-zerg/numguess/internal/model"

var presets = map[model.Difficulty]model.Preset{
	model.Easy:   {MaxAttempts: 10, Min: 1, Max: 50, Multiplier: 1},
	model.Medium: {MaxAttempts: 5, Min: 1, Max: 100, Multiplier: 2},
	model.Hard:   {MaxAttempts: 3, Min: 1, Max: 200, Multiplier: 5},
	model.Expert: {MaxAttempts: 1, Min: 1, Max: 1000, Multiplier: 10},
}

// PresetFor returns the preset of a difficulty.
func PresetFor(d model.Difficulty) (model.Preset, bool) {
	p, ok := presets[d]
	return p, ok
}

// resolve falls back to medium for unknown names.
func resolve(d model.Difficulty) (model.Difficulty, model.Preset) {
	if p, ok := presets[d]; ok {
		return d, p
	}
	return model.Medium, presets[model.Medium]
}
