package game

import (
	"math"
	"time"

	"github.com/verte-zerg/numguess/internal/model"
)

const (
	attemptBonusPoints = 100
	timeBonusSeconds   = 300
)

// Score computes the points for a win. It never returns a negative value.
func Score(multiplier, maxAttempts, attemptsUsed, elapsedSeconds int) int {
	attemptsBonus := (maxAttempts - attemptsUsed + 1) * attemptBonusPoints
	timeBonus := timeBonusSeconds - elapsedSeconds
	if timeBonus < 0 {
		timeBonus = 0
	}
	score := (attemptsBonus + timeBonus) * multiplier
	if score < 0 {
		return 0
	}
	return score
}

// Proximity buckets the distance between a guess and the secret.
// The thresholds are fixed and do not scale with the preset range.
func Proximity(guess, secret int) model.Proximity {
	d := guess - secret
	if d < 0 {
		d = -d
	}
	switch {
	case d > 50:
		return model.Freezing
	case d > 30:
		return model.Cold
	case d > 15:
		return model.Warm
	case d > 5:
		return model.Hot
	default:
		return model.OnFire
	}
}

func elapsedSeconds(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	return int(math.Round(end.Sub(start).Seconds()))
}
