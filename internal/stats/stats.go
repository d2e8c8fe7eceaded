// Package stats contains statistics tracking, calculations and reporting.
package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/numguess/internal/model"
)

const sparkChars = " .:-=+*#%@"

// ComputeDerived returns rates and averages. Empty denominators yield 0.
func ComputeDerived(s model.AggregateStats) model.Derived {
	return model.Derived{
		WinRate:         percent(s.GamesWon, s.TotalGames),
		AverageScore:    ratio(s.TotalScore, s.GamesWon),
		AverageAttempts: ratio(s.TotalAttempts, s.TotalGames),
		AverageTime:     ratio(s.PlaySeconds, s.TotalGames),
	}
}

// DifficultyMetrics returns the win rate and average score of a breakdown entry.
func DifficultyMetrics(ds model.DifficultyStats) (winRate, averageScore int) {
	return percent(ds.Wins, ds.Games), ratio(ds.TotalScore, ds.Wins)
}

func ratio(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(float64(num) / float64(den)))
}

func percent(num, den int) int {
	return ratio(num*100, den)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// ScoreSeries extracts scores from games in order.
func ScoreSeries(games []model.GameRecord) []float64 {
	out := make([]float64, len(games))
	for i, g := range games {
		out[i] = float64(g.Score)
	}
	return out
}
