package stats

import (
	"github.com/rs/zerolog"

	"github.com/verte-zerg/numguess/internal/model"
)

// Document loads and saves one persisted value.
type Document[T any] interface {
	Load() (T, error)
	Save(T) error
}

// Tracker accumulates cross-session statistics and per-difficulty high scores.
// Persistence is best-effort: failures are logged and play continues.
type Tracker struct {
	statsDoc  Document[model.AggregateStats]
	scoresDoc Document[model.HighScores]
	log       zerolog.Logger

	stats  model.AggregateStats
	scores model.HighScores
}

// DefaultStats returns zero-valued aggregate stats.
func DefaultStats() model.AggregateStats {
	return model.AggregateStats{ByDifficulty: map[model.Difficulty]model.DifficultyStats{}}
}

// DefaultHighScores returns an empty high-score table.
func DefaultHighScores() model.HighScores {
	return model.HighScores{}
}

// NewTracker loads stats and high scores from their documents.
func NewTracker(statsDoc Document[model.AggregateStats], scoresDoc Document[model.HighScores], log zerolog.Logger) *Tracker {
	t := &Tracker{
		statsDoc:  statsDoc,
		scoresDoc: scoresDoc,
		log:       log,
	}
	stats, err := statsDoc.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load stats; starting fresh")
		stats = DefaultStats()
	}
	if stats.ByDifficulty == nil {
		stats.ByDifficulty = map[model.Difficulty]model.DifficultyStats{}
	}
	t.stats = stats

	scores, err := scoresDoc.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load high scores; starting fresh")
		scores = DefaultHighScores()
	}
	if scores == nil {
		scores = DefaultHighScores()
	}
	t.scores = scores
	return t
}

// RecordGame folds a finished game into the aggregates and persists them.
func (t *Tracker) RecordGame(rec model.GameRecord) {
	s := &t.stats
	s.TotalGames++
	if rec.Won {
		s.GamesWon++
		s.Streak.Current++
		if s.Streak.Current > s.Streak.Best {
			s.Streak.Best = s.Streak.Current
		}
	} else {
		s.GamesLost++
		s.Streak.Current = 0
	}
	s.TotalAttempts += rec.Attempts
	s.TotalScore += rec.Score
	s.PlaySeconds += rec.ElapsedSeconds
	if rec.Score > s.BestScore {
		s.BestScore = rec.Score
	}

	ds := s.ByDifficulty[rec.Difficulty]
	ds.Games++
	if rec.Won {
		ds.Wins++
	}
	ds.TotalScore += rec.Score
	if rec.Score > ds.BestScore {
		ds.BestScore = rec.Score
	}
	s.ByDifficulty[rec.Difficulty] = ds

	t.saveStats()
}

// RecordHighScore stores rec when it beats the current best for d. It reports whether it did.
func (t *Tracker) RecordHighScore(d model.Difficulty, rec model.HighScoreRecord) bool {
	if current, ok := t.scores[d]; ok && rec.Score <= current.Score {
		return false
	}
	t.scores[d] = rec
	if err := t.scoresDoc.Save(t.scores); err != nil {
		t.log.Warn().Err(err).Str("difficulty", string(d)).Msg("failed to save high scores")
	}
	return true
}

// Derived computes rates and averages over the current aggregates.
func (t *Tracker) Derived() model.Derived {
	return ComputeDerived(t.stats)
}

// DifficultyDerived returns the win rate and average score for one difficulty.
func (t *Tracker) DifficultyDerived(d model.Difficulty) (winRate, averageScore int) {
	return DifficultyMetrics(t.stats.ByDifficulty[d])
}

// Reset zeroes the aggregates and persists them. High scores are kept.
func (t *Tracker) Reset() {
	t.stats = DefaultStats()
	t.saveStats()
}

// Stats returns a copy of the aggregates.
func (t *Tracker) Stats() model.AggregateStats {
	out := t.stats
	out.ByDifficulty = make(map[model.Difficulty]model.DifficultyStats, len(t.stats.ByDifficulty))
	for k, v := range t.stats.ByDifficulty {
		out.ByDifficulty[k] = v
	}
	return out
}

// HighScores returns a copy of the high-score table.
func (t *Tracker) HighScores() model.HighScores {
	out := make(model.HighScores, len(t.scores))
	for k, v := range t.scores {
		out[k] = v
	}
	return out
}

func (t *Tracker) saveStats() {
	if err := t.statsDoc.Save(t.stats); err != nil {
		t.log.Warn().Err(err).Msg("failed to save stats")
	}
}
