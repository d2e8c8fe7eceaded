// Package store handles persistence: JSON documents for stats and high scores,
// and a SQLite log of finished games.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/verte-zerg/numguess/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// History wraps SQLite access for finished games.
type History struct {
	db *sql.DB
}

// Open opens or creates the history database and applies migrations.
func Open(path string) (*History, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	h := &History{db: db}
	if err := h.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return h, nil
}

// Close closes the underlying database.
func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			difficulty TEXT NOT NULL,
			won INTEGER NOT NULL,
			attempts INTEGER NOT NULL,
			max_attempts INTEGER NOT NULL,
			hints_used INTEGER NOT NULL,
			score INTEGER NOT NULL,
			elapsed_seconds INTEGER NOT NULL,
			secret INTEGER NOT NULL,
			guesses TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_ended_at ON games(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_games_difficulty ON games(difficulty);`,
	}
	for _, stmt := range stmts {
		if _, err := h.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertGame appends a finished game.
func (h *History) InsertGame(ctx context.Context, rec model.GameRecord) error {
	query, args, err := sqlBuilder.Insert("games").
		Columns("id", "difficulty", "won", "attempts", "max_attempts", "hints_used", "score",
			"elapsed_seconds", "secret", "guesses", "started_at", "ended_at").
		Values(
			rec.ID,
			string(rec.Difficulty),
			boolToInt(rec.Won),
			rec.Attempts,
			rec.MaxAttempts,
			rec.HintsUsed,
			rec.Score,
			rec.ElapsedSeconds,
			rec.Secret,
			encodeGuesses(rec.Guesses),
			rec.StartedAt.UTC().Format(time.RFC3339Nano),
			rec.EndedAt.UTC().Format(time.RFC3339Nano),
		).ToSql()
	if err != nil {
		return err
	}
	_, err = h.db.ExecContext(ctx, query, args...)
	return err
}

// ListGames returns games matching the filter in chronological order.
// With filter.Last > 0 only the most recent N games are returned.
func (h *History) ListGames(ctx context.Context, filter model.HistoryFilter) ([]model.GameRecord, error) {
	q := sqlBuilder.Select("id", "difficulty", "won", "attempts", "max_attempts", "hints_used", "score",
		"elapsed_seconds", "secret", "guesses", "started_at", "ended_at").
		From("games")
	if filter.Difficulty != "" {
		q = q.Where(squirrel.Eq{"difficulty": string(filter.Difficulty)})
	}
	switch filter.Result {
	case "won":
		q = q.Where(squirrel.Eq{"won": 1})
	case "lost":
		q = q.Where(squirrel.Eq{"won": 0})
	}
	q = q.OrderBy("ended_at DESC")
	if filter.Last > 0 {
		q = q.Limit(uint64(filter.Last))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var games []model.GameRecord
	for rows.Next() {
		var rec model.GameRecord
		var difficulty, guesses, startedAt, endedAt string
		var won int
		if err := rows.Scan(&rec.ID, &difficulty, &won, &rec.Attempts, &rec.MaxAttempts, &rec.HintsUsed,
			&rec.Score, &rec.ElapsedSeconds, &rec.Secret, &guesses, &startedAt, &endedAt); err != nil {
			return nil, err
		}
		rec.Difficulty = model.Difficulty(difficulty)
		rec.Won = won != 0
		if rec.Guesses, err = decodeGuesses(guesses); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		games = append(games, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(games)-1; i < j; i, j = i+1, j-1 {
		games[i], games[j] = games[j], games[i]
	}
	return games, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func encodeGuesses(guesses []int) string {
	parts := make([]string, len(guesses))
	for i, g := range guesses {
		parts[i] = strconv.Itoa(g)
	}
	return strings.Join(parts, ",")
}

func decodeGuesses(s string) ([]int, error) {
	if s == "" {
		return []int{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
