package stats

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/numguess/internal/model"
)

// HistoryLister lists finished games.
type HistoryLister interface {
	ListGames(ctx context.Context, filter model.HistoryFilter) ([]model.GameRecord, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Stats      model.AggregateStats
	Derived    model.Derived
	HighScores model.HighScores
	Games      []model.GameRecord
}

// BuildReport gathers tracker state and, when a history is available, the filtered game log.
func BuildReport(ctx context.Context, t *Tracker, history HistoryLister, filter model.HistoryFilter) (Report, error) {
	report := Report{
		Stats:      t.Stats(),
		Derived:    t.Derived(),
		HighScores: t.HighScores(),
	}
	if history == nil {
		return report, nil
	}
	games, err := history.ListGames(ctx, filter)
	if err != nil {
		return report, fmt.Errorf("failed to list games: %w", err)
	}
	report.Games = games
	return report, nil
}

// OrderedDifficulties returns known difficulties in menu order followed by any unknown keys sorted.
func OrderedDifficulties[V any](m map[model.Difficulty]V) []model.Difficulty {
	out := make([]model.Difficulty, 0, len(m))
	known := map[model.Difficulty]struct{}{}
	for _, d := range model.Difficulties {
		known[d] = struct{}{}
		if _, ok := m[d]; ok {
			out = append(out, d)
		}
	}
	var extra []model.Difficulty
	for d := range m {
		if _, ok := known[d]; !ok {
			extra = append(extra, d)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// RenderSummary prints overall and per-difficulty statistics.
func RenderSummary(w io.Writer, s model.AggregateStats) error {
	d := ComputeDerived(s)
	lines := []string{
		"Overall",
		fmt.Sprintf("Total Games: %d", s.TotalGames),
		fmt.Sprintf("Games Won: %d", s.GamesWon),
		fmt.Sprintf("Games Lost: %d", s.GamesLost),
		fmt.Sprintf("Win Rate: %d%%", d.WinRate),
		fmt.Sprintf("Current Streak: %d", s.Streak.Current),
		fmt.Sprintf("Best Streak: %d", s.Streak.Best),
		fmt.Sprintf("Best Score: %d", s.BestScore),
		fmt.Sprintf("Average Score: %d", d.AverageScore),
		fmt.Sprintf("Average Attempts: %d", d.AverageAttempts),
		fmt.Sprintf("Average Time: %ds", d.AverageTime),
		fmt.Sprintf("Total Play Time: %d minutes", ratio(s.PlaySeconds, 60)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(s.ByDifficulty) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w, "By Difficulty"); err != nil {
		return err
	}
	headers := []string{"Difficulty", "Games", "Wins", "Win Rate", "Best", "Avg Score"}
	rows := make([][]string, 0, len(s.ByDifficulty))
	for _, diff := range OrderedDifficulties(s.ByDifficulty) {
		ds := s.ByDifficulty[diff]
		winRate, avg := DifficultyMetrics(ds)
		rows = append(rows, []string{
			string(diff),
			fmt.Sprintf("%d", ds.Games),
			fmt.Sprintf("%d", ds.Wins),
			fmt.Sprintf("%d%%", winRate),
			fmt.Sprintf("%d", ds.BestScore),
			fmt.Sprintf("%d", avg),
		})
	}
	return writeTable(w, headers, rows, map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true})
}

// RenderHighScores prints the per-difficulty best records.
func RenderHighScores(w io.Writer, scores model.HighScores, now time.Time) error {
	if len(scores) == 0 {
		_, err := fmt.Fprintln(w, "No high scores yet. Play a game to set one!")
		return err
	}
	if _, err := fmt.Fprintln(w, "High Scores"); err != nil {
		return err
	}
	headers := []string{"Difficulty", "Score", "Attempts", "Time", "Date"}
	rows := make([][]string, 0, len(scores))
	for _, diff := range OrderedDifficulties(scores) {
		rec := scores[diff]
		rows = append(rows, []string{
			string(diff),
			fmt.Sprintf("%d", rec.Score),
			fmt.Sprintf("%d", rec.Attempts),
			fmt.Sprintf("%ds", rec.ElapsedSeconds),
			RelativeDate(rec.Date, now),
		})
	}
	return writeTable(w, headers, rows, map[int]bool{1: true, 2: true, 3: true})
}

// RenderHistory prints finished games and a score trend line.
func RenderHistory(w io.Writer, games []model.GameRecord, now time.Time, window int) error {
	if len(games) == 0 {
		_, err := fmt.Fprintln(w, "No games found.")
		return err
	}
	headers := []string{"When", "Difficulty", "Result", "Score", "Attempts", "Hints", "Time", "Secret"}
	rows := make([][]string, 0, len(games))
	for _, g := range games {
		rows = append(rows, []string{
			RelativeDate(g.EndedAt, now),
			string(g.Difficulty),
			ResultLabel(g.Won),
			fmt.Sprintf("%d", g.Score),
			fmt.Sprintf("%d/%d", g.Attempts, g.MaxAttempts),
			fmt.Sprintf("%d", g.HintsUsed),
			fmt.Sprintf("%ds", g.ElapsedSeconds),
			fmt.Sprintf("%d", g.Secret),
		})
	}
	if err := writeTable(w, headers, rows, map[int]bool{3: true, 4: true, 5: true, 6: true, 7: true}); err != nil {
		return err
	}
	trend := Sparkline(MovingAverage(ScoreSeries(games), window))
	_, err := fmt.Fprintf(w, "Score trend: [%s]\n", trend)
	return err
}

// RelativeDate formats t relative to now, or "-" for a zero time.
func RelativeDate(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// ResultLabel names a game outcome.
func ResultLabel(won bool) string {
	if won {
		return "won"
	}
	return "lost"
}

func writeTable(w io.Writer, headers []string, rows [][]string, rightAlign map[int]bool) error {
	lines := formatTable(headers, rows, rightAlign)
	if _, err := fmt.Fprintln(w, strings.Join(lines, "\n")); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
