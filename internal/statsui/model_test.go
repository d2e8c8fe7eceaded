package statsui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/numguess/internal/model"
	"github.com/verte-zerg/numguess/internal/stats"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleReport() stats.Report {
	s := model.AggregateStats{
		TotalGames:    3,
		GamesWon:      2,
		GamesLost:     1,
		TotalAttempts: 12,
		TotalScore:    1800,
		BestScore:     1190,
		ByDifficulty: map[model.Difficulty]model.DifficultyStats{
			model.Medium: {Games: 2, Wins: 2, BestScore: 1190, TotalScore: 1800},
			model.Expert: {Games: 1},
		},
		Streak:      model.Streak{Best: 2},
		PlaySeconds: 150,
	}
	return stats.Report{
		Stats:   s,
		Derived: stats.ComputeDerived(s),
		HighScores: model.HighScores{
			model.Medium: {Score: 1190, Attempts: 2, ElapsedSeconds: 10, Date: testNow.Add(-time.Hour)},
		},
		Games: []model.GameRecord{
			{Difficulty: model.Medium, Won: true, Attempts: 2, MaxAttempts: 5, Score: 1190, Secret: 42, EndedAt: testNow.Add(-2 * time.Hour)},
			{Difficulty: model.Medium, Won: true, Attempts: 4, MaxAttempts: 5, Score: 610, Secret: 7, EndedAt: testNow.Add(-time.Hour)},
			{Difficulty: model.Expert, Won: false, Attempts: 2, MaxAttempts: 2, Secret: 133, EndedAt: testNow.Add(-time.Minute)},
		},
	}
}

type recordingLoader struct {
	report  stats.Report
	err     error
	filters []model.HistoryFilter
}

func (l *recordingLoader) load(f model.HistoryFilter) (stats.Report, error) {
	l.filters = append(l.filters, f)
	return l.report, l.err
}

func newTestModel(l *recordingLoader) *Model {
	m := NewModel(l.load, model.HistoryFilter{}, func() time.Time { return testNow })
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func TestOverviewShowsCards(t *testing.T) {
	m := newTestModel(&recordingLoader{report: sampleReport()})
	view := m.View()
	for _, want := range []string{"Overview", "Win Rate", "67%", "Best Score", "1190", "High Scores", "1 hour ago"} {
		if !strings.Contains(view, want) {
			t.Fatalf("overview missing %q:\n%s", want, view)
		}
	}
}

func TestTabsCycle(t *testing.T) {
	m := newTestModel(&recordingLoader{report: sampleReport()})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabDifficulty {
		t.Fatalf("expected difficulty tab, got %d", m.activeTab)
	}
	view := m.View()
	if !strings.Contains(view, "medium") || !strings.Contains(view, "expert") {
		t.Fatalf("difficulty table missing rows:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != tabHistory {
		t.Fatalf("expected history tab, got %d", m.activeTab)
	}
	view = m.View()
	if !strings.Contains(view, "Score trend: ") || !strings.Contains(view, "133") {
		t.Fatalf("history view missing content:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabOverview {
		t.Fatalf("expected wrap to overview, got %d", m.activeTab)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeTab != tabHistory {
		t.Fatalf("expected wrap to history, got %d", m.activeTab)
	}
}

func TestHistoryRowsNewestFirst(t *testing.T) {
	rows := historyRows(sampleReport().Games, testNow)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][1] != "expert" || rows[0][2] != "lost" || rows[0][4] != "2/2" {
		t.Fatalf("unexpected first row %v", rows[0])
	}
	if rows[2][7] != "42" {
		t.Fatalf("unexpected last row %v", rows[2])
	}
}

func TestEmptyReport(t *testing.T) {
	m := newTestModel(&recordingLoader{report: stats.Report{}})
	if !strings.Contains(m.View(), "No games played yet.") {
		t.Fatalf("expected empty overview")
	}
	m.moveTab(2)
	if !strings.Contains(m.View(), "No games found.") {
		t.Fatalf("expected empty history")
	}
}

func TestLoadErrorShownInFooter(t *testing.T) {
	m := newTestModel(&recordingLoader{err: errors.New("failed to list games: boom")})
	if !strings.Contains(m.View(), "failed to list games: boom") {
		t.Fatalf("expected error in footer")
	}
}

func TestFilterAppliesAndReloads(t *testing.T) {
	l := &recordingLoader{report: sampleReport()}
	m := newTestModel(l)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	if !m.filterMode {
		t.Fatalf("expected filter mode")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hard")})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("won")})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("5")})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.filterMode {
		t.Fatalf("filter mode should close on apply")
	}
	want := model.HistoryFilter{Difficulty: model.Hard, Result: "won", Last: 5}
	if got := l.filters[len(l.filters)-1]; got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if !strings.Contains(m.View(), "difficulty=hard  result=won  last=5") {
		t.Fatalf("header should show the filter")
	}
}

func TestFilterRejectsBadInput(t *testing.T) {
	l := &recordingLoader{report: sampleReport()}
	m := newTestModel(l)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("maybe")})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.filterMode || m.filterError == "" {
		t.Fatalf("expected filter error, got mode=%v err=%q", m.filterMode, m.filterError)
	}
	if len(l.filters) != 1 {
		t.Fatalf("rejected filter should not reload")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.filterMode {
		t.Fatalf("esc should leave filter mode")
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(&recordingLoader{report: sampleReport()})
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		if _, cmd := m.Update(msg); cmd == nil {
			t.Fatalf("expected quit command for %s", msg)
		}
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("abcdefgh", 6); got != "abc..." {
		t.Fatalf("unexpected %q", got)
	}
	if got := truncateLine("abc", 6); got != "abc" {
		t.Fatalf("unexpected %q", got)
	}
}
