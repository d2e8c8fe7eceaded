package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/numguess/internal/model"
)

type constSource int

func (c constSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(c) % n
}

func newPlain(buf *bytes.Buffer) *Terminal {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	return NewTerminal(buf, constSource(0), Options{NoColor: true, Now: func() time.Time { return now }})
}

func TestProgressBar(t *testing.T) {
	bar, pct := ProgressBar(0, 5, 30)
	if bar != strings.Repeat("░", 30) || pct != 0 {
		t.Fatalf("unexpected empty bar %q %v", bar, pct)
	}
	bar, pct = ProgressBar(3, 5, 30)
	if bar != strings.Repeat("█", 18)+strings.Repeat("░", 12) || pct != 60 {
		t.Fatalf("unexpected bar %q %v", bar, pct)
	}
	bar, _ = ProgressBar(6, 5, 30)
	if bar != strings.Repeat("█", 30) {
		t.Fatalf("overflow should clamp, got %q", bar)
	}
}

func TestNumberLineHigher(t *testing.T) {
	line := []rune(NumberLine(1, 100, 10, model.Higher, 50))
	if len(line) != 51 {
		t.Fatalf("expected 51 cells, got %d", len(line))
	}
	if line[5] != markGuess {
		t.Fatalf("expected guess at 5, got %q", string(line))
	}
	for i, r := range line {
		switch {
		case i < 5 && r != markEmpty:
			t.Fatalf("cell %d should be empty in %q", i, string(line))
		case i > 5 && r != markSpan:
			t.Fatalf("cell %d should be spanned in %q", i, string(line))
		}
	}
}

func TestNumberLineLower(t *testing.T) {
	line := []rune(NumberLine(1, 100, 70, model.Lower, 50))
	if line[35] != markGuess || line[0] != markSpan || line[50] != markEmpty {
		t.Fatalf("unexpected line %q", string(line))
	}
}

func TestNumberLineDegenerate(t *testing.T) {
	if NumberLine(5, 5, 5, model.Higher, 50) != "" {
		t.Fatalf("expected empty line for empty range")
	}
}

func TestRevealLine(t *testing.T) {
	want := "S" + strings.Repeat("─", 49) + "G"
	if got := RevealLine(70, 42, 50); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if RevealLine(3, 3, 50) != "" {
		t.Fatalf("expected empty line when guess equals secret")
	}
}

func TestAxisLabels(t *testing.T) {
	got := axisLabels(1, 100, 50)
	if !strings.HasPrefix(got, "(1)") || !strings.HasSuffix(got, "(100)") || len(got) != 51 {
		t.Fatalf("unexpected labels %q", got)
	}
}

func TestSpeedSuffix(t *testing.T) {
	cases := map[int]string{
		9:  "And you did it in only 9 seconds!",
		10: "Completed in 10 seconds!",
		29: "Completed in 29 seconds!",
		30: "It took you 30 seconds.",
	}
	for seconds, want := range cases {
		if got := SpeedSuffix(seconds); got != want {
			t.Fatalf("%d: expected %q, got %q", seconds, want, got)
		}
	}
}

func TestHintText(t *testing.T) {
	cases := []struct {
		hint model.HintResult
		want string
	}{
		{model.HintResult{Kind: model.HintParity, Even: true}, "The number is even."},
		{model.HintResult{Kind: model.HintParity}, "The number is odd."},
		{model.HintResult{Kind: model.HintWindow, Low: 22, High: 62}, "The number is between 22 and 62."},
		{model.HintResult{Kind: model.HintDigitSum, DigitSum: 6}, "The sum of digits is 6."},
		{model.HintResult{Kind: model.HintHalf, AboveFifty: true}, "The number is greater than 50."},
		{model.HintResult{Kind: model.HintHalf}, "The number is 50 or less."},
		{model.HintResult{Kind: model.HintDivisibleByThree, DivisibleByThree: true}, "The number is divisible by 3."},
		{model.HintResult{Kind: model.HintDivisibleByThree}, "The number is not divisible by 3."},
	}
	for _, tc := range cases {
		if got := HintText(tc.hint); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestPenaltyText(t *testing.T) {
	if got := PenaltyText(1); got != "You lost 1 attempt for using a hint. 1 attempt remaining." {
		t.Fatalf("unexpected text %q", got)
	}
	if got := PenaltyText(3); !strings.HasSuffix(got, "3 attempts remaining.") {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestWinAndLossMessages(t *testing.T) {
	headline, body := WinMessage(constSource(0), 1, 5)
	if headline != "UNBELIEVABLE!" || body != "You got it in 1 try! And you did it in only 5 seconds!" {
		t.Fatalf("unexpected win message %q %q", headline, body)
	}
	headline, body = LossMessage(constSource(2), 42)
	if headline != "OUT OF ATTEMPTS!" || body != "It was 42. Try again!" {
		t.Fatalf("unexpected loss message %q %q", headline, body)
	}
}

func TestTerminalMiss(t *testing.T) {
	var buf bytes.Buffer
	term := newPlain(&buf)
	term.GuessResult(model.GuessResult{
		Status:       model.StatusInProgress,
		Guess:        10,
		Direction:    model.Higher,
		Proximity:    model.Cold,
		AttemptsLeft: 4,
		Guesses:      []int{10},
		Attempts:     1,
	}, model.Preset{MaxAttempts: 5, Min: 1, Max: 100, Multiplier: 2})

	out := buf.String()
	for _, want := range []string{
		"Incorrect! The number is higher than 10.",
		"You're cold! (higher)",
		"Attempts left: 4",
		"Previous guesses: 10",
		"Number Line:",
		"(1)",
		"(100)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no escape sequences with NoColor")
	}
}

func TestTerminalWin(t *testing.T) {
	var buf bytes.Buffer
	newPlain(&buf).GuessResult(model.GuessResult{
		Status:         model.StatusWon,
		Guess:          42,
		Attempts:       3,
		Score:          1190,
		ElapsedSeconds: 5,
		Secret:         42,
	}, model.Preset{})
	out := buf.String()
	for _, want := range []string{"UNBELIEVABLE!", "You got it in 3 tries!", "Time: 5 seconds", "Score: 1190 points"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestTerminalLoss(t *testing.T) {
	var buf bytes.Buffer
	newPlain(&buf).GuessResult(model.GuessResult{Status: model.StatusLost, Guess: 500, Attempts: 1, Secret: 42}, model.Preset{})
	out := buf.String()
	for _, want := range []string{"GAME OVER", "The secret number was: 42", "S = Secret Number", "(42)", "(500)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestTerminalHint(t *testing.T) {
	var buf bytes.Buffer
	newPlain(&buf).Hint(model.HintResult{Kind: model.HintParity, Even: true, MaxAttempts: 4, AttemptsLeft: 3})
	out := buf.String()
	if !strings.Contains(out, "HINT: The number is even.") || !strings.Contains(out, "3 attempts remaining.") {
		t.Fatalf("unexpected hint output:\n%s", out)
	}
}

func TestTerminalMenus(t *testing.T) {
	var buf bytes.Buffer
	term := newPlain(&buf)
	term.Welcome()
	term.DifficultyMenu()
	term.Help(model.Preset{Min: 1, Max: 50})
	out := buf.String()
	for _, want := range []string{
		"GAME RULES:",
		"Can you guess the secret number?",
		"1. Easy",
		"10 attempts, number 1-50",
		"4. Expert",
		"1 attempt, number 1-1000",
		"Enter a number between 1-50 to guess",
		`Type "quit" or "exit" to end the game`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestTerminalProgressAndScores(t *testing.T) {
	var buf bytes.Buffer
	term := newPlain(&buf)
	term.Progress(2, 5)
	term.HighScores(model.HighScores{})
	out := buf.String()
	if !strings.Contains(out, "2/5 attempts used") {
		t.Fatalf("missing progress in:\n%s", out)
	}
	if !strings.Contains(out, "No high scores yet. Play a game to set one!") {
		t.Fatalf("missing empty high scores in:\n%s", out)
	}
}

func TestTerminalGoodbye(t *testing.T) {
	var buf bytes.Buffer
	s := model.AggregateStats{TotalGames: 2, GamesWon: 1, GamesLost: 1, ByDifficulty: map[model.Difficulty]model.DifficultyStats{}}
	newPlain(&buf).Goodbye(s)
	out := buf.String()
	for _, want := range []string{"Thanks for playing!", "Final Statistics:", "Total Games: 2", "Win Rate: 50%", "Goodbye! See you next time!"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestGradientNoColorPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	term := newPlain(&buf)
	if got := term.gradient("abc", passionFrom, passionTo, 0); got != "abc" {
		t.Fatalf("expected plain text, got %q", got)
	}
}
