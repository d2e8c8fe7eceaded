package game

import (
	"errors"
	"testing"
	"time"

	"github.com/verte-zerg/numguess/internal/generator"
	"github.com/verte-zerg/numguess/internal/model"
)

// fixedSource returns the queued values in order, modulo n.
type fixedSource struct {
	values []int
	pos    int
}

func (f *fixedSource) Intn(n int) int {
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.pos%len(f.values)]
	f.pos++
	return v % n
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestEngine(values ...int) (*Engine, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	e := New(WithSource(&fixedSource{values: values}), WithClock(clock.Now))
	return e, clock
}

func TestMediumScenario(t *testing.T) {
	e, clock := newTestEngine(41)
	preset := e.Start(model.Medium)
	if preset.MaxAttempts != 5 || preset.Min != 1 || preset.Max != 100 {
		t.Fatalf("unexpected medium preset: %+v", preset)
	}
	if got := e.Session().Secret; got != 42 {
		t.Fatalf("expected secret 42, got %d", got)
	}

	res, err := e.Guess(10)
	if err != nil {
		t.Fatalf("guess 10: %v", err)
	}
	if res.Status != model.StatusInProgress || res.Direction != model.Higher {
		t.Fatalf("expected higher after 10, got %+v", res)
	}
	if res.Proximity != model.Cold {
		t.Fatalf("expected cold for distance 32, got %q", res.Proximity)
	}
	if res.AttemptsLeft != 4 {
		t.Fatalf("expected 4 attempts left, got %d", res.AttemptsLeft)
	}

	res, err = e.Guess(70)
	if err != nil {
		t.Fatalf("guess 70: %v", err)
	}
	if res.Direction != model.Lower || res.Proximity != model.Warm {
		t.Fatalf("expected warm/lower after 70, got %+v", res)
	}
	if len(res.Guesses) != 2 || res.Guesses[0] != 10 || res.Guesses[1] != 70 {
		t.Fatalf("unexpected guess history: %v", res.Guesses)
	}

	clock.Advance(5 * time.Second)
	res, err = e.Guess(42)
	if err != nil {
		t.Fatalf("guess 42: %v", err)
	}
	if res.Status != model.StatusWon {
		t.Fatalf("expected win, got %v", res.Status)
	}
	if res.Attempts != 3 || res.ElapsedSeconds != 5 {
		t.Fatalf("expected 3 attempts in 5s, got %d in %ds", res.Attempts, res.ElapsedSeconds)
	}
	if res.Score != 1190 {
		t.Fatalf("expected score 1190, got %d", res.Score)
	}
	if e.CurrentScore() != 1190 {
		t.Fatalf("expected current score 1190, got %d", e.CurrentScore())
	}
}

func TestProximityThresholds(t *testing.T) {
	cases := []struct {
		guess int
		want  model.Proximity
	}{
		{guess: 151, want: model.Freezing},
		{guess: 150, want: model.Cold},
		{guess: 131, want: model.Cold},
		{guess: 130, want: model.Warm},
		{guess: 116, want: model.Warm},
		{guess: 115, want: model.Hot},
		{guess: 106, want: model.Hot},
		{guess: 105, want: model.OnFire},
		{guess: 95, want: model.OnFire},
		{guess: 49, want: model.Freezing},
	}
	for _, tc := range cases {
		if got := Proximity(tc.guess, 100); got != tc.want {
			t.Fatalf("Proximity(%d, 100) = %q, want %q", tc.guess, got, tc.want)
		}
	}
}

func TestExpertWrongGuessLoses(t *testing.T) {
	e, _ := newTestEngine(499)
	e.Start(model.Expert)
	res, err := e.Guess(1)
	if err != nil {
		t.Fatalf("guess: %v", err)
	}
	if res.Status != model.StatusLost {
		t.Fatalf("expected loss, got %v", res.Status)
	}
	if res.Secret != 500 {
		t.Fatalf("expected secret 500 revealed, got %d", res.Secret)
	}
	if res.Direction != "" || res.Proximity != "" {
		t.Fatalf("expected no hint on loss, got %+v", res)
	}
	if _, err := e.Guess(500); !errors.Is(err, ErrInactiveSession) {
		t.Fatalf("expected ErrInactiveSession after loss, got %v", err)
	}
}

func TestLossAfterMaxAttempts(t *testing.T) {
	for _, d := range model.Difficulties {
		e, _ := newTestEngine(0)
		preset := e.Start(d)
		secret := e.Session().Secret
		var res model.GuessResult
		for i := 0; i < preset.MaxAttempts; i++ {
			var err error
			res, err = e.Guess(secret + 1)
			if err != nil {
				t.Fatalf("%s: guess %d: %v", d, i, err)
			}
		}
		if res.Status != model.StatusLost || res.Secret != secret {
			t.Fatalf("%s: expected loss revealing %d, got %+v", d, secret, res)
		}
		if e.Session().Status != model.StatusLost {
			t.Fatalf("%s: expected session status lost", d)
		}
	}
}

func TestCorrectGuessAlwaysWins(t *testing.T) {
	e, _ := newTestEngine(20)
	e.Start(model.Easy)
	secret := e.Session().Secret
	for _, g := range []int{1, 2, 3, 4} {
		if _, err := e.Guess(g); err != nil {
			t.Fatalf("guess %d: %v", g, err)
		}
	}
	res, err := e.Guess(secret)
	if err != nil {
		t.Fatalf("guess secret: %v", err)
	}
	if res.Status != model.StatusWon {
		t.Fatalf("expected win, got %v", res.Status)
	}
}

func TestGuessHistoryTracksAttempts(t *testing.T) {
	e, _ := newTestEngine(49)
	e.Start(model.Easy)
	for _, g := range []int{1, 2, 3} {
		if _, err := e.Guess(g); err != nil {
			t.Fatalf("guess %d: %v", g, err)
		}
	}
	s := e.Session()
	if len(s.Guesses) != s.AttemptsUsed {
		t.Fatalf("guess history length %d != attempts %d", len(s.Guesses), s.AttemptsUsed)
	}
	s.Guesses[0] = 99
	if e.Session().Guesses[0] != 1 {
		t.Fatalf("session snapshot must not alias engine state")
	}
}

func TestInactiveSession(t *testing.T) {
	e, _ := newTestEngine(0)
	if _, err := e.Guess(5); !errors.Is(err, ErrInactiveSession) {
		t.Fatalf("expected ErrInactiveSession before start, got %v", err)
	}
	if _, err := e.UseHint(); !errors.Is(err, ErrInactiveSession) {
		t.Fatalf("expected ErrInactiveSession for hint before start, got %v", err)
	}
}

func TestUnknownDifficultyFallsBackToMedium(t *testing.T) {
	e, _ := newTestEngine(0)
	preset := e.Start(model.Difficulty("insane"))
	if preset.MaxAttempts != 5 || preset.Max != 100 {
		t.Fatalf("expected medium preset, got %+v", preset)
	}
	if e.Session().Difficulty != model.Medium {
		t.Fatalf("expected medium difficulty, got %q", e.Session().Difficulty)
	}
}

func TestUseHintPenalty(t *testing.T) {
	e, _ := newTestEngine(41, 0, 1, 2, 3, 4)
	e.Start(model.Medium)
	for want := 4; want >= 1; want-- {
		h, err := e.UseHint()
		if err != nil {
			t.Fatalf("hint: %v", err)
		}
		if h.MaxAttempts != want {
			t.Fatalf("expected max attempts %d, got %d", want, h.MaxAttempts)
		}
	}
	h, err := e.UseHint()
	if err != nil {
		t.Fatalf("hint at floor: %v", err)
	}
	if h.MaxAttempts != 1 {
		t.Fatalf("expected floor of 1, got %d", h.MaxAttempts)
	}
	if e.Session().HintsUsed != 5 {
		t.Fatalf("expected 5 hints used, got %d", e.Session().HintsUsed)
	}
}

func TestHintKinds(t *testing.T) {
	e, _ := newTestEngine(41, 0, 1, 2, 3, 4)
	e.Start(model.Medium)

	want := []model.HintKind{
		model.HintParity,
		model.HintWindow,
		model.HintDigitSum,
		model.HintHalf,
		model.HintDivisibleByThree,
	}
	for _, kind := range want {
		h, err := e.UseHint()
		if err != nil {
			t.Fatalf("hint: %v", err)
		}
		if h.Kind != kind {
			t.Fatalf("expected kind %d, got %d", kind, h.Kind)
		}
		switch h.Kind {
		case model.HintParity:
			if !h.Even {
				t.Fatalf("42 is even")
			}
		case model.HintWindow:
			if h.Low != 22 || h.High != 62 {
				t.Fatalf("expected window 22-62, got %d-%d", h.Low, h.High)
			}
		case model.HintDigitSum:
			if h.DigitSum != 6 {
				t.Fatalf("expected digit sum 6, got %d", h.DigitSum)
			}
		case model.HintHalf:
			if h.AboveFifty {
				t.Fatalf("42 is not above 50")
			}
		case model.HintDivisibleByThree:
			if !h.DivisibleByThree {
				t.Fatalf("42 is divisible by 3")
			}
		}
	}
}

func TestHintWindowClamp(t *testing.T) {
	h := hintFor(model.HintWindow, 5)
	if h.Low != 1 || h.High != 25 {
		t.Fatalf("expected 1-25, got %d-%d", h.Low, h.High)
	}
	h = hintFor(model.HintWindow, 195)
	if h.Low != 175 || h.High != 200 {
		t.Fatalf("expected 175-200, got %d-%d", h.Low, h.High)
	}
}

func TestHintsExhaustingBudgetLoseOnNextWrongGuess(t *testing.T) {
	e, _ := newTestEngine(41, 0)
	e.Start(model.Medium)
	for _, g := range []int{10, 20} {
		if _, err := e.Guess(g); err != nil {
			t.Fatalf("guess %d: %v", g, err)
		}
	}
	for i := 0; i < 4; i++ {
		if _, err := e.UseHint(); err != nil {
			t.Fatalf("hint: %v", err)
		}
	}
	if s := e.Session(); s.MaxAttempts != 1 || s.Status != model.StatusInProgress {
		t.Fatalf("unexpected session after hints: %+v", s)
	}
	res, err := e.Guess(30)
	if err != nil {
		t.Fatalf("guess: %v", err)
	}
	if res.Status != model.StatusLost {
		t.Fatalf("expected immediate loss, got %v", res.Status)
	}
}

func TestScoreMonotonicity(t *testing.T) {
	for used := 1; used < 10; used++ {
		if Score(2, 10, used+1, 30) > Score(2, 10, used, 30) {
			t.Fatalf("score increased with attempts at %d", used)
		}
	}
	multipliers := []int{1, 2, 5, 10}
	for i := 1; i < len(multipliers); i++ {
		if Score(multipliers[i], 5, 3, 30) < Score(multipliers[i-1], 5, 3, 30) {
			t.Fatalf("score decreased with multiplier %d", multipliers[i])
		}
	}
	if got := Score(1, 1, 4, 1000); got != 0 {
		t.Fatalf("expected score clamped at 0, got %d", got)
	}
	if got := Score(2, 5, 3, 5); got != 1190 {
		t.Fatalf("expected 1190, got %d", got)
	}
}

func TestResetReturnsToNotStarted(t *testing.T) {
	e, _ := newTestEngine(10)
	e.Start(model.Hard)
	if _, err := e.Guess(1); err != nil {
		t.Fatalf("guess: %v", err)
	}
	e.Reset()
	s := e.Session()
	if s.Status != model.StatusNotStarted || s.AttemptsUsed != 0 || len(s.Guesses) != 0 {
		t.Fatalf("unexpected session after reset: %+v", s)
	}
	if _, ok := e.Record(); ok {
		t.Fatalf("expected no record after reset")
	}
}

func TestRecordAfterWin(t *testing.T) {
	e, clock := newTestEngine(9)
	e.Start(model.Easy)
	e.UseHint()
	clock.Advance(12 * time.Second)
	if _, err := e.Guess(10); err != nil {
		t.Fatalf("guess: %v", err)
	}
	rec, ok := e.Record()
	if !ok {
		t.Fatalf("expected record after win")
	}
	if !rec.Won || rec.Difficulty != model.Easy || rec.Attempts != 1 || rec.HintsUsed != 1 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	want := Score(1, 9, 1, 12)
	if rec.Score != want || rec.ElapsedSeconds != 12 {
		t.Fatalf("expected score %d in 12s, got %d in %ds", want, rec.Score, rec.ElapsedSeconds)
	}
	if rec.ID == "" {
		t.Fatalf("expected a session id")
	}
}

func TestSecretDrawCoversRange(t *testing.T) {
	g := generator.NewSeeded(1)
	for _, d := range model.Difficulties {
		e := New(WithSource(g))
		preset, _ := PresetFor(d)
		seenMin, seenMax := false, false
		for i := 0; i < 10000; i++ {
			e.Start(d)
			secret := e.Session().Secret
			if secret < preset.Min || secret > preset.Max {
				t.Fatalf("%s: secret %d outside [%d,%d]", d, secret, preset.Min, preset.Max)
			}
			if secret == preset.Min {
				seenMin = true
			}
			if secret == preset.Max {
				seenMax = true
			}
		}
		if !seenMin || !seenMax {
			t.Fatalf("%s: expected both endpoints drawn (min=%v max=%v)", d, seenMin, seenMax)
		}
	}
}

func TestRangeFollowsDifficulty(t *testing.T) {
	e, _ := newTestEngine(0)
	e.Start(model.Hard)
	if lo, hi := e.Range(); lo != 1 || hi != 200 {
		t.Fatalf("expected [1,200], got [%d,%d]", lo, hi)
	}
	e.Reset()
	if lo, hi := e.Range(); lo != 1 || hi != 100 {
		t.Fatalf("expected medium range after reset, got [%d,%d]", lo, hi)
	}
}
