// Package game holds the state machine of a single guessing session.
package game

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/numguess/internal/generator"
	"github.com/verte-zerg/numguess/internal/model"
)

// ErrInactiveSession is returned when a guess or hint arrives outside an in-progress session.
var ErrInactiveSession = errors.New("game is not active")

const defaultMaxAttempts = 10

// Option configures an Engine.
type Option func(*Engine)

// WithSource sets the random source used for secret draws and hint kinds.
func WithSource(src generator.Source) Option {
	return func(e *Engine) {
		e.src = src
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine owns the authoritative state of one game session.
type Engine struct {
	src     generator.Source
	now     func() time.Time
	session model.Session
}

// New returns an Engine in the NotStarted state.
func New(opts ...Option) *Engine {
	e := &Engine{
		src: generator.New(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Reset()
	return e
}

// Start begins a new session. Unknown difficulties fall back to medium.
func (e *Engine) Start(d model.Difficulty) model.Preset {
	d, preset := resolve(d)
	e.session = model.Session{
		ID:          uuid.NewString(),
		Difficulty:  d,
		Secret:      generator.Between(e.src, preset.Min, preset.Max),
		MaxAttempts: preset.MaxAttempts,
		Guesses:     []int{},
		Status:      model.StatusInProgress,
		StartedAt:   e.now(),
	}
	return preset
}

// Guess evaluates a guess against the secret.
func (e *Engine) Guess(value int) (model.GuessResult, error) {
	s := &e.session
	if s.Status != model.StatusInProgress {
		return model.GuessResult{}, ErrInactiveSession
	}
	s.AttemptsUsed++
	s.Guesses = append(s.Guesses, value)

	if value == s.Secret {
		s.Status = model.StatusWon
		s.EndedAt = e.now()
		return model.GuessResult{
			Status:         model.StatusWon,
			Guess:          value,
			Guesses:        e.history(),
			Attempts:       s.AttemptsUsed,
			Score:          e.CurrentScore(),
			ElapsedSeconds: elapsedSeconds(s.StartedAt, s.EndedAt),
			Secret:         s.Secret,
		}, nil
	}

	if s.AttemptsUsed >= s.MaxAttempts {
		s.Status = model.StatusLost
		s.EndedAt = e.now()
		return model.GuessResult{
			Status:         model.StatusLost,
			Guess:          value,
			Guesses:        e.history(),
			Attempts:       s.AttemptsUsed,
			ElapsedSeconds: elapsedSeconds(s.StartedAt, s.EndedAt),
			Secret:         s.Secret,
		}, nil
	}

	direction := model.Lower
	if value < s.Secret {
		direction = model.Higher
	}
	return model.GuessResult{
		Status:       model.StatusInProgress,
		Guess:        value,
		Direction:    direction,
		Proximity:    Proximity(value, s.Secret),
		AttemptsLeft: s.MaxAttempts - s.AttemptsUsed,
		Guesses:      e.history(),
		Attempts:     s.AttemptsUsed,
	}, nil
}

// UseHint reveals one fact about the secret at the cost of one attempt (floor 1).
func (e *Engine) UseHint() (model.HintResult, error) {
	s := &e.session
	if s.Status != model.StatusInProgress {
		return model.HintResult{}, ErrInactiveSession
	}
	s.MaxAttempts = max(1, s.MaxAttempts-1)
	s.HintsUsed++

	h := hintFor(model.HintKind(e.src.Intn(model.HintCount)), s.Secret)
	h.MaxAttempts = s.MaxAttempts
	h.AttemptsLeft = max(0, s.MaxAttempts-s.AttemptsUsed)
	return h, nil
}

// Reset discards the session and returns to NotStarted.
func (e *Engine) Reset() {
	e.session = model.Session{
		Difficulty:  model.Medium,
		MaxAttempts: defaultMaxAttempts,
		Guesses:     []int{},
		Status:      model.StatusNotStarted,
	}
}

// CurrentScore returns the score of a won session and 0 otherwise.
func (e *Engine) CurrentScore() int {
	s := e.session
	if s.Status != model.StatusWon {
		return 0
	}
	_, preset := resolve(s.Difficulty)
	return Score(preset.Multiplier, s.MaxAttempts, s.AttemptsUsed, elapsedSeconds(s.StartedAt, s.EndedAt))
}

// ElapsedSeconds returns the session duration so far, or the final duration once ended.
func (e *Engine) ElapsedSeconds() int {
	s := e.session
	if s.StartedAt.IsZero() {
		return 0
	}
	end := s.EndedAt
	if end.IsZero() {
		end = e.now()
	}
	return elapsedSeconds(s.StartedAt, end)
}

// Session returns a snapshot of the current session.
func (e *Engine) Session() model.Session {
	s := e.session
	s.Guesses = e.history()
	return s
}

// Preset returns the preset of the current difficulty.
func (e *Engine) Preset() model.Preset {
	_, p := resolve(e.session.Difficulty)
	return p
}

// Range returns the inclusive bounds of the secret for the current difficulty.
func (e *Engine) Range() (lo, hi int) {
	p := e.Preset()
	return p.Min, p.Max
}

// Record builds the game record of a finished session. ok is false while the session is not over.
func (e *Engine) Record() (rec model.GameRecord, ok bool) {
	s := e.session
	if s.Status != model.StatusWon && s.Status != model.StatusLost {
		return model.GameRecord{}, false
	}
	return model.GameRecord{
		ID:             s.ID,
		Difficulty:     s.Difficulty,
		Won:            s.Status == model.StatusWon,
		Attempts:       s.AttemptsUsed,
		MaxAttempts:    s.MaxAttempts,
		HintsUsed:      s.HintsUsed,
		Score:          e.CurrentScore(),
		ElapsedSeconds: elapsedSeconds(s.StartedAt, s.EndedAt),
		Secret:         s.Secret,
		Guesses:        e.history(),
		StartedAt:      s.StartedAt,
		EndedAt:        s.EndedAt,
	}, true
}

func (e *Engine) history() []int {
	out := make([]int, len(e.session.Guesses))
	copy(out, e.session.Guesses)
	return out
}
