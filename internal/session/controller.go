// Package session wires input lines to the game engine, stats tracker and renderer.
package session

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/numguess/internal/game"
	"github.com/verte-zerg/numguess/internal/model"
	"github.com/verte-zerg/numguess/internal/stats"
	"github.com/verte-zerg/numguess/internal/validate"
)

// Renderer displays what the controller produces.
type Renderer interface {
	Welcome()
	DifficultyMenu()
	DifficultySelected(d model.Difficulty, p model.Preset)
	GameStarted(d model.Difficulty, p model.Preset)
	Progress(used, maxAttempts int)
	GuessResult(res model.GuessResult, p model.Preset)
	NewHighScore(d model.Difficulty, rec model.HighScoreRecord)
	Hint(h model.HintResult)
	Stats(s model.AggregateStats)
	HighScores(scores model.HighScores)
	Help(p model.Preset)
	Rejected(reason string)
	Error(err error)
	Notice(msg string)
	Goodbye(s model.AggregateStats)
	Farewell()
}

// Recorder appends finished games to a history log.
type Recorder interface {
	InsertGame(ctx context.Context, rec model.GameRecord) error
}

type phase int

const (
	phaseWelcome phase = iota
	phaseDifficulty
	phaseReady
	phaseGuess
	phasePlayAgain
	phaseDone
)

// Option configures a Controller.
type Option func(*Controller)

// WithHistory records every finished game to h.
func WithHistory(h Recorder) Option {
	return func(c *Controller) {
		c.history = h
	}
}

// WithDifficulty skips the menu for the first game.
func WithDifficulty(d model.Difficulty) Option {
	return func(c *Controller) {
		c.preset = d
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// Controller is a line-driven state machine over one player's sitting.
// It is not safe for concurrent use.
type Controller struct {
	engine  *game.Engine
	tracker *stats.Tracker
	history Recorder
	r       Renderer
	log     zerolog.Logger

	preset  model.Difficulty
	pending model.Difficulty
	phase   phase
}

// NewController builds a controller in the welcome phase.
func NewController(engine *game.Engine, tracker *stats.Tracker, r Renderer, opts ...Option) *Controller {
	c := &Controller{
		engine:  engine,
		tracker: tracker,
		r:       r,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start shows the welcome screen.
func (c *Controller) Start() {
	c.phase = phaseWelcome
	c.r.Welcome()
}

// Done reports whether the player has left.
func (c *Controller) Done() bool {
	return c.phase == phaseDone
}

// Interrupt ends the sitting without recording the game in progress.
func (c *Controller) Interrupt() {
	if c.phase == phaseDone {
		return
	}
	c.log.Debug().Str("status", c.engine.Session().Status.String()).Msg("interrupted")
	c.r.Farewell()
	c.phase = phaseDone
}

// Snapshot summarizes the sitting for status lines.
type Snapshot struct {
	InGame       bool
	Difficulty   model.Difficulty
	AttemptsUsed int
	MaxAttempts  int
	HintsUsed    int
	Streak       int
	GamesWon     int
	TotalGames   int
}

// Snapshot returns the current game and streak counters.
func (c *Controller) Snapshot() Snapshot {
	s := c.engine.Session()
	agg := c.tracker.Stats()
	return Snapshot{
		InGame:       c.phase == phaseGuess && s.Status == model.StatusInProgress,
		Difficulty:   s.Difficulty,
		AttemptsUsed: s.AttemptsUsed,
		MaxAttempts:  s.MaxAttempts,
		HintsUsed:    s.HintsUsed,
		Streak:       agg.Streak.Current,
		GamesWon:     agg.GamesWon,
		TotalGames:   agg.TotalGames,
	}
}

// Prompt returns the text to show before reading the next line.
func (c *Controller) Prompt() string {
	switch c.phase {
	case phaseWelcome:
		return "Press Enter to start the game..."
	case phaseDifficulty:
		return "Enter your choice (1-4): "
	case phaseReady:
		return "Press Enter to begin guessing..."
	case phaseGuess:
		s := c.engine.Session()
		return fmt.Sprintf("Guess %d/%d: ", s.AttemptsUsed+1, s.MaxAttempts)
	case phasePlayAgain:
		return "Play again? (yes/no): "
	default:
		return ""
	}
}

// Handle processes one input line.
func (c *Controller) Handle(ctx context.Context, line string) {
	switch c.phase {
	case phaseWelcome:
		c.leaveWelcome()
	case phaseDifficulty:
		c.selectDifficulty(line)
	case phaseReady:
		c.beginGuessing()
	case phaseGuess:
		c.handleGuess(ctx, line)
	case phasePlayAgain:
		c.handlePlayAgain(line)
	}
}

func (c *Controller) leaveWelcome() {
	if c.preset == "" {
		c.showMenu()
		return
	}
	d := c.preset
	c.preset = ""
	c.choose(d)
}

func (c *Controller) showMenu() {
	c.r.DifficultyMenu()
	c.phase = phaseDifficulty
}

func (c *Controller) selectDifficulty(line string) {
	d, err := validate.ParseDifficultySelection(line)
	if err != nil {
		c.r.Rejected(err.Error())
		c.r.DifficultyMenu()
		return
	}
	c.choose(d)
}

func (c *Controller) choose(d model.Difficulty) {
	p, ok := game.PresetFor(d)
	if !ok {
		d = model.Medium
		p, _ = game.PresetFor(d)
	}
	c.pending = d
	c.r.DifficultySelected(d, p)
	c.phase = phaseReady
}

func (c *Controller) beginGuessing() {
	p := c.engine.Start(c.pending)
	s := c.engine.Session()
	c.log.Debug().Str("game", s.ID).Str("difficulty", string(s.Difficulty)).Msg("game started")
	c.r.GameStarted(s.Difficulty, p)
	c.promptGuess()
}

func (c *Controller) promptGuess() {
	s := c.engine.Session()
	c.r.Progress(s.AttemptsUsed, s.MaxAttempts)
	c.phase = phaseGuess
}

func (c *Controller) handleGuess(ctx context.Context, line string) {
	in, err := validate.ParseGuessOrCommand(line)
	if err != nil {
		c.r.Rejected(err.Error())
		c.promptGuess()
		return
	}
	if in.IsCommand() {
		c.command(in.Command)
		return
	}

	res, err := c.engine.Guess(in.Guess)
	if err != nil {
		c.r.Error(err)
		c.promptGuess()
		return
	}
	c.r.GuessResult(res, c.engine.Preset())
	switch res.Status {
	case model.StatusWon, model.StatusLost:
		c.finish(ctx)
	default:
		c.promptGuess()
	}
}

func (c *Controller) command(cmd model.Command) {
	switch cmd {
	case model.CmdHint:
		h, err := c.engine.UseHint()
		if err != nil {
			c.r.Error(err)
		} else {
			c.r.Hint(h)
		}
		c.promptGuess()
	case model.CmdQuit, model.CmdExit:
		c.log.Debug().Str("game", c.engine.Session().ID).Msg("game abandoned")
		c.r.Notice("Thanks for playing!")
		c.engine.Reset()
		c.phase = phasePlayAgain
	case model.CmdStats:
		c.r.Stats(c.tracker.Stats())
		c.promptGuess()
	case model.CmdScores:
		c.r.HighScores(c.tracker.HighScores())
		c.promptGuess()
	case model.CmdHelp:
		c.r.Help(c.engine.Preset())
		c.promptGuess()
	case model.CmdRestart:
		c.r.Notice("Restarting game...")
		c.engine.Reset()
		c.showMenu()
	}
}

func (c *Controller) finish(ctx context.Context) {
	rec, ok := c.engine.Record()
	if !ok {
		return
	}
	c.tracker.RecordGame(rec)
	if rec.Won {
		hs := model.HighScoreRecord{
			Score:          rec.Score,
			Attempts:       rec.Attempts,
			ElapsedSeconds: rec.ElapsedSeconds,
			Date:           rec.EndedAt,
		}
		if c.tracker.RecordHighScore(rec.Difficulty, hs) {
			c.r.NewHighScore(rec.Difficulty, hs)
		}
	}
	if c.history != nil {
		if err := c.history.InsertGame(ctx, rec); err != nil {
			c.log.Warn().Err(err).Str("game", rec.ID).Msg("failed to record game history")
		}
	}
	c.log.Info().
		Str("game", rec.ID).
		Str("difficulty", string(rec.Difficulty)).
		Bool("won", rec.Won).
		Int("attempts", rec.Attempts).
		Int("score", rec.Score).
		Msg("game finished")
	c.phase = phasePlayAgain
}

func (c *Controller) handlePlayAgain(line string) {
	again, err := validate.ParseYesNo(line)
	if err != nil {
		c.r.Rejected(err.Error())
		return
	}
	if again {
		c.r.Notice("Starting new game...")
		c.engine.Reset()
		c.showMenu()
		return
	}
	c.r.Goodbye(c.tracker.Stats())
	c.phase = phaseDone
}
