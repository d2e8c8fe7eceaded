// Package render draws game screens for a line-oriented terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/verte-zerg/numguess/internal/game"
	"github.com/verte-zerg/numguess/internal/generator"
	"github.com/verte-zerg/numguess/internal/model"
	"github.com/verte-zerg/numguess/internal/stats"
)

const dividerWidth = 50

// Gradient endpoints.
const (
	passionFrom = "#F953C6"
	passionTo   = "#FFB347"
	mindFrom    = "#473B7B"
	mindTo      = "#30D2BE"
	fruitFrom   = "#FF4E50"
	fruitTo     = "#F9D423"
)

// Options configures a Terminal.
type Options struct {
	// NoColor strips all styling.
	NoColor bool
	// ForceColor uses the stdout color profile even when the writer is not a terminal.
	ForceColor bool
	// Width centers the banner when positive.
	Width int
	Now   func() time.Time
}

type styles struct {
	heading lipgloss.Style
	accent  lipgloss.Style
	info    lipgloss.Style
	warn    lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	dim     lipgloss.Style
	box     lipgloss.Style
}

// Terminal writes styled game output to w.
type Terminal struct {
	w    io.Writer
	r    *lipgloss.Renderer
	src  generator.Source
	opts Options
	st   styles
}

// NewTerminal builds a renderer. src picks flavor lines.
func NewTerminal(w io.Writer, src generator.Source, opts Options) *Terminal {
	r := lipgloss.NewRenderer(w)
	switch {
	case opts.NoColor:
		r.SetColorProfile(termenv.Ascii)
	case opts.ForceColor:
		r.SetColorProfile(lipgloss.ColorProfile())
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if src == nil {
		src = generator.New()
	}
	return &Terminal{
		w:    w,
		r:    r,
		src:  src,
		opts: opts,
		st: styles{
			heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FD7FF")),
			accent:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#D787FF")),
			info:    r.NewStyle().Foreground(lipgloss.Color("#5FD7FF")),
			warn:    r.NewStyle().Foreground(lipgloss.Color("#FFD75F")),
			good:    r.NewStyle().Foreground(lipgloss.Color("#5FD75F")),
			bad:     r.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
			dim:     r.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
			box: r.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("#FF4D4F")).
				Padding(0, 2),
		},
	}
}

// Welcome prints the banner, tagline and rules.
func (t *Terminal) Welcome() {
	span := bannerWidth()
	t.line("")
	for _, row := range banner {
		if t.opts.Width > 0 {
			row = center(row, t.opts.Width)
		}
		t.line(t.gradient(row, passionFrom, passionTo, span))
	}
	tagline := "Can you guess the secret number? Test your luck!"
	t.line("")
	t.line(t.gradient(tagline, mindFrom, mindTo, 0))

	t.line("")
	t.line(t.st.heading.Render("GAME RULES:"))
	t.divider()
	for _, rule := range []string{
		"The computer will pick a random number in the range of your difficulty",
		"You have limited attempts based on difficulty level",
		`After each guess, you'll get "higher/lower" hints`,
		"Use hints wisely (they cost 1 attempt)",
		"Your score depends on speed and few attempts",
	} {
		t.line(t.st.warn.Render("• " + rule))
	}
	t.divider()
}

// DifficultyMenu lists the presets.
func (t *Terminal) DifficultyMenu() {
	t.line("")
	t.line(t.st.accent.Render("SELECT DIFFICULTY:"))
	t.divider()
	labelStyles := []lipgloss.Style{t.st.good, t.st.warn, t.st.bad, t.st.bad.Bold(true)}
	for i, d := range model.Difficulties {
		p, _ := game.PresetFor(d)
		label := fmt.Sprintf("%d. %-7s", i+1, titleCase(string(d)))
		detail := fmt.Sprintf("→ %d %s, number %d-%d", p.MaxAttempts, plural(p.MaxAttempts, "attempt", "attempts"), p.Min, p.Max)
		t.line(labelStyles[i%len(labelStyles)].Render(label) + " " + t.st.dim.Render(detail))
	}
	t.divider()
}

// DifficultySelected confirms the chosen preset.
func (t *Terminal) DifficultySelected(d model.Difficulty, p model.Preset) {
	t.line("")
	t.line(t.st.good.Bold(true).Render(fmt.Sprintf("Great! You selected %s difficulty.", strings.ToUpper(string(d)))))
	t.line(t.st.warn.Render(fmt.Sprintf("You have %d %s to guess a number between %d and %d.",
		p.MaxAttempts, plural(p.MaxAttempts, "attempt", "attempts"), p.Min, p.Max)))
}

// GameStarted prints the game-info block.
func (t *Terminal) GameStarted(d model.Difficulty, p model.Preset) {
	t.line("")
	t.line(t.st.good.Bold(true).Render("GAME STARTED!"))
	t.divider()
	t.line(t.st.info.Render("Difficulty: " + strings.ToUpper(string(d))))
	t.line(t.st.info.Render(fmt.Sprintf("Range: %d to %d", p.Min, p.Max)))
	t.line(t.st.info.Render(fmt.Sprintf("Attempts: %d", p.MaxAttempts)))
	t.divider()
	t.line(t.st.warn.Bold(true).Render(`Type "hint" for a clue (costs 1 attempt)`))
	t.line(t.st.warn.Bold(true).Render(`Type "quit" to end the game, "help" for all commands`))
	t.divider()
}

// Progress prints the attempts-used bar.
func (t *Terminal) Progress(used, maxAttempts int) {
	bar, pct := ProgressBar(used, maxAttempts, ProgressWidth)
	style := t.st.good
	switch {
	case pct > 66:
		style = t.st.bad
	case pct > 33:
		style = t.st.warn
	}
	t.line("")
	t.line(style.Render(fmt.Sprintf("Progress: [%s] %d/%d attempts used", bar, used, maxAttempts)))
}

// GuessResult prints the outcome of a guess. p bounds the number line.
func (t *Terminal) GuessResult(res model.GuessResult, p model.Preset) {
	switch res.Status {
	case model.StatusWon:
		t.win(res)
	case model.StatusLost:
		t.loss(res)
	default:
		t.miss(res, p)
	}
}

func (t *Terminal) miss(res model.GuessResult, p model.Preset) {
	t.line("")
	t.line(t.st.bad.Render(fmt.Sprintf("Incorrect! The number is %s than %d.", res.Direction, res.Guess)))
	t.line(t.st.warn.Render(fmt.Sprintf("%s (%s)", ProximityText(res.Proximity), res.Direction)))
	t.line(t.st.info.Render(fmt.Sprintf("Attempts left: %d", res.AttemptsLeft)))
	if len(res.Guesses) > 0 {
		t.line(t.st.dim.Render("Previous guesses: " + joinInts(res.Guesses)))
	}
	line := NumberLine(p.Min, p.Max, res.Guess, res.Direction, NumberLineWidth)
	if line == "" {
		return
	}
	t.line("")
	t.line(t.st.dim.Render("Number Line:"))
	t.line(t.st.dim.Render(axisLabels(p.Min, p.Max, NumberLineWidth)))
	t.line(t.styleLine(line))
	t.line(t.st.bad.Render("G = Your Guess") + "  " + t.st.warn.Render(string(markSpan)+" = Where the number is"))
}

func (t *Terminal) win(res model.GuessResult) {
	headline, body := WinMessage(t.src, res.Attempts, res.ElapsedSeconds)
	rule := strings.Repeat("═", 60)
	t.line("")
	t.line(t.gradient(rule, fruitFrom, fruitTo, 0))
	t.line("  " + t.gradient(headline, passionFrom, passionTo, 0) + " " + body)
	t.line(t.gradient(rule, fruitFrom, fruitTo, 0))

	t.line("")
	t.line(t.st.heading.Render("Game Statistics:"))
	t.line(t.st.dim.Render(strings.Repeat("─", 30)))
	t.line(t.st.warn.Render(fmt.Sprintf("Attempts: %d", res.Attempts)))
	t.line(t.st.warn.Render(fmt.Sprintf("Time: %d seconds", res.ElapsedSeconds)))
	t.line(t.st.good.Bold(true).Render(fmt.Sprintf("Score: %d points", res.Score)))
}

func (t *Terminal) loss(res model.GuessResult) {
	headline, body := LossMessage(t.src, res.Secret)
	t.line("")
	t.line(t.st.bad.Bold(true).Render(headline) + " " + t.st.bad.Render(body))
	if line := RevealLine(res.Guess, res.Secret, NumberLineWidth); line != "" {
		lo, hi := min(res.Guess, res.Secret), max(res.Guess, res.Secret)
		t.line("")
		t.line(t.st.dim.Render("Number Line:"))
		t.line(t.st.dim.Render(axisLabels(lo, hi, NumberLineWidth)))
		t.line(t.styleLine(line))
		t.line(t.st.bad.Render("G = Your Guess") + "  " + t.st.good.Render("S = Secret Number"))
	}
	t.GameOver(res.Secret)
}

// GameOver prints the boxed reveal of the secret.
func (t *Terminal) GameOver(secret int) {
	content := t.st.bad.Bold(true).Render("GAME OVER") + "\n" +
		t.st.bad.Render(fmt.Sprintf("The secret number was: %d", secret))
	t.line("")
	t.line(t.st.box.Render(content))
}

// NewHighScore announces a record for d.
func (t *Terminal) NewHighScore(d model.Difficulty, rec model.HighScoreRecord) {
	t.line(t.st.accent.Render(fmt.Sprintf("New high score for %s: %d points!", strings.ToUpper(string(d)), rec.Score)))
}

// Hint prints the revealed fact and the penalty.
func (t *Terminal) Hint(h model.HintResult) {
	t.line("")
	t.line(t.st.heading.Render("HINT:") + " " + HintText(h))
	t.line(t.st.warn.Render(PenaltyText(h.AttemptsLeft)))
}

// Stats prints the aggregate statistics.
func (t *Terminal) Stats(s model.AggregateStats) {
	var b strings.Builder
	if err := stats.RenderSummary(&b, s); err != nil {
		t.Error(err)
		return
	}
	t.line("")
	t.line(t.st.heading.Render("GAME STATISTICS"))
	t.line(t.st.dim.Render(strings.Repeat("═", dividerWidth)))
	t.block(b.String())
	t.line(t.st.dim.Render(strings.Repeat("═", dividerWidth)))
}

// HighScores prints the per-difficulty records.
func (t *Terminal) HighScores(scores model.HighScores) {
	var b strings.Builder
	if err := stats.RenderHighScores(&b, scores, t.opts.Now()); err != nil {
		t.Error(err)
		return
	}
	t.line("")
	if len(scores) == 0 {
		t.line(t.st.warn.Render(strings.TrimSpace(b.String())))
		return
	}
	t.block(b.String())
}

// Help lists the commands accepted during a game.
func (t *Terminal) Help(p model.Preset) {
	t.line("")
	t.line(t.st.heading.Render("HELP MENU"))
	t.divider()
	for _, entry := range []string{
		fmt.Sprintf("Enter a number between %d-%d to guess", p.Min, p.Max),
		`Type "hint" for a clue (costs 1 attempt)`,
		`Type "stats" to see your game statistics`,
		`Type "scores" to view high scores`,
		`Type "restart" to start a new game`,
		`Type "quit" or "exit" to end the game`,
	} {
		t.line(t.st.warn.Render(entry))
	}
	t.divider()
}

// Rejected reports input that did not parse.
func (t *Terminal) Rejected(reason string) {
	t.line(t.st.bad.Render(reason))
}

// Error reports a recoverable failure.
func (t *Terminal) Error(err error) {
	t.line(t.st.bad.Render("Error: " + err.Error()))
}

// Notice prints a one-line status message.
func (t *Terminal) Notice(msg string) {
	t.line("")
	t.line(t.st.warn.Render(msg))
}

// Goodbye prints the closing screen with final statistics.
func (t *Terminal) Goodbye(s model.AggregateStats) {
	t.line("")
	t.line(t.gradient("Thanks for playing!", passionFrom, passionTo, 0))
	t.line("")
	t.line(t.st.dim.Render("Final Statistics:"))
	t.Stats(s)
	t.line("")
	t.line(t.st.info.Render("Goodbye! See you next time!"))
}

// Farewell is printed when the player interrupts the program.
func (t *Terminal) Farewell() {
	t.line("")
	t.line(t.st.warn.Render("Thanks for playing! Goodbye!"))
}

func (t *Terminal) styleLine(line string) string {
	var b strings.Builder
	for _, r := range line {
		cell := string(r)
		switch r {
		case markGuess:
			b.WriteString(t.st.bad.Bold(true).Render(cell))
		case markSecret:
			b.WriteString(t.st.good.Bold(true).Render(cell))
		case markSpan:
			b.WriteString(t.st.warn.Render(cell))
		default:
			b.WriteString(t.st.dim.Render(cell))
		}
	}
	return b.String()
}

// gradient colors text rune by rune. span fixes the gradient length so stacked lines align; 0 uses len(text).
func (t *Terminal) gradient(text, from, to string, span int) string {
	if t.opts.NoColor {
		return text
	}
	start, err := colorful.Hex(from)
	if err != nil {
		return text
	}
	end, err := colorful.Hex(to)
	if err != nil {
		return text
	}
	runes := []rune(text)
	if span <= 0 {
		span = len(runes)
	}
	var b strings.Builder
	for i, r := range runes {
		if r == ' ' {
			b.WriteRune(r)
			continue
		}
		pos := 0.0
		if span > 1 {
			pos = min(1, float64(i)/float64(span-1))
		}
		c := start.BlendLuv(end, pos).Clamped()
		b.WriteString(t.r.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return b.String()
}

func (t *Terminal) divider() {
	t.line(t.st.dim.Render(strings.Repeat("─", dividerWidth)))
}

func (t *Terminal) block(text string) {
	for _, row := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		t.line(row)
	}
}

func (t *Terminal) line(s string) {
	if _, err := fmt.Fprintln(t.w, s); err != nil {
		// Best-effort terminal output.
		_ = err
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
