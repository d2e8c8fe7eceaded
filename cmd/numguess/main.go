// Package main provides the CLI entrypoint for numguess.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/numguess/internal/config"
	"github.com/verte-zerg/numguess/internal/game"
	"github.com/verte-zerg/numguess/internal/generator"
	"github.com/verte-zerg/numguess/internal/logging"
	"github.com/verte-zerg/numguess/internal/model"
	"github.com/verte-zerg/numguess/internal/render"
	"github.com/verte-zerg/numguess/internal/session"
	"github.com/verte-zerg/numguess/internal/stats"
	"github.com/verte-zerg/numguess/internal/statsui"
	"github.com/verte-zerg/numguess/internal/store"
	"github.com/verte-zerg/numguess/internal/tui"
	"github.com/verte-zerg/numguess/internal/validate"
)

const (
	defaultLogLevel    = "warn"
	defaultTrendWindow = 3
)

var (
	playDifficulty string
	playPlain      bool
	playNoColor    bool
	playSeed       int64
	playDataDir    string
	playHistory    bool
	playLogLevel   string

	statsReset bool
	statsPlain bool

	historyDifficulty string
	historyResult     string
	historyLast       int
	historyWindow     int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "numguess",
		Short:         "Terminal number guessing game",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playDifficulty, "difficulty", "", "difficulty for the first game: easy, medium, hard or expert (default: ask)")
	rootCmd.Flags().BoolVar(&playPlain, "plain", false, "line-by-line mode without the full-screen UI")
	rootCmd.Flags().Int64Var(&playSeed, "seed", 0, "seed for reproducible secrets (0: random)")
	rootCmd.PersistentFlags().BoolVar(&playNoColor, "no-color", false, "disable colors")
	rootCmd.PersistentFlags().StringVar(&playDataDir, "data-dir", config.DefaultDataDir(), "directory for stats, scores, history and logs")
	rootCmd.PersistentFlags().BoolVar(&playHistory, "history", true, "record finished games to the history database")
	rootCmd.PersistentFlags().StringVar(&playLogLevel, "log-level", defaultLogLevel, "log level: debug, info, warn or error")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newScoresCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

// loadSettings resolves flags over environment over the config file.
func loadSettings(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	envCfg, err := config.LoadEnv()
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load environment: %w", err)
	}
	merged := config.Merge(fileCfg, envCfg)
	applyStringConfig(cmd, "difficulty", &playDifficulty, merged.Game.Difficulty)
	applyBoolConfig(cmd, "plain", &playPlain, merged.Game.Plain)
	applyBoolConfig(cmd, "no-color", &playNoColor, merged.Game.NoColor)
	applyStringConfig(cmd, "data-dir", &playDataDir, merged.Storage.DataDir)
	applyBoolConfig(cmd, "history", &playHistory, merged.Storage.History)
	applyStringConfig(cmd, "log-level", &playLogLevel, merged.Log.Level)

	cfg := model.Config{
		Plain:    playPlain,
		NoColor:  playNoColor,
		Seed:     playSeed,
		DataDir:  strings.TrimSpace(playDataDir),
		History:  playHistory,
		LogLevel: playLogLevel,
	}
	if err := validateConfig(&cfg, playDifficulty); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg *model.Config, difficulty string) error {
	if strings.TrimSpace(difficulty) != "" {
		d, err := validate.ParseDifficultySelection(difficulty)
		if err != nil {
			return fmt.Errorf("--difficulty: %w", err)
		}
		cfg.Difficulty = d
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("--data-dir must not be empty")
	}
	return nil
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	fullScreen := !cfg.Plain && isTerminal(os.Stdin) && isTerminal(os.Stdout)

	logOut := io.Writer(os.Stderr)
	if fullScreen {
		f, err := logging.OpenFile(config.LogPath(cfg.DataDir))
		if err != nil {
			logErrf("%v; logging disabled\n", err)
			logOut = io.Discard
		} else {
			defer func() {
				if cerr := f.Close(); cerr != nil {
					logErrf("failed to close log file: %v\n", cerr)
				}
			}()
			logOut = f
		}
	}
	log := logging.New(logOut, cfg.LogLevel, !fullScreen)

	var src generator.Source = generator.New()
	if cfg.Seed != 0 {
		src = generator.NewSeeded(cfg.Seed)
	}

	opts := []session.Option{session.WithLogger(log)}
	if cfg.Difficulty != "" {
		opts = append(opts, session.WithDifficulty(cfg.Difficulty))
	}
	if cfg.History {
		h, err := store.Open(config.HistoryPath(cfg.DataDir))
		if err != nil {
			log.Warn().Err(err).Msg("game history unavailable")
		} else {
			defer closeHistory(h)
			opts = append(opts, session.WithHistory(h))
		}
	}

	tracker := openTracker(cfg.DataDir, log)
	engine := game.New(game.WithSource(src))
	renderOpts := render.Options{NoColor: cfg.NoColor, Width: terminalWidth()}

	if !fullScreen {
		r := render.NewTerminal(os.Stdout, src, renderOpts)
		c := session.NewController(engine, tracker, r, opts...)
		return session.Run(ctx, c, os.Stdin, os.Stdout)
	}

	var screen bytes.Buffer
	renderOpts.ForceColor = !cfg.NoColor
	r := render.NewTerminal(&screen, src, renderOpts)
	c := session.NewController(engine, tracker, r, opts...)
	m := tui.NewModel(ctx, c, &screen)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		mark := screen.Len()
		c.Interrupt()
		writeOut(screen.String()[mark:])
		return nil
	}
	writeOut(m.LastOutput())
	return nil
}

func openTracker(dataDir string, log zerolog.Logger) *stats.Tracker {
	return stats.NewTracker(
		store.NewJSONFile(config.StatsPath(dataDir), stats.DefaultStats),
		store.NewJSONFile(config.ScoresPath(dataDir), stats.DefaultHighScores),
		log,
	)
}

func closeHistory(h *store.History) {
	if cerr := h.Close(); cerr != nil {
		logErrf("failed to close history: %v\n", cerr)
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsReset, "reset", false, "clear statistics (high scores are kept)")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text summary instead of the interactive view")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log := logging.New(os.Stderr, cfg.LogLevel, true)
	tracker := openTracker(cfg.DataDir, log)
	out := cmd.OutOrStdout()

	if statsReset {
		tracker.Reset()
		if _, err := fmt.Fprintln(out, "Statistics reset. High scores were kept."); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if statsPlain || !isTerminal(os.Stdout) {
		if err := stats.RenderSummary(out, tracker.Stats()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	var history stats.HistoryLister
	if cfg.History {
		h, err := store.Open(config.HistoryPath(cfg.DataDir))
		if err != nil {
			log.Warn().Err(err).Msg("game history unavailable")
		} else {
			defer closeHistory(h)
			history = h
		}
	}
	ctx := cmd.Context()
	load := func(filter model.HistoryFilter) (stats.Report, error) {
		return stats.BuildReport(ctx, tracker, history, filter)
	}
	program := tea.NewProgram(statsui.NewModel(load, model.HistoryFilter{}, time.Now), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newScoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores",
		Short: "Show high scores",
		Args:  cobra.NoArgs,
		RunE:  runScoresCmd,
	}
}

func runScoresCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	tracker := openTracker(cfg.DataDir, logging.New(os.Stderr, cfg.LogLevel, true))
	if err := stats.RenderHighScores(cmd.OutOrStdout(), tracker.HighScores(), time.Now()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List finished games",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyDifficulty, "difficulty", "", "difficulty filter")
	cmd.Flags().StringVar(&historyResult, "result", "", "result filter: won or lost")
	cmd.Flags().IntVar(&historyLast, "last", 20, "limit to last N games (0: all)")
	cmd.Flags().IntVar(&historyWindow, "trend-window", defaultTrendWindow, "moving average window for the score trend")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	filter, err := historyFilter(historyDifficulty, historyResult, historyLast)
	if err != nil {
		return err
	}
	if historyWindow < 1 {
		return fmt.Errorf("--trend-window must be >= 1")
	}
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if !cfg.History {
		return fmt.Errorf("game history is disabled (enable with --history or [storage] history = true)")
	}
	h, err := store.Open(config.HistoryPath(cfg.DataDir))
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer closeHistory(h)

	games, err := h.ListGames(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}
	if err := stats.RenderHistory(cmd.OutOrStdout(), games, time.Now(), historyWindow); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func historyFilter(difficulty, result string, last int) (model.HistoryFilter, error) {
	var f model.HistoryFilter
	if strings.TrimSpace(difficulty) != "" {
		d, err := validate.ParseDifficultySelection(difficulty)
		if err != nil {
			return f, fmt.Errorf("--difficulty: %w", err)
		}
		f.Difficulty = d
	}
	switch r := strings.ToLower(strings.TrimSpace(result)); r {
	case "", "won", "lost":
		f.Result = r
	default:
		return f, fmt.Errorf("--result must be won or lost")
	}
	if last < 0 {
		return f, fmt.Errorf("--last must be >= 0")
	}
	f.Last = last
	return f, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# numguess configuration
# Uncomment a value to enable it. Environment variables override config values,
# CLI flags override both.

[game]
# difficulty = "medium"   # easy, medium, hard or expert; skips the menu for the first game
# plain = false           # Line-by-line mode without the full-screen UI
# no-color = false        # Disable colors

[storage]
# data-dir = %q
# history = true          # Record finished games to history.db

[log]
# level = %q             # debug, info, warn or error
`,
		config.DefaultDataDir(),
		defaultLogLevel,
	)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func writeOut(s string) {
	if _, err := fmt.Fprint(os.Stdout, s); err != nil {
		// Best-effort final screen.
		_ = err
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
