// Package validate classifies raw input lines into typed values.
//
// Every function is total: unrecognized input yields a *RejectedError carrying
// a message suitable for showing to the player.
package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/verte-zerg/numguess/internal/model"
)

// Guess bounds accepted by ParseGuessOrCommand regardless of difficulty.
const (
	MinGuess = 1
	MaxGuess = 1000
)

// RejectedError reports input that matches no accepted grammar.
type RejectedError struct {
	Input  string
	Reason string
}

func (e *RejectedError) Error() string {
	return e.Reason
}

// IsRejected reports whether err is a *RejectedError.
func IsRejected(err error) bool {
	var rejected *RejectedError
	return errors.As(err, &rejected)
}

func reject(input, reason string) error {
	return &RejectedError{Input: input, Reason: reason}
}

// Input is either a command or a numeric guess.
type Input struct {
	Command model.Command
	Guess   int
}

// IsCommand reports whether the input is a command.
func (in Input) IsCommand() bool {
	return in.Command != ""
}

var difficultyTokens = map[string]model.Difficulty{
	"1":      model.Easy,
	"2":      model.Medium,
	"3":      model.Hard,
	"4":      model.Expert,
	"easy":   model.Easy,
	"medium": model.Medium,
	"hard":   model.Hard,
	"expert": model.Expert,
}

var commands = map[string]model.Command{
	"hint":    model.CmdHint,
	"quit":    model.CmdQuit,
	"exit":    model.CmdExit,
	"restart": model.CmdRestart,
	"stats":   model.CmdStats,
	"help":    model.CmdHelp,
	"scores":  model.CmdScores,
}

var (
	yesTokens = map[string]struct{}{"y": {}, "yes": {}, "yeah": {}, "yep": {}, "sure": {}, "ok": {}, "1": {}}
	noTokens  = map[string]struct{}{"n": {}, "no": {}, "nah": {}, "nope": {}, "exit": {}, "quit": {}, "2": {}}
)

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// ParseDifficultySelection maps "1".."4" or a difficulty name to a Difficulty.
func ParseDifficultySelection(text string) (model.Difficulty, error) {
	if d, ok := difficultyTokens[normalize(text)]; ok {
		return d, nil
	}
	return "", reject(text, "Please select a valid difficulty (1-4 or easy/medium/hard/expert)")
}

// ParseGuessOrCommand matches the command set first, then an integer guess in [MinGuess, MaxGuess].
func ParseGuessOrCommand(text string) (Input, error) {
	token := normalize(text)
	if cmd, ok := commands[token]; ok {
		return Input{Command: cmd}, nil
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return Input{}, reject(text, "Invalid input. Enter a number or command (hint/quit/stats/help)")
	}
	if n < MinGuess || n > MaxGuess {
		return Input{}, reject(text, fmt.Sprintf("Please enter a number between %d and %d", MinGuess, MaxGuess))
	}
	return Input{Guess: n}, nil
}

// ParseYesNo accepts the affirmative and negative token sets of the replay prompt.
func ParseYesNo(text string) (bool, error) {
	token := normalize(text)
	if _, ok := yesTokens[token]; ok {
		return true, nil
	}
	if _, ok := noTokens[token]; ok {
		return false, nil
	}
	return false, reject(text, "Please enter yes (y) or no (n)")
}
