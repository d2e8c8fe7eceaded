// Package model defines shared data structures.
package model

import "time"

// Difficulty names a preset.
type Difficulty string

// Difficulty names.
const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Expert Difficulty = "expert"
)

// Difficulties lists the presets in menu order.
var Difficulties = []Difficulty{Easy, Medium, Hard, Expert}

// Preset is the fixed attempt budget, range and multiplier of a difficulty.
type Preset struct {
	MaxAttempts int
	Min         int
	Max         int
	Multiplier  int
}

// Status is the lifecycle state of a game session.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not started"
	case StatusInProgress:
		return "in progress"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Direction tells the player where the secret lies relative to a guess.
type Direction string

const (
	Higher Direction = "higher"
	Lower  Direction = "lower"
)

// Proximity is the qualitative distance between a guess and the secret.
type Proximity string

const (
	Freezing Proximity = "freezing"
	Cold     Proximity = "cold"
	Warm     Proximity = "warm"
	Hot      Proximity = "hot"
	OnFire   Proximity = "on fire"
)

// Command is a textual command typed instead of a guess.
type Command string

const (
	CmdHint    Command = "hint"
	CmdQuit    Command = "quit"
	CmdExit    Command = "exit"
	CmdRestart Command = "restart"
	CmdStats   Command = "stats"
	CmdHelp    Command = "help"
	CmdScores  Command = "scores"
)

// Session captures one round of the game.
type Session struct {
	ID           string
	Difficulty   Difficulty
	Secret       int
	AttemptsUsed int
	MaxAttempts  int
	HintsUsed    int
	Guesses      []int
	Status       Status
	StartedAt    time.Time
	EndedAt      time.Time
}

// GuessResult is the outcome of a single guess.
// Secret is only set once the session is Won or Lost.
type GuessResult struct {
	Status         Status
	Guess          int
	Direction      Direction
	Proximity      Proximity
	AttemptsLeft   int
	Guesses        []int
	Attempts       int
	Score          int
	ElapsedSeconds int
	Secret         int
}

// HintKind identifies which fact about the secret a hint reveals.
type HintKind int

const (
	HintParity HintKind = iota
	HintWindow
	HintDigitSum
	HintHalf
	HintDivisibleByThree
)

// HintCount is the number of hint kinds.
const HintCount = 5

// HintResult carries the revealed fact and the attempt budget after the penalty.
type HintResult struct {
	Kind             HintKind
	Even             bool
	Low              int
	High             int
	DigitSum         int
	AboveFifty       bool
	DivisibleByThree bool
	MaxAttempts      int
	AttemptsLeft     int
}

// HighScoreRecord is the best result for one difficulty.
type HighScoreRecord struct {
	Score          int       `json:"score"`
	Attempts       int       `json:"attempts"`
	ElapsedSeconds int       `json:"time"`
	Date           time.Time `json:"date"`
}

// HighScores maps a difficulty to its best record.
type HighScores map[Difficulty]HighScoreRecord

// DifficultyStats is the per-difficulty breakdown of AggregateStats.
type DifficultyStats struct {
	Games      int `json:"games"`
	Wins       int `json:"wins"`
	BestScore  int `json:"bestScore"`
	TotalScore int `json:"totalScore"`
}

// Streak tracks consecutive wins.
type Streak struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// AggregateStats are cumulative counters across all sessions.
type AggregateStats struct {
	TotalGames    int                            `json:"totalGames"`
	GamesWon      int                            `json:"gamesWon"`
	GamesLost     int                            `json:"gamesLost"`
	TotalAttempts int                            `json:"totalAttempts"`
	TotalScore    int                            `json:"totalScore"`
	BestScore     int                            `json:"bestScore"`
	ByDifficulty  map[Difficulty]DifficultyStats `json:"byDifficulty"`
	Streak        Streak                         `json:"streak"`
	PlaySeconds   int                            `json:"playTime"`
}

// Derived holds metrics computed on read from AggregateStats.
type Derived struct {
	WinRate         int
	AverageScore    int
	AverageAttempts int
	AverageTime     int
}

// GameRecord is a finished game handed to the stats tracker and history log.
type GameRecord struct {
	ID             string
	Difficulty     Difficulty
	Won            bool
	Attempts       int
	MaxAttempts    int
	HintsUsed      int
	Score          int
	ElapsedSeconds int
	Secret         int
	Guesses        []int
	StartedAt      time.Time
	EndedAt        time.Time
}

// HistoryFilter narrows history listings.
type HistoryFilter struct {
	Difficulty Difficulty
	Result     string
	Last       int
}

// Config defines play settings.
type Config struct {
	Difficulty Difficulty
	Plain      bool
	NoColor    bool
	Seed       int64
	DataDir    string
	History    bool
	LogLevel   string
}
