package render

import (
	"fmt"

	"github.com/verte-zerg/numguess/internal/generator"
	"github.com/verte-zerg/numguess/internal/model"
)

type flavor struct {
	headline string
	body     func(n int) string
}

var winFlavors = []flavor{
	{"UNBELIEVABLE!", func(n int) string { return fmt.Sprintf("You got it in %d %s!", n, plural(n, "try", "tries")) }},
	{"CHAMPION!", func(n int) string { return fmt.Sprintf("Perfect guess in %d attempts!", n) }},
	{"AMAZING!", func(n int) string { return fmt.Sprintf("You found the number in %d guesses!", n) }},
	{"GREAT JOB!", func(n int) string { return fmt.Sprintf("Correct in %d %s!", n, plural(n, "attempt", "attempts")) }},
	{"WELL DONE!", func(n int) string { return fmt.Sprintf("You guessed it in %d tries!", n) }},
}

var lossFlavors = []flavor{
	{"GAME OVER!", func(n int) string { return fmt.Sprintf("The number was %d. Better luck next time!", n) }},
	{"SO CLOSE!", func(n int) string { return fmt.Sprintf("The secret number was %d. Don't give up!", n) }},
	{"OUT OF ATTEMPTS!", func(n int) string { return fmt.Sprintf("It was %d. Try again!", n) }},
	{"MISSED IT!", func(n int) string { return fmt.Sprintf("The number was %d. Want another go?", n) }},
	{"BETTER LUCK NEXT TIME!", func(n int) string { return fmt.Sprintf("The answer was %d.", n) }},
}

// WinMessage picks a celebration headline and its sentence, speed suffix included.
func WinMessage(src generator.Source, attempts, seconds int) (headline, body string) {
	f := generator.Pick(src, winFlavors)
	return f.headline, f.body(attempts) + " " + SpeedSuffix(seconds)
}

// LossMessage picks a consolation headline and the sentence revealing the secret.
func LossMessage(src generator.Source, secret int) (headline, body string) {
	f := generator.Pick(src, lossFlavors)
	return f.headline, f.body(secret)
}

// SpeedSuffix comments on how long a winning game took.
func SpeedSuffix(seconds int) string {
	switch {
	case seconds < 10:
		return fmt.Sprintf("And you did it in only %d seconds!", seconds)
	case seconds < 30:
		return fmt.Sprintf("Completed in %d seconds!", seconds)
	default:
		return fmt.Sprintf("It took you %d seconds.", seconds)
	}
}

// ProximityText describes a proximity band.
func ProximityText(p model.Proximity) string {
	switch p {
	case model.Freezing:
		return "You're freezing cold!"
	case model.Cold:
		return "You're cold!"
	case model.Warm:
		return "You're warm!"
	case model.Hot:
		return "You're hot!"
	default:
		return "You're on fire!"
	}
}

// HintText turns a hint into a sentence.
func HintText(h model.HintResult) string {
	switch h.Kind {
	case model.HintParity:
		if h.Even {
			return "The number is even."
		}
		return "The number is odd."
	case model.HintWindow:
		return fmt.Sprintf("The number is between %d and %d.", h.Low, h.High)
	case model.HintDigitSum:
		return fmt.Sprintf("The sum of digits is %d.", h.DigitSum)
	case model.HintHalf:
		if h.AboveFifty {
			return "The number is greater than 50."
		}
		return "The number is 50 or less."
	default:
		if h.DivisibleByThree {
			return "The number is divisible by 3."
		}
		return "The number is not divisible by 3."
	}
}

// PenaltyText reports the attempt lost to a hint.
func PenaltyText(left int) string {
	return fmt.Sprintf("You lost 1 attempt for using a hint. %d %s remaining.", left, plural(left, "attempt", "attempts"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
