package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/numguess/internal/model"
)

// Widths of the progress bar and the number line.
const (
	ProgressWidth   = 30
	NumberLineWidth = 50
)

const (
	markGuess  = 'G'
	markSecret = 'S'
	markSpan   = '─'
	markEmpty  = '·'

	barFilled = "█"
	barEmpty  = "░"
)

var banner = []string{
	` _   _                 _               `,
	`| \ | |_   _ _ __ ___ | |__   ___ _ __ `,
	`|  \| | | | | '_ ` + "`" + ` _ \| '_ \ / _ \ '__|`,
	`| |\  | |_| | | | | | | |_) |  __/ |   `,
	`|_| \_|\__,_|_| |_| |_|_.__/ \___|_|   `,
	`  ____                                `,
	` / ___|_   _  ___  ___ ___  ___ _ __  `,
	`| |  _| | | |/ _ \/ __/ __|/ _ \ '__| `,
	`| |_| | |_| |  __/\__ \__ \  __/ |    `,
	` \____|\__,_|\___||___/___/\___|_|    `,
}

// ProgressBar draws used/maxAttempts as a bar of the given width and returns the used share in percent.
func ProgressBar(used, maxAttempts, width int) (string, float64) {
	if width <= 0 {
		return "", 0
	}
	if maxAttempts <= 0 {
		return strings.Repeat(barEmpty, width), 0
	}
	pct := float64(used) / float64(maxAttempts) * 100
	filled := int(math.Round(float64(width) * pct / 100))
	filled = max(0, min(filled, width))
	return strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, width-filled), pct
}

// NumberLine marks the guess on [lo, hi] and spans the side where the secret lies.
func NumberLine(lo, hi, guess int, dir model.Direction, width int) string {
	if hi <= lo || width <= 0 {
		return ""
	}
	guess = max(lo, min(guess, hi))
	gpos := scale(guess, lo, hi, width)
	cells := make([]rune, width+1)
	for i := range cells {
		switch {
		case i == gpos:
			cells[i] = markGuess
		case dir == model.Higher && i > gpos, dir == model.Lower && i < gpos:
			cells[i] = markSpan
		default:
			cells[i] = markEmpty
		}
	}
	return string(cells)
}

// RevealLine places the guess and the secret on the span between them.
func RevealLine(guess, secret, width int) string {
	lo, hi := min(guess, secret), max(guess, secret)
	if lo == hi || width <= 0 {
		return ""
	}
	gpos := scale(guess, lo, hi, width)
	spos := scale(secret, lo, hi, width)
	left, right := min(gpos, spos), max(gpos, spos)
	cells := make([]rune, width+1)
	for i := range cells {
		switch {
		case i == gpos:
			cells[i] = markGuess
		case i == spos:
			cells[i] = markSecret
		case i > left && i < right:
			cells[i] = markSpan
		default:
			cells[i] = markEmpty
		}
	}
	return string(cells)
}

// axisLabels puts "(lo)" and "(hi)" at the ends of a line of width+1 cells.
func axisLabels(lo, hi, width int) string {
	left := "(" + strconv.Itoa(lo) + ")"
	right := "(" + strconv.Itoa(hi) + ")"
	gap := width + 1 - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	return left + strings.Repeat(" ", max(1, gap)) + right
}

func scale(v, lo, hi, width int) int {
	return int(math.Round(float64(v-lo) * float64(width) / float64(hi-lo)))
}

func bannerWidth() int {
	w := 0
	for _, line := range banner {
		w = max(w, runewidth.StringWidth(line))
	}
	return w
}

// center pads s on the left so it sits in the middle of width columns.
func center(s string, width int) string {
	pad := (width - runewidth.StringWidth(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
