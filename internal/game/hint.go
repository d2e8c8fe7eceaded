package game

import "github.com/verte-zerg/numguess/internal/model"

const (
	hintWindow     = 20
	hintWindowLow  = 1
	hintWindowHigh = 200
	hintHalfway    = 50
)

func hintFor(kind model.HintKind, secret int) model.HintResult {
	h := model.HintResult{Kind: kind}
	switch kind {
	case model.HintParity:
		h.Even = secret%2 == 0
	case model.HintWindow:
		h.Low = max(hintWindowLow, secret-hintWindow)
		h.High = min(hintWindowHigh, secret+hintWindow)
	case model.HintDigitSum:
		h.DigitSum = digitSum(secret)
	case model.HintHalf:
		h.AboveFifty = secret > hintHalfway
	case model.HintDivisibleByThree:
		h.DivisibleByThree = secret%3 == 0
	}
	return h
}

func digitSum(n int) int {
	if n < 0 {
		n = -n
	}
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}
