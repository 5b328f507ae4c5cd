package main

import "errors"

// ErrLengthMismatch is returned when a guess and target are not the same length.
var ErrLengthMismatch = errors.New("guess and target must be the same length")

// statusRank orders letter statuses for upgrade-only merging.
func statusRank(s LetterStatus) int {
	switch s {
	case StatusCorrect:
		return 3
	case StatusPresent:
		return 2
	case StatusAbsent:
		return 1
	default:
		return 0
	}
}

// mergeStatus returns the higher of two statuses. The keyboard aggregate is
// only ever upgraded along absent < present < correct.
func mergeStatus(a, b LetterStatus) LetterStatus {
	if statusRank(b) > statusRank(a) {
		return b
	}
	return a
}

// evaluateGuess classifies each guessed letter against the target word using
// the standard two-pass algorithm.
//
// Pass 1 marks exact positional matches correct and consumes those target
// positions. Pass 2 walks the remaining letters left to right, marking a
// letter present if an unconsumed occurrence remains in the target and
// consuming it, otherwise absent. A target letter is never counted twice,
// which keeps duplicate letters honest.
func evaluateGuess(guess, target string) ([]LetterStatus, error) {
	if len(guess) != len(target) {
		return nil, ErrLengthMismatch
	}

	result := make([]LetterStatus, len(guess))
	remaining := []rune(target)

	for i := range guess {
		if guess[i] == target[i] {
			result[i] = StatusCorrect
			remaining[i] = 0
		}
	}

	for i := range guess {
		if result[i] == StatusCorrect {
			continue
		}
		result[i] = StatusAbsent
		for j := range remaining {
			if remaining[j] == rune(guess[i]) {
				result[i] = StatusPresent
				remaining[j] = 0
				break
			}
		}
	}

	return result, nil
}

// allCorrect reports whether every letter in an evaluation is correct.
func allCorrect(evaluation []LetterStatus) bool {
	for _, s := range evaluation {
		if s != StatusCorrect {
			return false
		}
	}
	return len(evaluation) > 0
}

// scoreForWin awards more points for fewer attempts, with a floor of one.
func scoreForWin(attemptCount int) int {
	if score := 7 - attemptCount; score > 1 {
		return score
	}
	return 1
}
