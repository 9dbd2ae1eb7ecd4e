// Package wordle implements feedback judging, a weighted guess solver and
// a target-picking adversary for five-letter Wordle.
package wordle

import (
	"fmt"
	"strings"
)

// WordLength is the number of letters in every guess and target.
const WordLength = 5

// Mark is the verdict for a single letter of a guess.
type Mark byte

const (
	Gray   Mark = 'B'
	Yellow Mark = 'Y'
	Green  Mark = 'G'
)

// Feedback holds one mark per letter of a guess.
type Feedback [WordLength]Mark

// AllGreen is the feedback of a correct guess.
var AllGreen = Feedback{Green, Green, Green, Green, Green}

func (f Feedback) String() string {
	var b strings.Builder
	for _, m := range f {
		b.WriteByte(byte(m))
	}
	return b.String()
}

// Solved reports whether every letter is green.
func (f Feedback) Solved() bool {
	return f == AllGreen
}

// index packs the feedback into a base-3 number in [0, 243).
func (f Feedback) index() int {
	idx := 0
	for i := WordLength - 1; i >= 0; i-- {
		idx *= 3
		switch f[i] {
		case Yellow:
			idx++
		case Green:
			idx += 2
		}
	}
	return idx
}

// numPatterns is 3^WordLength.
const numPatterns = 243

// ParseFeedback reads feedback such as "GYBBB". Letters are case-insensitive
// and '-' or '.' may be used for gray.
func ParseFeedback(s string) (Feedback, error) {
	var f Feedback
	s = strings.TrimSpace(s)
	if len(s) != WordLength {
		return f, fmt.Errorf("feedback %q: want %d marks, got %d", s, WordLength, len(s))
	}
	for i := 0; i < WordLength; i++ {
		switch s[i] {
		case 'G', 'g':
			f[i] = Green
		case 'Y', 'y':
			f[i] = Yellow
		case 'B', 'b', '-', '.':
			f[i] = Gray
		default:
			return f, fmt.Errorf("feedback %q: invalid mark %q at position %d", s, s[i], i+1)
		}
	}
	return f, nil
}

// ValidWord reports whether w is exactly five lowercase ASCII letters.
func ValidWord(w string) bool {
	if len(w) != WordLength {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}

// Judge scores guess against target. Exact matches are marked green first;
// each remaining guess letter, left to right, turns yellow if an unclaimed
// occurrence is left in the target.
func Judge(guess, target string) Feedback {
	var f Feedback
	var used [WordLength]bool
	for i := 0; i < WordLength; i++ {
		if guess[i] == target[i] {
			f[i] = Green
			used[i] = true
		} else {
			f[i] = Gray
		}
	}
	for i := 0; i < WordLength; i++ {
		if f[i] != Gray {
			continue
		}
		for j := 0; j < WordLength; j++ {
			if !used[j] && guess[i] == target[j] {
				f[i] = Yellow
				used[j] = true
				break
			}
		}
	}
	return f
}

// Fits reports whether word could be the target given that guessing guess
// produced fb.
func Fits(word, guess string, fb Feedback) bool {
	return Judge(guess, word) == fb
}
