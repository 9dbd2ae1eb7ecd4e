// Package priors turns word frequencies into prior weights.
//
// Words are ranked by ascending count and the ranks are spread evenly over
// a window of the logistic curve. The window is placed so that roughly the
// NCommon most frequent words land on the upper half of the curve.
package priors

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/charlotte-zhuang/wordle/freqmap"
	"github.com/charlotte-zhuang/wordle/weights"
)

const (
	// MinWeight is the floor applied to every weight.
	MinWeight = 1e-7

	DefaultNCommon = 2048
	DefaultWidth   = 8
)

// maxWeight is the largest float64 below 1. The curve saturates to exactly
// 1 for x above ~37, and weights must stay strictly below 1.
var maxWeight = math.Nextafter(1, 0)

var (
	// ErrInsufficientVocabulary is returned when fewer than two words are
	// available; the rank step is undefined for a single word.
	ErrInsufficientVocabulary = errors.New("priors: insufficient vocabulary size")

	ErrInvalidParams = errors.New("priors: invalid parameters")
)

// Params shapes the curve.
type Params struct {
	// NCommon is the number of words that should be treated as common.
	NCommon float64
	// Width is the span of x covered by the whole vocabulary.
	Width float64
}

// DefaultParams returns NCommon=2048, Width=8.
func DefaultParams() Params {
	return Params{NCommon: DefaultNCommon, Width: DefaultWidth}
}

// Validate checks that both parameters are finite and positive.
func (p Params) Validate() error {
	if !(p.NCommon > 0) || math.IsInf(p.NCommon, 0) {
		return fmt.Errorf("%w: n_common must be a positive number, got %v", ErrInvalidParams, p.NCommon)
	}
	if !(p.Width > 0) || math.IsInf(p.Width, 0) {
		return fmt.Errorf("%w: width_under_sigmoid must be a positive number, got %v", ErrInvalidParams, p.Width)
	}
	return nil
}

// Sigmoid is the logistic function 1/(1+e^-x).
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Calculate ranks the words of freq by ascending count and assigns each one
// a weight from the curve. Equal counts are ordered by word so the result
// is deterministic.
func Calculate(freq freqmap.Map, p Params) ([]weights.Entry, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := len(freq)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 words, got %d", ErrInsufficientVocabulary, n)
	}

	words := make([]string, 0, n)
	for w := range freq {
		words = append(words, w)
	}
	slices.SortFunc(words, func(a, b string) int {
		if c := cmp.Compare(freq[a], freq[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	left := p.Width*p.NCommon/float64(n) - p.Width
	step := p.Width / float64(n-1)

	entries := make([]weights.Entry, n)
	for i, w := range words {
		x := left + float64(i)*step
		entries[i] = weights.Entry{Word: w, Weight: clamp(Sigmoid(x))}
	}
	return entries, nil
}

func clamp(w float64) float64 {
	return min(max(w, MinWeight), maxWeight)
}
