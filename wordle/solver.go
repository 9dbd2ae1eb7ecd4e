package wordle

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/charlotte-zhuang/wordle/weights"
)

// ErrNoCandidates means no word in the table is consistent with the
// feedback received so far.
var ErrNoCandidates = errors.New("wordle: no candidate words remain")

var allGreenIndex = AllGreen.index()

// Solver picks guesses from a weighted word table. Each guess minimises an
// estimate of the number of guesses still needed, and feedback narrows the
// candidate list.
type Solver struct {
	all        []weights.Entry
	candidates []weights.Entry
	total      float64
	prevGuess  string
	workers    int
}

// SolverOption configures a Solver.
type SolverOption func(*Solver)

// WithWorkers sets how many goroutines score guesses. Values below 1 mean
// runtime.GOMAXPROCS(0).
func WithWorkers(n int) SolverOption {
	return func(s *Solver) {
		s.workers = n
	}
}

// NewSolver builds a solver over entries. Every word must be five lowercase
// letters with a positive weight.
func NewSolver(entries []weights.Entry, opts ...SolverOption) (*Solver, error) {
	if len(entries) == 0 {
		return nil, errors.New("wordle: empty word table")
	}
	for i, e := range entries {
		if !ValidWord(e.Word) {
			return nil, fmt.Errorf("wordle: entry %d: %q is not a five-letter lowercase word", i+1, e.Word)
		}
		if !(e.Weight > 0) {
			return nil, fmt.Errorf("wordle: entry %d: weight of %q must be positive", i+1, e.Word)
		}
	}

	s := &Solver{all: append([]weights.Entry(nil), entries...)}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	s.Reset()
	return s, nil
}

// Reset restores the full word table for a new game.
func (s *Solver) Reset() {
	s.candidates = append(s.candidates[:0], s.all...)
	s.total = sumWeights(s.candidates)
	s.prevGuess = ""
}

// Remaining returns the number of candidate words.
func (s *Solver) Remaining() int {
	return len(s.candidates)
}

// Candidates returns the candidate words in table order.
func (s *Solver) Candidates() []string {
	words := make([]string, len(s.candidates))
	for i, e := range s.candidates {
		words[i] = e.Word
	}
	return words
}

// Guess returns the candidate with the lowest expected number of guesses.
// Ties go to the candidate listed first.
func (s *Solver) Guess(ctx context.Context) (string, error) {
	n := len(s.candidates)
	if n == 0 {
		return "", ErrNoCandidates
	}

	scores := make([]float64, n)
	chunk := (n + s.workers - 1) / s.workers
	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				scores[i] = s.expectedGuesses(s.candidates[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	best := 0
	for i := 1; i < n; i++ {
		if scores[i] < scores[best] {
			best = i
		}
	}
	s.prevGuess = s.candidates[best].Word
	return s.prevGuess, nil
}

// Update drops candidates that contradict fb for the last guess. If nothing
// would remain, the candidate list is left as it was and ErrNoCandidates is
// returned.
func (s *Solver) Update(fb Feedback) error {
	if s.prevGuess == "" {
		return errors.New("wordle: feedback given before any guess")
	}

	kept := make([]weights.Entry, 0, len(s.candidates)/2)
	for _, e := range s.candidates {
		if Fits(e.Word, s.prevGuess, fb) {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		return fmt.Errorf("%w: %s -> %s", ErrNoCandidates, s.prevGuess, fb)
	}

	s.candidates = kept
	s.total = sumWeights(kept)
	return nil
}

// expectedGuesses estimates the guesses needed if guess is played next: it
// wins outright with probability w/T, otherwise the remaining cost grows
// with the mean entropy left across the feedback partitions it induces.
func (s *Solver) expectedGuesses(guess weights.Entry) float64 {
	var bucketWeight, bucketEntropy [numPatterns]float64
	for _, e := range s.candidates {
		p := Judge(guess.Word, e.Word).index()
		if p == allGreenIndex {
			continue
		}
		bucketWeight[p] += e.Weight
		bucketEntropy[p] -= e.Weight * math.Log2(e.Weight)
	}

	// Sum over partitions of weight * entropy, with
	// entropy = -Σ w·log2(w)/W + log2(W) for partition weight W.
	var entropy, partitioned float64
	for p := range bucketWeight {
		w := bucketWeight[p]
		if w <= 0 {
			continue
		}
		partitioned += w
		entropy += bucketEntropy[p] + math.Log2(w)*w
	}
	if partitioned == 0 {
		// Only the all-green outcome is possible.
		return 1
	}
	entropy /= partitioned

	hit := guess.Weight / s.total
	return hit + (1-hit)*heuristic(entropy)
}

// heuristic maps remaining entropy to expected guesses: a line through
// (0, 1) and (11.5, 3.5).
func heuristic(entropy float64) float64 {
	return 0.217391304347826*entropy + 1
}

func sumWeights(entries []weights.Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Weight
	}
	return total
}
