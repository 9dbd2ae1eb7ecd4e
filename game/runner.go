// Package game plays solver-versus-adversary games and manages the daily word.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/charlotte-zhuang/wordle/wordle"
)

// Guesser proposes guesses and learns from feedback.
type Guesser interface {
	Reset()
	Guess(ctx context.Context) (string, error)
	Update(fb wordle.Feedback) error
}

// Judge picks secret words and scores guesses against them.
type Judge interface {
	NewWord() string
	Judge(guess string) (wordle.Feedback, error)
}

// Recorder persists finished games.
type Recorder interface {
	RecordGame(r Result) error
}

// Result describes one finished game.
type Result struct {
	Target   string
	Guesses  []string
	Solved   bool
	PlayedAt time.Time
}

// Turns returns the number of guesses made.
func (r Result) Turns() int {
	return len(r.Guesses)
}

// Runner plays games between a Guesser and a Judge.
type Runner struct {
	guesser  Guesser
	judge    Judge
	recorder Recorder
	maxTurns int
	now      func() time.Time
}

// NewRunner creates a Runner. recorder may be nil.
func NewRunner(guesser Guesser, judge Judge, recorder Recorder, maxTurns int) *Runner {
	return &Runner{
		guesser:  guesser,
		judge:    judge,
		recorder: recorder,
		maxTurns: maxTurns,
		now:      time.Now,
	}
}

// Play runs one game to completion: a fresh target is drawn, then the
// guesser guesses until it is solved or maxTurns guesses have been made.
// A target the guesser cannot reach (not in its word table) ends the game
// unsolved rather than failing.
func (r *Runner) Play(ctx context.Context) (Result, error) {
	res := Result{Target: r.judge.NewWord(), PlayedAt: r.now()}
	r.guesser.Reset()

	for turn := 0; turn < r.maxTurns; turn++ {
		guess, err := r.guesser.Guess(ctx)
		if err != nil {
			return res, fmt.Errorf("turn %d: guess: %w", turn+1, err)
		}
		fb, err := r.judge.Judge(guess)
		if err != nil {
			return res, fmt.Errorf("turn %d: judge %q: %w", turn+1, guess, err)
		}
		res.Guesses = append(res.Guesses, guess)
		slog.Debug("turn played", "target", res.Target, "turn", turn+1, "guess", guess, "feedback", fb.String())

		if fb.Solved() {
			res.Solved = true
			break
		}
		if err := r.guesser.Update(fb); err != nil {
			if errors.Is(err, wordle.ErrNoCandidates) {
				slog.Warn("target not reachable from word table", "target", res.Target, "guesses", res.Guesses)
				break
			}
			return res, fmt.Errorf("turn %d: update: %w", turn+1, err)
		}
	}

	if r.recorder != nil {
		if err := r.recorder.RecordGame(res); err != nil {
			slog.Error("failed to record game", "target", res.Target, "error", err)
		}
	}
	return res, nil
}

// Summary aggregates the results of a benchmark.
type Summary struct {
	Games       int
	Solved      int
	MeanGuesses float64 // over solved games
	// Histogram counts solved games by number of guesses.
	Histogram map[int]int
	// Missed lists targets that were not solved, in play order.
	Missed []string
}

// Buckets returns the histogram keys in ascending order.
func (s Summary) Buckets() []int {
	keys := make([]int, 0, len(s.Histogram))
	for k := range s.Histogram {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Bench plays the given number of games and summarises them.
func (r *Runner) Bench(ctx context.Context, games int) (Summary, error) {
	if games < 1 {
		return Summary{}, fmt.Errorf("bench: games must be at least 1, got %d", games)
	}

	sum := Summary{Histogram: make(map[int]int)}
	totalGuesses := 0
	start := time.Now()
	for i := 0; i < games; i++ {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		res, err := r.Play(ctx)
		if err != nil {
			return sum, fmt.Errorf("bench: game %d (%s): %w", i+1, res.Target, err)
		}
		sum.Games++
		if res.Solved {
			sum.Solved++
			totalGuesses += res.Turns()
			sum.Histogram[res.Turns()]++
		} else {
			sum.Missed = append(sum.Missed, res.Target)
		}
	}
	if sum.Solved > 0 {
		sum.MeanGuesses = float64(totalGuesses) / float64(sum.Solved)
	}

	slog.Info("bench complete",
		"games", sum.Games,
		"solved", sum.Solved,
		"mean_guesses", sum.MeanGuesses,
		"elapsed", time.Since(start).String(),
	)
	return sum, nil
}
