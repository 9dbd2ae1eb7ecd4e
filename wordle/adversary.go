package wordle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
)

// Adversary holds a secret target drawn from a word list and judges guesses
// against it.
type Adversary struct {
	words  []string
	rng    *rand.Rand
	target string
}

// NewAdversary creates an adversary over words and draws the first target.
// A nil rng uses a randomly seeded source.
func NewAdversary(words []string, rng *rand.Rand) (*Adversary, error) {
	if len(words) == 0 {
		return nil, errors.New("wordle: empty target word list")
	}
	list := make([]string, len(words))
	for i, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if !ValidWord(w) {
			return nil, fmt.Errorf("wordle: target %d: %q is not a five-letter word", i+1, words[i])
		}
		list[i] = w
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	a := &Adversary{words: list, rng: rng}
	a.NewWord()
	return a, nil
}

// NewWord draws a new target uniformly from the list and returns it.
func (a *Adversary) NewWord() string {
	a.target = a.words[a.rng.IntN(len(a.words))]
	return a.target
}

// SetTarget forces the target, e.g. to resume a stored game.
func (a *Adversary) SetTarget(w string) error {
	w = strings.ToLower(strings.TrimSpace(w))
	if !ValidWord(w) {
		return fmt.Errorf("wordle: invalid target %q", w)
	}
	a.target = w
	return nil
}

// Target returns the current secret word.
func (a *Adversary) Target() string {
	return a.target
}

// Words returns the number of words the target is drawn from.
func (a *Adversary) Words() int {
	return len(a.words)
}

// Judge scores guess against the current target.
func (a *Adversary) Judge(guess string) (Feedback, error) {
	return JudgeGuess(guess, a.target)
}

// JudgeGuess normalizes user input and scores it against target.
func JudgeGuess(guess, target string) (Feedback, error) {
	guess = strings.ToLower(strings.TrimSpace(guess))
	if !ValidWord(guess) {
		return Feedback{}, fmt.Errorf("wordle: invalid guess %q: want %d letters a-z", guess, WordLength)
	}
	return Judge(guess, target), nil
}

// ReadWordList reads one word per line, skipping blank lines.
func ReadWordList(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" {
			continue
		}
		words = append(words, strings.ToLower(w))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("wordle: read word list: %w", err)
	}
	return words, nil
}

// LoadWordList reads the word list stored at path.
func LoadWordList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wordle: open word list %s: %w", path, err)
	}
	defer f.Close()
	return ReadWordList(f)
}
