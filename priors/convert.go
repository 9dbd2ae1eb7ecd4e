package priors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charlotte-zhuang/wordle/freqmap"
	"github.com/charlotte-zhuang/wordle/weights"
)

// Convert reads the frequency map at inputPath and writes the prior table
// to outputPath, returning the number of words written. The output is
// replaced atomically; on error it is left untouched.
func Convert(ctx context.Context, inputPath, outputPath string, p Params) (int, error) {
	freq, err := freqmap.Load(inputPath)
	if err != nil {
		return 0, err
	}

	entries, err := Calculate(freq, p)
	if errors.Is(err, ErrInsufficientVocabulary) {
		return 0, fmt.Errorf("%s: %w", inputPath, err)
	}
	if err != nil {
		return 0, err
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := weights.WriteFile(outputPath, entries); err != nil {
		return 0, err
	}

	slog.Info("prior table written",
		"input", inputPath,
		"output", outputPath,
		"words", len(entries),
		"n_common", p.NCommon,
		"width", p.Width,
		"min_weight", entries[0].Weight,
		"max_weight", entries[len(entries)-1].Weight,
	)
	return len(entries), nil
}
