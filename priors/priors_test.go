package priors

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlotte-zhuang/wordle/freqmap"
)

func TestCalculate_WorkedExample(t *testing.T) {
	freq := freqmap.Map{"the": 100, "cat": 5, "xyz": 1}

	entries, err := Calculate(freq, Params{NCommon: 2, Width: 8})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// left = 8*2/3 - 8 = -2.667, step = 8/2 = 4
	assert.Equal(t, "xyz", entries[0].Word)
	assert.Equal(t, "cat", entries[1].Word)
	assert.Equal(t, "the", entries[2].Word)

	assert.InDelta(t, 0.064969, entries[0].Weight, 1e-6)
	assert.InDelta(t, 0.7913, entries[1].Weight, 1e-4)
	assert.InDelta(t, 0.99518, entries[2].Weight, 1e-5)

	width, nCommon, n := 8.0, 2.0, 3.0
	left := width*nCommon/n - width
	assert.Equal(t, Sigmoid(left), entries[0].Weight)
	assert.Equal(t, Sigmoid(left+4), entries[1].Weight)
	assert.Equal(t, Sigmoid(left+8), entries[2].Weight)
}

func TestCalculate_Properties(t *testing.T) {
	freq := freqmap.Map{}
	for i := 0; i < 500; i++ {
		// Many duplicate counts to exercise tie-breaking.
		freq[word(i)] = float64(i % 37)
	}

	entries, err := Calculate(freq, DefaultParams())
	require.NoError(t, err)
	require.Len(t, entries, len(freq))

	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		assert.False(t, seen[e.Word], "duplicate word %q", e.Word)
		seen[e.Word] = true

		assert.GreaterOrEqual(t, e.Weight, MinWeight)
		assert.Less(t, e.Weight, 1.0)

		if i > 0 {
			prev := entries[i-1]
			assert.LessOrEqual(t, freq[prev.Word], freq[e.Word], "counts out of order at %d", i)
			assert.LessOrEqual(t, prev.Weight, e.Weight, "weights not monotonic at %d", i)
			if freq[prev.Word] == freq[e.Word] {
				assert.Less(t, prev.Word, e.Word, "ties must be ordered by word")
			}
		}
	}
	for w := range freq {
		assert.True(t, seen[w], "word %q missing from output", w)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	freq := freqmap.Map{"a": 1, "b": 1, "c": 1, "d": 2, "e": 2, "f": 3}

	first, err := Calculate(freq, DefaultParams())
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Calculate(freq, DefaultParams())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCalculate_NCommonExceedsVocabulary(t *testing.T) {
	// Default n_common is far larger than the vocabulary; the curve only shifts.
	freq := freqmap.Map{"rare": 1, "mid": 10, "top": 1000}

	entries, err := Calculate(freq, DefaultParams())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for _, e := range entries {
		assert.Less(t, e.Weight, 1.0, "weight of %q", e.Word)
		assert.GreaterOrEqual(t, e.Weight, MinWeight)
	}
	assert.Equal(t, "top", entries[2].Word)
	assert.Equal(t, math.Nextafter(1, 0), entries[2].Weight)
}

func TestCalculate_FloorsTinyWeights(t *testing.T) {
	freq := freqmap.Map{}
	for i := 0; i < 1000; i++ {
		freq[word(i)] = float64(i)
	}

	// left = 80*1/1000 - 80 = -79.92, far below the floor.
	entries, err := Calculate(freq, Params{NCommon: 1, Width: 80})
	require.NoError(t, err)
	assert.Equal(t, MinWeight, entries[0].Weight)
	assert.Less(t, entries[len(entries)-1].Weight, 1.0)
}

func TestCalculate_InsufficientVocabulary(t *testing.T) {
	for _, freq := range []freqmap.Map{nil, {}, {"only": 3}} {
		_, err := Calculate(freq, DefaultParams())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInsufficientVocabulary))
	}
}

func TestCalculate_TwoWords(t *testing.T) {
	entries, err := Calculate(freqmap.Map{"b": 2, "a": 1}, Params{NCommon: 1, Width: 8})
	require.NoError(t, err)
	// left = 8*1/2 - 8 = -4, step = 8
	assert.Equal(t, "a", entries[0].Word)
	assert.Equal(t, Sigmoid(-4), entries[0].Weight)
	assert.Equal(t, Sigmoid(4), entries[1].Weight)
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name  string
		p     Params
		valid bool
	}{
		{"defaults", DefaultParams(), true},
		{"fractional", Params{NCommon: 0.5, Width: 0.1}, true},
		{"zero n_common", Params{NCommon: 0, Width: 8}, false},
		{"negative width", Params{NCommon: 10, Width: -1}, false},
		{"nan", Params{NCommon: math.NaN(), Width: 8}, false},
		{"inf", Params{NCommon: 10, Width: math.Inf(1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrInvalidParams))
			}
		})
	}
}

func TestSigmoid(t *testing.T) {
	assert.Equal(t, 0.5, Sigmoid(0))
	assert.InDelta(t, 1-Sigmoid(2), Sigmoid(-2), 1e-12)
	assert.Equal(t, 0.0, Sigmoid(-1000))
	assert.Equal(t, 1.0, Sigmoid(1000))
}

func word(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	b := []byte{letters[i%26], letters[(i/26)%26], letters[(i/676)%26]}
	return string(b)
}
