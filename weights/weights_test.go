package weights

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		entry Entry
		want  string
	}{
		{Entry{"xyz", 0.0653}, "xyz 0.0653"},
		{Entry{"floor", 1e-7}, "floor 1e-07"},
		{Entry{"tiny", 0.00001234}, "tiny 1.234e-05"},
		{Entry{"half", 0.5}, "half 0.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.entry))
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []Entry{{"xyz", 0.25}, {"cat", 0.75}})
	require.NoError(t, err)
	assert.Equal(t, "xyz 0.25\ncat 0.75\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_PropagatesErrors(t *testing.T) {
	err := Write(failingWriter{}, []Entry{{"xyz", 0.25}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestWriteFile(t *testing.T) {
	t.Run("writes and replaces", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "word_weights.txt")
		require.NoError(t, os.WriteFile(path, []byte("old 0.1\n"), 0o644))

		require.NoError(t, WriteFile(path, []Entry{{"new", 0.9}}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new 0.9\n", string(data))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, WriteFile(filepath.Join(dir, "out.txt"), []Entry{{"a", 0.5}}))

		files, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "out.txt", files[0].Name())
	})

	t.Run("missing directory fails without output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "out.txt")
		err := WriteFile(path, []Entry{{"a", 0.5}})
		require.Error(t, err)
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestRead(t *testing.T) {
	input := "xyz 0.0653\n\ncat 0.79\n  the 0.995  \n"
	entries, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{"xyz", 0.0653},
		{"cat", 0.79},
		{"the", 0.995},
	}, entries)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"missing weight", "cat\n", "line 1"},
		{"extra field", "cat 0.5 x\n", "line 1"},
		{"bad number", "cat 0.5\ndog abc\n", "line 2"},
		{"zero weight", "cat 0\n", "must be positive"},
		{"negative weight", "cat -0.5\n", "must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestReadFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.txt")
	want := []Entry{{"crane", 0.123456789}, {"slate", 1e-7}, {"adieu", 0.9999999}}
	require.NoError(t, WriteFile(path, want))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
