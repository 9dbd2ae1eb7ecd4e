package freqmap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("data/freq_map.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("data/freq_map.jsonc"))
	assert.Equal(t, FormatJSON, FormatFromPath("freq"))
	assert.Equal(t, FormatYAML, FormatFromPath("freq.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("FREQ.YML"))
}

func TestParse_JSON(t *testing.T) {
	m, err := Parse([]byte(`{"the": 100, "cat": 5, "xyz": 1.5}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, Map{"the": 100, "cat": 5, "xyz": 1.5}, m)
}

func TestParse_JSONC(t *testing.T) {
	data := `{
	// most common
	"the": 100,
	/* rare */ "xyz": 1,
}`
	m, err := Parse([]byte(data), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, Map{"the": 100, "xyz": 1}, m)
}

func TestParse_YAML(t *testing.T) {
	m, err := Parse([]byte("the: 100\ncat: 5\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, Map{"the": 100, "cat": 5}, m)
}

func TestParse_Empty(t *testing.T) {
	m, err := Parse([]byte(`{}`), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, m)

	m, err = Parse([]byte(`null`), FormatJSON)
	require.NoError(t, err)
	assert.NotNil(t, m)
	assert.Empty(t, m)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"array", `["the", "cat"]`, FormatJSON},
		{"string counts", `{"the": "many"}`, FormatJSON},
		{"truncated", `{"the": 1`, FormatJSON},
		{"yaml list", "- the\n- cat\n", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "parsing frequency map")
		})
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "freq_map.json", `{"crane": 12, "slate": 30}`)
	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Map{"crane": 12, "slate": 30}, m)

	path = writeFile(t, "freq_map.yml", "crane: 12\n")
	m, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, Map{"crane": 12}, m)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_MalformedIncludesPath(t *testing.T) {
	path := writeFile(t, "bad.json", `not json`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
