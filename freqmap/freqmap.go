// Package freqmap loads word frequency tables.
//
// A table is a single object mapping words to counts, stored either as JSON
// (comments and trailing commas allowed) or as YAML.
package freqmap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Map maps a word to its observed occurrence count.
type Map map[string]float64

// Format identifies the encoding of a frequency table.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "json"
	}
}

// FormatFromPath picks the format from the file extension. Anything that
// is not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (Map, error) {
	var m Map
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing frequency map (yaml): %w", err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
			return nil, fmt.Errorf("parsing frequency map (json): %w", err)
		}
	}
	if m == nil {
		// "null" or an empty document decodes to a nil map.
		m = Map{}
	}
	return m, nil
}

// Load reads and parses the table at path.
func Load(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading frequency map %s: %w", path, err)
	}

	m, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
