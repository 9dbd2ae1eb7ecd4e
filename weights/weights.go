// Package weights reads and writes prior tables: one "<word> <weight>" pair per line.
package weights

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Entry pairs a word with its prior weight.
type Entry struct {
	Word   string
	Weight float64
}

// Format renders an entry as a table line without the trailing newline.
// Weights use the shortest representation that round-trips.
func Format(e Entry) string {
	return e.Word + " " + strconv.FormatFloat(e.Weight, 'g', -1, 64)
}

// Write writes entries to w, one line each, in the given order.
func Write(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := bw.WriteString(Format(e)); err != nil {
			return fmt.Errorf("weights: write %q: %w", e.Word, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("weights: write %q: %w", e.Word, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("weights: flush: %w", err)
	}
	return nil
}

// WriteFile atomically replaces path with the table. The data goes to a
// temp file in the destination directory first, so a failed write never
// leaves a partial table behind.
func WriteFile(path string, entries []Entry) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".weights-*.tmp")
	if err != nil {
		return fmt.Errorf("weights: create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if err := Write(tmpFile, entries); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("weights: sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("weights: close temp file: %w", err)
	}
	// CreateTemp uses 0600.
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("weights: chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("weights: rename to %s: %w", path, err)
	}

	success = true
	return nil
}

// Read parses a table. Blank lines are skipped; every other line must hold
// a word and a positive weight.
func Read(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("weights: line %d: expected \"word weight\", got %q", lineNo, line)
		}
		weight, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("weights: line %d: parse weight: %w", lineNo, err)
		}
		if !(weight > 0) {
			return nil, fmt.Errorf("weights: line %d: weight must be positive, got %v", lineNo, weight)
		}
		entries = append(entries, Entry{Word: fields[0], Weight: weight})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("weights: read: %w", err)
	}
	return entries, nil
}

// ReadFile reads the table stored at path.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("weights: open %s: %w", path, err)
	}
	defer f.Close()

	entries, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}
