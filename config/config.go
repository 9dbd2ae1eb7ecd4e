package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/charlotte-zhuang/wordle/scheduler"
)

// Config holds all application configuration.
type Config struct {
	DataDir       string  `yaml:"data_dir"`
	FreqMapPath   string  `yaml:"freq_map_path"`
	WeightsPath   string  `yaml:"weights_path"`
	TestWordsPath string  `yaml:"test_words_path"`
	NCommon       float64 `yaml:"n_common"`
	Width         float64 `yaml:"width_under_sigmoid"`
	MaxTurns      int     `yaml:"max_turns"`
	Workers       int     `yaml:"workers"`
	DailyTime     string  `yaml:"daily_time"`
	Timezone      string  `yaml:"timezone"`
	DBPath        string  `yaml:"db_path"`
	LogLevel      string  `yaml:"log_level"`
}

// File names used inside DataDir when a path is not set explicitly.
const (
	FreqMapFile   = "freq_map.json"
	WeightsFile   = "word_weights.txt"
	TestWordsFile = "test_words.txt"
)

// Defaults returns a Config with all default values set.
func Defaults() Config {
	cfg := Config{
		DataDir:   "./data",
		NCommon:   2048,
		Width:     8,
		MaxTurns:  10,
		DailyTime: "00:00",
		Timezone:  "UTC",
		DBPath:    "./wordle.db",
		LogLevel:  "info",
	}
	cfg.resolvePaths()
	return cfg
}

// Load reads a YAML config file and returns a validated Config.
// Environment variables WORDLE_CONFIG and WORDLE_DB override the file path
// and the database path.
func Load(path string) (Config, error) {
	if envPath := os.Getenv("WORDLE_CONFIG"); envPath != "" {
		path = envPath
	}

	cfg := Defaults()
	// Derived paths are recomputed after decoding so they follow data_dir.
	cfg.FreqMapPath, cfg.WeightsPath, cfg.TestWordsPath = "", "", ""

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if envDB := os.Getenv("WORDLE_DB"); envDB != "" {
		cfg.DBPath = envDB
	}
	cfg.resolvePaths()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) resolvePaths() {
	if c.FreqMapPath == "" {
		c.FreqMapPath = filepath.Join(c.DataDir, FreqMapFile)
	}
	if c.WeightsPath == "" {
		c.WeightsPath = filepath.Join(c.DataDir, WeightsFile)
	}
	if c.TestWordsPath == "" {
		c.TestWordsPath = filepath.Join(c.DataDir, TestWordsFile)
	}
}

// Validate checks that values are usable.
func (c *Config) Validate() error {
	if !(c.NCommon > 0) || math.IsInf(c.NCommon, 0) {
		return fmt.Errorf("n_common must be positive, got %v", c.NCommon)
	}
	if !(c.Width > 0) || math.IsInf(c.Width, 0) {
		return fmt.Errorf("width_under_sigmoid must be positive, got %v", c.Width)
	}
	if c.MaxTurns < 1 {
		return fmt.Errorf("max_turns must be at least 1, got %d", c.MaxTurns)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if _, _, err := scheduler.ParseTime(c.DailyTime); err != nil {
		return fmt.Errorf("daily_time: %w", err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: want debug, info, warn or error", c.LogLevel)
	}
	return nil
}
