// Package storage keeps game records and settings in SQLite.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Game is a finished game as stored in the database.
type Game struct {
	ID       int64
	Target   string
	Guesses  []string // stored comma-separated
	Solved   bool
	PlayedAt int64 // Unix timestamp
}

// Turns returns the number of guesses made.
func (g *Game) Turns() int {
	return len(g.Guesses)
}

// Stats summarises all stored games.
type Stats struct {
	Games      int
	Solved     int
	MeanTurns  float64 // over solved games only
	BestTurns  int
	WorstTurns int
}

// Store provides SQLite-backed persistence for played games and settings.
type Store struct {
	db *sql.DB
}

const createTablesSQL = `
CREATE TABLE IF NOT EXISTS games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	target TEXT NOT NULL,
	guesses TEXT NOT NULL,
	solved INTEGER NOT NULL,
	turns INTEGER NOT NULL,
	played_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS games_played_at ON games (played_at);

CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT
);
`

// New opens the SQLite database at dbPath, creates tables if they don't exist, and returns a Store.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: set WAL mode: %w", err)
	}

	if _, err := db.Exec(createTablesSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveGame inserts a game and returns its ID. A zero PlayedAt is set to now.
func (s *Store) SaveGame(g *Game) (int64, error) {
	if g.PlayedAt == 0 {
		g.PlayedAt = time.Now().Unix()
	}
	res, err := s.db.Exec(
		`INSERT INTO games (target, guesses, solved, turns, played_at) VALUES (?, ?, ?, ?, ?)`,
		g.Target, strings.Join(g.Guesses, ","), g.Solved, g.Turns(), g.PlayedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: save game %q: %w", g.Target, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: save game %q: last insert id: %w", g.Target, err)
	}
	g.ID = id
	return id, nil
}

// RecentGames returns up to limit games, newest first.
func (s *Store) RecentGames(limit int) ([]Game, error) {
	rows, err := s.db.Query(
		`SELECT id, target, guesses, solved, played_at FROM games ORDER BY played_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: get recent games: %w", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		var g Game
		var guesses string
		if err := rows.Scan(&g.ID, &g.Target, &guesses, &g.Solved, &g.PlayedAt); err != nil {
			return nil, fmt.Errorf("storage: scan game: %w", err)
		}
		if guesses != "" {
			g.Guesses = strings.Split(guesses, ",")
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate games: %w", err)
	}
	return games, nil
}

// Stats aggregates all stored games.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	var mean sql.NullFloat64
	var best, worst sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(solved), 0),
		        AVG(CASE WHEN solved THEN turns END),
		        MIN(CASE WHEN solved THEN turns END),
		        MAX(CASE WHEN solved THEN turns END)
		 FROM games`,
	).Scan(&st.Games, &st.Solved, &mean, &best, &worst)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: get stats: %w", err)
	}
	st.MeanTurns = mean.Float64
	st.BestTurns = int(best.Int64)
	st.WorstTurns = int(worst.Int64)
	return st, nil
}

// GetSetting returns the value for the given settings key.
// Returns an empty string if the key is not found.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("storage: get setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting inserts or replaces a setting key-value pair.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: set setting %q: %w", key, err)
	}
	return nil
}
