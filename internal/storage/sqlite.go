// Package storage provides SQLite-based persistence for runs, the chat
// leaderboard and mining progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry is one finished (or snapshotted) game run.
type RunEntry struct {
	ID        int64
	Depth     int
	Duration  int // Seconds
	CreatedAt time.Time
}

// LeaderboardEntry is a chat viewer's destruction total.
type LeaderboardEntry struct {
	AuthorID     string
	Author       string
	BlocksBroken int
}

// Progress is the periodic snapshot of the current run.
type Progress struct {
	Depth   int
	Ores    map[string]int
	SavedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			depth INTEGER NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_depth ON runs(depth DESC);

		CREATE TABLE IF NOT EXISTS chat_leaderboard (
			author_id TEXT PRIMARY KEY,
			author TEXT NOT NULL,
			blocks_broken INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_leaderboard_top ON chat_leaderboard(blocks_broken DESC);

		CREATE TABLE IF NOT EXISTS progress (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			depth INTEGER NOT NULL DEFAULT 0,
			saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS progress_ores (
			item TEXT PRIMARY KEY,
			amount INTEGER NOT NULL DEFAULT 0
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns the inserted ID.
func (s *Store) SaveRun(depth, durationSecs int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (depth, duration_secs) VALUES (?, ?)",
		depth, durationSecs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns retrieves the deepest N runs.
func (s *Store) TopRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, depth, duration_secs, created_at
		 FROM runs
		 ORDER BY depth DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Depth, &e.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// BestDepth returns the deepest recorded run, 0 if none exist.
func (s *Store) BestDepth() (int, error) {
	var depth sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(depth) FROM runs").Scan(&depth)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best depth: %w", err)
	}
	if !depth.Valid {
		return 0, nil
	}
	return int(depth.Int64), nil
}

// RecordBlocksBroken adds blocks to a chat viewer's leaderboard total.
func (s *Store) RecordBlocksBroken(authorID, author string, blocks int) error {
	_, err := s.db.Exec(
		`INSERT INTO chat_leaderboard (author_id, author, blocks_broken)
		 VALUES (?, ?, ?)
		 ON CONFLICT(author_id) DO UPDATE SET
		   author = excluded.author,
		   blocks_broken = blocks_broken + excluded.blocks_broken`,
		authorID, author, blocks,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record blocks broken: %w", err)
	}
	return nil
}

// TopChatters retrieves the top N viewers by blocks broken.
func (s *Store) TopChatters(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT author_id, author, blocks_broken
		 FROM chat_leaderboard
		 ORDER BY blocks_broken DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.AuthorID, &e.Author, &e.BlocksBroken); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// SaveProgress overwrites the single progress snapshot.
func (s *Store) SaveProgress(depth int, ores map[string]int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO progress (id, depth, saved_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET depth = excluded.depth, saved_at = CURRENT_TIMESTAMP`,
		depth,
	); err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}

	for item, amount := range ores {
		if _, err := tx.Exec(
			`INSERT INTO progress_ores (item, amount) VALUES (?, ?)
			 ON CONFLICT(item) DO UPDATE SET amount = excluded.amount`,
			item, amount,
		); err != nil {
			return fmt.Errorf("storage: cannot save ore progress: %w", err)
		}
	}

	return tx.Commit()
}

// LoadProgress retrieves the last progress snapshot, or nil if none exists.
func (s *Store) LoadProgress() (*Progress, error) {
	var p Progress
	var savedAt any
	err := s.db.QueryRow("SELECT depth, saved_at FROM progress WHERE id = 1").
		Scan(&p.Depth, &savedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load progress: %w", err)
	}
	p.SavedAt = parseTimestamp(savedAt)

	rows, err := s.db.Query("SELECT item, amount FROM progress_ores")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load ore progress: %w", err)
	}
	defer rows.Close()

	p.Ores = make(map[string]int)
	for rows.Next() {
		var item string
		var amount int
		if err := rows.Scan(&item, &amount); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.Ores[item] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return &p, nil
}

// parseTimestamp handles the driver returning either time.Time or string.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
