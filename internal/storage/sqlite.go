// Package storage provides SQLite-based persistence for level progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
}

// LevelProgress is the stored state of one level.
type LevelProgress struct {
	PackID    string
	Level     int // Zero-based index within the pack
	Cleared   bool
	BestMoves int // Zero when unknown
	UpdatedAt time.Time
}

// ClearEntry is one recorded clear of a level.
type ClearEntry struct {
	ID        int64
	PackID    string
	Level     int
	Moves     int
	CreatedAt time.Time
}

// PackStats contains aggregated statistics for a pack.
type PackStats struct {
	PackID      string
	Cleared     int
	TotalClears int
	LastPlayed  time.Time
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS level_progress (
			pack_id TEXT NOT NULL,
			level_index INTEGER NOT NULL,
			cleared INTEGER NOT NULL DEFAULT 0,
			best_moves INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (pack_id, level_index)
		);

		CREATE TABLE IF NOT EXISTS clears (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pack_id TEXT NOT NULL,
			level_index INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_clears_level ON clears(pack_id, level_index);
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

// MarkCleared records a clear of a level with the given move count.
// It reports whether the move count improved on the stored best.
func (s *Store) MarkCleared(packID string, level, moves int) (bool, error) {
	if level < 0 {
		return false, fmt.Errorf("storage: invalid level index %d", level)
	}

	prev, known, err := s.BestMoves(packID, level)
	if err != nil {
		return false, err
	}
	improved := moves > 0 && (!known || moves < prev)

	_, err = s.db.Exec(
		`INSERT INTO level_progress (pack_id, level_index, cleared, best_moves, updated_at)
		 VALUES (?, ?, 1, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (pack_id, level_index) DO UPDATE SET
		     cleared = 1,
		     best_moves = CASE
		         WHEN excluded.best_moves > 0 AND (level_progress.best_moves = 0 OR excluded.best_moves < level_progress.best_moves)
		         THEN excluded.best_moves
		         ELSE level_progress.best_moves
		     END,
		     updated_at = CURRENT_TIMESTAMP`,
		packID, level, max(moves, 0),
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot mark level cleared: %w", err)
	}

	if _, err := s.db.Exec(
		"INSERT INTO clears (pack_id, level_index, moves) VALUES (?, ?, ?)",
		packID, level, moves,
	); err != nil {
		return false, fmt.Errorf("storage: cannot record clear: %w", err)
	}

	return improved, nil
}

// BestMoves returns the fewest moves a level was cleared in.
// The second result is false if no move count is stored.
func (s *Store) BestMoves(packID string, level int) (int, bool, error) {
	var best int
	err := s.db.QueryRow(
		"SELECT best_moves FROM level_progress WHERE pack_id = ? AND level_index = ?",
		packID, level,
	).Scan(&best)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best moves: %w", err)
	}
	return best, best > 0, nil
}

// Progress returns the cleared flag of each of the first count levels.
func (s *Store) Progress(packID string, count int) ([]bool, error) {
	levels, err := s.Levels(packID)
	if err != nil {
		return nil, err
	}

	flags := make([]bool, max(count, 0))
	for _, l := range levels {
		if l.Level < len(flags) {
			flags[l.Level] = l.Cleared
		}
	}
	return flags, nil
}

// Levels returns every stored level of a pack ordered by index.
func (s *Store) Levels(packID string) ([]LevelProgress, error) {
	rows, err := s.db.Query(
		`SELECT pack_id, level_index, cleared, best_moves, updated_at
		 FROM level_progress
		 WHERE pack_id = ?
		 ORDER BY level_index`,
		packID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var out []LevelProgress
	for rows.Next() {
		var p LevelProgress
		var updatedAt any
		if err := rows.Scan(&p.PackID, &p.Level, &p.Cleared, &p.BestMoves, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.UpdatedAt = parseTime(updatedAt)
		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// SetProgress overwrites the cleared flags of a pack. Stored move counts of
// levels that stay cleared are kept.
func (s *Store) SetProgress(packID string, flags []bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, cleared := range flags {
		if _, err := tx.Exec(
			`INSERT INTO level_progress (pack_id, level_index, cleared, updated_at)
			 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT (pack_id, level_index) DO UPDATE SET
			     cleared = excluded.cleared,
			     best_moves = CASE WHEN excluded.cleared = 1 THEN level_progress.best_moves ELSE 0 END,
			     updated_at = CURRENT_TIMESTAMP`,
			packID, i, cleared,
		); err != nil {
			return fmt.Errorf("storage: cannot set level %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit progress: %w", err)
	}
	return nil
}

// ClearProgress deletes all progress and clear history for a pack.
func (s *Store) ClearProgress(packID string) error {
	if _, err := s.db.Exec("DELETE FROM level_progress WHERE pack_id = ?", packID); err != nil {
		return fmt.Errorf("storage: cannot clear progress: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM clears WHERE pack_id = ?", packID); err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

// RecentClears retrieves the most recent clears of a pack.
func (s *Store) RecentClears(packID string, limit int) ([]ClearEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, pack_id, level_index, moves, created_at
		 FROM clears
		 WHERE pack_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		packID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query clears: %w", err)
	}
	defer rows.Close()

	var entries []ClearEntry
	for rows.Next() {
		var e ClearEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.PackID, &e.Level, &e.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Stats retrieves aggregated statistics for a pack.
func (s *Store) Stats(packID string) (*PackStats, error) {
	stats := &PackStats{PackID: packID}

	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM level_progress WHERE pack_id = ? AND cleared = 1",
		packID,
	).Scan(&stats.Cleared)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count cleared levels: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		"SELECT COUNT(*), MAX(created_at) FROM clears WHERE pack_id = ?",
		packID,
	).Scan(&stats.TotalClears, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime converts a scanned DATETIME column, which the driver may return as
// either time.Time or string.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
