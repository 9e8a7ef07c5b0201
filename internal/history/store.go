// Package history persists a record of every solved puzzle in a local
// SQLite database so past runs can be listed, summarized and pruned.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/codeyimin/wordseek/internal/filelock"
)

//go:embed schema.sql
var schemaSQL string

// Record is one solved puzzle.
type Record struct {
	ID          string
	PuzzleFile  string
	BankFile    string
	GridHeight  int
	GridWidth   int
	BankSize    int
	WordsFound  int
	CellsMarked int
	Duration    time.Duration
	Timestamp   time.Time
}

// Stats summarizes the whole history.
type Stats struct {
	TotalSolves     int
	TotalWordsFound int
	TotalCells      int
	AvgDuration     time.Duration
}

// Store manages the SQLite solve-history database. The database file is
// guarded by an advisory flock for the lifetime of the store, so two
// wordseek processes never initialize or prune it concurrently.
type Store struct {
	db     *sql.DB
	dbPath string
	lock   *filelock.FileLock
}

// NewStore opens (creating if needed) the history database at dbPath.
// ":memory:" opens an unlocked in-memory database for tests.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == ":memory:" {
		return openAndInitStore(dbPath, nil)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	lock := filelock.New(dbPath + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, err
	}

	store, err := openAndInitStore(dbPath, lock)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	return store, nil
}

func openAndInitStore(dbPath string, lock *filelock.FileLock) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout must come first so the remaining pragmas wait on locks
	// held by another process instead of failing immediately.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{db: db, dbPath: dbPath, lock: lock}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

// execWithRetry executes a SQL statement with exponential backoff on
// "database is locked" errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection and releases the flock.
func (s *Store) Close() error {
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

// Record inserts a solve record. A missing ID or Timestamp is filled in.
func (s *Store) Record(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	query := `INSERT INTO solves
		(id, puzzle_file, bank_file, grid_height, grid_width, bank_size, words_found, cells_marked, duration_ms, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.PuzzleFile,
		rec.BankFile,
		rec.GridHeight,
		rec.GridWidth,
		rec.BankSize,
		rec.WordsFound,
		rec.CellsMarked,
		rec.Duration.Milliseconds(),
		rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert solve record: %w", err)
	}
	return nil
}

// List returns the most recent solve records, newest first. A limit of 0
// or less returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]*Record, error) {
	query := `SELECT id, puzzle_file, bank_file, grid_height, grid_width, bank_size, words_found, cells_marked, duration_ms, timestamp
		FROM solves
		ORDER BY timestamp DESC, id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query solve records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec := &Record{}
		var durationMS int64
		if err := rows.Scan(
			&rec.ID,
			&rec.PuzzleFile,
			&rec.BankFile,
			&rec.GridHeight,
			&rec.GridWidth,
			&rec.BankSize,
			&rec.WordsFound,
			&rec.CellsMarked,
			&durationMS,
			&rec.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan solve record: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate solve records: %w", err)
	}
	return records, nil
}

// Stats aggregates the whole history.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(words_found), 0), COALESCE(SUM(cells_marked), 0), COALESCE(AVG(duration_ms), 0)
		FROM solves`

	stats := &Stats{}
	var avgMS float64
	err := s.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalSolves,
		&stats.TotalWordsFound,
		&stats.TotalCells,
		&avgMS,
	)
	if err != nil {
		return nil, fmt.Errorf("query solve stats: %w", err)
	}
	stats.AvgDuration = time.Duration(avgMS * float64(time.Millisecond))
	return stats, nil
}

// Prune deletes records older than keepDays and returns how many were
// removed. keepDays of 0 or less disables pruning.
func (s *Store) Prune(ctx context.Context, keepDays int) (int64, error) {
	if keepDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -keepDays)
	result, err := s.db.ExecContext(ctx, `DELETE FROM solves WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune solve records: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count pruned records: %w", err)
	}
	return removed, nil
}

// Clear deletes every record.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM solves`); err != nil {
		return fmt.Errorf("clear solve history: %w", err)
	}
	return nil
}
