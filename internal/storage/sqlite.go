// Package storage provides SQLite-based persistence for marking results.
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

	"github.com/vovakirdan/minemarker/internal/sim"
)

// Store manages the SQLite database connection for result history.
type Store struct {
	db *sql.DB
}

// ResultEntry is one recorded marking run.
type ResultEntry struct {
	ID           int64
	Label        string // Scenario ID or minefield file name
	Source       string // "cli" or "ssh"
	Outcome      string // Final transcript line
	Passed       bool
	Score        int
	Steps        int
	InitialMines int
	MinesLeft    int
	Volleys      int
	Moves        int
	CreatedAt    time.Time
}

// NewEntry builds an entry from a simulation result.
func NewEntry(label, source string, r *sim.Result) ResultEntry {
	return ResultEntry{
		Label:        label,
		Source:       source,
		Outcome:      r.Outcome(),
		Passed:       r.Passed,
		Score:        r.Score,
		Steps:        len(r.Steps),
		InitialMines: r.InitialMines,
		MinesLeft:    r.MinesLeft,
		Volleys:      r.Volleys,
		Moves:        r.Moves,
	}
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
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT 'cli',
			outcome TEXT NOT NULL,
			passed INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			steps INTEGER NOT NULL DEFAULT 0,
			initial_mines INTEGER NOT NULL DEFAULT 0,
			mines_left INTEGER NOT NULL DEFAULT 0,
			volleys INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_label ON results(label);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(label, score DESC);
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

// SaveResult records a marking run.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(e ResultEntry) (int64, error) {
	if e.Source == "" {
		e.Source = "cli"
	}

	result, err := s.db.Exec(
		`INSERT INTO results
		 (label, source, outcome, passed, score, steps, initial_mines, mines_left, volleys, moves)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Label, e.Source, e.Outcome, e.Passed, e.Score, e.Steps,
		e.InitialMines, e.MinesLeft, e.Volleys, e.Moves,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const selectColumns = `SELECT id, label, source, outcome, passed, score, steps,
		        initial_mines, mines_left, volleys, moves, created_at
		 FROM results`

// TopResults retrieves the best N results for a label, or across all labels
// when label is empty. Results are ordered by score descending, earliest
// first among equal scores.
func (s *Store) TopResults(label string, limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	query := selectColumns + ` WHERE (? = '' OR label = ?) ORDER BY score DESC, id ASC LIMIT ?`
	return s.query(query, label, label, limit)
}

// RecentResults retrieves the latest N results across all labels.
func (s *Store) RecentResults(limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.query(selectColumns+` ORDER BY id DESC LIMIT ?`, limit)
}

func (s *Store) query(query string, args ...any) ([]ResultEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var createdAt any
		if err := rows.Scan(
			&e.ID, &e.Label, &e.Source, &e.Outcome, &e.Passed, &e.Score, &e.Steps,
			&e.InitialMines, &e.MinesLeft, &e.Volleys, &e.Moves, &createdAt,
		); err != nil {
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

// HighScore returns the highest passing score for the label.
// Returns 0 if there are no passing results.
func (s *Store) HighScore(label string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM results WHERE label = ? AND passed = 1",
		label,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearResults deletes all results for the label, or every result when
// label is empty.
func (s *Store) ClearResults(label string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE (? = '' OR label = ?)", label, label)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// LabelStats contains aggregated statistics for one label.
type LabelStats struct {
	Label     string
	Runs      int
	Passes    int
	HighScore int
	AvgScore  float64
	LastRun   time.Time
}

// PassRate returns the fraction of runs that passed.
func (st *LabelStats) PassRate() float64 {
	if st.Runs == 0 {
		return 0
	}
	return float64(st.Passes) / float64(st.Runs)
}

// Stats retrieves aggregated statistics for a label.
func (s *Store) Stats(label string) (*LabelStats, error) {
	stats := &LabelStats{Label: label}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(passed), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		 FROM results WHERE label = ?`,
		label,
	).Scan(&stats.Runs, &stats.Passes, &stats.HighScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM results WHERE label = ? ORDER BY id DESC LIMIT 1`,
		label,
	).Scan(&lastRun)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTime(lastRun)
	}

	return stats, nil
}

// AllStats retrieves statistics for every label that has results.
func (s *Store) AllStats() (map[string]*LabelStats, error) {
	rows, err := s.db.Query(
		`SELECT label, COUNT(*), SUM(passed), MAX(score), AVG(score), MAX(created_at)
		 FROM results
		 GROUP BY label`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LabelStats)
	for rows.Next() {
		var st LabelStats
		var lastRun any
		if err := rows.Scan(&st.Label, &st.Runs, &st.Passes, &st.HighScore, &st.AvgScore, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.Label] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles the driver returning either time.Time or a string for
// DATETIME columns.
func parseTime(v any) time.Time {
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
