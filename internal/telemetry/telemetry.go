// Package telemetry persists quiz events to a local SQLite database:
// answer-check outcomes, terminal verification errors, and rendering
// faults forwarded by the fault observer. The log is append-only and
// optional: screens treat a nil repo as "discard".
package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// CheckEventData records one completed answer check.
type CheckEventData struct {
	SessionID  string
	QuestionID string
	AnswerID   string
	Correct    bool
}

// FaultEventData records a rendering fault or a terminal verification
// error.
type FaultEventData struct {
	SessionID string
	Source    string // "stem", "explanation", "option", "verify"
	Message   string
	NodeType  string
}

// EventRepo provides append access to quiz events.
type EventRepo interface {
	AppendCheckEvent(ctx context.Context, data CheckEventData) error
	AppendFaultEvent(ctx context.Context, data FaultEventData) error
}

// Store is a SQLite-backed EventRepo.
type Store struct {
	db *sql.DB
}

var _ EventRepo = (*Store)(nil)

// Open creates a Store at dsn, applying recommended pragmas and creating
// the event tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// AppendCheckEvent implements EventRepo.
func (s *Store) AppendCheckEvent(ctx context.Context, data CheckEventData) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO check_events (ts, session_id, question_id, answer_id, correct)
		 VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), data.SessionID, data.QuestionID, data.AnswerID, data.Correct,
	)
	if err != nil {
		return fmt.Errorf("append check event: %w", err)
	}
	return nil
}

// AppendFaultEvent implements EventRepo.
func (s *Store) AppendFaultEvent(ctx context.Context, data FaultEventData) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO fault_events (ts, session_id, source, message, node_type)
		 VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), data.SessionID, data.Source, data.Message, data.NodeType,
	)
	if err != nil {
		return fmt.Errorf("append fault event: %w", err)
	}
	return nil
}

// CheckCount returns the number of recorded check events.
func (s *Store) CheckCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM check_events`).Scan(&n)
	return n, err
}

// FaultCount returns the number of recorded fault events.
func (s *Store) FaultCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fault_events`).Scan(&n)
	return n, err
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS check_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts TEXT NOT NULL,
			session_id TEXT NOT NULL,
			question_id TEXT NOT NULL,
			answer_id TEXT NOT NULL,
			correct INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS fault_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts TEXT NOT NULL,
			session_id TEXT NOT NULL,
			source TEXT NOT NULL,
			message TEXT NOT NULL,
			node_type TEXT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. QUIZTER_DB environment variable
// 2. $XDG_DATA_HOME/quizter/quizter.db
// 3. ~/.local/share/quizter/quizter.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("QUIZTER_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "quizter", "quizter.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
