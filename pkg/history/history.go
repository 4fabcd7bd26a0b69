// Package history persists a log of tool invocations (evaluated
// expressions, conversions, generated values) in a local SQLite
// database so past results can be recalled and searched.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// Kinds of recorded entries. A kind groups entries by the tool that
// produced them.
const (
	KindCalc    = "calc"
	KindConvert = "convert"
	KindFinance = "finance"
	KindPasswd  = "passwd"
)

// Entry is one recorded invocation.
type Entry struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Input     string    `json:"input"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is a SQLite-backed history log. It is safe for concurrent
// use; SQLite's single-writer model is enforced through the
// connection pool.
type Store struct {
	db         *sql.DB
	insertStmt *sql.Stmt
}

// Open opens (and if needed creates) the history database at path.
// Parent directories are created automatically.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	store.insertStmt, err = db.Prepare(
		`INSERT INTO entries (id, kind, input, result, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		input TEXT NOT NULL,
		result TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_entries_kind ON entries(kind, created_at);
	CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init history schema: %w", err)
	}
	return nil
}

// Record appends an entry and returns it with its generated ID and
// timestamp filled in.
func (s *Store) Record(ctx context.Context, kind, input, result string) (Entry, error) {
	entry := Entry{
		ID:        uuid.NewString(),
		Kind:      kind,
		Input:     input,
		Result:    result,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	_, err := s.insertStmt.ExecContext(ctx,
		entry.ID, entry.Kind, entry.Input, entry.Result, entry.CreatedAt.Unix())
	if err != nil {
		return Entry{}, fmt.Errorf("record history: %w", err)
	}
	return entry, nil
}

// Recent returns the newest entries, most recent first. An empty
// kind matches all kinds.
func (s *Store) Recent(ctx context.Context, kind string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, kind, input, result, created_at FROM entries`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	return s.queryEntries(ctx, query, args...)
}

// Search returns entries whose input or result contains the term,
// most recent first.
func (s *Store) Search(ctx context.Context, term string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + term + "%"
	return s.queryEntries(ctx,
		`SELECT id, kind, input, result, created_at FROM entries
		 WHERE input LIKE ? OR result LIKE ?
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		pattern, pattern, limit)
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.Kind, &e.Input, &e.Result, &createdAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	return entries, nil
}

// Count reports the number of stored entries.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

// Clear deletes entries of the given kind and reports how many were
// removed. An empty kind clears everything.
func (s *Store) Clear(ctx context.Context, kind string) (int64, error) {
	var res sql.Result
	var err error
	if kind == "" {
		res, err = s.db.ExecContext(ctx, `DELETE FROM entries`)
	} else {
		res, err = s.db.ExecContext(ctx, `DELETE FROM entries WHERE kind = ?`, kind)
	}
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return res.RowsAffected()
}

// Close flushes the WAL and closes the database.
func (s *Store) Close() error {
	if s.insertStmt != nil {
		s.insertStmt.Close()
	}
	_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return s.db.Close()
}
