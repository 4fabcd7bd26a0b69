package organize

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Move is one journaled file move.
type Move struct {
	ID      int64     `json:"id"`
	Batch   string    `json:"batch"`
	Src     string    `json:"src"`
	Dst     string    `json:"dst"`
	MovedAt time.Time `json:"moved_at"`
}

// Journal records every move an Organizer applies so a run can be
// undone. It lives in a SQLite file, one row per moved file, grouped
// into batches (one batch per organize run).
type Journal struct {
	db *sql.DB
}

// OpenJournal opens (creating if needed) the journal database.
func OpenJournal(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS moves (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch TEXT NOT NULL,
		src TEXT NOT NULL,
		dst TEXT NOT NULL,
		moved_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_moves_batch ON moves(batch);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// BeginBatch allocates an identifier for a new organize run.
func (j *Journal) BeginBatch() (string, error) {
	return uuid.NewString(), nil
}

// RecordMove journals one applied move.
func (j *Journal) RecordMove(batch, src, dst string) error {
	_, err := j.db.Exec(
		`INSERT INTO moves (batch, src, dst, moved_at) VALUES (?, ?, ?, ?)`,
		batch, src, dst, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("record move: %w", err)
	}
	return nil
}

// LatestBatch returns the identifier of the most recent batch, or
// empty when the journal has no moves.
func (j *Journal) LatestBatch() (string, error) {
	var batch string
	err := j.db.QueryRow(
		`SELECT batch FROM moves ORDER BY id DESC LIMIT 1`).Scan(&batch)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("latest batch: %w", err)
	}
	return batch, nil
}

// Moves lists the journaled moves of a batch in applied order.
func (j *Journal) Moves(batch string) ([]Move, error) {
	rows, err := j.db.Query(
		`SELECT id, batch, src, dst, moved_at FROM moves WHERE batch = ? ORDER BY id`, batch)
	if err != nil {
		return nil, fmt.Errorf("list moves: %w", err)
	}
	defer rows.Close()

	var moves []Move
	for rows.Next() {
		var m Move
		var movedAt int64
		if err := rows.Scan(&m.ID, &m.Batch, &m.Src, &m.Dst, &movedAt); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		m.MovedAt = time.Unix(movedAt, 0).UTC()
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// Undo reverses a batch: every journaled move is applied backwards
// in reverse order, then the batch is dropped from the journal.
// An empty batch means the most recent one. It reports how many
// files moved back; files that fail to move stay journaled.
func (j *Journal) Undo(batch string) (int, error) {
	if batch == "" {
		latest, err := j.LatestBatch()
		if err != nil {
			return 0, err
		}
		if latest == "" {
			return 0, fmt.Errorf("undo: journal is empty")
		}
		batch = latest
	}

	moves, err := j.Moves(batch)
	if err != nil {
		return 0, err
	}
	if len(moves) == 0 {
		return 0, fmt.Errorf("undo: unknown batch %s", batch)
	}

	restored := 0
	var failed []string
	for i := len(moves) - 1; i >= 0; i-- {
		m := moves[i]
		if err := os.MkdirAll(filepath.Dir(m.Src), 0o755); err != nil {
			failed = append(failed, m.Dst)
			continue
		}
		if err := os.Rename(m.Dst, m.Src); err != nil {
			failed = append(failed, m.Dst)
			continue
		}
		if _, err := j.db.Exec(`DELETE FROM moves WHERE id = ?`, m.ID); err != nil {
			return restored, fmt.Errorf("undo: drop journal row: %w", err)
		}
		restored++
	}

	if len(failed) > 0 {
		return restored, fmt.Errorf("undo: %d of %d files could not be restored", len(failed), len(moves))
	}
	return restored, nil
}

// Close closes the journal database.
func (j *Journal) Close() error {
	return j.db.Close()
}
