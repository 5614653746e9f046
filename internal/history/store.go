// Package history provides the SQLite-backed, append-only version log for
// notes. Each entry is a full snapshot of a note body; entries are keyed by
// note id and a 0-based sequence index, and are immutable once written.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aguiarsc/numen/internal/apperr"
	"github.com/aguiarsc/numen/internal/checksum"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
	note_id    TEXT NOT NULL,
	seq        INTEGER NOT NULL,
	checksum   TEXT NOT NULL DEFAULT '',
	message    TEXT NOT NULL DEFAULT '',
	body       TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (note_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_note ON snapshots(note_id);
`

// Entry is one snapshot in a note's history log.
type Entry struct {
	NoteID    string
	Seq       int
	Checksum  string
	Message   string
	Body      string
	CreatedAt time.Time
}

// Store wraps a sql.DB with history operations.
type Store struct {
	conn *sql.DB
}

// Open opens (or creates) the history database and applies the schema.
func Open(dsn string) (*Store, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("history: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("history: apply schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Snapshot appends a new entry with the next sequence index for the note.
// Failures are reported as ErrHistoryWriteFailure so that callers refuse to
// overwrite a body whose prior state was not captured.
func (s *Store) Snapshot(noteID, body, message string) (*Entry, error) {
	tx, err := s.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("history: begin tx: %w: %v", apperr.ErrHistoryWriteFailure, err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	var next int
	if err := tx.QueryRow(
		`SELECT COALESCE(MAX(seq)+1, 0) FROM snapshots WHERE note_id = ?`, noteID,
	).Scan(&next); err != nil {
		return nil, fmt.Errorf("history: next seq for %s: %w: %v", noteID, apperr.ErrHistoryWriteFailure, err)
	}

	now := time.Now().UTC()
	cs := checksum.Short([]byte(body))
	if _, err := tx.Exec(
		`INSERT INTO snapshots (note_id, seq, checksum, message, body, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		noteID, next, cs, message, body, now,
	); err != nil {
		return nil, fmt.Errorf("history: insert snapshot %s/%d: %w: %v", noteID, next, apperr.ErrHistoryWriteFailure, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("history: commit snapshot %s/%d: %w: %v", noteID, next, apperr.ErrHistoryWriteFailure, err)
	}

	return &Entry{NoteID: noteID, Seq: next, Checksum: cs, Message: message, Body: body, CreatedAt: now}, nil
}

// List returns entry metadata for a note, oldest first. Bodies are omitted.
// A note with no history yields an empty list, not an error.
func (s *Store) List(noteID string) ([]Entry, error) {
	rows, err := s.conn.Query(
		`SELECT seq, checksum, message, created_at FROM snapshots WHERE note_id = ? ORDER BY seq`, noteID,
	)
	if err != nil {
		return nil, fmt.Errorf("history: list %s: %w", noteID, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e := Entry{NoteID: noteID}
		if err := rows.Scan(&e.Seq, &e.Checksum, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Get returns the full entry at the given sequence index.
func (s *Store) Get(noteID string, seq int) (*Entry, error) {
	e := Entry{NoteID: noteID, Seq: seq}
	err := s.conn.QueryRow(
		`SELECT checksum, message, body, created_at FROM snapshots WHERE note_id = ? AND seq = ?`, noteID, seq,
	).Scan(&e.Checksum, &e.Message, &e.Body, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("history: %s version %d: %w", noteID, seq, apperr.ErrVersionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("history: get %s/%d: %w", noteID, seq, err)
	}
	return &e, nil
}

// Diff returns a line-oriented change script between the snapshots at
// sequence indices a and b, in the order supplied by the caller.
func (s *Store) Diff(noteID string, a, b int) ([]string, error) {
	ea, err := s.Get(noteID, a)
	if err != nil {
		return nil, err
	}
	eb, err := s.Get(noteID, b)
	if err != nil {
		return nil, err
	}
	return Lines(ea.Body, eb.Body), nil
}

// Restore returns the snapshot body at seq for write-back by the caller.
// The log itself is never mutated: later entries remain.
func (s *Store) Restore(noteID string, seq int) (string, error) {
	e, err := s.Get(noteID, seq)
	if err != nil {
		return "", err
	}
	return e.Body, nil
}

// Purge deletes the entire log for a note atomically. Irreversible.
func (s *Store) Purge(noteID string) error {
	if _, err := s.conn.Exec(`DELETE FROM snapshots WHERE note_id = ?`, noteID); err != nil {
		return fmt.Errorf("history: purge %s: %w", noteID, err)
	}
	return nil
}
