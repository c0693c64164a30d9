// Package journal records the commands applied during a run in an in-memory
// SQLite database. Nothing is written to disk; the journal dies with the
// process.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Kind identifies the command an entry records.
type Kind string

const (
	KindToggleTopic      Kind = "toggle_topic"
	KindToggleCourse     Kind = "toggle_course"
	KindToggleCompletion Kind = "toggle_completion"
	KindSetPosition      Kind = "set_position"
	KindUndo             Kind = "undo"
)

// Entry is one journaled command.
type Entry struct {
	Sequence  int64
	SessionID string
	Timestamp time.Time
	Kind      Kind
	CourseID  string
	TopicID   string
	Detail    string
	OK        bool
}

// QueryOpts configures entry queries with filtering and pagination.
type QueryOpts struct {
	Limit  int   // max results (0 = unlimited)
	After  int64 // sequence > After
	Before int64 // sequence < Before (0 = no bound)
	Kind   Kind  // empty = all kinds
}

// Journal holds the database and the session it records for.
type Journal struct {
	db        *sql.DB
	seq       *sequenceCounter
	sessionID string
	now       func() time.Time
}

// Open creates a journal backed by the SQLite database at dsn. Use ":memory:"
// for a private in-process database.
func Open(dsn string) (*Journal, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Journal{
		db:        db,
		seq:       seq,
		sessionID: uuid.NewString(),
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// OpenMemory opens a journal on a fresh in-memory database.
func OpenMemory() (*Journal, error) {
	return Open(":memory:")
}

// SessionID identifies this run in every entry it writes.
func (j *Journal) SessionID() string {
	return j.sessionID
}

// DB returns the underlying *sql.DB for raw queries.
func (j *Journal) DB() *sql.DB {
	return j.db
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Append records an entry and returns its sequence number. Sequence, session
// and timestamp are assigned by the journal.
func (j *Journal) Append(ctx context.Context, e Entry) (int64, error) {
	seq, err := j.seq.Next(ctx)
	if err != nil {
		return 0, err
	}
	_, err = j.db.ExecContext(ctx,
		`INSERT INTO entries (sequence, session_id, ts, kind, course_id, topic_id, detail, ok)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, j.sessionID, j.now().UnixMilli(), string(e.Kind), e.CourseID, e.TopicID, e.Detail, e.OK,
	)
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}
	return seq, nil
}

// List returns entries in sequence order.
func (j *Journal) List(ctx context.Context, opts QueryOpts) ([]Entry, error) {
	query := `SELECT sequence, session_id, ts, kind, course_id, topic_id, detail, ok
		FROM entries WHERE sequence > ?`
	args := []any{opts.After}
	if opts.Before > 0 {
		query += ` AND sequence < ?`
		args = append(args, opts.Before)
	}
	if opts.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(opts.Kind))
	}
	query += ` ORDER BY sequence ASC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}
	return j.query(ctx, query, args...)
}

// Recent returns up to n entries, newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]Entry, error) {
	return j.query(ctx,
		`SELECT sequence, session_id, ts, kind, course_id, topic_id, detail, ok
		 FROM entries ORDER BY sequence DESC LIMIT ?`, n)
}

// Counts returns the number of entries per kind.
func (j *Journal) Counts(ctx context.Context) (map[Kind]int, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM entries GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}
	defer rows.Close()

	counts := make(map[Kind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[Kind(kind)] = n
	}
	return counts, rows.Err()
}

func (j *Journal) query(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind string
		var ts int64
		if err := rows.Scan(&e.Sequence, &e.SessionID, &ts, &kind, &e.CourseID, &e.TopicID, &e.Detail, &e.OK); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Kind = Kind(kind)
		e.Timestamp = time.UnixMilli(ts).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// applyPragmas configures SQLite for single-process use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
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

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS entries (
		sequence   INTEGER PRIMARY KEY,
		session_id TEXT    NOT NULL,
		ts         INTEGER NOT NULL,
		kind       TEXT    NOT NULL,
		course_id  TEXT    NOT NULL DEFAULT '',
		topic_id   TEXT    NOT NULL DEFAULT '',
		detail     TEXT    NOT NULL DEFAULT '',
		ok         INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_kind ON entries (kind)`,
	`CREATE TABLE IF NOT EXISTS llm_requests (
		sequence      INTEGER PRIMARY KEY,
		session_id    TEXT    NOT NULL,
		ts            INTEGER NOT NULL,
		provider      TEXT    NOT NULL,
		model         TEXT    NOT NULL,
		purpose       TEXT    NOT NULL DEFAULT '',
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT    NOT NULL DEFAULT ''
	)`,
}

// migrate runs all schema statements.
func migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
