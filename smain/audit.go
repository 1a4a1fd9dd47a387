/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package smain

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Audit is a local SQLite-backed run-history log: every Script started
// through [Shell] with audit mode enabled records one row per run
// (SPEC_FULL.md §4 supplement, mirroring an interactive shell's
// history file). A nil *Audit is valid and simply discards records.
type Audit struct {
	db *sql.DB
}

// OpenAudit opens (creating if necessary) the SQLite database at path
// and ensures its schema exists.
func OpenAudit(path string) (*Audit, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	exit_code INTEGER NOT NULL,
	started_at TEXT NOT NULL,
	duration_ms INTEGER NOT NULL
);`
	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Audit{db: db}, nil
}

// Close releases the underlying database handle.
func (a *Audit) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Record inserts one run's (name, exit_code, started_at, duration)
// row. A nil Audit is a no-op — recording never blocks a Script's own
// completion on its own write, per SPEC_FULL.md §4's supplement note.
func (a *Audit) Record(ctx context.Context, name string, exitCode int, startedAt time.Time, duration time.Duration) error {
	if a == nil || a.db == nil {
		return nil
	}
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO runs (id, name, exit_code, started_at, duration_ms) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), name, exitCode, startedAt.Format(time.RFC3339Nano), duration.Milliseconds(),
	)
	return err
}

// Run is one recorded history entry, as returned by [Audit.Recent].
type Run struct {
	ID         string
	Name       string
	ExitCode   int
	StartedAt  time.Time
	DurationMs int64
}

// Recent returns the most recent limit runs, newest first.
func (a *Audit) Recent(ctx context.Context, limit int) ([]Run, error) {
	if a == nil || a.db == nil {
		return nil, nil
	}
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, name, exit_code, started_at, duration_ms FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var startedAt string
		if err := rows.Scan(&r.ID, &r.Name, &r.ExitCode, &startedAt, &r.DurationMs); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		out = append(out, r)
	}
	return out, rows.Err()
}
