// Package buildlog keeps an append-only SQLite history of compile
// invocations (source file, session id, diagnostic count, exit code,
// timestamp), queryable by the CLI's `sindac log` verb. This is pure
// audit trail, not a cache: incremental recompilation is explicitly out
// of scope, so a Log never consults its own history to decide whether
// to recompile anything — it only ever appends and reads back.
//
// The shape — a small embedded-database-backed history keyed by a run
// identity — generalizes a process-lifetime module cache into a
// durable, cross-invocation store, since an audit trail needs to
// survive past one process.
package buildlog

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS compile_runs (
	session_id   TEXT PRIMARY KEY,
	source_file  TEXT NOT NULL,
	started_at   DATETIME NOT NULL,
	diag_count   INTEGER NOT NULL,
	exit_code    INTEGER NOT NULL,
	arith_mode   TEXT NOT NULL
);
`

// Log is a handle onto one sindarin.yaml project's build history.
type Log struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures its schema exists.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening build log: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating build log schema: %w", err)
	}
	return &Log{db: db}, nil
}

// Close releases the underlying database handle.
func (l *Log) Close() error {
	return l.db.Close()
}

// Run is one recorded compile invocation.
type Run struct {
	SessionID   string
	SourceFile  string
	StartedAt   time.Time
	DiagCount   int
	ExitCode    int
	ArithMode   string
}

// Append records one compile invocation. It never fails the compile
// itself — callers should log but not abort on error, since the build
// log is audit-only.
func (l *Log) Append(r Run) error {
	_, err := l.db.Exec(
		`INSERT INTO compile_runs (session_id, source_file, started_at, diag_count, exit_code, arith_mode)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.SourceFile, r.StartedAt, r.DiagCount, r.ExitCode, r.ArithMode,
	)
	if err != nil {
		return fmt.Errorf("appending build log entry: %w", err)
	}
	return nil
}

// Recent returns the n most recent runs, newest first.
func (l *Log) Recent(n int) ([]Run, error) {
	rows, err := l.db.Query(
		`SELECT session_id, source_file, started_at, diag_count, exit_code, arith_mode
		 FROM compile_runs ORDER BY started_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying build log: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.SessionID, &r.SourceFile, &r.StartedAt, &r.DiagCount, &r.ExitCode, &r.ArithMode); err != nil {
			return nil, fmt.Errorf("scanning build log row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// FailureRate returns the fraction of the last n runs (or fewer, if the
// log is shorter) that exited non-zero.
func (l *Log) FailureRate(n int) (float64, error) {
	runs, err := l.Recent(n)
	if err != nil {
		return 0, err
	}
	if len(runs) == 0 {
		return 0, nil
	}
	failed := 0
	for _, r := range runs {
		if r.ExitCode != 0 {
			failed++
		}
	}
	return float64(failed) / float64(len(runs)), nil
}
