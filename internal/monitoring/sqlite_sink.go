// Package monitoring - sqlite_sink.go provides a durable telemetry sink.
//
// DESIGN: One row per record, JSON payload column for forward compatibility
// plus a few indexed columns for querying (intent, verdict, model, failed).
// Appends go through a single *sql.DB which serializes writes; a failed
// insert surfaces as an error to the Recorder, which falls back or swallows.
package monitoring

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const telemetrySchema = `
CREATE TABLE IF NOT EXISTS telemetry (
	record_id    TEXT PRIMARY KEY,
	request_id   TEXT NOT NULL,
	ts           TEXT NOT NULL,
	intent       TEXT NOT NULL,
	verdict      TEXT NOT NULL,
	mode         TEXT NOT NULL,
	model        TEXT,
	total_tokens INTEGER,
	latency_ms   INTEGER,
	phi          INTEGER NOT NULL,
	documents    INTEGER NOT NULL,
	degraded     INTEGER NOT NULL,
	failed       INTEGER NOT NULL,
	payload      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_telemetry_intent ON telemetry(intent);
CREATE INDEX IF NOT EXISTS idx_telemetry_ts ON telemetry(ts);
`

// SQLiteSink persists telemetry records to a SQLite database.
type SQLiteSink struct {
	db *sql.DB
}

// NewSQLiteSink opens (creating if needed) the database at path and ensures
// the telemetry schema exists.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create telemetry db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open telemetry db: %w", err)
	}
	if _, err := db.Exec(telemetrySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply telemetry schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// Append inserts the record as a single row.
func (s *SQLiteSink) Append(rec *Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`INSERT INTO telemetry
		(record_id, request_id, ts, intent, verdict, mode, model,
		 total_tokens, latency_ms, phi, documents, degraded, failed, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RecordID, rec.RequestID, rec.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"),
		rec.Intent, rec.SafetyVerdict, rec.Mode, rec.Model,
		rec.TotalTokens, rec.LatencyMs,
		boolToInt(rec.PHIDetected), rec.DocumentCount,
		boolToInt(rec.RetrievalDegraded), boolToInt(rec.Failed), string(payload))
	return err
}

// Count returns the number of stored records, optionally filtered by intent.
func (s *SQLiteSink) Count(intent string) (int, error) {
	q := "SELECT COUNT(*) FROM telemetry"
	args := []any{}
	if intent = strings.TrimSpace(intent); intent != "" {
		q += " WHERE intent = ?"
		args = append(args, intent)
	}
	var n int
	err := s.db.QueryRow(q, args...).Scan(&n)
	return n, err
}

// Close closes the database.
func (s *SQLiteSink) Close() error { return s.db.Close() }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
