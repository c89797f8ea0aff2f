package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a call id does not exist.
var ErrNotFound = errors.New("store: call not found")

// CallRecord is one orchestrated remote call, as kept for the debug
// endpoints and the live monitor.
type CallRecord struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	SessionID  string    `json:"session_id,omitempty"`
	Utterance  string    `json:"utterance"`
	Reply      string    `json:"reply"`
	Outcome    string    `json:"outcome"`
	Shape      string    `json:"shape"`
	Attempts   int       `json:"attempts"`
	Status     int       `json:"status"`
	DurationMs int64     `json:"duration_ms"`
	Request    string    `json:"request,omitempty"`
	Response   string    `json:"response,omitempty"`
}

// Store persists call records in a DuckDB database file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema. An empty path opens an in-memory database.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertCall writes one record and returns its id. A missing id or
// timestamp is filled in.
func (s *Store) InsertCall(ctx context.Context, rec CallRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if _, err := s.db.ExecContext(
		ctx,
		`INSERT INTO calls (
		  call_id, created_at, session_id, utterance, reply, outcome,
		  shape, attempts, status, duration_ms, request, response
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.CreatedAt,
		rec.SessionID,
		rec.Utterance,
		rec.Reply,
		rec.Outcome,
		rec.Shape,
		rec.Attempts,
		rec.Status,
		rec.DurationMs,
		rec.Request,
		rec.Response,
	); err != nil {
		return "", fmt.Errorf("insert call: %w", err)
	}
	return rec.ID, nil
}

// RecentCalls returns up to limit records, newest first. Request and
// response bodies are omitted; CallByID carries the full record.
func (s *Store) RecentCalls(ctx context.Context, limit int) ([]CallRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT call_id, created_at, session_id, utterance, reply, outcome,
		        shape, attempts, status, duration_ms
		 FROM calls ORDER BY created_at DESC, call_id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent calls: %w", err)
	}
	defer rows.Close()

	var records []CallRecord
	for rows.Next() {
		var rec CallRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.CreatedAt,
			&rec.SessionID,
			&rec.Utterance,
			&rec.Reply,
			&rec.Outcome,
			&rec.Shape,
			&rec.Attempts,
			&rec.Status,
			&rec.DurationMs,
		); err != nil {
			return nil, fmt.Errorf("scan call row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate call rows: %w", err)
	}
	return records, nil
}

// CallByID returns one full record, including the raw request and
// response bodies.
func (s *Store) CallByID(ctx context.Context, id string) (CallRecord, error) {
	var rec CallRecord
	err := s.db.QueryRowContext(
		ctx,
		`SELECT call_id, created_at, session_id, utterance, reply, outcome,
		        shape, attempts, status, duration_ms, request, response
		 FROM calls WHERE call_id = ?`,
		id,
	).Scan(
		&rec.ID,
		&rec.CreatedAt,
		&rec.SessionID,
		&rec.Utterance,
		&rec.Reply,
		&rec.Outcome,
		&rec.Shape,
		&rec.Attempts,
		&rec.Status,
		&rec.DurationMs,
		&rec.Request,
		&rec.Response,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return CallRecord{}, ErrNotFound
	}
	if err != nil {
		return CallRecord{}, fmt.Errorf("query call %s: %w", id, err)
	}
	return rec, nil
}
