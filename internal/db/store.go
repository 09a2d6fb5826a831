package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// timeLayout is fixed width so requested_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// OutcomeFailed marks requests that ended in an error before a provider decision was known.
const OutcomeFailed = "failed"

// Store records pass request outcomes. Credentials are never stored.
type Store struct {
	db *sql.DB
}

// NewStore creates a store on an opened database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Entry is one recorded request outcome.
type Entry struct {
	ID          int64         `json:"id"           yaml:"id"`
	RequestedAt time.Time     `json:"requested_at" yaml:"requested_at"`
	TopicID     string        `json:"topic_id"     yaml:"topic_id"`
	Provider    string        `json:"provider"     yaml:"provider"`
	Outcome     string        `json:"outcome"      yaml:"outcome"`
	Reason      string        `json:"reason"       yaml:"reason"`
	Duration    time.Duration `json:"duration"     yaml:"duration"`
}

// Record inserts e and returns its id.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO requests(requested_at, topic_id, provider, outcome, reason, duration_ms)
		VALUES(?, ?, ?, ?, ?, ?)`,
		e.RequestedAt.UTC().Format(timeLayout), e.TopicID, e.Provider, e.Outcome, e.Reason, e.Duration.Milliseconds())
	if err != nil {
		return 0, fmt.Errorf("insert request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("request id: %w", err)
	}
	return id, nil
}

// List returns up to limit entries, newest first. A non-positive limit returns all entries.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, requested_at, topic_id, provider, outcome, reason, duration_ms
		FROM requests ORDER BY requested_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var (
			e           Entry
			requestedAt string
			durationMS  int64
		)
		if err := rows.Scan(&e.ID, &requestedAt, &e.TopicID, &e.Provider, &e.Outcome, &e.Reason, &durationMS); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		e.RequestedAt, err = time.Parse(timeLayout, requestedAt)
		if err != nil {
			return nil, fmt.Errorf("parse requested_at %q: %w", requestedAt, err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}
	return out, nil
}
