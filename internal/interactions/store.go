// Package interactions is the append-only log of answered guest questions,
// read back to personalize later answers.
package interactions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/locle27/Koyeb-Booking-sub000/internal/db"
)

// ErrNoRequester is returned when appending a record without a requester.
var ErrNoRequester = errors.New("interaction requester is required")

// Payload is the serialized summary of one answered query.
type Payload struct {
	Query      string  `json:"query"`
	Response   string  `json:"response"`
	Confidence float64 `json:"confidence"`
}

// Record is one logged interaction.
type Record struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"requester_id"`
	ReferenceID string    `json:"reference_id"` // booking id when known, else a synthetic query id
	Payload     Payload   `json:"payload"`
	Timestamp   time.Time `json:"timestamp"`
}

// Store persists interaction records. Appends are independent single-row
// inserts, so concurrent callers need no coordination beyond the database's.
type Store struct {
	db *db.DB
}

// NewStore creates a new interaction store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// NewReferenceID returns a synthetic per-query reference.
func NewReferenceID() string {
	return "query_" + uuid.New().String()
}

// Append inserts a record, filling in ID, ReferenceID and Timestamp when unset.
func (s *Store) Append(ctx context.Context, rec Record) (*Record, error) {
	if rec.RequesterID == "" {
		return nil, ErrNoRequester
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.ReferenceID == "" {
		rec.ReferenceID = NewReferenceID()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	rec.Timestamp = rec.Timestamp.UTC()

	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(
		`INSERT INTO interactions (id, requester_id, reference_id, payload, created_at) VALUES (?, ?, ?, ?, ?)`),
		rec.ID, rec.RequesterID, rec.ReferenceID, string(payload), rec.Timestamp.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting interaction: %w", err)
	}
	return &rec, nil
}

// Recent returns up to limit records for the requester, newest first.
// Rows whose payload cannot be decoded are returned with an empty payload.
func (s *Store) Recent(ctx context.Context, requesterID string, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, s.db.Rebind(
		`SELECT id, requester_id, reference_id, payload, created_at
		 FROM interactions WHERE requester_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`),
		requesterID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying interactions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var payload string
		var createdAt int64
		if err := rows.Scan(&rec.ID, &rec.RequesterID, &rec.ReferenceID, &payload, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning interaction: %w", err)
		}
		_ = json.Unmarshal([]byte(payload), &rec.Payload)
		rec.Timestamp = time.Unix(0, createdAt).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the number of records logged for the requester.
func (s *Store) Count(ctx context.Context, requesterID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, s.db.Rebind(
		`SELECT COUNT(*) FROM interactions WHERE requester_id = ?`), requesterID).Scan(&n)
	return n, err
}
