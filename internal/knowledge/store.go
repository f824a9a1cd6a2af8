package knowledge

import (
	"context"
	"fmt"
	"time"

	"github.com/locle27/Koyeb-Booking-sub000/internal/db"
)

// Store persists the knowledge catalog, one row per category.
type Store struct {
	db *db.DB
}

// NewStore creates a new knowledge store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// LoadAll returns every entry in the order it was first seeded.
func (s *Store) LoadAll(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, topic, content, keywords FROM knowledge_entries ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying knowledge: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Category, &e.Topic, &e.Content, &e.Keywords); err != nil {
			return nil, fmt.Errorf("scanning knowledge entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM knowledge_entries`).Scan(&n)
	return n, err
}

// Seed upserts entries keyed by category. Re-seeding an existing category
// overwrites its topic, content and keywords but keeps its original position,
// so seeding the same catalog twice leaves exactly one row per category.
// All entries are validated before anything is written.
func (s *Store) Seed(ctx context.Context, entries []Entry) (int, error) {
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return 0, fmt.Errorf("entry %d (%q): %w", i, e.Topic, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM knowledge_entries`).Scan(&next); err != nil {
		return 0, fmt.Errorf("reading catalog position: %w", err)
	}

	upsert := s.db.Rebind(`INSERT INTO knowledge_entries (category, seq, topic, content, keywords, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(category) DO UPDATE SET
		   topic = excluded.topic,
		   content = excluded.content,
		   keywords = excluded.keywords,
		   updated_at = excluded.updated_at`)

	now := time.Now().UTC().UnixNano()
	for _, e := range entries {
		next++
		if _, err := tx.ExecContext(ctx, upsert, e.Category, next, e.Topic, e.Content, e.Keywords, now, now); err != nil {
			return 0, fmt.Errorf("upserting %q: %w", e.Category, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing seed: %w", err)
	}
	return len(entries), nil
}

// SeedIfEmpty seeds entries only when the table holds no rows. It reports
// whether anything was written.
func (s *Store) SeedIfEmpty(ctx context.Context, entries []Entry) (bool, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("counting knowledge: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	if _, err := s.Seed(ctx, entries); err != nil {
		return false, err
	}
	return true, nil
}
