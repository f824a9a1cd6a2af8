package backlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/locle27/Koyeb-Booking-sub000/internal/db"
)

// Store manages persistence of unanswered questions.
type Store struct {
	db *db.DB
}

// NewStore creates a new backlog store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Normalize folds case, whitespace and trailing punctuation so repeats of a
// question match.
func Normalize(question string) string {
	q := strings.Join(strings.Fields(strings.ToLower(question)), " ")
	return strings.TrimRight(q, "?!. ")
}

// Record adds a question to the backlog, or bumps the asked count of the
// matching open question.
func (s *Store) Record(ctx context.Context, question, requesterID string) (*Question, error) {
	norm := Normalize(question)
	if norm == "" {
		return nil, ErrEmptyQuestion
	}
	question = strings.TrimSpace(question)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning backlog transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	var id string
	err = tx.QueryRowContext(ctx,
		s.db.Rebind(`SELECT id FROM backlog_questions WHERE normalized = ? AND status = ?`),
		norm, StatusOpen,
	).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		id = uuid.New().String()
		_, err = tx.ExecContext(ctx,
			s.db.Rebind(`INSERT INTO backlog_questions (id, question, normalized, requester_id, asked, status, category, answered_by, answered_at, created_at, updated_at)
			 VALUES (?, ?, ?, ?, 1, ?, '', '', 0, ?, ?)`),
			id, question, norm, requesterID, StatusOpen, now.UnixNano(), now.UnixNano(),
		)
		if err != nil {
			return nil, fmt.Errorf("inserting question: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("finding open question: %w", err)
	default:
		_, err = tx.ExecContext(ctx,
			s.db.Rebind(`UPDATE backlog_questions SET asked = asked + 1, requester_id = ?, updated_at = ? WHERE id = ?`),
			requesterID, now.UnixNano(), id,
		)
		if err != nil {
			return nil, fmt.Errorf("updating question: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing backlog: %w", err)
	}
	return s.GetByID(ctx, id)
}

// RecordMiss logs a question the engine had no knowledge for.
func (s *Store) RecordMiss(ctx context.Context, query, requesterID string) error {
	_, err := s.Record(ctx, query, requesterID)
	return err
}

const selectColumns = `SELECT id, question, requester_id, asked, status, category, answered_by, answered_at, created_at, updated_at
	 FROM backlog_questions`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanQuestion(row scanner) (*Question, error) {
	var q Question
	var answeredAt, createdAt, updatedAt int64
	if err := row.Scan(&q.ID, &q.Question, &q.RequesterID, &q.Asked, &q.Status, &q.Category, &q.AnsweredBy, &answeredAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	q.CreatedAt = time.Unix(0, createdAt).UTC()
	q.UpdatedAt = time.Unix(0, updatedAt).UTC()
	if answeredAt > 0 {
		t := time.Unix(0, answeredAt).UTC()
		q.AnsweredAt = &t
	}
	return &q, nil
}

// GetByID retrieves a question by its ID.
func (s *Store) GetByID(ctx context.Context, id string) (*Question, error) {
	q, err := scanQuestion(s.db.QueryRowContext(ctx, s.db.Rebind(selectColumns+` WHERE id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting question: %w", err)
	}
	return q, nil
}

// List returns questions matching the filter, most asked first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Question, error) {
	query := selectColumns + ` WHERE 1=1`
	args := []interface{}{}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}

	query += " ORDER BY asked DESC, created_at ASC"

	// OFFSET needs a LIMIT in SQLite, so it only applies to paged listings.
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning question: %w", err)
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

// MarkAnswered closes a question, noting the knowledge category that now
// answers it.
func (s *Store) MarkAnswered(ctx context.Context, id, category, answeredBy string) error {
	now := time.Now().UTC().UnixNano()
	result, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE backlog_questions SET status = ?, category = ?, answered_by = ?, answered_at = ?, updated_at = ?
		 WHERE id = ?`),
		StatusAnswered, category, answeredBy, now, now, id,
	)
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus changes the status of a question.
func (s *Store) UpdateStatus(ctx context.Context, id string, status Status) error {
	result, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE backlog_questions SET status = ?, updated_at = ? WHERE id = ?`),
		status, time.Now().UTC().UnixNano(), id,
	)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// OpenCount returns the number of open questions.
func (s *Store) OpenCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		s.db.Rebind(`SELECT COUNT(*) FROM backlog_questions WHERE status = ?`), StatusOpen,
	).Scan(&count)
	return count, err
}
