package backlog

import (
	"errors"
	"time"
)

var (
	// ErrEmptyQuestion is returned when a question has no words to track.
	ErrEmptyQuestion = errors.New("question is required")
	// ErrNotFound is returned when no question has the given ID.
	ErrNotFound = errors.New("question not found")
)

// Status represents the lifecycle stage of an unanswered question.
type Status string

const (
	StatusOpen      Status = "open"
	StatusAnswered  Status = "answered"
	StatusDismissed Status = "dismissed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusAnswered, StatusDismissed:
		return true
	}
	return false
}

// Question is a guest question the knowledge base could not answer.
// Repeats of the same open question are folded into one row.
type Question struct {
	ID          string     `json:"id"`
	Question    string     `json:"question"`
	RequesterID string     `json:"requester_id,omitempty"` // most recent guest to ask
	Asked       int        `json:"asked"`
	Status      Status     `json:"status"`
	Category    string     `json:"category,omitempty"` // knowledge entry that answered it
	AnsweredBy  string     `json:"answered_by,omitempty"`
	AnsweredAt  *time.Time `json:"answered_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ListFilter controls which questions to return.
type ListFilter struct {
	Status Status
	Limit  int
	Offset int
}
