package rag

import (
	"context"

	"github.com/locle27/Koyeb-Booking-sub000/internal/bookings"
	"github.com/locle27/Koyeb-Booking-sub000/internal/interactions"
	"github.com/locle27/Koyeb-Booking-sub000/internal/knowledge"
)

// ScoredEntry is a knowledge entry with its similarity to the query.
type ScoredEntry struct {
	knowledge.Entry
	Score float64 `json:"score"`
}

// RequesterContext is what is known about the person asking.
type RequesterContext struct {
	Name    string                `json:"name"`
	History []interactions.Record `json:"recent_interactions"`
	Booking *bookings.Booking     `json:"booking,omitempty"`
}

// RetrievalContext is the result of scoring one query against the catalog.
// RelevantInfo is ordered by score, highest first.
type RetrievalContext struct {
	Query        string            `json:"query"`
	RequesterID  string            `json:"requester_id,omitempty"`
	RelevantInfo []ScoredEntry     `json:"relevant_info"`
	Confidence   float64           `json:"confidence"`
	Requester    *RequesterContext `json:"requester,omitempty"`

	// generation of the catalog snapshot the query was scored against.
	generation uint64
}

// RequesterName returns the known requester name, or "".
func (rc *RetrievalContext) RequesterName() string {
	if rc.Requester == nil {
		return ""
	}
	return rc.Requester.Name
}

// Answer is the response returned to a guest.
type Answer struct {
	Answer       string   `json:"answer"`
	Confidence   float64  `json:"confidence"`
	Sources      []string `json:"sources"`
	Suggestions  []string `json:"suggestions"`
	Personalized bool     `json:"personalized"`
	Enhanced     bool     `json:"enhanced"`
	ModelUsed    string   `json:"model_used,omitempty"`
}

// Engine answers guest questions.
type Engine interface {
	RetrieveContext(ctx context.Context, query, requesterID string) *RetrievalContext
	// GenerateAnswer always returns a well-formed answer. Failures in
	// collaborators degrade the answer but are never returned.
	GenerateAnswer(ctx context.Context, query, requesterID string) *Answer
	Name() string
}

// KnowledgeStore persists the catalog.
type KnowledgeStore interface {
	LoadAll(ctx context.Context) ([]knowledge.Entry, error)
	Seed(ctx context.Context, entries []knowledge.Entry) (int, error)
	SeedIfEmpty(ctx context.Context, entries []knowledge.Entry) (bool, error)
}

// InteractionLog persists answered questions.
type InteractionLog interface {
	Append(ctx context.Context, rec interactions.Record) (*interactions.Record, error)
	Recent(ctx context.Context, requesterID string, limit int) ([]interactions.Record, error)
}

// MissLog collects questions the catalog had nothing for, so staff can
// fill the gap.
type MissLog interface {
	RecordMiss(ctx context.Context, query, requesterID string) error
}
