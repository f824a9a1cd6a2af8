package rag

import (
	"context"
	"errors"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/locle27/Koyeb-Booking-sub000/internal/bookings"
	"github.com/locle27/Koyeb-Booking-sub000/internal/knowledge"
)

// Retriever ranks catalog entries for a query and gathers requester context.
type Retriever struct {
	scorer       *Scorer
	floor        float64
	defaultTopK  int
	historyLimit int
	history      InteractionLog
	bookings     bookings.Lookup
	log          *logrus.Entry
}

// NewRetriever creates a retriever. history and lookup may be nil.
func NewRetriever(scorer *Scorer, floor float64, defaultTopK, historyLimit int, history InteractionLog, lookup bookings.Lookup, log *logrus.Entry) *Retriever {
	if lookup == nil {
		lookup = bookings.None{}
	}
	return &Retriever{
		scorer:       scorer,
		floor:        floor,
		defaultTopK:  defaultTopK,
		historyLimit: historyLimit,
		history:      history,
		bookings:     lookup,
		log:          log,
	}
}

// Retrieve scores every entry of catalog against query. Entries at or below
// the confidence floor are dropped; ties keep catalog order. A non-positive
// topK selects the default.
func (r *Retriever) Retrieve(ctx context.Context, catalog []knowledge.Entry, query, requesterID string, topK int) *RetrievalContext {
	if topK <= 0 {
		topK = r.defaultTopK
	}
	rc := &RetrievalContext{
		Query:        query,
		RequesterID:  requesterID,
		RelevantInfo: []ScoredEntry{},
	}

	tokens := Tokenize(query)
	if len(tokens) > 0 {
		for _, e := range catalog {
			score := r.scorer.scoreTokens(tokens, e.Content, e.Keywords)
			if score > r.floor {
				rc.RelevantInfo = append(rc.RelevantInfo, ScoredEntry{Entry: e, Score: score})
			}
		}
		sort.SliceStable(rc.RelevantInfo, func(i, j int) bool {
			return rc.RelevantInfo[i].Score > rc.RelevantInfo[j].Score
		})
		if len(rc.RelevantInfo) > topK {
			rc.RelevantInfo = rc.RelevantInfo[:topK]
		}
		if len(rc.RelevantInfo) > 0 {
			rc.Confidence = rc.RelevantInfo[0].Score
		}
	}

	if requesterID != "" {
		rc.Requester = r.requesterContext(ctx, requesterID)
	}
	return rc
}

func (r *Retriever) requesterContext(ctx context.Context, requesterID string) *RequesterContext {
	rq := &RequesterContext{Name: requesterID}

	if r.history != nil && r.historyLimit > 0 {
		records, err := r.history.Recent(ctx, requesterID, r.historyLimit)
		if err != nil {
			r.log.WithError(err).WithField("requester", requesterID).Warn("loading interaction history")
		}
		rq.History = records
	}

	booking, err := r.bookings.LatestByName(ctx, requesterID)
	switch {
	case err == nil:
		rq.Booking = booking
	case !errors.Is(err, bookings.ErrNotFound):
		r.log.WithError(err).WithField("requester", requesterID).Warn("looking up booking")
	}
	return rq
}
