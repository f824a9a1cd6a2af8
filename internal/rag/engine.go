package rag

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/locle27/Koyeb-Booking-sub000/internal/bookings"
	"github.com/locle27/Koyeb-Booking-sub000/internal/cache"
	"github.com/locle27/Koyeb-Booking-sub000/internal/config"
	"github.com/locle27/Koyeb-Booking-sub000/internal/interactions"
	"github.com/locle27/Koyeb-Booking-sub000/internal/knowledge"
	"github.com/locle27/Koyeb-Booking-sub000/internal/llm"
	"github.com/locle27/Koyeb-Booking-sub000/internal/logging"
)

// Options configures a CoreEngine.
type Options struct {
	RAG       config.RAGConfig
	Knowledge KnowledgeStore
	// Interactions may be nil, in which case nothing is persisted.
	Interactions InteractionLog
	// Misses may be nil. When set, questions with no retrieved knowledge
	// are recorded there.
	Misses   MissLog
	Bookings bookings.Lookup
	// Seed is written on Initialize, either always or only into an empty
	// store depending on RAG.ReseedOnStart.
	Seed   []knowledge.Entry
	Logger *logrus.Entry
}

// CoreEngine answers from the knowledge catalog alone. The catalog is held
// as an immutable snapshot, replaced wholesale when knowledge is reseeded.
type CoreEngine struct {
	opts      Options
	retriever *Retriever
	composer  *Composer
	log       *logrus.Entry

	mu      sync.RWMutex
	catalog []knowledge.Entry
	// generation increases on every reload so derived data, such as cached
	// rewrites, can tell which catalog it was built from.
	generation uint64
	ready      bool
	closed     bool
}

// NewCoreEngine creates an engine. Call Initialize before answering.
func NewCoreEngine(opts Options) *CoreEngine {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &CoreEngine{
		opts: opts,
		retriever: NewRetriever(
			NewScorer(opts.RAG.Scorer),
			opts.RAG.ConfidenceFloor,
			opts.RAG.TopK,
			opts.RAG.HistoryLimit,
			opts.Interactions,
			opts.Bookings,
			log,
		),
		composer: NewComposer(opts.RAG.MaxSources, opts.RAG.MaxSuggestions),
		log:      log,
	}
}

// Initialize seeds the store and loads the catalog snapshot.
func (e *CoreEngine) Initialize(ctx context.Context) error {
	if len(e.opts.Seed) > 0 {
		if e.opts.RAG.ReseedOnStart {
			if _, err := e.opts.Knowledge.Seed(ctx, e.opts.Seed); err != nil {
				return fmt.Errorf("seeding knowledge: %w", err)
			}
		} else if _, err := e.opts.Knowledge.SeedIfEmpty(ctx, e.opts.Seed); err != nil {
			return fmt.Errorf("seeding knowledge: %w", err)
		}
	}
	if err := e.reload(ctx); err != nil {
		return err
	}

	e.mu.Lock()
	e.ready = true
	e.closed = false
	e.mu.Unlock()

	e.log.WithField("entries", len(e.Catalog())).Info("knowledge catalog loaded")
	return nil
}

// Shutdown stops the engine. Later questions get the fallback answer and
// are not logged.
func (e *CoreEngine) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.catalog = nil
	return nil
}

// SeedKnowledge upserts entries and swaps in the reloaded catalog.
func (e *CoreEngine) SeedKnowledge(ctx context.Context, entries []knowledge.Entry) (int, error) {
	n, err := e.opts.Knowledge.Seed(ctx, entries)
	if err != nil {
		return 0, err
	}
	if err := e.reload(ctx); err != nil {
		return n, err
	}
	e.log.WithField("entries", n).Info("knowledge reseeded")
	return n, nil
}

func (e *CoreEngine) reload(ctx context.Context) error {
	entries, err := e.opts.Knowledge.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading knowledge: %w", err)
	}
	e.mu.Lock()
	e.catalog = entries
	e.generation++
	e.mu.Unlock()
	return nil
}

// Catalog returns the current snapshot in insertion order.
func (e *CoreEngine) Catalog() []knowledge.Entry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]knowledge.Entry, len(e.catalog))
	copy(out, e.catalog)
	return out
}

func (e *CoreEngine) snapshot() (catalog []knowledge.Entry, generation uint64, open bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	// The slice is never mutated in place, so sharing it is safe.
	return e.catalog, e.generation, e.ready && !e.closed
}

// Generation reports how many times the catalog has been loaded.
func (e *CoreEngine) Generation() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.generation
}

func (e *CoreEngine) Name() string { return "core" }

// RetrieveContext ranks the catalog using the configured top-k.
func (e *CoreEngine) RetrieveContext(ctx context.Context, query, requesterID string) *RetrievalContext {
	return e.RetrieveTopK(ctx, query, requesterID, 0)
}

// RetrieveTopK ranks the catalog returning at most topK entries.
func (e *CoreEngine) RetrieveTopK(ctx context.Context, query, requesterID string, topK int) *RetrievalContext {
	catalog, generation, _ := e.snapshot()
	rc := e.retriever.Retrieve(ctx, catalog, query, requesterID, topK)
	rc.generation = generation
	return rc
}

// Compose builds the answer for a retrieval without persisting anything.
func (e *CoreEngine) Compose(rc *RetrievalContext) *Answer {
	return e.composer.Compose(rc)
}

// GenerateAnswer retrieves, composes and logs the answer.
func (e *CoreEngine) GenerateAnswer(ctx context.Context, query, requesterID string) *Answer {
	rc := e.RetrieveContext(ctx, query, requesterID)
	ans := e.Compose(rc)
	e.Record(ctx, rc, ans)
	return ans
}

// Record appends the answered question to the interaction log when the
// requester is known, and notes unanswerable questions in the miss log.
// Failures are logged.
func (e *CoreEngine) Record(ctx context.Context, rc *RetrievalContext, ans *Answer) {
	if _, _, open := e.snapshot(); !open {
		return
	}
	if len(rc.RelevantInfo) == 0 && e.opts.Misses != nil && strings.TrimSpace(rc.Query) != "" {
		if err := e.opts.Misses.RecordMiss(ctx, rc.Query, rc.RequesterID); err != nil {
			e.log.WithError(err).Warn("recording unanswered question")
		}
	}
	if rc.RequesterID == "" || e.opts.Interactions == nil {
		return
	}

	rec := interactions.Record{
		RequesterID: rc.RequesterID,
		Payload: interactions.Payload{
			Query:      rc.Query,
			Response:   ans.Answer,
			Confidence: ans.Confidence,
		},
	}
	if rc.Requester != nil && rc.Requester.Booking != nil {
		rec.ReferenceID = rc.Requester.Booking.ID
	}
	if _, err := e.opts.Interactions.Append(ctx, rec); err != nil {
		e.log.WithError(err).WithField("requester", rc.RequesterID).Warn("recording interaction")
	}
}

// NewEngine picks the answering strategy once, at construction: enhanced
// when enhancement is enabled and a provider could be built, core otherwise.
func NewEngine(cfg *config.Config, core *CoreEngine, provider llm.Provider, answers cache.Cache) Engine {
	if !cfg.Enhancement.Enabled || provider == nil {
		return core
	}
	return NewEnhancedEngine(core, provider, EnhancedOptions{
		HotelName: cfg.HotelName,
		Timeout:   cfg.Enhancement.Timeout,
		Cache:     answers,
	})
}
