package rag

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/locle27/Koyeb-Booking-sub000/internal/bookings"
	"github.com/locle27/Koyeb-Booking-sub000/internal/config"
	"github.com/locle27/Koyeb-Booking-sub000/internal/db"
	"github.com/locle27/Koyeb-Booking-sub000/internal/interactions"
	"github.com/locle27/Koyeb-Booking-sub000/internal/knowledge"
	"github.com/locle27/Koyeb-Booking-sub000/internal/llm"
)

type testEnv struct {
	core    *CoreEngine
	history *interactions.Store
	store   *knowledge.Store
}

// newTestEnv builds an initialized core engine over an in-memory database
// seeded with catalog.
func newTestEnv(t *testing.T, catalog []knowledge.Entry, mods ...func(*Options)) *testEnv {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	env := &testEnv{
		history: interactions.NewStore(database),
		store:   knowledge.NewStore(database),
	}
	opts := Options{
		RAG:          config.DefaultConfig().RAG,
		Knowledge:    env.store,
		Interactions: env.history,
		Seed:         catalog,
	}
	for _, m := range mods {
		m(&opts)
	}
	env.core = NewCoreEngine(opts)
	if err := env.core.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return env
}

// stubLookup returns a fixed booking for one guest.
type stubLookup struct {
	name    string
	booking *bookings.Booking
	err     error
}

func (s stubLookup) LatestByName(_ context.Context, name string) (*bookings.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	if name == s.name {
		b := *s.booking
		return &b, nil
	}
	return nil, bookings.ErrNotFound
}

// failingLog is an InteractionLog whose every call fails.
type failingLog struct{}

var errStorage = errors.New("storage unavailable")

func (failingLog) Append(context.Context, interactions.Record) (*interactions.Record, error) {
	return nil, errStorage
}

func (failingLog) Recent(context.Context, string, int) ([]interactions.Record, error) {
	return nil, errStorage
}

// mockProvider is a configurable llm.Provider. With ignoreCtx the delay is
// slept through regardless of cancellation.
type mockProvider struct {
	mu        sync.Mutex
	calls     []llm.Request
	text      string
	err       error
	delay     time.Duration
	ignoreCtx bool
	panicWith string
}

func (m *mockProvider) Name() string  { return "mock" }
func (m *mockProvider) Model() string { return "mock-model" }

func (m *mockProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.panicWith != "" {
		panic(m.panicWith)
	}
	if m.delay > 0 && m.ignoreCtx {
		time.Sleep(m.delay)
	} else if m.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.delay):
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llm.Response{Text: m.text, Model: "mock-model"}, nil
}

func (m *mockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
