package rag

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/locle27/Koyeb-Booking-sub000/internal/bookings"
	"github.com/locle27/Koyeb-Booking-sub000/internal/cache"
	"github.com/locle27/Koyeb-Booking-sub000/internal/interactions"
	"github.com/locle27/Koyeb-Booking-sub000/internal/knowledge"
)

func newEnhanced(t *testing.T, p *mockProvider, opts EnhancedOptions) (*EnhancedEngine, *testEnv) {
	t.Helper()
	env := newTestEnv(t, knowledge.DefaultCatalog())
	if opts.HotelName == "" {
		opts.HotelName = "118 Hang Bac Hostel"
	}
	return NewEnhancedEngine(env.core, p, opts), env
}

func TestEnhancedSuccess(t *testing.T) {
	p := &mockProvider{text: "  Welcome! Check-in starts at 14:00.  "}
	eng, env := newEnhanced(t, p, EnhancedOptions{})
	ctx := context.Background()

	core := env.core.Compose(env.core.RetrieveContext(ctx, "What time is check-in?", "Alice"))
	ans := eng.GenerateAnswer(ctx, "What time is check-in?", "Alice")

	if !ans.Enhanced || ans.ModelUsed != "mock-model" {
		t.Errorf("expected enhanced answer from mock-model, got %+v", ans)
	}
	if ans.Answer != "Welcome! Check-in starts at 14:00." {
		t.Errorf("unexpected answer %q", ans.Answer)
	}
	if ans.Confidence != core.Confidence {
		t.Errorf("confidence changed: %v vs %v", ans.Confidence, core.Confidence)
	}
	if strings.Join(ans.Sources, ",") != strings.Join(core.Sources, ",") {
		t.Errorf("sources changed: %v vs %v", ans.Sources, core.Sources)
	}

	recs, _ := env.history.Recent(ctx, "Alice", 5)
	if len(recs) != 1 || recs[0].Payload.Response != ans.Answer {
		t.Errorf("expected the enhanced answer logged once, got %+v", recs)
	}
}

func TestEnhancedFallback(t *testing.T) {
	tests := []struct {
		name     string
		provider *mockProvider
	}{
		{"provider error", &mockProvider{err: errors.New("quota exceeded")}},
		{"empty output", &mockProvider{text: " \n "}},
		{"timeout", &mockProvider{text: "too late", delay: time.Second}},
		{"timeout ignored by provider", &mockProvider{text: "too late", delay: time.Second, ignoreCtx: true}},
		{"provider panic", &mockProvider{panicWith: "boom"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, env := newEnhanced(t, tt.provider, EnhancedOptions{Timeout: 30 * time.Millisecond})
			ctx := context.Background()

			want := env.core.Compose(env.core.RetrieveContext(ctx, "How much is taxi to airport?", ""))
			start := time.Now()
			got := eng.GenerateAnswer(ctx, "How much is taxi to airport?", "")

			if time.Since(start) > 500*time.Millisecond {
				t.Errorf("fallback took too long: %v", time.Since(start))
			}
			if got.Enhanced || got.ModelUsed != "" {
				t.Errorf("expected non-enhanced answer, got %+v", got)
			}
			if got.Answer != want.Answer || got.Confidence != want.Confidence {
				t.Errorf("expected core answer %q, got %q", want.Answer, got.Answer)
			}
			if tt.provider.callCount() != 1 {
				t.Errorf("expected 1 provider call, got %d", tt.provider.callCount())
			}
		})
	}
}

func TestEnhancedCacheFollowsReseed(t *testing.T) {
	p := &mockProvider{text: "Airport taxi is 280,000 VND."}
	eng, env := newEnhanced(t, p, EnhancedOptions{Cache: cache.NewMemory(time.Minute)})
	ctx := context.Background()

	eng.GenerateAnswer(ctx, "How much is taxi to airport?", "")
	before := env.core.Generation()

	catalog := knowledge.DefaultCatalog()
	for i := range catalog {
		if catalog[i].Category == "transportation" {
			catalog[i].Content = strings.ReplaceAll(catalog[i].Content, "280,000", "350,000")
		}
	}
	if _, err := env.core.SeedKnowledge(ctx, catalog); err != nil {
		t.Fatalf("SeedKnowledge: %v", err)
	}
	if env.core.Generation() == before {
		t.Fatal("reseeding should advance the catalog generation")
	}

	p.mu.Lock()
	p.text = "Airport taxi is 350,000 VND."
	p.mu.Unlock()

	ans := eng.GenerateAnswer(ctx, "How much is taxi to airport?", "")
	if p.callCount() != 2 {
		t.Errorf("expected a fresh rewrite after reseed, got %d calls", p.callCount())
	}
	if ans.Answer != "Airport taxi is 350,000 VND." {
		t.Errorf("stale cached answer served: %q", ans.Answer)
	}
}

func TestEnhancedSkipsProviderWithoutMatches(t *testing.T) {
	p := &mockProvider{text: "made up"}
	eng, _ := newEnhanced(t, p, EnhancedOptions{})

	ans := eng.GenerateAnswer(context.Background(), "asdkjasdlkj nonsense query", "")
	if ans.Answer != FallbackAnswer || ans.Enhanced {
		t.Errorf("expected plain fallback, got %+v", ans)
	}
	if p.callCount() != 0 {
		t.Errorf("provider should not be called, got %d calls", p.callCount())
	}
}

func TestEnhancedCachesAnonymousAnswers(t *testing.T) {
	p := &mockProvider{text: "Taxi to the airport is 280,000 VND."}
	eng, _ := newEnhanced(t, p, EnhancedOptions{Cache: cache.NewMemory(time.Minute)})
	ctx := context.Background()

	first := eng.GenerateAnswer(ctx, "How much is taxi to airport?", "")
	second := eng.GenerateAnswer(ctx, "  how much is TAXI to airport?", "")
	if p.callCount() != 1 {
		t.Errorf("expected cached second answer, got %d calls", p.callCount())
	}
	if !second.Enhanced || second.Answer != first.Answer {
		t.Errorf("cached answer mismatch: %+v vs %+v", second, first)
	}

	eng.GenerateAnswer(ctx, "How much is taxi to airport?", "Frank")
	eng.GenerateAnswer(ctx, "How much is taxi to airport?", "Frank")
	if p.callCount() != 3 {
		t.Errorf("personalized answers must not be cached, got %d calls", p.callCount())
	}
}

func TestEnhancedRetrieveContextDelegates(t *testing.T) {
	eng, env := newEnhanced(t, &mockProvider{}, EnhancedOptions{})
	ctx := context.Background()
	a := eng.RetrieveContext(ctx, "wifi", "")
	b := env.core.RetrieveContext(ctx, "wifi", "")
	if len(a.RelevantInfo) != len(b.RelevantInfo) || a.Confidence != b.Confidence {
		t.Errorf("delegated retrieval differs: %+v vs %+v", a, b)
	}
	if eng.Core() != env.core {
		t.Error("Core() should return the wrapped engine")
	}
}

func TestBuildPrompt(t *testing.T) {
	rc := &RetrievalContext{
		Query: "Can I check out late?",
		RelevantInfo: []ScoredEntry{
			scored("check_out", "Check-out Policy", "Check-out time is 12:00 (noon).", 0.9),
		},
		Requester: &RequesterContext{
			Name: "Alice",
			Booking: &bookings.Booking{
				ID:       "BK-1",
				CheckIn:  time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
				CheckOut: time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC),
			},
			History: []interactions.Record{
				{Payload: interactions.Payload{Query: "newest", Response: strings.Repeat("x", 300)}},
				{Payload: interactions.Payload{Query: "middle", Response: "ok"}},
				{Payload: interactions.Payload{Query: "oldest", Response: "ok"}},
				{Payload: interactions.Payload{Query: "too old", Response: "ok"}},
			},
		},
	}

	system, user := BuildPrompt("118 Hang Bac Hostel", rc)

	for _, want := range []string{
		"118 Hang Bac Hostel",
		"- Check-out Policy: Check-out time is 12:00 (noon).",
		"- Name: Alice",
		"- Booking: BK-1",
		"- Check-in: 2025-06-20",
		"- Check-out: 2025-06-23",
		"- Stay: 3 nights",
		strings.Repeat("x", 200) + "...",
	} {
		if !strings.Contains(system, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
	if strings.Contains(system, "too old") {
		t.Error("prompt should include only the last 3 exchanges")
	}
	if strings.Index(system, "Guest: oldest") > strings.Index(system, "Guest: newest") {
		t.Error("history should be replayed oldest first")
	}
	if !strings.Contains(user, `"Can I check out late?"`) {
		t.Errorf("user turn missing query: %q", user)
	}
}
