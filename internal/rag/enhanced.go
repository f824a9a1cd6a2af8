package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/locle27/Koyeb-Booking-sub000/internal/cache"
	"github.com/locle27/Koyeb-Booking-sub000/internal/llm"
)

const (
	defaultEnhanceTimeout = 15 * time.Second
	promptKnowledgeLimit  = 5
	promptHistoryLimit    = 3
	promptReplyPreview    = 200
)

// EnhancedOptions configures the LLM rewrite stage.
type EnhancedOptions struct {
	HotelName string
	// Timeout bounds each provider call. Zero uses 15s.
	Timeout time.Duration
	// Cache holds rewritten answers to anonymous questions. May be nil.
	Cache cache.Cache
}

// EnhancedEngine asks an LLM to rewrite the core engine's answer in warmer
// prose. Whenever the provider fails, times out or returns nothing, the
// core's own answer is returned instead.
type EnhancedEngine struct {
	core     *CoreEngine
	provider llm.Provider
	opts     EnhancedOptions
	log      *logrus.Entry
}

// NewEnhancedEngine wraps core.
func NewEnhancedEngine(core *CoreEngine, provider llm.Provider, opts EnhancedOptions) *EnhancedEngine {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultEnhanceTimeout
	}
	if opts.Cache == nil {
		opts.Cache = cache.Noop{}
	}
	return &EnhancedEngine{
		core:     core,
		provider: provider,
		opts:     opts,
		log:      core.log.WithField("provider", provider.Name()),
	}
}

func (e *EnhancedEngine) Name() string { return "enhanced" }

// Core returns the wrapped engine.
func (e *EnhancedEngine) Core() *CoreEngine { return e.core }

func (e *EnhancedEngine) RetrieveContext(ctx context.Context, query, requesterID string) *RetrievalContext {
	return e.core.RetrieveContext(ctx, query, requesterID)
}

// GenerateAnswer composes the core answer, then tries to improve it. The
// interaction log records whichever answer is returned.
func (e *EnhancedEngine) GenerateAnswer(ctx context.Context, query, requesterID string) *Answer {
	rc := e.core.RetrieveContext(ctx, query, requesterID)
	ans := e.core.Compose(rc)

	// Nothing retrieved means nothing to ground a rewrite on.
	if len(rc.RelevantInfo) > 0 {
		if text, ok := e.enhance(ctx, rc); ok {
			ans.Answer = text
			ans.Enhanced = true
			ans.ModelUsed = e.provider.Model()
		}
	}

	e.core.Record(ctx, rc, ans)
	return ans
}

func (e *EnhancedEngine) enhance(ctx context.Context, rc *RetrievalContext) (string, bool) {
	// Personalized answers depend on the guest, so only anonymous ones are
	// shared. The catalog generation in the key retires rewrites of
	// knowledge that has since been reseeded.
	var key string
	if rc.RequesterID == "" {
		namespace := fmt.Sprintf("answer:%s:%s:%d", e.provider.Name(), e.provider.Model(), rc.generation)
		key = cache.Key(namespace, rc.Query)
		text, hit, err := e.opts.Cache.Get(ctx, key)
		if err != nil {
			e.log.WithError(err).Warn("reading answer cache")
		}
		if hit {
			return text, true
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	system, user := BuildPrompt(e.opts.HotelName, rc)
	start := time.Now()
	resp, err := e.generate(callCtx, llm.Request{
		Messages:    llm.Instruct(system, user),
		Temperature: 0.3,
		MaxTokens:   600,
	})
	if err != nil {
		e.log.WithError(err).WithField("elapsed", time.Since(start)).Warn("enhancement failed, using composed answer")
		return "", false
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		e.log.Warn("enhancement returned no text, using composed answer")
		return "", false
	}

	if key != "" {
		if err := e.opts.Cache.Set(ctx, key, text); err != nil {
			e.log.WithError(err).Warn("writing answer cache")
		}
	}
	return text, true
}

type generation struct {
	resp *llm.Response
	err  error
}

// generate runs the provider call so that the deadline holds even for
// providers that ignore ctx, and turns a provider panic into an error.
// A call that outlives the deadline finishes in the background and its
// result is dropped.
func (e *EnhancedEngine) generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	done := make(chan generation, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- generation{err: fmt.Errorf("provider panic: %v", r)}
			}
		}()
		resp, err := e.provider.Generate(ctx, req)
		done <- generation{resp: resp, err: err}
	}()

	select {
	case g := <-done:
		if g.err == nil && g.resp == nil {
			return nil, llm.ErrEmptyCompletion
		}
		return g.resp, g.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// BuildPrompt renders the system instructions and the guest turn for a
// rewrite of rc.
func BuildPrompt(hotelName string, rc *RetrievalContext) (system, user string) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an expert assistant at the reception of %s.\n\n", hotelName)

	sb.WriteString("HOTEL KNOWLEDGE BASE:\n")
	for i, se := range rc.RelevantInfo {
		if i == promptKnowledgeLimit {
			break
		}
		fmt.Fprintf(&sb, "- %s: %s\n", se.Topic, se.Content)
	}

	if rq := rc.Requester; rq != nil {
		sb.WriteString("\nGUEST INFORMATION:\n")
		fmt.Fprintf(&sb, "- Name: %s\n", rq.Name)
		if b := rq.Booking; b != nil {
			fmt.Fprintf(&sb, "- Booking: %s\n", b.ID)
			if !b.CheckIn.IsZero() {
				fmt.Fprintf(&sb, "- Check-in: %s\n", b.CheckIn.Format("2006-01-02"))
			}
			if !b.CheckOut.IsZero() {
				fmt.Fprintf(&sb, "- Check-out: %s\n", b.CheckOut.Format("2006-01-02"))
			}
			if n := b.Nights(); n > 0 {
				fmt.Fprintf(&sb, "- Stay: %d nights\n", n)
			}
		}
		if len(rq.History) > 0 {
			sb.WriteString("\nPREVIOUS CONVERSATION:\n")
			// History is newest first; replay the latest few oldest first.
			n := len(rq.History)
			if n > promptHistoryLimit {
				n = promptHistoryLimit
			}
			for i := n - 1; i >= 0; i-- {
				p := rq.History[i].Payload
				fmt.Fprintf(&sb, "Guest: %s\nAssistant: %s\n", p.Query, preview(p.Response, promptReplyPreview))
			}
		}
	}

	sb.WriteString(`
INSTRUCTIONS:
1. Answer only from the hotel knowledge above
2. Use the guest's name if available
3. Include specific times, prices and locations when relevant
4. Suggest a next step when appropriate
5. Keep a friendly, professional reception tone
6. If information is missing, say so and refer the guest to reception

Reply with plain conversational text, without JSON or metadata.`)

	return sb.String(), fmt.Sprintf("GUEST QUERY: %q", rc.Query)
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
