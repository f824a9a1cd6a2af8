package llm

import (
	"context"
	"sync"
	"time"
)

// RateLimitedProvider spaces requests to at most rpm per minute using a
// token bucket refilled continuously.
type RateLimitedProvider struct {
	Provider

	rpm      int
	mu       sync.Mutex
	tokens   float64
	lastFill time.Time
	now      func() time.Time
}

// NewRateLimitedProvider wraps provider with a limiter allowing rpm
// requests per minute, with a burst of rpm.
func NewRateLimitedProvider(provider Provider, rpm int) *RateLimitedProvider {
	return &RateLimitedProvider{
		Provider: provider,
		rpm:      rpm,
		tokens:   float64(rpm),
		lastFill: time.Now(),
		now:      time.Now,
	}
}

// Generate waits for a token, then delegates. It returns ctx.Err() if the
// context ends first, so an enhancement timeout also bounds queueing.
func (r *RateLimitedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	for {
		wait := r.take()
		if wait == 0 {
			return r.Provider.Generate(ctx, req)
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// take consumes a token and returns 0, or returns how long until one is available.
func (r *RateLimitedProvider) take() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	perToken := time.Minute / time.Duration(r.rpm)
	r.tokens += float64(now.Sub(r.lastFill)) / float64(perToken)
	if r.tokens > float64(r.rpm) {
		r.tokens = float64(r.rpm)
	}
	r.lastFill = now

	if r.tokens >= 1 {
		r.tokens--
		return 0
	}
	return time.Duration((1 - r.tokens) * float64(perToken))
}
