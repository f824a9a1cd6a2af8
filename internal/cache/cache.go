// Package cache stores generated answers for reuse across identical questions.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/locle27/Koyeb-Booking-sub000/internal/config"
)

// Cache is a string key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// New builds the backend named in cfg. "none" and "" disable caching.
func New(cfg config.CacheConfig) (Cache, error) {
	switch cfg.Backend {
	case "", "none":
		return Noop{}, nil
	case "memory":
		return NewMemory(cfg.TTL), nil
	case "redis":
		return NewRedis(cfg.RedisAddr, cfg.RedisDB, cfg.TTL)
	default:
		return nil, fmt.Errorf("unsupported cache backend: %q", cfg.Backend)
	}
}

// Key normalizes a question and hashes it with the given namespace so
// "WiFi password?" and " wifi password? " share an entry.
func Key(namespace, question string) string {
	norm := strings.Join(strings.Fields(strings.ToLower(question)), " ")
	sum := sha256.Sum256([]byte(norm))
	return namespace + ":" + hex.EncodeToString(sum[:])
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (Noop) Set(context.Context, string, string) error         { return nil }
func (Noop) Close() error                                      { return nil }

type memoryItem struct {
	value   string
	expires time.Time
}

// Memory is an in-process cache. Expired entries are dropped lazily on read
// and swept on write.
type Memory struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.Mutex
	items map[string]memoryItem
}

// NewMemory creates an in-memory cache. A non-positive ttl keeps entries forever.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, now: time.Now, items: make(map[string]memoryItem)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[key]
	if !ok {
		return "", false, nil
	}
	if !item.expires.IsZero() && !m.now().Before(item.expires) {
		delete(m.items, key)
		return "", false, nil
	}
	return item.value, true, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for k, item := range m.items {
		if !item.expires.IsZero() && !now.Before(item.expires) {
			delete(m.items, k)
		}
	}
	item := memoryItem{value: value}
	if m.ttl > 0 {
		item.expires = now.Add(m.ttl)
	}
	m.items[key] = item
	return nil
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *Memory) Close() error { return nil }
