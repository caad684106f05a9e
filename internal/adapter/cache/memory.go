// Package cache implements the answer cache in process memory and in Redis.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
	domainRepo "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/repository"
)

type memoryEntry struct {
	answers   []model.Answer
	expiresAt time.Time
}

// MemoryCache is an in-process AnswerCache. Expired entries are dropped on read.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// Option configures a MemoryCache
type Option func(*MemoryCache)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *MemoryCache) {
		c.now = now
	}
}

// NewMemoryCache creates an empty in-memory cache
func NewMemoryCache(opts ...Option) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ domainRepo.AnswerCache = (*MemoryCache)(nil)

func (c *MemoryCache) Get(_ context.Context, key string) ([]model.Answer, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return cloneAnswers(entry.answers), true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, answers []model.Answer, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		answers:   cloneAnswers(answers),
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

// Reset drops every entry.
func (c *MemoryCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]memoryEntry)
}

// Len returns the number of stored entries, including expired ones not yet read.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func cloneAnswers(answers []model.Answer) []model.Answer {
	if answers == nil {
		return nil
	}
	out := make([]model.Answer, len(answers))
	copy(out, answers)
	return out
}
