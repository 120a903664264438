package ratelimit

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// record is one identity's counter within the current window.
type record struct {
	count       int
	windowStart time.Time
}

// MemoryStore is a fixed-window in-process Store. Records live in a
// bounded LRU so many distinct identities cannot grow memory without
// limit; evicting a live record only forgives at most one window, which
// is acceptable for a front-door limiter.
type MemoryStore struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	records *lru.Cache[string, *record]
	now     func() time.Time
}

// defaultMaxIdentities bounds the number of tracked identities.
const defaultMaxIdentities = 65536

// NewMemoryStore creates an in-memory store with the given quota.
func NewMemoryStore(limit int, window time.Duration) *MemoryStore {
	cache, _ := lru.New[string, *record](defaultMaxIdentities)
	return &MemoryStore{
		limit:   limit,
		window:  window,
		records: cache,
		now:     time.Now,
	}
}

// Allow implements Store. The window resets lazily: the first request
// observed at or after windowStart+window starts a new window with
// count 1, so a request arriving exactly at the boundary belongs to the
// new window.
func (s *MemoryStore) Allow(ctx context.Context, key string) (Result, error) {
	now := s.now()

	// The read-modify-write of a record must hold the lock across the
	// whole check so two concurrent requests from one client cannot both
	// observe a stale count.
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records.Get(key)
	if !ok || !now.Before(rec.windowStart.Add(s.window)) {
		rec = &record{count: 1, windowStart: now}
		s.records.Add(key, rec)
	} else {
		rec.count++
	}

	remaining := s.limit - rec.count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   rec.count <= s.limit,
		Limit:     s.limit,
		Remaining: remaining,
		ResetAt:   rec.windowStart.Add(s.window),
	}, nil
}
