package ratelimit

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreQuota(t *testing.T) {
	store := NewMemoryStore(100, 15*time.Minute)
	ctx := context.Background()

	for i := 1; i <= 100; i++ {
		res, err := store.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d should be allowed", i)
		assert.Equal(t, 100, res.Limit)
		assert.Equal(t, 100-i, res.Remaining)
	}

	res, err := store.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed, "101st request should be rejected")
	assert.Equal(t, 0, res.Remaining)
}

func TestMemoryStoreIsolatesIdentities(t *testing.T) {
	store := NewMemoryStore(1, 15*time.Minute)
	ctx := context.Background()

	res, err := store.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = store.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	res, err = store.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, res.Allowed, "a different identity has its own window")
}

func TestMemoryStoreLazyWindowReset(t *testing.T) {
	store := NewMemoryStore(2, 15*time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := store.Allow(ctx, "client")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, now.Add(15*time.Minute), res.ResetAt)
	}
	res, err := store.Allow(ctx, "client")
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	// First request after the window elapsed starts a fresh window at 1.
	now = now.Add(16 * time.Minute)
	res, err = store.Allow(ctx, "client")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
	assert.Equal(t, now.Add(15*time.Minute), res.ResetAt)
}

func TestMemoryStoreWindowBoundaryBelongsToNewWindow(t *testing.T) {
	store := NewMemoryStore(1, 15*time.Minute)
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := start
	store.now = func() time.Time { return now }
	ctx := context.Background()

	res, err := store.Allow(ctx, "client")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = store.Allow(ctx, "client")
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	// Exactly at windowStart+window the counter resets.
	now = start.Add(15 * time.Minute)
	res, err = store.Allow(ctx, "client")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestMemoryStoreConcurrentSameIdentity(t *testing.T) {
	store := NewMemoryStore(100, 15*time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := store.Allow(ctx, "shared")
			if err != nil {
				return
			}
			if res.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowed, "exactly the quota may pass under contention")
}

func TestClientAddress(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "192.168.1.10:54321",
			want:       "192.168.1.10",
		},
		{
			name:       "ipv6 remote addr",
			remoteAddr: "[::1]:54321",
			want:       "::1",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for chain takes first",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 70.41.3.18"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "198.51.100.2"},
			want:       "198.51.100.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientAddress(r))
		})
	}
}
