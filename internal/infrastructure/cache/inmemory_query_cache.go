package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
)

// entry is a JSON encoded value with its expiration
type entry struct {
	value     []byte
	expiresAt time.Time
}

// InMemoryQueryCache implements QueryCache using an in-memory map.
// Values are stored JSON encoded so callers never share mutable state with the cache.
// This is suitable for single-instance deployments and testing.
type InMemoryQueryCache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryQueryCache creates a new in-memory query cache.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryQueryCache(cleanupInterval time.Duration) *InMemoryQueryCache {
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	c := &InMemoryQueryCache{
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop(cleanupInterval)

	return c
}

// Get decodes a live entry into dest
func (c *InMemoryQueryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(e.value, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// Set stores value for ttl. A non-positive ttl is a no-op.
func (c *InMemoryQueryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", key, err)
	}

	c.mu.Lock()
	c.entries[key] = entry{value: b, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Delete removes keys
func (c *InMemoryQueryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

// DeletePrefix removes every key starting with prefix
func (c *InMemoryQueryCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (c *InMemoryQueryCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

func (c *InMemoryQueryCache) cleanupLoop(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *InMemoryQueryCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// Size returns the number of entries, expired ones included (for testing/monitoring)
func (c *InMemoryQueryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ shared.QueryCache = (*InMemoryQueryCache)(nil)
