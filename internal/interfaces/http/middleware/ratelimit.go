package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/interfaces/http/dto"
)

// RateLimiter is a fixed-window in-memory request budget per key
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
	stop    chan struct{}
	once    sync.Once
}

type client struct {
	tokens    int
	lastReset time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window and
// starts its cleanup loop. Call Stop to end it.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		window:  window,
		stop:    make(chan struct{}),
	}
	go rl.cleanup(window * 2)
	return rl
}

// cleanup forgets clients idle for two windows
func (rl *RateLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for key, c := range rl.clients {
				if now.Sub(c.lastReset) > rl.window*2 {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Allow consumes one request from key's budget
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	c, ok := rl.clients[key]
	if !ok || now.Sub(c.lastReset) >= rl.window {
		rl.clients[key] = &client{tokens: rl.limit - 1, lastReset: now}
		return rl.limit > 0
	}
	if c.tokens > 0 {
		c.tokens--
		return true
	}
	return false
}

// Remaining returns the requests key has left in the current window
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[key]
	if !ok || time.Since(c.lastReset) >= rl.window {
		return rl.limit
	}
	return max(c.tokens, 0)
}

// RateLimit answers 429 once a client exceeds its budget. Authenticated
// requests are keyed by user id so clients behind one address do not share a
// budget; anything else falls back to the client IP.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if id, ok := GetIdentity(c); ok && id.UserID != "" {
			key = "user:" + id.UserID
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		if !limiter.Allow(key) {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(int(limiter.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRateLimited,
				"Too many requests. Please try again later.",
				GetRequestID(c),
			))
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
		c.Next()
	}
}
