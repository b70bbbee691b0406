package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per key. Each bucket refills
// limit tokens per window and holds at most limit tokens.
type RateLimiter struct {
	visitors map[string]*visitor
	limit    int
	window   time.Duration
	every    rate.Limit
	perToken time.Duration
	now      func() time.Time
	mu       sync.Mutex
}

// New creates a new rate limiter. A limit of zero denies every request.
func New(limit int, window time.Duration) *RateLimiter {
	every := rate.Limit(0)
	var perToken time.Duration
	if limit > 0 && window > 0 {
		perToken = window / time.Duration(limit)
		every = rate.Every(perToken)
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		every:    every,
		perToken: perToken,
		now:      time.Now,
	}
}

// Limit returns the number of requests allowed per window.
func (rl *RateLimiter) Limit() int {
	return rl.limit
}

func (rl *RateLimiter) visitor(key string, now time.Time) *visitor {
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.every, rl.limit)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v
}

// Allow checks if a request is allowed for the given key
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	return rl.visitor(key, now).limiter.AllowN(now, 1)
}

// GetRemaining returns the number of whole tokens left for the given key
func (rl *RateLimiter) GetRemaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		return rl.limit
	}
	tokens := v.limiter.TokensAt(rl.now())
	if tokens < 0 {
		return 0
	}
	return int(math.Floor(tokens))
}

// GetResetTime returns when the next token becomes available for the given key
func (rl *RateLimiter) GetResetTime(key string) time.Time {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[key]
	if !ok || rl.every == 0 {
		return now.Add(rl.window)
	}
	tokens := v.limiter.TokensAt(now)
	if tokens >= 1 {
		return now
	}
	wait := time.Duration((1 - tokens) * float64(rl.perToken))
	return now.Add(wait)
}

// tracked reports how many keys hold a bucket.
func (rl *RateLimiter) tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// Cleanup drops buckets that have not been used for a full window. An idle
// bucket is full again by then, so dropping it changes nothing for the key.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.window)
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
		}
	}
}

// StartCleanup runs Cleanup every interval until ctx is done.
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Cleanup()
			}
		}
	}()
}
