// Package ratelimit implements an in-memory token bucket limiter used to
// shield the validation endpoints from request floods. One bucket per key,
// refilled at a fixed rate, with stale buckets evicted in the background.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Config describes a token bucket: Capacity tokens, refilled by RefillRate
// tokens every RefillInterval.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"60"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"60"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1m"`
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Result reports the outcome of a single Allow call.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the request that produced this result may proceed.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long the caller should wait before retrying, zero
// when the request was allowed or the reset time has already passed.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	d := time.Until(r.ResetAt)
	if d < 0 {
		return 0
	}
	return d
}

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// Bucket is a thread-safe token bucket limiter keyed by an arbitrary string.
type Bucket struct {
	cfg     Config
	mu      sync.Mutex
	buckets map[string]*bucket

	stopOnce sync.Once
	stop     chan struct{}
}

const (
	cleanupInterval = 5 * time.Minute
	staleAfter      = time.Hour
)

// New returns a Bucket for the given config and starts the background
// eviction of idle buckets. Close releases the eviction goroutine.
func New(cfg Config) (*Bucket, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	b := &Bucket{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	go b.evictLoop()
	return b, nil
}

// Allow consumes one token from the bucket for key. A Result with negative
// Remaining means the request exceeded the limit.
func (b *Bucket) Allow(_ context.Context, key string) Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	state, ok := b.buckets[key]
	if !ok {
		state = &bucket{tokens: b.cfg.Capacity, lastRefill: now}
		b.buckets[key] = state
	}

	// cap the interval count so a long-idle bucket cannot overflow
	elapsed := now.Sub(state.lastRefill)
	maxIntervals := int64(b.cfg.Capacity/b.cfg.RefillRate + 1)
	intervals := int(min(int64(elapsed/b.cfg.RefillInterval), maxIntervals))
	if intervals > 0 {
		state.tokens = min(state.tokens+intervals*b.cfg.RefillRate, b.cfg.Capacity)
		state.lastRefill = now
	}

	state.tokens--
	state.lastAccess = now

	return Result{
		Limit:     b.cfg.Capacity,
		Remaining: state.tokens,
		ResetAt:   state.lastRefill.Add(b.cfg.RefillInterval),
	}
}

// Reset discards the bucket for key, restoring its full capacity.
func (b *Bucket) Reset(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.buckets, key)
}

// Close stops the background eviction. Safe to call repeatedly.
func (b *Bucket) Close() {
	b.stopOnce.Do(func() { close(b.stop) })
}

func (b *Bucket) evictLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.evictStale()
		case <-b.stop:
			return
		}
	}
}

func (b *Bucket) evictStale() {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	for key, state := range b.buckets {
		if now.Sub(state.lastAccess) > staleAfter {
			delete(b.buckets, key)
		}
	}
}
