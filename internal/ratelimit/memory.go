package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryCounter struct {
	count     int
	expiresAt time.Time
}

// memoryLimiter keeps counters in-process. It exists for tests and
// single-node development; production wiring uses the redis limiter.
type memoryLimiter struct {
	mu       sync.Mutex
	counters map[string]*memoryCounter
	now      func() time.Time
}

func NewMemoryLimiter() *memoryLimiter {
	return &memoryLimiter{
		counters: make(map[string]*memoryCounter),
		now:      time.Now,
	}
}

func (l *memoryLimiter) TooManyAttempts(_ context.Context, key string, max int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c := l.live(key)
	return c != nil && c.count >= max, nil
}

func (l *memoryLimiter) Hit(_ context.Context, key string, window time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c := l.live(key); c != nil {
		c.count++
		return nil
	}
	l.counters[key] = &memoryCounter{count: 1, expiresAt: l.now().Add(window)}
	return nil
}

func (l *memoryLimiter) Clear(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.counters, key)
	return nil
}

// live returns the counter for key, dropping it first if it decayed.
// Callers must hold mu.
func (l *memoryLimiter) live(key string) *memoryCounter {
	c, ok := l.counters[key]
	if !ok {
		return nil
	}
	if l.now().After(c.expiresAt) {
		delete(l.counters, key)
		return nil
	}
	return c
}
