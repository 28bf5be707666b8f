// Package ratelimit keeps one token bucket per client for the HTTP API.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config controls the per-client buckets
type Config struct {
	Enabled           bool
	RequestsPerSecond float64
	Burst             int
}

// Limiter implements per-client token bucket rate limiting
type Limiter struct {
	config  Config
	clients map[string]*client
	mu      sync.RWMutex
	now     func() time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	mu       sync.Mutex
}

// New creates a new rate limiter
func New(cfg Config) *Limiter {
	return &Limiter{
		config:  cfg,
		clients: make(map[string]*client),
		now:     time.Now,
	}
}

// Allow checks if a request from the given client is allowed
func (l *Limiter) Allow(clientID string) bool {
	if !l.config.Enabled {
		return true
	}

	c := l.getClient(clientID)
	now := l.now()

	c.mu.Lock()
	c.lastSeen = now
	c.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// Clients returns the number of tracked clients
func (l *Limiter) Clients() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.clients)
}

// getClient gets or creates the bucket for a client
func (l *Limiter) getClient(clientID string) *client {
	l.mu.RLock()
	c, exists := l.clients[clientID]
	l.mu.RUnlock()

	if exists {
		return c
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if c, exists := l.clients[clientID]; exists {
		return c
	}

	c = &client{
		limiter:  rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.Burst),
		lastSeen: l.now(),
	}
	l.clients[clientID] = c
	return c
}

// Cleanup removes clients idle for longer than maxIdle
func (l *Limiter) Cleanup(maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-maxIdle)
	removed := 0
	for id, c := range l.clients {
		c.mu.Lock()
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, id)
			removed++
		}
		c.mu.Unlock()
	}
	return removed
}

// StartCleanup periodically drops idle clients until ctx is done
func (l *Limiter) StartCleanup(ctx context.Context, interval, maxIdle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.Cleanup(maxIdle)
			}
		}
	}()
}
