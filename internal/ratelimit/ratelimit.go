// Package ratelimit provides a fixed-window request throttle keyed by
// client identifier. Each key gets a counter that resets when its window
// expires; a background sweeper prunes stale windows so the map stays
// bounded across many distinct clients.
package ratelimit

import (
	"sync"
	"time"
)

// Config holds throttle settings
type Config struct {
	// Window is the fixed window length
	Window time.Duration
	// Max is the number of requests admitted per key per window
	Max int
	// SweepInterval controls how often expired windows are pruned
	SweepInterval time.Duration
}

// DefaultConfig returns the throttle settings used for the contact endpoint
func DefaultConfig() *Config {
	return &Config{
		Window:        time.Minute,
		Max:           10,
		SweepInterval: 5 * time.Minute,
	}
}

type window struct {
	count   int
	resetAt time.Time
}

// Limiter tracks per-key request counts in fixed time windows
type Limiter struct {
	config *Config

	mu      sync.Mutex
	windows map[string]*window

	done     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a throttle and starts its sweeper goroutine.
// Callers must Stop it at shutdown.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}

	l := &Limiter{
		config:  config,
		windows: make(map[string]*window),
		done:    make(chan struct{}),
	}

	go l.sweep()

	return l
}

// Allow reports whether a request from key at time now should be admitted.
// A fresh or expired window admits and starts a new count; within a live
// window the count increments and requests beyond Max are denied.
func (l *Limiter) Allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		l.windows[key] = &window{count: 1, resetAt: now.Add(l.config.Window)}
		return true
	}

	w.count++
	return w.count <= l.config.Max
}

// Size returns the number of tracked keys
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// Stop halts the sweeper goroutine. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case now := <-ticker.C:
			l.prune(now)
		}
	}
}

func (l *Limiter) prune(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, key)
		}
	}
}
