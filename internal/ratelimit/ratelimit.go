// Package ratelimit paces outbound calls to the search and LLM backends.
//
// Unlike a token bucket, the backends here impose two simultaneous rules: a
// minimum spacing between consecutive calls and a hard cap per rolling
// window. Pacer blocks the caller until both are satisfied.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultMinInterval is the minimum spacing between granted calls.
	DefaultMinInterval = 3 * time.Second
	// DefaultMaxPerWindow is the call cap within one rolling window.
	DefaultMaxPerWindow = 25
	// DefaultWindow is the rolling window length.
	DefaultWindow = time.Minute
)

// Pacer enforces a minimum inter-call interval and a per-window call cap.
// All methods are safe for concurrent use; callers are granted in lock order.
type Pacer struct {
	mu           sync.Mutex
	minInterval  time.Duration
	maxPerWindow int
	window       time.Duration

	lastCall    time.Time
	windowStart time.Time
	count       int

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Pacer with the given spacing and per-window cap.
// Non-positive arguments fall back to the defaults.
func New(minInterval time.Duration, maxPerWindow int) *Pacer {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	if maxPerWindow <= 0 {
		maxPerWindow = DefaultMaxPerWindow
	}
	return &Pacer{
		minInterval:  minInterval,
		maxPerWindow: maxPerWindow,
		window:       DefaultWindow,
		now:          time.Now,
		sleep:        sleepContext,
	}
}

// Wait blocks until the next call may proceed, then records the grant.
// It returns early only if the context is cancelled during a sleep.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()

	// A fresh pacer or an expired window starts a new counting window.
	if p.windowStart.IsZero() || now.Sub(p.windowStart) >= p.window {
		p.windowStart = now
		p.count = 0
	}

	// Cap hit: sleep out the remainder of the window, then start a new one.
	if p.count >= p.maxPerWindow {
		remaining := p.window - now.Sub(p.windowStart)
		if remaining > 0 {
			if err := p.sleep(ctx, remaining); err != nil {
				return err
			}
		}
		now = p.now()
		p.windowStart = now
		p.count = 0
	}

	// Enforce minimum spacing since the previous grant.
	if !p.lastCall.IsZero() {
		if since := now.Sub(p.lastCall); since < p.minInterval {
			if err := p.sleep(ctx, p.minInterval-since); err != nil {
				return err
			}
			now = p.now()
		}
	}

	p.lastCall = now
	p.count++
	return nil
}

// sleepContext sleeps for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
