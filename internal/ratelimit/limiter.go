// Package ratelimit caps one-time-passcode issuance per identity and client
// IP using a sliding one-hour window.
package ratelimit

import (
	"log/slog"
	"sync"
	"time"
)

// Outcome is the result of one check-and-record pass.
// When Allowed is false, MinutesRemaining says how long until the window
// reopens, rounded up to whole minutes for the user-facing message.
type Outcome struct {
	Allowed          bool
	MinutesRemaining int
}

// Limiter enforces at most maxAttempts per window for each
// (identity, client IP) key. The check-and-increment sequence runs under a
// single lock so two simultaneous requests for the same key cannot both slip
// under the threshold.
type Limiter struct {
	mu          sync.Mutex
	store       Store
	maxAttempts int
	window      time.Duration

	now  func() time.Time // swapped in tests
	stop chan struct{}
}

func NewLimiter(store Store, maxAttempts int, window time.Duration) *Limiter {
	return &Limiter{
		store:       store,
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
		stop:        make(chan struct{}),
	}
}

// CheckAndRecord records an issuance attempt for identity from clientIP and
// reports whether it is allowed. Rejection is policy, not a fault: the error
// surface stays nil-free and callers branch on Outcome.Allowed.
func (l *Limiter) CheckAndRecord(identity, clientIP string) Outcome {
	key := identity + "_" + clientIP
	now := l.now()

	// The store only serializes individual operations, so the read-then-write
	// here must hold its own lock. A distributed Store would replace this with
	// an atomic server-side increment.
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.store.Get(key)
	switch {
	case rec == nil, now.Sub(rec.WindowStart) > l.window:
		l.store.Set(key, &Record{Key: key, Count: 1, WindowStart: now})
		return Outcome{Allowed: true}
	case rec.Count < l.maxAttempts:
		rec.Count++
		l.store.Set(key, rec)
		return Outcome{Allowed: true}
	default:
		remaining := l.window - now.Sub(rec.WindowStart)
		minutes := int((remaining + time.Minute - 1) / time.Minute)
		if minutes < 1 {
			minutes = 1
		}
		return Outcome{Allowed: false, MinutesRemaining: minutes}
	}
}

// StartSweep launches the periodic cleanup that deletes records whose window
// has expired, bounding memory growth. Deleting concurrently with a check for
// the same key is safe: both outcomes converge to a fresh window.
func (l *Limiter) StartSweep(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n := l.store.DeleteExpired(l.now().Add(-l.window))
				if n > 0 {
					slog.Debug("rate limit sweep", "deleted", n)
				}
			case <-l.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweep goroutine.
func (l *Limiter) Stop() {
	close(l.stop)
}
