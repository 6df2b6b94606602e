package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(start time.Time) (*Limiter, *time.Time) {
	now := start
	l := NewLimiter(NewMemoryStore(), 5, time.Hour)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestCheckAndRecord_AllowsUpToLimit(t *testing.T) {
	l, _ := newTestLimiter(time.Now())

	for i := 0; i < 5; i++ {
		out := l.CheckAndRecord("5551234567", "1.2.3.4")
		assert.True(t, out.Allowed, "attempt %d should be allowed", i+1)
	}

	out := l.CheckAndRecord("5551234567", "1.2.3.4")
	assert.False(t, out.Allowed)
	assert.Equal(t, 60, out.MinutesRemaining)
}

func TestCheckAndRecord_WindowReset(t *testing.T) {
	l, now := newTestLimiter(time.Now())

	for i := 0; i < 6; i++ {
		l.CheckAndRecord("5551234567", "1.2.3.4")
	}
	assert.False(t, l.CheckAndRecord("5551234567", "1.2.3.4").Allowed)

	*now = now.Add(61 * time.Minute)
	out := l.CheckAndRecord("5551234567", "1.2.3.4")
	require.True(t, out.Allowed)

	// Reset means a fresh window of 4 more attempts.
	for i := 0; i < 4; i++ {
		assert.True(t, l.CheckAndRecord("5551234567", "1.2.3.4").Allowed)
	}
	assert.False(t, l.CheckAndRecord("5551234567", "1.2.3.4").Allowed)
}

func TestCheckAndRecord_MinutesRemainingRoundsUp(t *testing.T) {
	l, now := newTestLimiter(time.Now())

	for i := 0; i < 5; i++ {
		l.CheckAndRecord("a@b.com", "1.2.3.4")
	}
	*now = now.Add(30*time.Minute + 30*time.Second)

	out := l.CheckAndRecord("a@b.com", "1.2.3.4")
	require.False(t, out.Allowed)
	assert.Equal(t, 30, out.MinutesRemaining)
}

func TestCheckAndRecord_KeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(time.Now())

	for i := 0; i < 5; i++ {
		l.CheckAndRecord("5551234567", "1.2.3.4")
	}
	assert.False(t, l.CheckAndRecord("5551234567", "1.2.3.4").Allowed)

	// Same identity from another IP, and another identity from the same IP,
	// are separate windows.
	assert.True(t, l.CheckAndRecord("5551234567", "5.6.7.8").Allowed)
	assert.True(t, l.CheckAndRecord("5559876543", "1.2.3.4").Allowed)
}

func TestCheckAndRecord_ConcurrentSameKey(t *testing.T) {
	l := NewLimiter(NewMemoryStore(), 5, time.Hour)

	var wg sync.WaitGroup
	allowed := make(chan bool, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- l.CheckAndRecord("5551234567", "1.2.3.4").Allowed
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	assert.Equal(t, 5, count, "exactly the limit may pass, regardless of interleaving")
}

func TestSweep_DeletesOnlyExpired(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()

	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("old%d", i)
		store.Set(key, &Record{Key: key, Count: 2, WindowStart: now.Add(-2 * time.Hour)})
	}
	store.Set("fresh", &Record{Key: "fresh", Count: 1, WindowStart: now})

	deleted := store.DeleteExpired(now.Add(-time.Hour))
	assert.Equal(t, 3, deleted)
	assert.Equal(t, 1, store.Len())
	assert.NotNil(t, store.Get("fresh"))
	assert.Nil(t, store.Get("old0"))
}
