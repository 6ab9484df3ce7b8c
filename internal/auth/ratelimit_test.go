package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookreviews/internal/config"
)

func newTestLimiter(t *testing.T, clock *time.Time) *LoginLimiter {
	t.Helper()
	l := NewLoginLimiter(config.Auth{
		MaxLoginAttempts: 3,
		RateLimitWindow:  time.Minute,
		LockoutDuration:  10 * time.Minute,
	})
	l.now = func() time.Time { return *clock }
	t.Cleanup(l.Stop)
	return l
}

func TestLoginLimiter_LocksAfterMaxFailures(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLimiter(t, &clock)

	assert.False(t, l.RecordFailure("10.0.0.1", "bob1"))
	assert.False(t, l.RecordFailure("10.0.0.1", "bob1"))
	allowed, _ := l.Allow("10.0.0.1", "bob1")
	assert.True(t, allowed)

	assert.True(t, l.RecordFailure("10.0.0.1", "Bob1"))

	allowed, retryAfter := l.Allow("10.0.0.1", "BOB1")
	assert.False(t, allowed)
	assert.Equal(t, 10*time.Minute, retryAfter)

	// Other clients and other usernames are unaffected.
	allowed, _ = l.Allow("10.0.0.2", "bob1")
	assert.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.1", "alice")
	assert.True(t, allowed)

	clock = clock.Add(10*time.Minute + time.Second)
	allowed, _ = l.Allow("10.0.0.1", "bob1")
	assert.True(t, allowed)
}

func TestLoginLimiter_WindowResetsCount(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLimiter(t, &clock)

	l.RecordFailure("10.0.0.1", "bob1")
	l.RecordFailure("10.0.0.1", "bob1")

	clock = clock.Add(2 * time.Minute)
	assert.False(t, l.RecordFailure("10.0.0.1", "bob1"))

	allowed, _ := l.Allow("10.0.0.1", "bob1")
	assert.True(t, allowed)
}

func TestLoginLimiter_SuccessClearsFailures(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLimiter(t, &clock)

	l.RecordFailure("10.0.0.1", "bob1")
	l.RecordFailure("10.0.0.1", "bob1")
	l.RecordSuccess("10.0.0.1", "bob1")

	assert.False(t, l.RecordFailure("10.0.0.1", "bob1"))
	assert.False(t, l.RecordFailure("10.0.0.1", "bob1"))
}

func TestLoginLimiter_Cleanup(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLimiter(t, &clock)

	l.RecordFailure("10.0.0.1", "bob1")
	for i := 0; i < 3; i++ {
		l.RecordFailure("10.0.0.2", "carol")
	}

	clock = clock.Add(2 * time.Minute)
	l.cleanup()

	l.mu.Lock()
	assert.Len(t, l.attempts, 1, "locked-out record must survive cleanup")
	l.mu.Unlock()

	clock = clock.Add(10 * time.Minute)
	l.cleanup()

	l.mu.Lock()
	assert.Empty(t, l.attempts)
	l.mu.Unlock()
}

func TestLoginLimiter_Disabled(t *testing.T) {
	l := NewLoginLimiter(config.Auth{})
	assert.Nil(t, l)

	for i := 0; i < 10; i++ {
		l.RecordFailure("10.0.0.1", "bob1")
	}
	allowed, _ := l.Allow("10.0.0.1", "bob1")
	assert.True(t, allowed)
	l.Stop()
}
