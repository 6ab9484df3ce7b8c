package auth

import (
	"sync"
	"time"

	"github.com/mrlokans/bookreviews/internal/config"
	"github.com/mrlokans/bookreviews/internal/database/users"
)

// LoginLimiter throttles failed logins per client IP and username.
// Usernames are folded, so "Bob" and "bob" share one counter.
type LoginLimiter struct {
	mu              sync.Mutex
	attempts        map[string]*attemptRecord
	maxAttempts     int
	window          time.Duration
	lockout         time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
	stop            chan struct{}
	stopOnce        sync.Once
}

type attemptRecord struct {
	failures     int
	firstFailure time.Time
	lockedUntil  time.Time
}

// NewLoginLimiter returns nil when cfg.MaxLoginAttempts is not positive;
// a nil limiter allows every attempt.
func NewLoginLimiter(cfg config.Auth) *LoginLimiter {
	if cfg.MaxLoginAttempts <= 0 {
		return nil
	}

	window := cfg.RateLimitWindow
	if window <= 0 {
		window = 15 * time.Minute
	}
	lockout := cfg.LockoutDuration
	if lockout <= 0 {
		lockout = 30 * time.Minute
	}

	l := &LoginLimiter{
		attempts:        make(map[string]*attemptRecord),
		maxAttempts:     cfg.MaxLoginAttempts,
		window:          window,
		lockout:         lockout,
		cleanupInterval: 5 * time.Minute,
		now:             time.Now,
		stop:            make(chan struct{}),
	}
	go l.cleanupLoop()

	return l
}

// Stop ends the background cleanup. Safe to call more than once.
func (l *LoginLimiter) Stop() {
	if l == nil {
		return
	}
	l.stopOnce.Do(func() { close(l.stop) })
}

func limiterKey(ip, username string) string {
	return ip + "|" + users.Fold(username)
}

// Allow reports whether another attempt may be made, and if not, how long
// until the lockout ends.
func (l *LoginLimiter) Allow(ip, username string) (bool, time.Duration) {
	if l == nil {
		return true, 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.attempts[limiterKey(ip, username)]
	if !ok {
		return true, 0
	}

	now := l.now()
	if now.Before(record.lockedUntil) {
		return false, record.lockedUntil.Sub(now)
	}
	return true, 0
}

// RecordFailure counts a failed attempt and reports whether it triggered a lockout.
func (l *LoginLimiter) RecordFailure(ip, username string) bool {
	if l == nil {
		return false
	}

	key := limiterKey(ip, username)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.attempts[key]
	if !ok || now.Sub(record.firstFailure) > l.window {
		record = &attemptRecord{firstFailure: now}
		l.attempts[key] = record
	}

	record.failures++
	if record.failures >= l.maxAttempts {
		record.lockedUntil = now.Add(l.lockout)
		record.failures = 0
		record.firstFailure = now
		return true
	}
	return false
}

// RecordSuccess forgets earlier failures for the pair.
func (l *LoginLimiter) RecordSuccess(ip, username string) {
	if l == nil {
		return
	}

	l.mu.Lock()
	delete(l.attempts, limiterKey(ip, username))
	l.mu.Unlock()
}

func (l *LoginLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stop:
			return
		}
	}
}

// cleanup drops records whose window and lockout have both passed.
func (l *LoginLimiter) cleanup() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, record := range l.attempts {
		if now.Sub(record.firstFailure) > l.window && !now.Before(record.lockedUntil) {
			delete(l.attempts, key)
		}
	}
}
