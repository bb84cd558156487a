package services

import (
	"sync"

	"golang.org/x/time/rate"
)

// LoginThrottle gates login attempts before any storage or hashing
// work happens. Keys combine email and client IP so one noisy source
// cannot lock out an address for everyone else.
type LoginThrottle interface {
	Allow(key string) bool
}

// AllowAllThrottle performs no throttling: every attempt is evaluated
// independently.
type AllowAllThrottle struct{}

func (AllowAllThrottle) Allow(string) bool { return true }

// RateThrottle keeps a token-bucket limiter per key.
type RateThrottle struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func NewRateThrottle(rps float64, burst int) *RateThrottle {
	return &RateThrottle{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (t *RateThrottle) Allow(key string) bool {
	t.mu.Lock()
	limiter, ok := t.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(t.rps, t.burst)
		t.limiters[key] = limiter
	}
	t.mu.Unlock()

	return limiter.Allow()
}

// NewLoginThrottle picks the throttle implementation for the configured
// rate. Zero keeps the historical no-throttling behavior.
func NewLoginThrottle(rps float64, burst int) LoginThrottle {
	if rps <= 0 {
		return AllowAllThrottle{}
	}
	return NewRateThrottle(rps, burst)
}
