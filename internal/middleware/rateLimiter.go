package middleware

import (
	"golang.org/x/time/rate"
)

const (
	defaultRPS   = 5
	defaultBurst = 10
)

// RateLimiter throttles the commands one websocket connection may issue.
type RateLimiter struct {
	l *rate.Limiter
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		rps = defaultRPS
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	return &RateLimiter{l: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (l *RateLimiter) Allow() bool {
	return l.l.Allow()
}
