// Package ratelimit throttles outgoing requests to a single metadata source.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limiter is a token bucket tagged with the source it protects.
type Limiter struct {
	limiter *rate.Limiter
	source  string
}

// New creates a limiter for source allowing requestsPerSecond with an equal burst.
func New(source string, requestsPerSecond int) *Limiter {
	return NewWithBurst(source, float64(requestsPerSecond), requestsPerSecond)
}

// NewWithBurst creates a limiter with a fractional rate and explicit burst size.
func NewWithBurst(source string, requestsPerSecond float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		source:  source,
	}
}

// Wait blocks until a request to the source may proceed or ctx is done.
// A nil Limiter never blocks.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", l.source, err)
	}
	return nil
}

// Allow reports whether a request can proceed without blocking.
func (l *Limiter) Allow() bool {
	if l == nil {
		return true
	}
	return l.limiter.Allow()
}

// Source returns the name of the source this limiter protects.
func (l *Limiter) Source() string {
	if l == nil {
		return ""
	}
	return l.source
}
