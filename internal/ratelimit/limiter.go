// Package ratelimit keeps one token bucket per upstream bucket name so the
// RapidAPI quota is shared fairly between flight searches and airport lookups.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

type Limit struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// DefaultLimit matches the RapidAPI basic plan's short-term allowance.
func DefaultLimit() Limit {
	return Limit{
		RequestsPerSecond: 5,
		Burst:             10,
	}
}

type ProviderLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	defaults Limit
}

func NewProviderLimiter(defaults Limit) *ProviderLimiter {
	return &ProviderLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: defaults,
	}
}

func (p *ProviderLimiter) limiter(bucket string) *rate.Limiter {
	p.mu.RLock()
	l, ok := p.limiters[bucket]
	p.mu.RUnlock()
	if ok {
		return l
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if l, ok = p.limiters[bucket]; ok {
		return l
	}
	l = rate.NewLimiter(rate.Limit(p.defaults.RequestsPerSecond), p.defaults.Burst)
	p.limiters[bucket] = l
	return l
}

// SetLimit replaces the bucket's limiter.
func (p *ProviderLimiter) SetLimit(bucket string, limit Limit) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.limiters[bucket] = rate.NewLimiter(rate.Limit(limit.RequestsPerSecond), limit.Burst)
}

// Wait blocks until the bucket has a token or ctx is done.
func (p *ProviderLimiter) Wait(ctx context.Context, bucket string) error {
	return p.limiter(bucket).Wait(ctx)
}

// Allow takes a token if one is available right now.
func (p *ProviderLimiter) Allow(bucket string) bool {
	return p.limiter(bucket).Allow()
}
