package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/amishk599/skillradar/internal/model"
)

// HostRateLimiter enforces a minimum delay between requests to the same host.
type HostRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter // key: API host
	minDelay time.Duration
}

// NewHostRateLimiter creates a rate limiter that enforces minDelay between
// consecutive requests to the same host. A zero minDelay disables limiting.
func NewHostRateLimiter(minDelay time.Duration) *HostRateLimiter {
	return &HostRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		minDelay: minDelay,
	}
}

func (r *HostRateLimiter) limiter(host string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.limiters[host]
	if !ok {
		limit := rate.Inf
		if r.minDelay > 0 {
			limit = rate.Every(r.minDelay)
		}
		l = rate.NewLimiter(limit, 1)
		r.limiters[host] = l
	}
	return l
}

// Wait blocks until the next request to host is allowed.
// Returns an error if the context is cancelled while waiting.
func (r *HostRateLimiter) Wait(ctx context.Context, host string) error {
	if err := r.limiter(host).Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait for %s: %w", host, err)
	}
	return nil
}

// Source is a decorator that enforces host-level rate limiting before
// delegating to the wrapped VacancySource.
type Source struct {
	inner   model.VacancySource
	limiter *HostRateLimiter
	host    string
}

// NewSource wraps a VacancySource with host-level rate limiting.
// All sources targeting the same host should share the same limiter instance.
func NewSource(inner model.VacancySource, limiter *HostRateLimiter, host string) *Source {
	return &Source{
		inner:   inner,
		limiter: limiter,
		host:    host,
	}
}

// ListVacancyIDs waits for the limiter, then delegates.
func (s *Source) ListVacancyIDs(ctx context.Context, page int) ([]string, error) {
	if err := s.limiter.Wait(ctx, s.host); err != nil {
		return nil, err
	}
	return s.inner.ListVacancyIDs(ctx, page)
}

// FetchVacancy waits for the limiter, then delegates.
func (s *Source) FetchVacancy(ctx context.Context, id string) (model.Vacancy, error) {
	if err := s.limiter.Wait(ctx, s.host); err != nil {
		return model.Vacancy{}, err
	}
	return s.inner.FetchVacancy(ctx, id)
}
