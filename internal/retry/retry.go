package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/amishk599/skillradar/internal/model"
)

// Source is a decorator that retries transient failures with exponential
// backoff and jitter before delegating to the wrapped VacancySource.
type Source struct {
	inner      model.VacancySource
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

// NewSource wraps a VacancySource with retry logic.
// maxRetries is the number of additional attempts after the first failure.
// baseDelay is the delay before the first retry, doubled on each subsequent retry.
func NewSource(inner model.VacancySource, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *Source {
	return &Source{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

// ListVacancyIDs lists one page, retrying on transient errors.
func (s *Source) ListVacancyIDs(ctx context.Context, page int) ([]string, error) {
	return do(ctx, s, "list", func() ([]string, error) {
		return s.inner.ListVacancyIDs(ctx, page)
	})
}

// FetchVacancy fetches one vacancy, retrying on transient errors.
func (s *Source) FetchVacancy(ctx context.Context, id string) (model.Vacancy, error) {
	return do(ctx, s, "fetch", func() (model.Vacancy, error) {
		return s.inner.FetchVacancy(ctx, id)
	})
}

func do[T any](ctx context.Context, s *Source, op string, call func() (T, error)) (T, error) {
	var zero T

	out, err := call()
	if err == nil {
		return out, nil
	}
	if !isRetryable(err) {
		return zero, err
	}

	lastErr := err
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		delay := s.backoffDelay(attempt, lastErr)

		s.logger.Warn("retrying after transient error",
			"op", op,
			"attempt", attempt,
			"max_retries", s.maxRetries,
			"delay", delay,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		out, err = call()
		if err == nil {
			return out, nil
		}
		if !isRetryable(err) {
			return zero, err
		}
		lastErr = err
	}

	return zero, lastErr
}

// backoffDelay computes the delay for a given attempt with ±30% jitter.
// A Retry-After duration on the error takes precedence.
func (s *Source) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return httpErr.RetryAfter
	}

	delay := s.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}

	jitter := float64(delay) * 0.3
	return time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)
}

// isRetryable returns true if the error represents a transient failure worth retrying.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Context cancellation: never retry.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Temporary()
	}

	// Non-HTTP errors (network, DNS, etc.) are retryable.
	return true
}
