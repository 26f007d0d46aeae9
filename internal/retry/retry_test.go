package retry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amishk599/skillradar/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockSource calls fn on each FetchVacancy, tracking call count.
type mockSource struct {
	calls     int
	listCalls int
	fn        func(attempt int) (model.Vacancy, error)
	listFn    func(attempt int) ([]string, error)
}

func (m *mockSource) ListVacancyIDs(_ context.Context, _ int) ([]string, error) {
	m.listCalls++
	return m.listFn(m.listCalls)
}

func (m *mockSource) FetchVacancy(_ context.Context, _ string) (model.Vacancy, error) {
	m.calls++
	return m.fn(m.calls)
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	mock := &mockSource{fn: func(_ int) (model.Vacancy, error) {
		return model.Vacancy{ID: "1", Title: "Лаборант"}, nil
	}}

	rs := NewSource(mock, 2, 10*time.Millisecond, discardLogger())
	got, err := rs.FetchVacancy(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "1" {
		t.Fatalf("unexpected vacancy: %+v", got)
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call, got %d", mock.calls)
	}
}

func TestRetry_RetriesOn5xx_SucceedsOnSecondAttempt(t *testing.T) {
	mock := &mockSource{fn: func(attempt int) (model.Vacancy, error) {
		if attempt == 1 {
			return model.Vacancy{}, &model.HTTPError{StatusCode: 503, Err: errors.New("service unavailable")}
		}
		return model.Vacancy{ID: "1"}, nil
	}}

	rs := NewSource(mock, 2, 10*time.Millisecond, discardLogger())
	if _, err := rs.FetchVacancy(context.Background(), "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.calls)
	}
}

func TestRetry_ListRetriesOnNetworkError(t *testing.T) {
	mock := &mockSource{listFn: func(attempt int) ([]string, error) {
		if attempt < 3 {
			return nil, errors.New("connection reset")
		}
		return []string{"1", "2"}, nil
	}}

	rs := NewSource(mock, 2, time.Millisecond, discardLogger())
	ids, err := rs.ListVacancyIDs(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || mock.listCalls != 3 {
		t.Fatalf("ids = %v after %d calls, want 2 ids after 3 calls", ids, mock.listCalls)
	}
}

func TestRetry_DoesNotRetryOn4xx(t *testing.T) {
	mock := &mockSource{fn: func(_ int) (model.Vacancy, error) {
		return model.Vacancy{}, &model.HTTPError{StatusCode: 404, Err: errors.New("not found")}
	}}

	rs := NewSource(mock, 2, 10*time.Millisecond, discardLogger())
	_, err := rs.FetchVacancy(context.Background(), "1")
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != 404 {
		t.Fatalf("expected HTTPError with status 404, got %v", err)
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call (no retry), got %d", mock.calls)
	}
}

func TestRetry_GivesUpAfterMaxRetries(t *testing.T) {
	mock := &mockSource{fn: func(_ int) (model.Vacancy, error) {
		return model.Vacancy{}, &model.HTTPError{StatusCode: 500, Err: errors.New("internal error")}
	}}

	rs := NewSource(mock, 2, 10*time.Millisecond, discardLogger())
	if _, err := rs.FetchVacancy(context.Background(), "1"); err == nil {
		t.Fatal("expected error after max retries, got nil")
	}
	// 1 initial + 2 retries = 3
	if mock.calls != 3 {
		t.Fatalf("expected 3 calls (1 + 2 retries), got %d", mock.calls)
	}
}

func TestRetry_HonoursRetryAfter(t *testing.T) {
	rs := NewSource(nil, 2, time.Hour, discardLogger())
	err := &model.HTTPError{StatusCode: 429, RetryAfter: 7 * time.Second}
	if got := rs.backoffDelay(1, err); got != 7*time.Second {
		t.Fatalf("backoffDelay = %v, want 7s", got)
	}
}

func TestRetry_BackoffGrowsWithJitter(t *testing.T) {
	rs := NewSource(nil, 3, 100*time.Millisecond, discardLogger())
	for attempt, base := range map[int]time.Duration{1: 100 * time.Millisecond, 2: 200 * time.Millisecond, 3: 400 * time.Millisecond} {
		got := rs.backoffDelay(attempt, errors.New("x"))
		lo, hi := time.Duration(float64(base)*0.7), time.Duration(float64(base)*1.3)
		if got < lo || got > hi {
			t.Errorf("attempt %d: delay %v outside [%v, %v]", attempt, got, lo, hi)
		}
	}
}

func TestRetry_RespectsContextCancellation(t *testing.T) {
	mock := &mockSource{fn: func(_ int) (model.Vacancy, error) {
		return model.Vacancy{}, &model.HTTPError{StatusCode: 500, Err: errors.New("internal error")}
	}}

	ctx, cancel := context.WithCancel(context.Background())
	// Cancel immediately so the backoff sleep is interrupted.
	cancel()

	rs := NewSource(mock, 2, time.Second, discardLogger())
	_, err := rs.FetchVacancy(ctx, "1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call before cancellation, got %d", mock.calls)
	}
}
