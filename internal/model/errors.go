package model

import (
	"fmt"
	"net/http"
	"time"
)

// HTTPError carries the status of a failed source request so retry logic can
// classify it.
type HTTPError struct {
	StatusCode int
	URL        string
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("HTTP %d", e.StatusCode)
	if e.URL != "" {
		msg += " from " + e.URL
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// Temporary reports whether the request may succeed if repeated:
// 429 Too Many Requests and any 5xx.
func (e *HTTPError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}
