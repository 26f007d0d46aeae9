package adapter

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// parseRetryAfter parses the Retry-After header value into a duration.
// Supports both delay-seconds ("120") and HTTP-date forms. Returns zero if
// absent, unparseable or already in the past.
func parseRetryAfter(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
