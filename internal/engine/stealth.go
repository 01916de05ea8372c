package engine

import (
	"context"
	"net/http"

	stealth "github.com/anatolykoptev/go-stealth"
)

// Re-export stealth types and functions for engine consumers.
type RetryConfig = stealth.RetryConfig

// DefaultRetryConfig keeps stealth's backoff timings but makes a single
// attempt. FETCH_MAX_RETRIES raises MaxRetries.
var DefaultRetryConfig = singleAttempt(stealth.DefaultRetryConfig)

func singleAttempt(rc RetryConfig) RetryConfig {
	rc.MaxRetries = 0
	return rc
}

// Browser-like request headers for YouTube page fetches.
func ChromeHeaders() map[string]string { return stealth.ChromeHeaders() }
func RandomUserAgent() string          { return stealth.RandomUserAgent() }
func IsRetryableStatus(code int) bool  { return stealth.IsRetryableStatus(code) }

func RetryDo[T any](ctx context.Context, rc RetryConfig, fn func() (T, error)) (T, error) {
	return stealth.RetryDo(ctx, rc, fn)
}

func RetryHTTP(ctx context.Context, rc RetryConfig, fn func() (*http.Response, error)) (*http.Response, error) {
	return stealth.RetryHTTP(ctx, rc, fn)
}
