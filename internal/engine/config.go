package engine

import (
	"net/http"
	"time"
)

// DefaultTolerance is the window half-width in seconds when neither the
// request nor the configuration sets one.
const DefaultTolerance = 3.0

// Config holds all engine configuration, injected from main.
type Config struct {
	LLMAPIKey          string
	LLMAPIKeyFallbacks []string
	LLMAPIBase         string
	LLMModel           string
	LLMTemperature     float64
	LLMMaxTokens       int
	LLMTimeout         time.Duration

	YouTubeBaseURL  string
	TranscriptLangs []string
	FetchTimeout    time.Duration
	FetchMaxRetries int

	// ImpersonateChrome routes YouTube requests through BrowserTransport.
	ImpersonateChrome bool

	Tolerance      *float64 // nil means DefaultTolerance
	RequestTimeout time.Duration

	HTTPClient *http.Client
}

// LLMEnabled reports whether a summarizer can be built from this config.
func (c Config) LLMEnabled() bool {
	return c.LLMAPIKey != ""
}

// EffectiveTolerance returns the configured tolerance, or DefaultTolerance
// when unset or negative.
func (c Config) EffectiveTolerance() float64 {
	if c.Tolerance != nil && *c.Tolerance >= 0 {
		return *c.Tolerance
	}
	return DefaultTolerance
}

// RetryConfig derives the fetch retry policy. Zero retries unless
// FetchMaxRetries is set.
func (c Config) RetryConfig() RetryConfig {
	rc := DefaultRetryConfig
	if c.FetchMaxRetries > 0 {
		rc.MaxRetries = c.FetchMaxRetries
	}
	return rc
}
