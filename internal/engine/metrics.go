package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	AnalyzeRequests   atomic.Int64
	BadInput          atomic.Int64
	TranscriptFetches atomic.Int64
	TranscriptErrors  atomic.Int64
	WindowHits        atomic.Int64
	WindowMisses      atomic.Int64
	LLMCalls          atomic.Int64
	LLMErrors         atomic.Int64
}

var metricKeys = []string{
	"analyze_requests", "bad_input",
	"transcript_fetches", "transcript_errors",
	"window_hits", "window_misses",
	"llm_calls", "llm_errors",
}

// GetMetrics returns a snapshot of all counters.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"analyze_requests":   metrics.AnalyzeRequests.Load(),
		"bad_input":          metrics.BadInput.Load(),
		"transcript_fetches": metrics.TranscriptFetches.Load(),
		"transcript_errors":  metrics.TranscriptErrors.Load(),
		"window_hits":        metrics.WindowHits.Load(),
		"window_misses":      metrics.WindowMisses.Load(),
		"llm_calls":          metrics.LLMCalls.Load(),
		"llm_errors":         metrics.LLMErrors.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// LogMetrics writes the counters at debug level.
func LogMetrics() {
	m := GetMetrics()
	attrs := make([]any, 0, len(metricKeys))
	for _, k := range metricKeys {
		attrs = append(attrs, slog.Int64(k, m[k]))
	}
	slog.Debug("metrics", attrs...)
}

// Incrementors for the sources sub-package.
func IncrTranscriptFetch() { metrics.TranscriptFetches.Add(1) }
func IncrTranscriptError() { metrics.TranscriptErrors.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, threshold time.Duration, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > threshold {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
