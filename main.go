// go_ytmoment looks up what is said around a moment in a YouTube video.
//
// Runs as an interactive prompt, as one-shot window/explain commands, or as
// an MCP server exposing transcript_window and transcript_explain.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go_ytmoment/internal/engine"
	"github.com/anatolykoptev/go_ytmoment/internal/engine/sources"
	"github.com/joho/godotenv"
)

var version = "dev"

func init() {
	// .env is optional.
	_ = godotenv.Load()
}

func main() {
	if err := newRootCmd(loadConfig(), buildAnalyzer).Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() engine.Config {
	fetchTimeout := env.Duration("FETCH_TIMEOUT", 15*time.Second)
	impersonate, _ := strconv.ParseBool(env.Str("FETCH_IMPERSONATE", "false"))
	c := engine.Config{
		LLMAPIKey:          env.Str("LLM_API_KEY", env.Str("OPENAI_API_KEY", "")),
		LLMAPIKeyFallbacks: env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:         env.Str("LLM_API_BASE", "https://api.openai.com/v1"),
		LLMModel:           env.Str("LLM_MODEL", "gpt-3.5-turbo"),
		LLMTemperature:     env.Float("LLM_TEMPERATURE", 1.0),
		LLMMaxTokens:       env.Int("LLM_MAX_TOKENS", 1024),
		LLMTimeout:         env.Duration("LLM_TIMEOUT", 60*time.Second),
		YouTubeBaseURL:     env.Str("YOUTUBE_BASE_URL", ""),
		TranscriptLangs:    env.List("TRANSCRIPT_LANGS", "en"),
		FetchTimeout:       fetchTimeout,
		FetchMaxRetries:    env.Int("FETCH_MAX_RETRIES", 0),
		ImpersonateChrome:  impersonate,
		Tolerance:          windowTolerance(),
		RequestTimeout:     env.Duration("REQUEST_TIMEOUT", 2*time.Minute),
		HTTPClient: &http.Client{
			Timeout: fetchTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	if c.ImpersonateChrome {
		bt, err := engine.NewBrowserTransport(fetchTimeout)
		if err != nil {
			slog.Warn("browser transport init failed, using default transport", slog.Any("error", err))
		} else {
			c.HTTPClient.Transport = bt
			slog.Debug("browser transport enabled")
		}
	}
	return c
}

// windowTolerance reads WINDOW_TOLERANCE. Unset, unparsable or negative
// values leave the default in place; 0 is a valid zero-width window.
func windowTolerance() *float64 {
	raw := env.Str("WINDOW_TOLERANCE", "")
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		slog.Warn("ignoring WINDOW_TOLERANCE", slog.String("value", raw))
		return nil
	}
	return &v
}

// buildAnalyzer wires the YouTube fetcher and, when an API key is set, the
// LLM summarizer.
func buildAnalyzer(c engine.Config) *engine.Analyzer {
	var summarizer engine.Summarizer
	if c.LLMEnabled() {
		summarizer = engine.NewLLMSummarizer(c)
		slog.Debug("summarizer enabled", slog.String("model", c.LLMModel), slog.String("base", c.LLMAPIBase))
	} else {
		slog.Debug("summarizer disabled: no LLM_API_KEY")
	}
	return engine.NewAnalyzer(sources.NewYouTube(c), summarizer, c.EffectiveTolerance())
}
