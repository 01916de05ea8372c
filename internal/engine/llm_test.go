package engine

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildExplainPrompt(t *testing.T) {
	p := BuildExplainPrompt("full text here", "the part")

	full := strings.Index(p, "full text here")
	part := strings.Index(p, "the part")
	require.GreaterOrEqual(t, full, 0)
	require.GreaterOrEqual(t, part, 0)
	assert.Less(t, full, part, "full transcript comes before the excerpt")
	assert.True(t, strings.HasPrefix(p, "Here's the full transcript of a video:"))
	assert.Contains(t, p, "concise summary")
}

func TestLLMSummarizer(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "The speaker introduces the topic."}},
			},
		})
	}))
	defer srv.Close()

	s := NewLLMSummarizer(Config{
		LLMAPIBase:     srv.URL,
		LLMAPIKey:      "test-key",
		LLMModel:       "gpt-3.5-turbo",
		LLMTemperature: 1,
		LLMMaxTokens:   256,
	})
	before := GetMetrics()["llm_calls"]

	out, err := s.Summarize(context.Background(), "hello world and more", "hello world")
	require.NoError(t, err)
	assert.Equal(t, "The speaker introduces the topic.", out)
	assert.Contains(t, body, "You are an AI assistant that analyzes video transcripts.")
	assert.Contains(t, body, "hello world and more")
	assert.Contains(t, body, "gpt-3.5-turbo")
	assert.Equal(t, before+1, GetMetrics()["llm_calls"])
}

func TestLLMSummarizerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewLLMSummarizer(Config{LLMAPIBase: srv.URL, LLMAPIKey: "bad", LLMModel: "m"})
	before := GetMetrics()["llm_errors"]

	_, err := s.Summarize(context.Background(), "full", "part")
	require.Error(t, err)
	assert.Greater(t, GetMetrics()["llm_errors"], before)
}
