package engine

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Summarizer explains a transcript excerpt in the context of the full transcript.
type Summarizer interface {
	Summarize(ctx context.Context, fullTranscript, snippet string) (string, error)
}

// LLMSummarizer is a Summarizer backed by an OpenAI-compatible chat API.
type LLMSummarizer struct {
	client *llm.Client
}

// NewLLMSummarizer builds a summarizer from the LLM settings in c.
func NewLLMSummarizer(c Config) *LLMSummarizer {
	timeout := c.LLMTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &LLMSummarizer{
		client: llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
			llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
			llm.WithMaxTokens(c.LLMMaxTokens),
			llm.WithTemperature(c.LLMTemperature),
			llm.WithHTTPClient(&http.Client{Timeout: timeout}),
		),
	}
}

// BuildExplainPrompt returns the user prompt sent to the model.
func BuildExplainPrompt(fullTranscript, snippet string) string {
	return fmt.Sprintf(explainPrompt, fullTranscript, snippet)
}

// Summarize sends one chat completion and returns the raw response text.
// Provider errors are returned unchanged; nothing is retried.
func (s *LLMSummarizer) Summarize(ctx context.Context, fullTranscript, snippet string) (string, error) {
	metrics.LLMCalls.Add(1)
	resp, err := s.client.Complete(ctx, explainSystemPrompt, BuildExplainPrompt(fullTranscript, snippet))
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", err
	}
	return resp, nil
}
