package momentserver

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/anatolykoptev/go_ytmoment/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	cues []engine.Cue
	err  error
}

func (f fakeFetcher) FetchTranscript(context.Context, string) ([]engine.Cue, error) {
	return f.cues, f.err
}

type fakeSummarizer struct{ out string }

func (f fakeSummarizer) Summarize(context.Context, string, string) (string, error) {
	return f.out, nil
}

var cues = []engine.Cue{
	{Start: 0, Duration: 2, Text: "a"},
	{Start: 5, Duration: 2, Text: "b"},
}

func TestWindowHandler(t *testing.T) {
	h := handler(engine.NewAnalyzer(fakeFetcher{cues: cues}, nil, 2), false)

	_, res, err := h(t.Context(), nil, engine.Request{URL: "https://youtu.be/abc123", Timestamp: "0:06"})
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, "b", res.Snippet)
	assert.Empty(t, res.Analysis)
}

func TestExplainHandler(t *testing.T) {
	h := handler(engine.NewAnalyzer(fakeFetcher{cues: cues}, fakeSummarizer{out: "context"}, 2), true)

	_, res, err := h(t.Context(), nil, engine.Request{URL: "https://youtu.be/abc123", Timestamp: "0:01"})
	require.NoError(t, err)
	assert.Equal(t, "context", res.Analysis)
}

func TestHandlerErrors(t *testing.T) {
	tests := []struct {
		name    string
		a       *engine.Analyzer
		explain bool
		req     engine.Request
		want    string
	}{
		{"missing url", engine.NewAnalyzer(fakeFetcher{}, nil, 0), false, engine.Request{Timestamp: "1:00"}, "url is required"},
		{"missing timestamp", engine.NewAnalyzer(fakeFetcher{}, nil, 0), false, engine.Request{URL: "https://youtu.be/x"}, "timestamp is required"},
		{"bad url", engine.NewAnalyzer(fakeFetcher{}, nil, 0), false, engine.Request{URL: "https://vimeo.com/1", Timestamp: "1:00"}, "Invalid YouTube URL"},
		{"fetch failure", engine.NewAnalyzer(fakeFetcher{err: errors.New("blocked")}, nil, 0), false, engine.Request{URL: "https://youtu.be/x", Timestamp: "1:00"}, "Error fetching transcript: blocked"},
		{"explain disabled", engine.NewAnalyzer(fakeFetcher{}, nil, 0), true, engine.Request{URL: "https://youtu.be/x", Timestamp: "1:00"}, "Error: summarizer not configured: set LLM_API_KEY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, res, err := handler(tt.a, tt.explain)(t.Context(), nil, tt.req)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestRegisterTools(t *testing.T) {
	ctx := t.Context()
	server := mcp.NewServer(&mcp.Implementation{Name: "go_ytmoment", Version: "test"}, nil)
	RegisterTools(server, engine.NewAnalyzer(fakeFetcher{cues: cues}, nil, 0))

	st, ct := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	defer cs.Close()

	list, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range list.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"transcript_explain", "transcript_window"}, names)
	assert.Len(t, names, ToolCount)
}
