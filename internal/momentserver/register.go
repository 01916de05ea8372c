// Package momentserver exposes the transcript analyzer as MCP tools.
package momentserver

import (
	"context"
	"errors"
	"log/slog"

	"github.com/anatolykoptev/go_ytmoment/internal/engine"
	"github.com/anatolykoptev/go_ytmoment/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 2

// RegisterTools registers transcript_window and transcript_explain on server.
func RegisterTools(server *mcp.Server, a *engine.Analyzer) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_window",
		Description: "Return the captions spoken around a moment in a YouTube video. Takes a video URL and an mm:ss timestamp; returns the overlapping cues, their joined text, and the window used.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, handler(a, false))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_explain",
		Description: "Explain what is said around a moment in a YouTube video in the context of the whole transcript. Same input as transcript_window; the result adds an LLM analysis. Requires LLM_API_KEY on the server.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, handler(a, true))
}

type toolHandler = func(context.Context, *mcp.CallToolRequest, engine.Request) (*mcp.CallToolResult, *engine.Result, error)

func handler(a *engine.Analyzer, explain bool) toolHandler {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input engine.Request) (*mcp.CallToolResult, *engine.Result, error) {
		if input.URL == "" {
			return nil, nil, errors.New("url is required")
		}
		if input.Timestamp == "" {
			return nil, nil, errors.New("timestamp is required")
		}
		input.Explain = explain

		res, err := a.Analyze(ctx, input)
		if err != nil {
			slog.Warn("tool call failed",
				slog.Bool("explain", explain),
				slog.String("kind", string(engine.KindOf(err))),
				slog.Any("error", err),
			)
			return nil, nil, errors.New(toolutil.RenderError(err))
		}
		return nil, res, nil
	}
}
