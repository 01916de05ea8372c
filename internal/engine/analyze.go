package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// TranscriptFetcher retrieves the ordered cue list for a video.
type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, videoID string) ([]Cue, error)
}

// Analyzer runs the URL -> transcript -> window -> summary pipeline.
// A nil summarizer disables explain requests.
type Analyzer struct {
	fetcher    TranscriptFetcher
	summarizer Summarizer
	tolerance  float64
}

// NewAnalyzer wires a fetcher and an optional summarizer. tolerance is the
// default window half-width; a negative value means DefaultTolerance.
func NewAnalyzer(fetcher TranscriptFetcher, summarizer Summarizer, tolerance float64) *Analyzer {
	if tolerance < 0 {
		tolerance = DefaultTolerance
	}
	return &Analyzer{fetcher: fetcher, summarizer: summarizer, tolerance: tolerance}
}

// CanExplain reports whether a summarizer is configured.
func (a *Analyzer) CanExplain() bool {
	return a.summarizer != nil
}

// Analyze resolves req. Failures are *Error values tagged with an ErrorKind.
// An empty window is not an error: the result has Found == false and the
// summarizer is not called.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	metrics.AnalyzeRequests.Add(1)

	videoID := ExtractVideoID(req.URL)
	if videoID == "" {
		metrics.BadInput.Add(1)
		return nil, badInput(ErrInvalidURL)
	}

	seconds, err := ParseTimestamp(req.Timestamp)
	if err != nil {
		metrics.BadInput.Add(1)
		return nil, badInput(err)
	}

	if req.Explain && a.summarizer == nil {
		metrics.BadInput.Add(1)
		return nil, badInput(ErrSummarizerDisabled)
	}

	tolerance := a.tolerance
	if req.Tolerance != nil {
		if *req.Tolerance < 0 {
			metrics.BadInput.Add(1)
			return nil, badInput(fmt.Errorf("%w: %v", ErrInvalidTolerance, *req.Tolerance))
		}
		tolerance = *req.Tolerance
	}

	cues, err := a.fetcher.FetchTranscript(ctx, videoID)
	if err != nil {
		return nil, fetchFailed(err)
	}

	w := NewWindow(seconds, tolerance)
	selected := SelectWindow(cues, w)
	if selected == nil {
		selected = []Cue{}
	}
	res := &Result{
		VideoID:   videoID,
		Timestamp: strings.TrimSpace(req.Timestamp),
		Seconds:   seconds,
		Tolerance: tolerance,
		Window:    w,
		Cues:      selected,
		Snippet:   JoinCues(selected),
		Found:     len(selected) > 0,
		CueCount:  len(cues),
	}
	if !res.Found {
		metrics.WindowMisses.Add(1)
		slog.Debug("window empty", slog.String("id", videoID), slog.Float64("start", w.Start), slog.Float64("end", w.End))
		return res, nil
	}
	metrics.WindowHits.Add(1)
	slog.Debug("window selected",
		slog.String("id", videoID),
		slog.Int("cues", len(selected)),
		slog.String("snippet", Preview(res.Snippet, 80)),
	)

	if !req.Explain {
		return res, nil
	}

	err = TrackOperation(ctx, "summarize", 10*time.Second, func(ctx context.Context) error {
		analysis, err := a.summarizer.Summarize(ctx, JoinCues(cues), res.Snippet)
		res.Analysis = analysis
		return err
	})
	if err != nil {
		return nil, summarizeFailed(err)
	}
	return res, nil
}
