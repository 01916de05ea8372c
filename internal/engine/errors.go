package engine

import "errors"

// ErrorKind classifies a failed analysis so callers can branch on it.
type ErrorKind string

const (
	KindBadInput          ErrorKind = "bad_input"
	KindUpstreamFetch     ErrorKind = "upstream_fetch"
	KindUpstreamSummarize ErrorKind = "upstream_summarize"
	KindUnknown           ErrorKind = "unknown"
)

var (
	ErrInvalidURL         = errors.New("invalid YouTube URL")
	ErrInvalidTimestamp   = errors.New("invalid time format. Please use mm:ss (e.g., '1:30' or '01:30')")
	ErrInvalidTolerance   = errors.New("tolerance must not be negative")
	ErrSummarizerDisabled = errors.New("summarizer not configured: set LLM_API_KEY")
	ErrNoCaptions         = errors.New("no captions available")
)

// Error is a tagged analysis failure.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func badInput(err error) error {
	return &Error{Kind: KindBadInput, Err: err}
}

func fetchFailed(err error) error {
	return &Error{Kind: KindUpstreamFetch, Err: err}
}

func summarizeFailed(err error) error {
	return &Error{Kind: KindUpstreamSummarize, Err: err}
}

// KindOf returns the kind of err, or KindUnknown if err carries none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

