// Package toolutil renders analysis results and errors for the CLI and the
// MCP tools.
package toolutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/anatolykoptev/go_ytmoment/internal/engine"
)

const msgNoSubtitles = "No subtitles found in the specified range"

// RenderText formats a successful result the way the interactive CLI prints it.
func RenderText(res *engine.Result, explain bool) string {
	if res == nil || !res.Found {
		return msgNoSubtitles
	}
	if explain {
		return fmt.Sprintf("Analysis for timestamp %s:\n%s", res.Timestamp, res.Analysis)
	}
	return fmt.Sprintf("Subtitles around %s (+/- %s seconds): %s",
		res.Timestamp, FormatSeconds(res.Tolerance), res.Snippet)
}

// RenderError maps an analysis error to its user-facing line.
func RenderError(err error) string {
	if err == nil {
		return ""
	}
	switch engine.KindOf(err) {
	case engine.KindBadInput:
		if errors.Is(err, engine.ErrInvalidURL) {
			return "Invalid YouTube URL"
		}
		if errors.Is(err, engine.ErrInvalidTimestamp) {
			return "Error: " + sentence(engine.ErrInvalidTimestamp.Error())
		}
		return "Error: " + err.Error()
	case engine.KindUpstreamFetch:
		return "Error fetching transcript: " + err.Error()
	case engine.KindUpstreamSummarize:
		return "Error in OpenAI API call: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}

// sentence capitalises the first letter of msg and ends it with a period.
func sentence(msg string) string {
	if msg == "" {
		return msg
	}
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:] + "."
}

// FormatSeconds prints whole numbers without a fractional part.
func FormatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type errorBody struct {
	Kind    engine.ErrorKind `json:"kind"`
	Message string           `json:"message"`
}

// RenderJSON returns the indented JSON form of res, or of err when it is
// non-nil.
func RenderJSON(res *engine.Result, err error) ([]byte, error) {
	if err != nil {
		return json.MarshalIndent(map[string]errorBody{
			"error": {Kind: engine.KindOf(err), Message: err.Error()},
		}, "", "  ")
	}
	return json.MarshalIndent(res, "", "  ")
}
