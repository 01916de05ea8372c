package engine

import (
	"math"
	"strings"
)

// NewWindow returns [max(0, target-tolerance), target+tolerance].
func NewWindow(target int, tolerance float64) Window {
	t := float64(target)
	return Window{
		Start: math.Max(0, t-tolerance),
		End:   t + tolerance,
	}
}

// SelectWindow returns the cues overlapping w in input order.
func SelectWindow(cues []Cue, w Window) []Cue {
	var out []Cue
	for _, c := range cues {
		if w.Overlaps(c) {
			out = append(out, c)
		}
	}
	return out
}

// JoinCues concatenates cue texts with single spaces. Nothing is dropped,
// deduplicated or truncated.
func JoinCues(cues []Cue) string {
	var sb strings.Builder
	for i, c := range cues {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// SubtitlesInRange selects the cues around target and joins them. ok is
// false when nothing overlaps the window.
func SubtitlesInRange(cues []Cue, target int, tolerance float64) (text string, ok bool) {
	sel := SelectWindow(cues, NewWindow(target, tolerance))
	if len(sel) == 0 {
		return "", false
	}
	return JoinCues(sel), true
}
