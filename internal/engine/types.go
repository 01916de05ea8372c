package engine

// --- Transcript types ---

// Cue is one timed caption entry. Start and Duration are in seconds.
type Cue struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// End returns the time the cue stops being shown.
func (c Cue) End() float64 {
	return c.Start + c.Duration
}

// Window is a closed time interval in seconds.
type Window struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Overlaps reports whether the cue's interval intersects w, inclusive on both ends.
func (w Window) Overlaps(c Cue) bool {
	return w.Start <= c.End() && c.Start <= w.End
}

// --- Pipeline types ---

// Request is one analysis request. A nil Tolerance uses the analyzer
// default; zero selects only cues spanning the exact second.
type Request struct {
	URL       string   `json:"url" jsonschema:"YouTube video URL (youtu.be, watch?v=, /embed/ or /v/)"`
	Timestamp string   `json:"timestamp" jsonschema:"Moment in the video as mm:ss, e.g. 1:30"`
	Tolerance *float64 `json:"tolerance,omitempty" jsonschema:"Seconds before and after the timestamp to include, 0 or more (default: 3)"`
	Explain   bool     `json:"-"`
}

// Result is the outcome of a successful analysis. Found is false when no
// cue overlaps the window.
type Result struct {
	VideoID   string  `json:"video_id"`
	Timestamp string  `json:"timestamp"`
	Seconds   int     `json:"seconds"`
	Tolerance float64 `json:"tolerance"`
	Window    Window  `json:"window"`
	Cues      []Cue   `json:"cues"`
	Snippet   string  `json:"snippet"`
	Found     bool    `json:"found"`
	CueCount  int     `json:"cue_count"` // cues in the full transcript
	Analysis  string  `json:"analysis,omitempty"`
}
