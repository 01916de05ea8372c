package sources

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"

	"github.com/anatolykoptev/go_ytmoment/internal/engine"
)

// ytTimedText covers both timedtext layouts:
//
//	<transcript><text start="1.2" dur="3.4">...</text></transcript>   (seconds)
//	<timedtext format="3"><body><p t="1200" d="3400">...</p></body></timedtext>   (milliseconds)
//
// <text> bodies are entity-escaped twice by YouTube, so chardata (one level
// decoded) is unescaped again by CleanCueText. <p> bodies may hold <s> word
// spans, so the inner XML is kept and the tags stripped.
type ytTimedText struct {
	Lines []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Text  string `xml:",chardata"`
	} `xml:"text"`
	Body struct {
		Paras []struct {
			T    string `xml:"t,attr"`
			D    string `xml:"d,attr"`
			Text string `xml:",innerxml"`
		} `xml:"p"`
	} `xml:"body"`
}

// parseTimedText decodes a timedtext document into cues ordered by start.
// Cues whose text is empty after cleaning are dropped.
func parseTimedText(data []byte) ([]engine.Cue, error) {
	var tt ytTimedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	cues := make([]engine.Cue, 0, len(tt.Lines)+len(tt.Body.Paras))
	for _, l := range tt.Lines {
		appendCue(&cues, parseFloat(l.Start), parseFloat(l.Dur), l.Text)
	}
	for _, p := range tt.Body.Paras {
		appendCue(&cues, parseFloat(p.T)/1000, parseFloat(p.D)/1000, p.Text)
	}
	sortCues(cues)
	return cues, nil
}

func appendCue(cues *[]engine.Cue, start, dur float64, raw string) {
	text := engine.CleanCueText(raw)
	if text == "" {
		return
	}
	if dur < 0 {
		dur = 0
	}
	*cues = append(*cues, engine.Cue{Start: start, Duration: dur, Text: text})
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// sortCues orders cues by start time, keeping source order for ties.
func sortCues(cues []engine.Cue) {
	sort.SliceStable(cues, func(i, j int) bool { return cues[i].Start < cues[j].Start })
}
