package sources

import (
	"testing"

	"github.com/anatolykoptev/go_ytmoment/internal/engine"
)

func TestParseTimedTextSrv3(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="utf-8" ?><timedtext format="3"><body>
<p t="3000" d="1500"><s>world</s><s t="400"> again</s></p>
<p t="0" d="2500">Tom &amp; Jerry</p>
<p t="9000" d="-10">clamped</p>
</body></timedtext>`)

	cues, err := parseTimedText(data)
	if err != nil {
		t.Fatalf("parseTimedText() error = %v", err)
	}
	want := []engine.Cue{
		{Start: 0, Duration: 2.5, Text: "Tom & Jerry"},
		{Start: 3, Duration: 1.5, Text: "world again"},
		{Start: 9, Duration: 0, Text: "clamped"},
	}
	if len(cues) != len(want) {
		t.Fatalf("got %d cues, want %d: %+v", len(cues), len(want), cues)
	}
	for i := range want {
		if cues[i] != want[i] {
			t.Errorf("cue[%d] = %+v, want %+v", i, cues[i], want[i])
		}
	}
}

func TestParseTimedTextInvalid(t *testing.T) {
	if _, err := parseTimedText([]byte("<transcript><text>")); err == nil {
		t.Error("expected error for truncated XML")
	}
}

func TestParseTimedTextBadAttributes(t *testing.T) {
	cues, err := parseTimedText([]byte(`<transcript><text start="x" dur="">hi</text></transcript>`))
	if err != nil {
		t.Fatalf("parseTimedText() error = %v", err)
	}
	if len(cues) != 1 || cues[0].Start != 0 || cues[0].Duration != 0 {
		t.Errorf("cues = %+v, want one cue at 0 with zero duration", cues)
	}
}

func TestPickBestTrack(t *testing.T) {
	manualEN := captionTrack{BaseURL: "u1", LanguageCode: "en"}
	asrEN := captionTrack{BaseURL: "u2", LanguageCode: "en", Kind: "asr"}
	manualDE := captionTrack{BaseURL: "u3", LanguageCode: "de"}
	enGB := captionTrack{BaseURL: "u4", LanguageCode: "en-GB"}
	blocked := captionTrack{BaseURL: "u5?x=1&exp=xpe", LanguageCode: "en"}

	tests := []struct {
		name   string
		tracks []captionTrack
		langs  []string
		want   string
		wantOK bool
	}{
		{"manual preferred over asr", []captionTrack{asrEN, manualEN}, []string{"en"}, "u1", true},
		{"asr in preferred language", []captionTrack{manualDE, asrEN}, []string{"en"}, "u2", true},
		{"language order respected", []captionTrack{manualEN, manualDE}, []string{"de", "en"}, "u3", true},
		{"any english fallback", []captionTrack{manualDE, enGB}, []string{"fr"}, "u4", true},
		{"first usable fallback", []captionTrack{manualDE}, []string{"fr"}, "u3", true},
		{"potoken tracks skipped", []captionTrack{blocked, asrEN}, []string{"en"}, "u2", true},
		{"only potoken tracks", []captionTrack{blocked}, []string{"en"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickBestTrack(tt.tracks, tt.langs)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got.BaseURL != tt.want {
				t.Errorf("picked %q, want %q", got.BaseURL, tt.want)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", `{"a":1};rest`, `{"a":1}`},
		{"nested", `{"a":{"b":{}}} tail`, `{"a":{"b":{}}}`},
		{"brace in string", `{"a":"}{"}x`, `{"a":"}{"}`},
		{"escaped quote", `{"a":"say \"}\" ok"};`, `{"a":"say \"}\" ok"}`},
		{"escaped backslash", `{"a":"c:\\"};`, `{"a":"c:\\"}`},
		{"not an object", `[1,2]`, ``},
		{"unterminated", `{"a":1`, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(extractJSON([]byte(tt.in)))
			if got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractTranscriptToken(t *testing.T) {
	tok, err := extractTranscriptToken([]byte(`..."getTranscriptEndpoint":{"params":"a%2Bb%3D"}...`))
	if err != nil {
		t.Fatalf("extractTranscriptToken() error = %v", err)
	}
	if tok != "a+b=" {
		t.Errorf("token = %q, want %q", tok, "a+b=")
	}
	if _, err := extractTranscriptToken([]byte(`{}`)); err == nil {
		t.Error("expected error when endpoint is missing")
	}
}
