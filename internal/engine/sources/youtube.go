package sources

// YouTube implementation is split across three files by responsibility:
//   youtube_innertube.go:  Innertube request/response types and the POST helper
//   youtube_timedtext.go:  timedtext XML parsing into cues
//   youtube_transcript.go: fetch strategies (watch page, engagement panel, ANDROID player)

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go_ytmoment/internal/engine"
)

const ytDefaultBaseURL = "https://www.youtube.com"

// YouTube fetches timed transcripts. It implements engine.TranscriptFetcher.
type YouTube struct {
	BaseURL    string       // scheme+host, default https://www.youtube.com
	HTTPClient *http.Client // default: 15s timeout
	Langs      []string     // preferred caption languages, default ["en"]
	Retry      engine.RetryConfig
}

// NewYouTube builds a fetcher from engine configuration.
func NewYouTube(c engine.Config) *YouTube {
	client := c.HTTPClient
	if client == nil {
		timeout := c.FetchTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &YouTube{
		BaseURL:    c.YouTubeBaseURL,
		HTTPClient: client,
		Langs:      c.TranscriptLangs,
		Retry:      c.RetryConfig(),
	}
}

func (y *YouTube) baseURL() string {
	if y.BaseURL != "" {
		return y.BaseURL
	}
	return ytDefaultBaseURL
}

func (y *YouTube) client() *http.Client {
	if y.HTTPClient != nil {
		return y.HTTPClient
	}
	return http.DefaultClient
}

func (y *YouTube) langs() []string {
	if len(y.Langs) > 0 {
		return y.Langs
	}
	return []string{"en"}
}
