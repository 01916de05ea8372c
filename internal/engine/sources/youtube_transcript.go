package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_ytmoment/internal/engine"
)

// YouTube transcript fetching.
// Primary:  watch page ytInitialPlayerResponse → caption track → timedtext XML
// Fallback: /next → engagement panel → /get_transcript
// Fallback: ANDROID Innertube /player → captionTracks

// getTranscriptRE extracts the continuation token from a raw /next JSON response.
var getTranscriptRE = regexp.MustCompile(`"getTranscriptEndpoint":\{"params":"([^"]+)"`)

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// FetchTranscript returns the video's cues ordered by start time. Each
// strategy is tried in turn; the last failure is returned.
func (y *YouTube) FetchTranscript(ctx context.Context, videoID string) ([]engine.Cue, error) {
	engine.IncrTranscriptFetch()

	strategies := []struct {
		name string
		fn   func(context.Context, string) ([]engine.Cue, error)
	}{
		{"watch page", y.fetchViaPageScrape},
		{"engagement panel", y.fetchViaEngagementPanel},
		{"player", y.fetchViaPlayer},
	}

	var lastErr error
	for _, s := range strategies {
		cues, err := s.fn(ctx, videoID)
		if err == nil {
			slog.Debug("youtube: transcript fetched",
				slog.String("id", videoID), slog.String("via", s.name), slog.Int("cues", len(cues)))
			return cues, nil
		}
		if ctx.Err() != nil {
			engine.IncrTranscriptError()
			return nil, ctx.Err()
		}
		slog.Warn("youtube: transcript strategy failed",
			slog.String("id", videoID), slog.String("via", s.name), slog.Any("err", err))
		lastErr = fmt.Errorf("%s: %w", s.name, err)
	}
	engine.IncrTranscriptError()
	return nil, lastErr
}

// fetchViaPageScrape scrapes the watch page HTML and follows the caption
// track URL found in ytInitialPlayerResponse.
func (y *YouTube) fetchViaPageScrape(ctx context.Context, videoID string) ([]engine.Cue, error) {
	watchURL := y.baseURL() + "/watch?v=" + url.QueryEscape(videoID)

	resp, err := engine.RetryHTTP(ctx, y.Retry, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
		if err != nil {
			return nil, err
		}
		for k, v := range engine.ChromeHeaders() {
			req.Header.Set(k, v)
		}
		// Let the transport negotiate and decode compression itself.
		req.Header.Del("Accept-Encoding")
		return y.client().Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}

	idx := strings.Index(string(body), ytInitialPlayerResponseMarker)
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var playerResp innertubePlayerResp
	if err := json.Unmarshal(jsonData, &playerResp); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return y.fetchFromPlayerResponse(ctx, playerResp)
}

// fetchViaEngagementPanel fetches a transcript via:
//  1. POST /next → engagementPanels containing the transcript continuation token
//  2. POST /get_transcript with the token → JSON segments with startMs/endMs
//
// This approach works from datacenter IPs where /player returns LOGIN_REQUIRED.
func (y *YouTube) fetchViaEngagementPanel(ctx context.Context, videoID string) ([]engine.Cue, error) {
	visitorData := generateVisitorData()
	headers := webHeaders(visitorData)

	nextData, err := y.postInnerTube(ctx, ytNextPath, map[string]any{
		"videoId": videoID,
		"context": ytWebContext(visitorData),
	}, headers)
	if err != nil {
		return nil, fmt.Errorf("/next: %w", err)
	}

	token, err := extractTranscriptToken(nextData)
	if err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}

	transcriptData, err := y.postInnerTube(ctx, ytGetTranscriptPath, map[string]any{
		"params":  token,
		"context": ytWebContext(visitorData),
	}, headers)
	if err != nil {
		return nil, fmt.Errorf("/get_transcript: %w", err)
	}

	var transcriptResp ytGetTranscriptResp
	if err := json.Unmarshal(transcriptData, &transcriptResp); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}

	cues := parseTranscriptSegments(transcriptResp)
	if len(cues) == 0 {
		return nil, errors.New("empty transcript segments")
	}
	return cues, nil
}

// fetchViaPlayer uses the ANDROID Innertube /player endpoint.
// Works from non-blocked (residential/cloud) IP addresses.
func (y *YouTube) fetchViaPlayer(ctx context.Context, videoID string) ([]engine.Cue, error) {
	data, err := y.postInnerTube(ctx, ytPlayerPath, innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	}, androidHeaders())
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}

	var playerResp innertubePlayerResp
	if err := json.Unmarshal(data, &playerResp); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return y.fetchFromPlayerResponse(ctx, playerResp)
}

// fetchFromPlayerResponse picks a caption track from a player response and
// downloads it.
func (y *YouTube) fetchFromPlayerResponse(ctx context.Context, playerResp innertubePlayerResp) ([]engine.Cue, error) {
	if playerResp.Captions == nil {
		if playerResp.PlayabilityStatus != nil && playerResp.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("%w: %s", engine.ErrNoCaptions, playerResp.PlayabilityStatus.Reason)
		}
		return nil, engine.ErrNoCaptions
	}
	tracks := playerResp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: no caption tracks", engine.ErrNoCaptions)
	}
	track, ok := pickBestTrack(tracks, y.langs())
	if !ok {
		return nil, fmt.Errorf("%w: all caption tracks require PoToken", engine.ErrNoCaptions)
	}
	return y.fetchTimedText(ctx, track.BaseURL)
}

// fetchTimedText downloads and parses a timedtext caption URL.
func (y *YouTube) fetchTimedText(ctx context.Context, baseURL string) ([]engine.Cue, error) {
	resp, err := engine.RetryHTTP(ctx, y.Retry, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.RandomUserAgent())
		return y.client().Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch timedtext: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, errors.New("empty timedtext response")
	}

	cues, err := parseTimedText(body)
	if err != nil {
		return nil, err
	}
	if len(cues) == 0 {
		return nil, errors.New("timedtext has no cues")
	}
	return cues, nil
}

func extractTranscriptToken(data []byte) (string, error) {
	if m := getTranscriptRE.FindSubmatch(data); len(m) >= 2 {
		// The params value in the /next JSON response is URL-encoded.
		// /get_transcript expects the decoded (raw base64) form.
		decoded, err := url.QueryUnescape(string(m[1]))
		if err != nil {
			return string(m[1]), nil
		}
		return decoded, nil
	}
	return "", errors.New("getTranscriptEndpoint not found in engagement panels")
}

// parseTranscriptSegments converts /get_transcript segments into cues.
func parseTranscriptSegments(resp ytGetTranscriptResp) []engine.Cue {
	var cues []engine.Cue
	for _, action := range resp.Actions {
		if action.UpdateEngagementPanelAction == nil {
			continue
		}
		segs := action.UpdateEngagementPanelAction.Content.
			TranscriptRenderer.Content.
			TranscriptSearchPanelRenderer.Body.
			TranscriptSegmentListRenderer.InitialSegments
		for _, seg := range segs {
			r := seg.TranscriptSegmentRenderer
			if r == nil {
				continue
			}
			parts := make([]string, 0, len(r.Snippet.Runs))
			for _, run := range r.Snippet.Runs {
				parts = append(parts, run.Text)
			}
			startMs, _ := strconv.ParseInt(r.StartMs, 10, 64)
			endMs, _ := strconv.ParseInt(r.EndMs, 10, 64)
			appendCue(&cues, float64(startMs)/1000, float64(endMs-startMs)/1000, strings.Join(parts, ""))
		}
	}
	sortCues(cues)
	return cues
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack selects the best usable caption track for the given language preferences.
// Tracks that require a PoToken only work in a browser and are skipped.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	// 1. Manual track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	// 2. Auto-generated track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	// 3. Any English track
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// extractJSON extracts a complete JSON object starting at b[0] == '{' by tracking brace depth.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
