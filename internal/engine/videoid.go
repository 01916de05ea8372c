package engine

import (
	"net/url"
	"strings"
)

// ExtractVideoID returns the video identifier from a YouTube URL, or "" if
// the URL is not one of the recognised shapes:
//
//	https://youtu.be/<id>
//	https://www.youtube.com/watch?v=<id>
//	https://www.youtube.com/embed/<id>
//	https://www.youtube.com/v/<id>
//
// The identifier itself is not validated.
func ExtractVideoID(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}

	switch strings.ToLower(u.Hostname()) {
	case "youtu.be":
		return strings.TrimPrefix(u.Path, "/")
	case "youtube.com", "www.youtube.com":
		switch {
		case u.Path == "/watch":
			return u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"), strings.HasPrefix(u.Path, "/v/"):
			return pathSegment(u.Path, 2)
		}
	}
	return ""
}

// pathSegment returns the i-th "/"-separated element of p ("" if absent).
// Index 0 is the empty string before the leading slash.
func pathSegment(p string, i int) string {
	parts := strings.Split(p, "/")
	if i >= len(parts) {
		return ""
	}
	return parts[i]
}
