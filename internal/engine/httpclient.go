package engine

import (
	"fmt"
	"net/http"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// chromeHeaderOrder is the header order Chrome sends. It matters for fingerprinting.
var chromeHeaderOrder = []string{
	"accept",
	"accept-language",
	"accept-encoding",
	"content-type",
	"referer",
	"cookie",
	"user-agent",
}

// BrowserTransport is an http.RoundTripper backed by tls-client with a
// Chrome 131 TLS fingerprint (JA3 hash). Enabled with FETCH_IMPERSONATE.
type BrowserTransport struct {
	client tls_client.HttpClient
}

// NewBrowserTransport creates a transport that impersonates Chrome 131.
// Redirects are left to the wrapping http.Client.
func NewBrowserTransport(timeout time.Duration) (*BrowserTransport, error) {
	secs := int(timeout / time.Second)
	if secs <= 0 {
		secs = 15
	}
	opts := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(secs),
		tls_client.WithClientProfile(profiles.Chrome_131),
		tls_client.WithNotFollowRedirects(),
		tls_client.WithCookieJar(tls_client.NewCookieJar()),
	}
	client, err := tls_client.NewHttpClient(nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("tls-client init: %w", err)
	}
	return &BrowserTransport{client: client}, nil
}

// RoundTrip implements http.RoundTripper.
func (t *BrowserTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	req, err := fhttp.NewRequestWithContext(r.Context(), r.Method, r.URL.String(), r.Body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range r.Header {
		req.Header[k] = vs
	}
	req.Header[fhttp.HeaderOrderKey] = chromeHeaderOrder

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tls request: %w", err)
	}
	return &http.Response{
		Status:        resp.Status,
		StatusCode:    resp.StatusCode,
		Proto:         resp.Proto,
		ProtoMajor:    resp.ProtoMajor,
		ProtoMinor:    resp.ProtoMinor,
		Header:        http.Header(resp.Header),
		Body:          resp.Body,
		ContentLength: resp.ContentLength,
		Request:       r,
	}, nil
}
