package engine

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewBrowserTransport(t *testing.T) {
	bt, err := NewBrowserTransport(0)
	if err != nil {
		t.Fatalf("NewBrowserTransport() error = %v", err)
	}
	if bt == nil || bt.client == nil {
		t.Fatal("NewBrowserTransport() returned an unusable transport")
	}
}

func TestBrowserTransportRoundTrip(t *testing.T) {
	var gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Header().Set("X-Test", "yes")
		w.WriteHeader(http.StatusTeapot)
		_, _ = io.WriteString(w, "caption body")
	}))
	defer srv.Close()

	bt, err := NewBrowserTransport(5 * time.Second)
	if err != nil {
		t.Fatalf("NewBrowserTransport() error = %v", err)
	}
	client := &http.Client{Transport: bt}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/timedtext", nil)
	req.Header.Set("User-Agent", UserAgentChrome)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusTeapot {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusTeapot)
	}
	if resp.Header.Get("X-Test") != "yes" {
		t.Errorf("response header lost: %v", resp.Header)
	}
	if string(body) != "caption body" {
		t.Errorf("body = %q", body)
	}
	if gotUA != UserAgentChrome || gotLang != "en-US,en;q=0.9" {
		t.Errorf("request headers not forwarded: ua=%q lang=%q", gotUA, gotLang)
	}
}
