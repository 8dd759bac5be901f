package tabs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSelectActive_SkipsNonPagesAndInternal(t *testing.T) {
	targets := []Tab{
		{ID: "sw", Type: "service_worker", URL: "https://example.com/sw.js"},
		{ID: "dt", Type: "page", URL: "devtools://devtools/bundled/inspector.html"},
		{ID: "ext", Type: "page", URL: "chrome-extension://abc/popup.html"},
		{ID: "one", Type: "page", URL: "https://example.com/?data=eyJhIjoxfQ%3D%3D"},
		{ID: "two", Type: "page", URL: "https://other.test/"},
	}
	got, err := SelectActive(targets, "")
	if err != nil {
		t.Fatalf("SelectActive returned error: %v", err)
	}
	if got.ID != "one" {
		t.Fatalf("SelectActive = %q, want one", got.ID)
	}
}

func TestSelectActive_AppliesFilterCaseInsensitively(t *testing.T) {
	targets := []Tab{
		{ID: "one", Type: "page", URL: "https://example.com/"},
		{ID: "two", Type: "page", URL: "https://Other.test/?q=1"},
	}
	got, err := SelectActive(targets, "  other.TEST ")
	if err != nil {
		t.Fatalf("SelectActive returned error: %v", err)
	}
	if got.ID != "two" {
		t.Fatalf("SelectActive = %q, want two", got.ID)
	}
}

func TestSelectActive_NoMatch(t *testing.T) {
	_, err := SelectActive([]Tab{{ID: "one", Type: "page", URL: "https://example.com/"}}, "nowhere")
	if !errors.Is(err, ErrNoTab) {
		t.Fatalf("SelectActive error = %v, want ErrNoTab", err)
	}
	if !strings.Contains(err.Error(), "nowhere") {
		t.Fatalf("SelectActive error = %q, want it to mention the filter", err.Error())
	}
	if _, err := SelectActive(nil, ""); !errors.Is(err, ErrNoTab) {
		t.Fatalf("SelectActive(nil) error = %v, want ErrNoTab", err)
	}
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != "http://"+defaultCDPURL {
		t.Fatalf("parseBaseURL(\"\") = %q, want http://%s", u.String(), defaultCDPURL)
	}

	u, err = parseBaseURL("ws://localhost:9333/devtools/browser/abc?x=1#f")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != "http://localhost:9333" {
		t.Fatalf("parseBaseURL = %q, want http://localhost:9333", u.String())
	}
}

func TestClient_ActiveTabFromDevTools(t *testing.T) {
	t.Parallel()

	userAgents := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case userAgents <- r.Header.Get("User-Agent"):
		default:
		}
		if r.URL.Path != "/json/list" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]Tab{
			{ID: "bg", Type: "background_page", URL: "chrome-extension://x/bg.html"},
			{ID: "A1", Type: "page", Title: "Example", URL: "https://example.com/?data=Zm9v"},
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(ClientOptions{CDPURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	tab, err := c.ActiveTab(ctx)
	if err != nil {
		t.Fatalf("ActiveTab returned error: %v", err)
	}
	if tab.ID != "A1" || tab.Title != "Example" || tab.URL != "https://example.com/?data=Zm9v" {
		t.Fatalf("ActiveTab = %#v, want A1", tab)
	}
	if gotUserAgent := <-userAgents; gotUserAgent != defaultUserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}
}

func TestClient_ActiveTabReportsHTTPErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(ClientOptions{CDPURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.ActiveTab(context.Background())
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Fatalf("ActiveTab error = %v, want status 500", err)
	}
}

func TestClient_NavigateRequiresTabID(t *testing.T) {
	c, err := NewClient(ClientOptions{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.Navigate(context.Background(), Tab{}, "https://example.com/"); err == nil {
		t.Fatalf("Navigate returned nil error for empty tab id")
	}
}

func TestStatic_NavigateUpdatesURL(t *testing.T) {
	s := NewStatic(" https://example.com/?data=Zm9v ", false)

	tab, err := s.ActiveTab(context.Background())
	if err != nil {
		t.Fatalf("ActiveTab returned error: %v", err)
	}
	if tab.URL != "https://example.com/?data=Zm9v" {
		t.Fatalf("ActiveTab URL = %q", tab.URL)
	}

	if err := s.Navigate(context.Background(), tab, "https://example.com/?data=YmFy"); err != nil {
		t.Fatalf("Navigate returned error: %v", err)
	}
	tab, err = s.ActiveTab(context.Background())
	if err != nil {
		t.Fatalf("ActiveTab returned error: %v", err)
	}
	if tab.URL != "https://example.com/?data=YmFy" {
		t.Fatalf("ActiveTab URL after navigate = %q", tab.URL)
	}
	if got := s.Navigated(); len(got) != 1 || got[0] != "https://example.com/?data=YmFy" {
		t.Fatalf("Navigated = %#v", got)
	}
}

func TestStatic_OpenerFailureKeepsURL(t *testing.T) {
	s := NewStatic("https://example.com/", false)
	s.open = func(string) error { return errors.New("no display") }

	tab, _ := s.ActiveTab(context.Background())
	if err := s.Navigate(context.Background(), tab, "https://example.com/?a=1"); err == nil {
		t.Fatalf("Navigate returned nil error, want opener failure")
	}
	if got := s.Navigated(); len(got) != 0 {
		t.Fatalf("Navigated = %#v, want none", got)
	}
}

func TestStatic_EmptyURL(t *testing.T) {
	if _, err := NewStatic("  ", false).ActiveTab(context.Background()); !errors.Is(err, ErrNoTab) {
		t.Fatalf("ActiveTab error = %v, want ErrNoTab", err)
	}
}
