package tabs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
)

// Ensure Client implements Source at compile time.
var _ Source = (*Client)(nil)

// Client talks to a Chromium DevTools endpoint.
type Client struct {
	baseURL         *url.URL
	http            *http.Client
	userAgent       string
	filter          string
	navigateTimeout time.Duration
}

const (
	defaultCDPURL          = "127.0.0.1:9222"
	defaultUserAgent       = "paramlens/0.1"
	requestTimeout         = 5 * time.Second
	defaultNavigateTimeout = 15 * time.Second
)

// ClientOptions configure a Client.
type ClientOptions struct {
	CDPURL          string
	Filter          string
	NavigateTimeout time.Duration
}

// NewClient builds a Client for the DevTools endpoint in opts.CDPURL.
func NewClient(opts ClientOptions) (*Client, error) {
	base, err := parseBaseURL(opts.CDPURL)
	if err != nil {
		return nil, err
	}
	timeout := opts.NavigateTimeout
	if timeout <= 0 {
		timeout = defaultNavigateTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent:       defaultUserAgent,
		filter:          opts.Filter,
		navigateTimeout: timeout,
	}, nil
}

// ListTabs returns every target the browser reports.
func (c *Client) ListTabs(ctx context.Context) ([]Tab, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Tab
	if err := c.do(ctx, http.MethodGet, "/json/list", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ActiveTab returns the most recently focused page matching the filter.
func (c *Client) ActiveTab(ctx context.Context) (Tab, error) {
	targets, err := c.ListTabs(ctx)
	if err != nil {
		return Tab{}, fmt.Errorf("list tabs: %w", err)
	}
	tab, err := SelectActive(targets, c.filter)
	if err != nil {
		return Tab{}, err
	}
	slog.Info("active tab resolved", "tab_id", tab.ID, "targets", len(targets))
	return tab, nil
}

// Navigate points tab at rawURL and waits for the page to load.
func (c *Client) Navigate(ctx context.Context, tab Tab, rawURL string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(tab.ID) == "" {
		return fmt.Errorf("navigate: tab id is empty")
	}

	allocCtx, allocCancel := chromedp.NewRemoteAllocator(ctx, c.baseURL.String())
	defer allocCancel()

	tabCtx, tabCancel := chromedp.NewContext(allocCtx, chromedp.WithTargetID(target.ID(tab.ID)))
	defer tabCancel()

	runCtx, runCancel := context.WithTimeout(tabCtx, c.navigateTimeout)
	defer runCancel()

	if err := chromedp.Run(runCtx, chromedp.Navigate(rawURL)); err != nil {
		return fmt.Errorf("navigate tab: %w", err)
	}
	slog.Info("tab navigated", "tab_id", tab.ID)
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("devtools %s returned status %d", path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(cdpURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(cdpURL)
	if trimmed == "" {
		trimmed = defaultCDPURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse cdp url %q: %w", cdpURL, err)
	}
	if u.Scheme == "ws" {
		u.Scheme = "http"
	} else if u.Scheme == "wss" {
		u.Scheme = "https"
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
