package tabs

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoTab is returned when no page target matches the configured filter.
var ErrNoTab = errors.New("no matching browser tab")

// Tab is a snapshot of a browser page target.
type Tab struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Source provides the active tab and navigates it.
type Source interface {
	ActiveTab(ctx context.Context) (Tab, error)
	Navigate(ctx context.Context, tab Tab, url string) error
}

// internalSchemes are page targets that are never user tabs.
var internalSchemes = []string{"devtools://", "chrome-extension://", "chrome-untrusted://"}

// SelectActive returns the first page target whose URL contains filter.
// DevTools lists targets most recently focused first, so the first match is
// the active tab.
func SelectActive(targets []Tab, filter string) (Tab, error) {
	needle := strings.ToLower(strings.TrimSpace(filter))
	for _, t := range targets {
		if t.Type != "page" || isInternal(t.URL) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(t.URL), needle) {
			continue
		}
		return t, nil
	}
	if needle != "" {
		return Tab{}, fmt.Errorf("%w (filter %q)", ErrNoTab, filter)
	}
	return Tab{}, ErrNoTab
}

func isInternal(rawURL string) bool {
	for _, scheme := range internalSchemes {
		if strings.HasPrefix(rawURL, scheme) {
			return true
		}
	}
	return false
}
