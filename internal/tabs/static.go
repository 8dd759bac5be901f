package tabs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pkg/browser"
)

// Ensure Static implements Source at compile time.
var _ Source = (*Static)(nil)

// StaticTabID identifies the single tab served by Static.
const StaticTabID = "static"

// Static serves a URL supplied on the command line instead of a live tab.
// Navigation records the new URL and, when an opener is set, hands it to
// the system browser.
type Static struct {
	mu        sync.Mutex
	url       string
	navigated []string
	open      func(string) error
}

// NewStatic returns a Static source for rawURL. When openBrowser is true,
// Navigate opens each new URL with the system browser.
func NewStatic(rawURL string, openBrowser bool) *Static {
	s := &Static{url: strings.TrimSpace(rawURL)}
	if openBrowser {
		s.open = browser.OpenURL
	}
	return s
}

// ActiveTab returns the current URL as a tab.
func (s *Static) ActiveTab(ctx context.Context) (Tab, error) {
	if err := ctx.Err(); err != nil {
		return Tab{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.url == "" {
		return Tab{}, fmt.Errorf("%w: no url given", ErrNoTab)
	}
	return Tab{ID: StaticTabID, Type: "page", Title: "command line", URL: s.url}, nil
}

// Navigate records rawURL as the current URL.
func (s *Static) Navigate(ctx context.Context, tab Tab, rawURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tab.ID != StaticTabID {
		return fmt.Errorf("navigate: unknown tab %q", tab.ID)
	}
	if s.open != nil {
		if err := s.open(rawURL); err != nil {
			return fmt.Errorf("open browser: %w", err)
		}
	}

	s.mu.Lock()
	s.url = rawURL
	s.navigated = append(s.navigated, rawURL)
	s.mu.Unlock()

	slog.Info("static tab navigated", "opened", s.open != nil)
	return nil
}

// Navigated returns every URL passed to Navigate, oldest first.
func (s *Static) Navigated() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.navigated))
	copy(out, s.navigated)
	return out
}
