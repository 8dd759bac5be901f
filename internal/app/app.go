package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/five82/paramlens/internal/config"
	"github.com/five82/paramlens/internal/logging"
	"github.com/five82/paramlens/internal/tabs"
	"github.com/five82/paramlens/internal/ui"
)

// Options configure a paramlens session. Non-empty fields override the
// config file and environment.
type Options struct {
	ConfigPath string
	URL        string // inspect this URL instead of a browser tab
	CDPURL     string
	Filter     string
	Theme      string
	NoOpen     bool // with URL: record updates without opening the browser
}

// Run loads configuration, starts logging and runs the TUI until the user
// quits or the context is cancelled. With Options.URL set it returns the
// URLs produced by updates, oldest first.
func Run(ctx context.Context, opts Options) ([]string, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	closer, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	slog.Info("paramlens starting",
		"cdp_url", cfg.CDPURL,
		"tab_filter", cfg.TabFilter,
		"theme", cfg.Theme,
		"static", opts.URL != "",
	)

	source, static, err := newSource(cfg, opts)
	if err != nil {
		return nil, err
	}

	err = ui.Run(ui.Options{
		Context:   ctx,
		Source:    source,
		ThemeName: cfg.Theme,
		NoticeTTL: cfg.NoticeTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("run ui: %w", err)
	}

	if static == nil {
		return nil, nil
	}
	return static.Navigated(), nil
}

// LoadConfig resolves configuration for opts.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.CDPURL); v != "" {
		cfg.CDPURL = v
	}
	if v := strings.TrimSpace(opts.Filter); v != "" {
		cfg.TabFilter = v
	}
	if v := strings.TrimSpace(opts.Theme); v != "" {
		cfg.Theme = v
	}
	return cfg, nil
}

// newSource picks the tab source: a static URL when one was given, the
// browser's DevTools endpoint otherwise.
func newSource(cfg config.Config, opts Options) (tabs.Source, *tabs.Static, error) {
	if rawURL := strings.TrimSpace(opts.URL); rawURL != "" {
		static := tabs.NewStatic(rawURL, !opts.NoOpen)
		return static, static, nil
	}

	client, err := tabs.NewClient(tabs.ClientOptions{
		CDPURL:          cfg.CDPURL,
		Filter:          cfg.TabFilter,
		NavigateTimeout: cfg.NavigateTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init tab client: %w", err)
	}
	return client, nil, nil
}
