package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds paramlens settings after file, environment and default
// resolution.
type Config struct {
	CDPURL          string
	TabFilter       string
	Theme           string
	NoticeTTL       time.Duration
	NavigateTimeout time.Duration
	LogFile         string
	LogLevel        string
}

const (
	defaultConfigPath      = "~/.config/paramlens/config.toml"
	defaultCDPURL          = "http://127.0.0.1:9222"
	defaultTheme           = "Nightfox"
	defaultNoticeSeconds   = 3
	defaultNavigateSeconds = 15
	defaultLogFile         = "~/.local/state/paramlens/paramlens.log"
	defaultLogLevel        = "info"
)

// Environment variables that override the config file.
const (
	EnvCDPURL    = "PARAMLENS_CDP_URL"
	EnvTabFilter = "PARAMLENS_TAB_FILTER"
	EnvTheme     = "PARAMLENS_THEME"
	EnvLogLevel  = "PARAMLENS_LOG_LEVEL"
	EnvLogFile   = "PARAMLENS_LOG_FILE"
	EnvNotice    = "PARAMLENS_NOTICE_SECONDS"
)

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		CDPURL:          defaultCDPURL,
		Theme:           defaultTheme,
		NoticeTTL:       defaultNoticeSeconds * time.Second,
		NavigateTimeout: defaultNavigateSeconds * time.Second,
		LogFile:         mustExpand(defaultLogFile),
		LogLevel:        defaultLogLevel,
	}
}

// Load reads the config file at path (or the default location), then applies
// an optional .env file and PARAMLENS_* environment overrides. A missing
// config file is not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := Default()

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		applyEnv(&cfg)
		return cfg, nil
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		CDPURL          string `toml:"cdp_url"`
		TabFilter       string `toml:"tab_filter"`
		Theme           string `toml:"theme"`
		NoticeSeconds   int    `toml:"notice_seconds"`
		NavigateSeconds int    `toml:"navigate_timeout_seconds"`
		LogFile         string `toml:"log_file"`
		LogLevel        string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.CDPURL); v != "" {
		cfg.CDPURL = v
	}
	cfg.TabFilter = strings.TrimSpace(raw.TabFilter)
	if v := strings.TrimSpace(raw.Theme); v != "" {
		cfg.Theme = v
	}
	if raw.NoticeSeconds > 0 {
		cfg.NoticeTTL = time.Duration(raw.NoticeSeconds) * time.Second
	}
	if raw.NavigateSeconds > 0 {
		cfg.NavigateTimeout = time.Duration(raw.NavigateSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	cfg.LogLevel = normalizeLevel(raw.LogLevel)

	applyEnv(&cfg)
	return cfg, nil
}

// DefaultPath returns the config path used when none is given.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvCDPURL)); v != "" {
		cfg.CDPURL = v
	}
	if v, ok := os.LookupEnv(EnvTabFilter); ok {
		cfg.TabFilter = strings.TrimSpace(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = normalizeLevel(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvNotice)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.NoticeTTL = time.Duration(n) * time.Second
		}
	}
}

func normalizeLevel(level string) string {
	l := strings.ToLower(strings.TrimSpace(level))
	if _, ok := validLogLevels[l]; ok {
		return l
	}
	return defaultLogLevel
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
