// Package config loads paramlens settings.
//
// # Resolution Order
//
// Settings are resolved lowest to highest precedence:
//
//  1. Built-in defaults
//  2. ~/.config/paramlens/config.toml, or the path given to Load
//  3. PARAMLENS_* environment variables, including those from a .env file
//     in the working directory
//
// Command-line flags are applied on top by the caller. A missing config file
// is not an error; a file that is not valid TOML is.
//
// # TOML Format
//
//	cdp_url = "http://127.0.0.1:9222"
//	tab_filter = "example.com"
//	theme = "Nightfox"
//	notice_seconds = 3
//	navigate_timeout_seconds = 15
//	log_file = "~/.local/state/paramlens/paramlens.log"
//	log_level = "info"
//
// Every field is optional. Blank strings, non-positive durations and unknown
// log levels fall back to the defaults. Tilde expansion is applied to
// log_file.
//
// # Environment
//
//   - PARAMLENS_CDP_URL
//   - PARAMLENS_TAB_FILTER (set but empty clears a filter from the file)
//   - PARAMLENS_THEME
//   - PARAMLENS_LOG_LEVEL
//   - PARAMLENS_LOG_FILE
//   - PARAMLENS_NOTICE_SECONDS
package config
