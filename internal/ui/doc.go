// Package ui provides the terminal interface for inspecting and editing the
// base64 query parameters of a browser tab.
//
// The interface is a Bubble Tea program. On start it asks a tabs.Source for
// the active tab, parses the URL and shows one editor panel per parameter
// whose value looks like base64. Each panel holds the decoded text, JSON
// payloads pretty-printed.
//
// # Keys
//
//   - tab / shift+tab: move focus between panels (wraps)
//   - ctrl+s: re-encode the focused panel and navigate the tab to the new URL
//   - ctrl+y / ctrl+x: copy the decoded text or the re-encoded value
//   - ctrl+r: read the active tab again
//   - f1: help overlay
//   - esc / ctrl+c: quit
//
// All other keys edit the focused panel.
//
// # Updates
//
// Every update rewrites a session copy of the tab URL before navigation is
// dispatched, so a second update to another panel builds on the first. Only
// the edited parameter changes; other query segments keep their original
// encoding.
//
// Success and failure notices appear above the footer and expire after the
// configured notice TTL.
package ui
