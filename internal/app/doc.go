// Package app is the composition root for paramlens.
//
// Run resolves configuration (file, .env, PARAMLENS_* variables, then the
// caller's overrides), points slog at the rotated log file, chooses a tab
// source and hands control to the ui package until the user quits.
//
// Two sources exist:
//
//   - tabs.Client talks to a browser started with --remote-debugging-port and
//     navigates the active tab in place.
//   - tabs.Static serves a URL given on the command line. Updates open the
//     new URL in the system browser unless NoOpen is set, and Run returns
//     every produced URL so the caller can print them.
//
// Errors from configuration or source setup are returned before the UI
// starts. Failures inside the UI (unreachable browser, navigation errors)
// are shown to the user and logged instead.
package app
