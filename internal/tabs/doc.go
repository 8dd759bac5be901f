// Package tabs reaches the browser tab whose URL paramlens inspects.
//
// Two sources implement Source:
//
//   - Client talks to a Chromium started with --remote-debugging-port. The
//     target list comes from the DevTools HTTP endpoint (/json/list) and
//     navigation attaches to the chosen target with chromedp.
//   - Static serves a URL given on the command line. Navigating it records
//     the new URL and can open it in the system browser.
//
// DevTools has no notion of an "active" tab, but it lists page targets most
// recently focused first, so SelectActive takes the first page that matches
// the optional filter and is not a devtools or extension page.
package tabs
