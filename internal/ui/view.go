package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderMain renders header, status line, the visible panels and the footer.
func (m Model) renderMain() string {
	footer := m.renderFooter()
	footerLines := strings.Count(footer, "\n") + 1

	parts := []string{
		m.renderHeader(),
		m.renderStatus(),
	}
	if m.loadErr == nil && !m.loading {
		avail := m.height - len(parts) - footerLines
		parts = append(parts, m.renderPanels(avail)...)
	}

	body := strings.Join(parts, "\n")
	gap := m.height - lipgloss.Height(body) - footerLines
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + footer
}

// renderHeader renders the logo and the tab being inspected.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("paramlens", styles.Logo)}
	if m.currentURL != "" {
		if title := strings.TrimSpace(m.tab.Title); title != "" {
			parts = append(parts, bg.Render(truncateMiddle(title, 30), styles.Text))
		}
		limit := maxInt(m.width-lipgloss.Width(bg.Join(parts, "  "))-6, 12)
		parts = append(parts, bg.Render(truncateMiddle(m.currentURL, limit), styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderStatus renders the status line. A tab or URL failure replaces it
// with the error and nothing else is drawn below.
func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	switch {
	case m.loading:
		return styles.WarningText.Render(statusLoading)
	case m.loadErr != nil:
		return styles.DangerText.Render("Error: " + m.loadErr.Error())
	case len(m.panels) == 0:
		return styles.MutedText.Render(statusNone)
	default:
		return styles.Text.Render(fmt.Sprintf(statusFound, len(m.panels)))
	}
}

// renderPanels renders as many panels as fit in avail rows, keeping the
// focused panel in view.
func (m Model) renderPanels(avail int) []string {
	if len(m.panels) == 0 {
		return nil
	}
	start, end := visibleRange(len(m.panels), m.focus, avail/(EditorRows+panelChromeRows))

	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, m.panels[i].render(m.theme, m.width, i == m.focus))
	}
	return out
}

// visibleRange returns the half-open window of panels to draw. At least one
// panel is always shown.
func visibleRange(total, focus, fit int) (int, int) {
	if fit < 1 {
		fit = 1
	}
	if fit >= total {
		return 0, total
	}
	start := 0
	if focus >= fit {
		start = focus - fit + 1
	}
	return start, start + fit
}

// renderFooter renders active notices above the key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	lines := m.renderNotices()

	hints := m.help.ShortHelpView(m.keys.ShortHelp())
	if len(m.panels) > 1 {
		hints = styles.FaintText.Render(fmt.Sprintf("%d/%d  ", m.focus+1, len(m.panels))) + hints
	}
	lines = append(lines, styles.Footer.Width(m.width).Render(hints))
	return strings.Join(lines, "\n")
}
