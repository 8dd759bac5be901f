package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// notice is a transient success or error message.
type notice struct {
	id      int
	text    string
	isError bool
}

type noticeExpiredMsg int

// pushNotice shows text until the notice TTL elapses.
func (m Model) pushNotice(text string, isError bool) (tea.Model, tea.Cmd) {
	m.nextNoticeID++
	id := m.nextNoticeID
	m.notices = append(append([]notice(nil), m.notices...), notice{id: id, text: text, isError: isError})
	return m, tea.Tick(m.noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg(id)
	})
}

func (m Model) renderNotices() []string {
	styles := m.theme.Styles()
	lines := make([]string, 0, len(m.notices))
	for _, n := range m.notices {
		style := styles.SuccessText
		if n.isError {
			style = styles.DangerText
		}
		lines = append(lines, style.Render(n.text))
	}
	return lines
}
