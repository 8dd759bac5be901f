package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/five82/paramlens/internal/query"
	"github.com/five82/paramlens/internal/tabs"
)

// Status lines shown above the parameter panels.
const (
	statusLoading = "Reading active tab..."
	statusNone    = "No base64-encoded query parameters found."
	statusFound   = "Found %d base64-encoded parameter(s):"
)

// Notice texts.
const (
	noticeUpdated = "URL updated! The page will reload."
	noticeCopied  = "Copied to clipboard!"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Source    tabs.Source
	ThemeName string
	NoticeTTL time.Duration
	// Clipboard writes text to the system clipboard. Nil uses atotto/clipboard.
	Clipboard func(string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	source    tabs.Source
	clip      func(string) error
	noticeTTL time.Duration
	keys      keyMap
	help      help.Model

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	// Tab state
	loading    bool
	tab        tabs.Tab
	currentURL string
	loadErr    error

	// Panel state
	panels []panel
	focus  int

	// Notices
	notices      []notice
	nextNoticeID int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	ttl := opts.NoticeTTL
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}

	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}

	return Model{
		ctx:       ctx,
		source:    opts.Source,
		clip:      clip,
		noticeTTL: ttl,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(opts.ThemeName),
		loading:   true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadTabCmd(m.ctx, m.source),
		textarea.Blink,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resizeEditors()
		return m, nil

	case tabLoadedMsg:
		return m.handleTabLoaded(msg)

	case navigatedMsg:
		if msg.err != nil {
			slog.Warn("navigation failed", "key", msg.key, "error", msg.err)
			return m.pushNotice("Error: "+msg.err.Error(), true)
		}
		slog.Info("url updated", "key", msg.key)
		return m.pushNotice(noticeUpdated, false)

	case copiedMsg:
		if msg.err != nil {
			slog.Warn("clipboard write failed", "error", msg.err)
			return m.pushNotice(fmt.Sprintf("Failed to copy: %v", msg.err), true)
		}
		return m.pushNotice(noticeCopied, false)

	case noticeExpiredMsg:
		m.notices = lo.Reject(m.notices, func(n notice, _ int) bool {
			return n.id == int(msg)
		})
		return m, nil
	}

	return m.updateEditor(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input. Action chords are matched first; any
// other key goes to the focused editor.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, loadTabCmd(m.ctx, m.source)
	}

	if len(m.panels) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextPanel):
		cmd := m.setFocus(m.focus + 1)
		return m, cmd
	case key.Matches(msg, m.keys.PrevPanel):
		cmd := m.setFocus(m.focus - 1)
		return m, cmd
	case key.Matches(msg, m.keys.UpdateURL):
		return m.updateURL()
	case key.Matches(msg, m.keys.CopyDecoded):
		return m, copyCmd(m.clip, m.panels[m.focus].text())
	case key.Matches(msg, m.keys.CopyEncoded):
		encoded, err := m.panels[m.focus].encoded()
		if err != nil {
			return m.pushNotice("Error: "+err.Error(), true)
		}
		return m, copyCmd(m.clip, encoded)
	}

	return m.updateEditor(msg)
}

// handleTabLoaded builds one panel per base64 parameter of the loaded tab.
func (m Model) handleTabLoaded(msg tabLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.panels = nil
	m.focus = 0

	if msg.err != nil {
		slog.Error("active tab query failed", "error", msg.err)
		m.loadErr = msg.err
		return m, nil
	}

	target, err := query.Parse(msg.tab.URL)
	if err != nil {
		slog.Error("tab url parse failed", "error", err)
		m.loadErr = err
		return m, nil
	}

	m.loadErr = nil
	m.tab = msg.tab
	m.currentURL = msg.tab.URL

	classified := query.Classify(target.Params)
	m.panels = lo.Map(classified, func(p query.Parameter, _ int) panel {
		return newPanel(p)
	})
	slog.Info("tab loaded",
		"tab_id", msg.tab.ID,
		"params", len(target.Params),
		"base64_params", len(m.panels),
	)

	m.resizeEditors()
	cmd := m.setFocus(0)
	return m, cmd
}

// updateURL re-encodes the focused panel, rewrites the session URL and asks
// the source to navigate. The session URL changes immediately so later
// updates build on this one.
func (m Model) updateURL() (tea.Model, tea.Cmd) {
	p := &m.panels[m.focus]
	encoded, err := p.encoded()
	if err != nil {
		slog.Warn("re-encode failed", "key", p.param.Key, "error", err)
		return m.pushNotice("Error: "+err.Error(), true)
	}

	newURL, err := query.ApplyUpdate(m.currentURL, p.param.Key, encoded)
	if err != nil {
		slog.Warn("url update failed", "key", p.param.Key, "error", err)
		return m.pushNotice("Error: "+err.Error(), true)
	}

	m.currentURL = newURL
	m.tab.URL = newURL
	p.param.Value = encoded
	return m, navigateCmd(m.ctx, m.source, m.tab, p.param.Key, newURL)
}

// setFocus moves focus to panel i, wrapping at both ends.
func (m *Model) setFocus(i int) tea.Cmd {
	if len(m.panels) == 0 {
		return nil
	}
	n := len(m.panels)
	i = ((i % n) + n) % n

	m.panels[m.focus].editor.Blur()
	m.focus = i
	return m.panels[i].editor.Focus()
}

func (m Model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.panels) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.panels[m.focus].editor, cmd = m.panels[m.focus].editor.Update(msg)
	return m, cmd
}

func (m *Model) resizeEditors() {
	if m.width == 0 {
		return
	}
	width := maxInt(m.width-panelChromeCols, minEditorWidth)
	for i := range m.panels {
		m.panels[i].editor.SetWidth(width)
	}
}

// Messages

type tabLoadedMsg struct {
	tab tabs.Tab
	err error
}

type navigatedMsg struct {
	key string
	err error
}

type copiedMsg struct {
	err error
}

// Commands

func loadTabCmd(ctx context.Context, source tabs.Source) tea.Cmd {
	return func() tea.Msg {
		if source == nil {
			return tabLoadedMsg{err: errors.New("no tab source configured")}
		}
		loadCtx, cancel := context.WithTimeout(ctx, tabLoadTimeout)
		defer cancel()
		tab, err := source.ActiveTab(loadCtx)
		return tabLoadedMsg{tab: tab, err: err}
	}
}

func navigateCmd(ctx context.Context, source tabs.Source, tab tabs.Tab, paramKey, newURL string) tea.Cmd {
	return func() tea.Msg {
		return navigatedMsg{key: paramKey, err: source.Navigate(ctx, tab, newURL)}
	}
}

func copyCmd(clip func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clip(text)}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
