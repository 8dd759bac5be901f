package ui

import "time"

// Panel geometry.
const (
	// EditorRows is the visible height of each parameter editor.
	EditorRows = 8

	// panelChromeRows covers the panel title line and its top and bottom border.
	panelChromeRows = 3

	// panelChromeCols covers the panel border and horizontal padding.
	panelChromeCols = 4

	// minEditorWidth keeps editors usable in very narrow terminals.
	minEditorWidth = 20

	helpModalWidth = 46
)

// Timing constants.
const (
	// DefaultNoticeTTL is how long a transient notice stays on screen.
	DefaultNoticeTTL = 3 * time.Second

	// tabLoadTimeout bounds the initial active-tab query.
	tabLoadTimeout = 10 * time.Second
)
