package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application. Editing keys
// belong to the focused textarea, so actions use chords it leaves free.
type keyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Reload key.Binding

	NextPanel key.Binding
	PrevPanel key.Binding

	UpdateURL   key.Binding
	CopyDecoded key.Binding
	CopyEncoded key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "Help"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Reload tab"),
		),
		NextPanel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next parameter"),
		),
		PrevPanel: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous parameter"),
		),
		UpdateURL: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Update URL"),
		),
		CopyDecoded: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "Copy decoded"),
		),
		CopyEncoded: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "Copy encoded"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.UpdateURL, k.CopyDecoded, k.CopyEncoded, k.NextPanel, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help overlay, grouped by column.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.UpdateURL, k.CopyDecoded, k.CopyEncoded},
		{k.NextPanel, k.PrevPanel, k.Reload},
		{k.Help, k.Quit},
	}
}
