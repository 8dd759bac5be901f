package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/paramlens/internal/codec"
	"github.com/five82/paramlens/internal/query"
)

// panel is the editor for one base64 parameter.
type panel struct {
	param     query.Parameter
	result    codec.DecodedResult
	decodeErr error
	editor    textarea.Model

	// loaded is the editor value right after result.Text was set. The
	// textarea rewrites tabs, CR and control runes on input, so an editor
	// still holding loaded stands for result.Text.
	loaded string
}

func newPanel(param query.Parameter) panel {
	result, err := codec.Decode(param.Value)
	if err != nil {
		result = codec.DecodedResult{Text: codec.DecodePlaceholder}
	}

	editor := textarea.New()
	editor.ShowLineNumbers = false
	editor.Prompt = ""
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.SetHeight(EditorRows)
	editor.SetValue(result.Text)
	editor.Blur()

	return panel{
		param:     param,
		result:    result,
		decodeErr: err,
		editor:    editor,
		loaded:    editor.Value(),
	}
}

// edited reports whether the user changed the editor contents.
func (p panel) edited() bool {
	return p.editor.Value() != p.loaded
}

// text returns the decoded text, or the editor contents once edited.
func (p panel) text() string {
	if !p.edited() {
		return p.result.Text
	}
	return p.editor.Value()
}

// encoded re-encodes the panel text for the URL.
func (p panel) encoded() (string, error) {
	if p.result.Binary {
		return codec.EncodeLatin1(p.text())
	}
	return codec.Encode(p.text(), p.result.IsJSON), nil
}

// render draws the panel with a focus-aware border.
func (p panel) render(theme Theme, width int, focused bool) string {
	styles := theme.Styles()

	var badges []string
	if p.result.IsJSON {
		badges = append(badges, styles.Badge(theme.Success).Render("JSON"))
	}
	if p.result.Binary {
		badges = append(badges, styles.Badge(theme.Warning).Render("BINARY"))
	}
	if p.decodeErr != nil {
		badges = append(badges, styles.Badge(theme.Danger).Render("DECODE FAILED"))
	}

	title := styles.AccentText.Bold(true).Render(p.param.Key)
	if len(badges) > 0 {
		title += " " + strings.Join(badges, " ")
	}

	border := theme.Border
	if focused {
		border = theme.BorderFocus
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(maxInt(width-2, minEditorWidth+2))

	return box.Render(title + "\n" + p.editor.View())
}
