package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kubestronaut/internal/ui/theme"
)

// TextInput wraps bubbles/textinput as a one-line filter prompt.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput creates a focused input with the given placeholder.
func NewTextInput(placeholder string, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}
	ti.Focus()
	return TextInput{Model: ti}
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input, with a match count when matches >= 0.
func (t TextInput) View(matches int) string {
	view := t.Model.View()
	if matches >= 0 && t.Model.Value() != "" {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if matches == 0 {
			style = lipgloss.NewStyle().Foreground(theme.Error)
		}
		view += "  " + style.Render(pluralize(matches, "match", "matches"))
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.Reset()
}
