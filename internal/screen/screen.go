package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kubestronaut/internal/tracker"
	"github.com/abhisek/kubestronaut/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens that can hold keyboard focus in a
// text field. While CapturingInput is true the app passes Esc and q through
// instead of navigating.
type InputCapturer interface {
	CapturingInput() bool
}

// NotifyMsg asks the app to show toast notifications.
type NotifyMsg struct {
	Notifications []tracker.Notification
}

// Notify wraps notifications in a command; nil when there are none.
func Notify(notes []tracker.Notification) tea.Cmd {
	if len(notes) == 0 {
		return nil
	}
	return func() tea.Msg { return NotifyMsg{Notifications: notes} }
}
