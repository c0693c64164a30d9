package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kubestronaut/internal/tracker"
	"github.com/abhisek/kubestronaut/internal/ui/theme"
)

// MaxToastLines caps the description lines shown per toast.
const MaxToastLines = 4

// RenderToasts renders notifications as a stack of bordered boxes, newest
// last. It returns "" when there is nothing to show.
func RenderToasts(notes []tracker.Notification, width int) string {
	if len(notes) == 0 {
		return ""
	}
	boxes := make([]string, len(notes))
	for i, n := range notes {
		boxes[i] = renderToast(n, width)
	}
	return strings.Join(boxes, "\n")
}

func renderToast(n tracker.Notification, width int) string {
	accent := levelColor(n.Level)
	lines := []string{lipgloss.NewStyle().Foreground(accent).Bold(true).Render(n.Title)}

	shown := n.Lines
	if len(shown) > MaxToastLines {
		shown = shown[:MaxToastLines]
	}
	for _, l := range shown {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("  "+l))
	}
	if extra := len(n.Lines) - len(shown); extra > 0 {
		lines = append(lines, theme.Dim.Render(fmt.Sprintf("  … and %d more", extra)))
	}

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func levelColor(l tracker.Level) color.Color {
	switch l {
	case tracker.LevelSuccess:
		return theme.Success
	case tracker.LevelError:
		return theme.Error
	default:
		return theme.Primary
	}
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
