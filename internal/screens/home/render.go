package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kubestronaut/internal/ui/components"
	"github.com/abhisek/kubestronaut/internal/ui/theme"
)

const titleFull = `   ⎈   K U B E S T R O N A U T   ⎈
 CKA · CKAD · CKS · KCNA · KCSA`

const titleCompact = "⎈ KUBESTRONAUT"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for the frame border (2) and inner padding (4).
	return min(max(frameWidth-6, 20), 60)
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders selection and completion counts in a bordered box.
func renderStatsBar(selected, topics, completed, courses, concepts, cw int, compact bool) string {
	selStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	sharedStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			selStyle.Render(fmt.Sprintf("●%d", selected)),
			doneStyle.Render(fmt.Sprintf("✓%d/%d", completed, courses)),
			sharedStyle.Render(fmt.Sprintf("⇄%d", concepts)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			selStyle.Render(fmt.Sprintf("● %d/%d TOPICS", selected, topics)),
			doneStyle.Render(fmt.Sprintf("✓ %d/%d DONE", completed, courses)),
			sharedStyle.Render(fmt.Sprintf("⇄ %d SHARED", concepts)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func renderMenu(m components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(m.View())
}

// renderLLMBanner is shown when topic notes come from the static fallback.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("Set an LLM API key for AI topic notes (see kubestronaut --help)")
}

// renderFrame wraps content in a double border centered in the given area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
