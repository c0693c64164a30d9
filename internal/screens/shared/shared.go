// Package shared lists the concepts taught in more than one certification.
package shared

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kubestronaut/internal/curriculum"
	"github.com/abhisek/kubestronaut/internal/explain"
	"github.com/abhisek/kubestronaut/internal/router"
	"github.com/abhisek/kubestronaut/internal/screen"
	"github.com/abhisek/kubestronaut/internal/screens/graph"
	"github.com/abhisek/kubestronaut/internal/tracker"
	"github.com/abhisek/kubestronaut/internal/ui/layout"
	"github.com/abhisek/kubestronaut/internal/ui/theme"
)

// SharedScreen shows each cross-course concept with the courses teaching it.
type SharedScreen struct {
	session   *tracker.Session
	explainer *explain.Service
	concepts  []curriculum.Concept

	cursor       int
	scrollOffset int
}

var _ screen.Screen = (*SharedScreen)(nil)
var _ screen.KeyHintProvider = (*SharedScreen)(nil)

// New creates the shared topics screen. explainer may be nil.
func New(session *tracker.Session, explainer *explain.Service) *SharedScreen {
	return &SharedScreen{
		session:   session,
		explainer: explainer,
		concepts:  session.Catalog().Concepts(),
	}
}

func (s *SharedScreen) Init() tea.Cmd {
	return nil
}

func (s *SharedScreen) Title() string {
	return "Shared Topics"
}

func (s *SharedScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Toggle everywhere"},
		{Key: "Enter", Description: "Detail"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SharedScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(s.concepts) == 0 {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.concepts)-1 {
			s.cursor++
		}
	case "space":
		cp := s.concepts[s.cursor]
		topicID := cp.TopicIDs[0]
		course, _ := s.session.Catalog().CourseOfTopic(topicID)
		fx := s.session.ToggleTopic(context.Background(), topicID, course.ID)
		return s, screen.Notify(fx.Notifications)
	case "enter":
		detail := graph.NewDetail(s.session, s.explainer, s.concepts[s.cursor].TopicIDs[0])
		return s, router.Push(detail)
	case "q":
		return s, router.Pop
	}
	return s, nil
}

func (s *SharedScreen) View(width, height int) string {
	if len(s.concepts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No topic is shared between certifications.")
	}

	cat := s.session.Catalog()
	sel := s.session.State().Selected

	header := theme.Dim.Render(fmt.Sprintf("%d concepts appear in more than one certification", len(s.concepts)))
	visible := max(height-2, 1)
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+visible {
		s.scrollOffset = s.cursor - visible + 1
	}

	lines := []string{header, ""}
	end := min(s.scrollOffset+visible, len(s.concepts))
	for i := s.scrollOffset; i < end; i++ {
		cp := s.concepts[i]
		mark := "○"
		style := theme.Unselected
		if sel.Has(cp.TopicIDs[0]) {
			mark = "●"
			style = theme.Selected
		}
		prefix := "  "
		if i == s.cursor {
			prefix = "> "
			style = style.Underline(true)
		}

		titles := make([]string, len(cp.CourseIDs))
		for j, id := range cp.CourseIDs {
			c, _ := cat.Course(id)
			titles[j] = c.Title
		}
		label := prefix + style.Render(mark+" "+cp.Title)
		tail := layout.Truncate("  "+strings.Join(titles, " · "), width-lipgloss.Width(label))
		lines = append(lines, label+theme.Dim.Render(tail))
	}
	return strings.Join(lines, "\n")
}
