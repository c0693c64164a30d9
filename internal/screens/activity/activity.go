// Package activity shows what this run has done: journaled commands and LLM
// requests.
package activity

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kubestronaut/internal/journal"
	"github.com/abhisek/kubestronaut/internal/llm"
	"github.com/abhisek/kubestronaut/internal/router"
	"github.com/abhisek/kubestronaut/internal/screen"
	"github.com/abhisek/kubestronaut/internal/ui/layout"
	"github.com/abhisek/kubestronaut/internal/ui/theme"
)

// RecentLimit caps the number of commands loaded.
const RecentLimit = 50

// Source is the journal view the screen reads from.
type Source interface {
	Recent(ctx context.Context, n int) ([]journal.Entry, error)
	LLMRequests(ctx context.Context) ([]journal.LLMRequest, error)
}

type activityLoadedMsg struct {
	Entries  []journal.Entry
	Requests []journal.LLMRequest
	Err      error
}

// ActivityScreen lists recent commands, newest first, and LLM usage.
type ActivityScreen struct {
	source   Source
	entries  []journal.Entry
	requests []journal.LLMRequest

	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ActivityScreen)(nil)
var _ screen.KeyHintProvider = (*ActivityScreen)(nil)

func New(source Source) *ActivityScreen {
	return &ActivityScreen{source: source, expanded: make(map[int]bool)}
}

func (s *ActivityScreen) Init() tea.Cmd {
	return s.load
}

func (s *ActivityScreen) load() tea.Msg {
	if s.source == nil {
		return activityLoadedMsg{}
	}
	ctx := context.Background()

	entries, err := s.source.Recent(ctx, RecentLimit)
	if err != nil {
		return activityLoadedMsg{Err: err}
	}
	// LLM usage is secondary; a failed query leaves that section empty.
	requests, err := s.source.LLMRequests(ctx)
	if err != nil {
		return activityLoadedMsg{Entries: entries}
	}
	return activityLoadedMsg{Entries: entries, Requests: requests}
}

func (s *ActivityScreen) Title() string {
	return "Activity"
}

func (s *ActivityScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "r", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ActivityScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case activityLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.errMsg = ""
			s.entries = msg.Entries
			s.requests = msg.Requests
		}
		s.selected = min(s.selected, max(len(s.entries)-1, 0))
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, router.Pop
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		case "r":
			return s, s.load
		}
	}
	return s, nil
}

func (s *ActivityScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading activity...")
	}

	var b strings.Builder
	b.WriteString(theme.SectionHeader.Render("Commands"))
	b.WriteString("\n")
	if len(s.entries) == 0 {
		b.WriteString(theme.Hint.Render("  Nothing yet. Select a topic or complete a course."))
		b.WriteString("\n")
	}
	for i, e := range s.entries {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		if !e.OK {
			style = style.Foreground(theme.Error)
		}
		line := fmt.Sprintf("%s%s  %-18s %s", prefix, e.Timestamp.Local().Format("15:04:05"), describeKind(e.Kind), target(e))
		b.WriteString(style.Render(layout.Truncate(line, width)))
		b.WriteString("\n")

		if s.expanded[i] {
			status := "applied"
			if !e.OK {
				status = "rejected"
			}
			detail := fmt.Sprintf("    #%d %s", e.Sequence, status)
			if e.Detail != "" {
				detail += ": " + e.Detail
			}
			b.WriteString(theme.Dim.Render(layout.Truncate(detail, width)))
			b.WriteString("\n")
		}
	}

	if len(s.requests) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.SectionHeader.Render("LLM requests"))
		b.WriteString("\n")
		b.WriteString(renderRequests(s.requests, width))
	}
	return b.String()
}

func renderRequests(reqs []journal.LLMRequest, width int) string {
	var b strings.Builder
	var tokens int
	var cost float64
	for _, r := range reqs {
		tokens += r.InputTokens + r.OutputTokens
		if c := llm.LookupCost(r.Model); c != nil {
			cost += c.Cost(r.InputTokens, r.OutputTokens)
		}

		status := "ok"
		style := theme.Dim
		if !r.Success {
			status = "failed"
			style = lipgloss.NewStyle().Foreground(theme.Error)
		}
		line := fmt.Sprintf("  %s  %s/%s  %s  %d→%d tokens  %dms  %s",
			r.Timestamp.Local().Format("15:04:05"), r.Provider, r.Model, r.Purpose,
			r.InputTokens, r.OutputTokens, r.LatencyMs, status)
		b.WriteString(style.Render(layout.Truncate(line, width)))
		b.WriteString("\n")
	}
	b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d requests, %d tokens, $%.4f", len(reqs), tokens, cost)))
	b.WriteString("\n")
	return b.String()
}

func describeKind(k journal.Kind) string {
	switch k {
	case journal.KindToggleTopic:
		return "Topic toggled"
	case journal.KindToggleCourse:
		return "Course toggled"
	case journal.KindToggleCompletion:
		return "Completion toggled"
	case journal.KindSetPosition:
		return "Card moved"
	case journal.KindUndo:
		return "Undo"
	default:
		return string(k)
	}
}

func target(e journal.Entry) string {
	switch {
	case e.TopicID != "":
		return fmt.Sprintf("%s (%s)", e.TopicID, e.CourseID)
	case e.CourseID != "":
		return e.CourseID
	default:
		return ""
	}
}
