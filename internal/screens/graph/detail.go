package graph

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kubestronaut/internal/explain"
	"github.com/abhisek/kubestronaut/internal/router"
	"github.com/abhisek/kubestronaut/internal/screen"
	"github.com/abhisek/kubestronaut/internal/tracker"
	"github.com/abhisek/kubestronaut/internal/ui/layout"
	"github.com/abhisek/kubestronaut/internal/ui/theme"
)

type explanationMsg struct {
	topicID     string
	explanation *explain.Explanation
	err         error
}

// DetailScreen shows one topic, where else it is taught, and its explanation.
type DetailScreen struct {
	session   *tracker.Session
	explainer *explain.Service
	topicID   string

	explanation *explain.Explanation
	err         error
	loading     bool
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

// NewDetail creates the detail screen for topicID. explainer may be nil.
func NewDetail(session *tracker.Session, explainer *explain.Service, topicID string) *DetailScreen {
	return &DetailScreen{session: session, explainer: explainer, topicID: topicID}
}

func (d *DetailScreen) Init() tea.Cmd {
	if d.explainer == nil {
		return nil
	}
	d.loading = true
	svc, id := d.explainer, d.topicID
	return func() tea.Msg {
		exp, err := svc.Explain(context.Background(), id)
		return explanationMsg{topicID: id, explanation: exp, err: err}
	}
}

func (d *DetailScreen) Title() string {
	if ref, ok := d.session.Catalog().Topic(d.topicID); ok {
		return ref.Topic.Title
	}
	return "Topic"
}

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "Toggle"},
		{Key: "c", Description: "Complete course"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explanationMsg:
		if msg.topicID != d.topicID {
			return d, nil
		}
		d.loading = false
		d.explanation = msg.explanation
		d.err = msg.err
	case tea.KeyMsg:
		ref, ok := d.session.Catalog().Topic(d.topicID)
		if !ok {
			return d, nil
		}
		ctx := context.Background()
		switch msg.String() {
		case "space":
			return d, screen.Notify(d.session.ToggleTopic(ctx, d.topicID, ref.Course.ID).Notifications)
		case "c":
			fx, _ := d.session.ToggleCompletion(ctx, ref.Course.ID)
			return d, screen.Notify(fx.Notifications)
		case "q":
			return d, router.Pop
		}
	}
	return d, nil
}

func (d *DetailScreen) View(width, height int) string {
	cat := d.session.Catalog()
	ref, ok := cat.Topic(d.topicID)
	if !ok {
		return lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("\n  Unknown topic %q", d.topicID))
	}
	st := d.session.State()
	contentWidth := min(width-4, 76)
	dim := theme.Dim
	val := lipgloss.NewStyle().Foreground(theme.Text)

	var b strings.Builder
	mark := "○"
	if st.Selected.Has(d.topicID) {
		mark = "●"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("  %s  %s", mark, ref.Topic.Title)))
	b.WriteString("\n\n")
	b.WriteString(dim.Render("  Course:    ") + val.Render(fmt.Sprintf("%s (%s)", ref.Course.Title, ref.Course.Description)) + "\n")
	b.WriteString(dim.Render("  Section:   ") + val.Render(ref.Section.Title) + "\n")
	state := cat.State(ref.Course.ID, st.Completed.Map(), st.Selected.Map())
	b.WriteString(dim.Render("  Status:    ") + val.Render(state.Icon()+" "+state.Label()) + "\n\n")

	related := cat.RelatedSet(d.topicID)
	if len(related) > 1 {
		b.WriteString(theme.SectionHeader.Render("  Also taught in"))
		b.WriteString("\n")
		for _, id := range related {
			if id == d.topicID {
				continue
			}
			other, ok := cat.Topic(id)
			if !ok {
				continue
			}
			icon := "○"
			style := dim
			if st.Selected.Has(id) {
				icon = "●"
				style = lipgloss.NewStyle().Foreground(theme.Success)
			}
			b.WriteString(style.Render(fmt.Sprintf("  %s %s: %s (%s)", icon, other.Course.Title, other.Topic.Title, other.Section.Title)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.SectionHeader.Render("  Notes"))
	b.WriteString("\n")
	b.WriteString(d.renderExplanation(contentWidth))

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}

func (d *DetailScreen) renderExplanation(width int) string {
	wrap := lipgloss.NewStyle().Width(width).PaddingLeft(2).Foreground(theme.Text)
	switch {
	case d.explainer == nil:
		return theme.Hint.Render("  No explainer configured.") + "\n"
	case d.loading:
		return theme.Hint.Render("  Loading explanation...") + "\n"
	case d.err != nil:
		return lipgloss.NewStyle().Foreground(theme.Error).Render("  "+d.err.Error()) + "\n"
	case d.explanation == nil:
		return ""
	}

	e := d.explanation
	var b strings.Builder
	b.WriteString(wrap.Render(e.Summary))
	b.WriteString("\n")
	for _, p := range e.KeyPoints {
		b.WriteString(wrap.Render("• " + p))
		b.WriteString("\n")
	}
	if e.ExamTip != "" {
		b.WriteString(wrap.Foreground(theme.Accent).Render("Tip: " + e.ExamTip))
		b.WriteString("\n")
	}
	switch {
	case e.Fallback != nil:
		b.WriteString(theme.Hint.Render("  AI explanation unavailable, showing curriculum notes."))
		b.WriteString("\n")
	case e.Source == explain.SourceLLM:
		b.WriteString(theme.Hint.Render("  Generated by an LLM. Verify against the Kubernetes docs."))
		b.WriteString("\n")
	}
	return b.String()
}
