// Package dashboard shows certification progress as course cards.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kubestronaut/internal/curriculum"
	"github.com/abhisek/kubestronaut/internal/progress"
	"github.com/abhisek/kubestronaut/internal/router"
	"github.com/abhisek/kubestronaut/internal/screen"
	"github.com/abhisek/kubestronaut/internal/selection"
	"github.com/abhisek/kubestronaut/internal/tracker"
	"github.com/abhisek/kubestronaut/internal/ui/components"
	"github.com/abhisek/kubestronaut/internal/ui/layout"
	"github.com/abhisek/kubestronaut/internal/ui/theme"
)

// DashboardScreen renders one card per course in card position order.
type DashboardScreen struct {
	session *tracker.Session
	cursor  int
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

func New(session *tracker.Session) *DashboardScreen {
	return &DashboardScreen{session: session}
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Title() string {
	return "Progress"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "c", Description: "Toggle complete"},
		{Key: "u", Description: "Undo"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DashboardScreen) courses() []curriculum.Course {
	return tracker.OrderedCourses(d.session.Catalog(), d.session.State().Positions)
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	courses := d.courses()
	ctx := context.Background()

	switch kmsg.String() {
	case "up", "k", "left", "h":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j", "right", "l":
		if d.cursor < len(courses)-1 {
			d.cursor++
		}
	case "c", "enter":
		if d.cursor < len(courses) {
			fx, _ := d.session.ToggleCompletion(ctx, courses[d.cursor].ID)
			return d, screen.Notify(fx.Notifications)
		}
	case "u":
		if !d.session.Undo(ctx) {
			return d, screen.Notify([]tracker.Notification{{Title: "Nothing to undo", Duration: tracker.NotificationDuration}})
		}
		d.cursor = min(d.cursor, len(courses)-1)
	case "q":
		return d, router.Pop
	}
	return d, nil
}

func (d *DashboardScreen) View(width, height int) string {
	cat := d.session.Catalog()
	st := d.session.State()
	snap := d.session.View()
	courses := d.courses()
	if len(courses) == 0 {
		return ""
	}

	cardWidth := min(width-4, 90)
	cards := make([]string, 0, len(courses))
	for i, c := range courses {
		cards = append(cards, renderCard(cat, c, st, snap.Progress[c.ID], i == d.cursor, cardWidth))
	}

	// Keep the focused card visible when the list is taller than the screen.
	start := 0
	used := 0
	for i := d.cursor; i >= 0; i-- {
		used += lipgloss.Height(cards[i])
		if used > height {
			start = i + 1
			break
		}
	}
	body := strings.Join(cards[start:], "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func renderCard(cat *curriculum.Catalog, c curriculum.Course, st tracker.State, pct int, focused bool, width int) string {
	completed := st.Completed.Map()
	state := cat.State(c.ID, completed, st.Selected.Map())

	title := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("%s %s", state.Icon(), c.Title)) +
		theme.Dim.Render(fmt.Sprintf("  %s  ·  %s", c.Description, state.Label()))

	bar := components.NewProgressBar("", pct, true, width-4)
	if state == curriculum.StateCompleted {
		bar.Fill = theme.Success
	}

	lines := []string{title, bar.View()}

	selected := selection.SelectedIn(cat, st.Selected, c.ID)
	lines = append(lines, theme.Dim.Render(fmt.Sprintf("%d of %d topics selected", selected, c.TopicCount())))

	if missing := cat.MissingPrerequisites(c.ID, completed); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, m := range missing {
			names[i] = m.Title
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Error).
			Render("Requires "+strings.Join(names, ", ")))
	}
	for _, contrib := range progress.Breakdown(cat, st.Completed, c.ID) {
		if contrib.CourseID == c.ID {
			continue
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).
			Render(fmt.Sprintf("+%d%% from %s", contrib.Points, contrib.Title)))
	}

	style := theme.Card
	if focused {
		style = theme.ActiveCard
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}
