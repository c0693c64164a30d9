// Package graph renders the knowledge graph: every course with its sections
// and sub-topics, and the cross-course links of the current selection.
package graph

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
	"github.com/abhisek/kubestronaut/internal/selection"
	"github.com/abhisek/kubestronaut/internal/tracker"
	"github.com/abhisek/kubestronaut/internal/ui/components"
	"github.com/abhisek/kubestronaut/internal/ui/layout"
	"github.com/abhisek/kubestronaut/internal/ui/theme"
)

// CourseStep is how far [ and ] move a course card along the x axis.
const CourseStep = 200

const linkPanelWidth = 38

type rowKind int

const (
	rowCourse rowKind = iota
	rowSection
	rowTopic
)

type row struct {
	kind     rowKind
	courseID string
	section  string
	topic    curriculum.SubTopic
}

func (r row) selectable() bool {
	return r.kind != rowSection
}

// GraphScreen lists courses ordered by card position, with their topics.
type GraphScreen struct {
	session   *tracker.Session
	explainer *explain.Service

	rows         []row
	cursor       int
	scrollOffset int

	search    components.TextInput
	searching bool
	filter    string
	matches   int
}

var _ screen.Screen = (*GraphScreen)(nil)
var _ screen.KeyHintProvider = (*GraphScreen)(nil)
var _ screen.InputCapturer = (*GraphScreen)(nil)

// New creates the graph screen. explainer may be nil.
func New(session *tracker.Session, explainer *explain.Service) *GraphScreen {
	g := &GraphScreen{session: session, explainer: explainer, matches: -1}
	g.rebuild()
	g.cursor = g.firstSelectable()
	return g
}

func (g *GraphScreen) Init() tea.Cmd {
	return nil
}

func (g *GraphScreen) Title() string {
	return "Knowledge Graph"
}

func (g *GraphScreen) CapturingInput() bool {
	return g.searching
}

func (g *GraphScreen) KeyHints() []layout.KeyHint {
	if g.searching {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Toggle"},
		{Key: "Enter", Description: "Course/Detail"},
		{Key: "c", Description: "Complete"},
		{Key: "/", Description: "Search"},
		{Key: "u", Description: "Undo"},
		{Key: "[ ]", Description: "Move"},
		{Key: "Esc", Description: "Back"},
	}
}

func (g *GraphScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if g.searching {
		return g, g.updateSearch(msg)
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}
	ctx := context.Background()

	switch kmsg.String() {
	case "up", "k":
		g.moveCursor(-1)
	case "down", "j":
		g.moveCursor(1)
	case "tab":
		g.jumpCourse(1)
	case "shift+tab":
		g.jumpCourse(-1)
	case "space":
		r, ok := g.current()
		if !ok {
			return g, nil
		}
		if r.kind == rowCourse {
			return g, g.toggleCourse(ctx, r.courseID)
		}
		return g, screen.Notify(g.session.ToggleTopic(ctx, r.topic.ID, r.courseID).Notifications)
	case "enter":
		r, ok := g.current()
		if !ok {
			return g, nil
		}
		if r.kind == rowCourse {
			return g, g.toggleCourse(ctx, r.courseID)
		}
		return g, g.openDetail(r.topic.ID)
	case "e":
		if r, ok := g.current(); ok && r.kind == rowTopic {
			return g, g.openDetail(r.topic.ID)
		}
	case "c":
		if r, ok := g.current(); ok {
			fx, _ := g.session.ToggleCompletion(ctx, r.courseID)
			return g, screen.Notify(fx.Notifications)
		}
	case "u":
		if !g.session.Undo(ctx) {
			return g, screen.Notify([]tracker.Notification{{Title: "Nothing to undo", Duration: tracker.NotificationDuration}})
		}
		g.reposition()
	case "[":
		g.moveCourse(ctx, -CourseStep)
	case "]":
		g.moveCourse(ctx, CourseStep)
	case "/":
		g.searching = true
		g.search = components.NewTextInput("search topics, sections, courses", 40)
		if g.filter != "" {
			g.search.Model.SetValue(g.filter)
		}
	case "q":
		return g, router.Pop
	}
	return g, nil
}

func (g *GraphScreen) updateSearch(msg tea.Msg) tea.Cmd {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			g.searching = false
			g.applyFilter("")
			return nil
		case "enter":
			g.searching = false
			return nil
		}
	}
	var cmd tea.Cmd
	g.search, cmd = g.search.Update(msg)
	if v := g.search.Value(); v != g.filter {
		g.applyFilter(v)
	}
	return cmd
}

func (g *GraphScreen) toggleCourse(ctx context.Context, courseID string) tea.Cmd {
	fx, _ := g.session.ToggleCourseNode(ctx, courseID)
	return screen.Notify(fx.Notifications)
}

func (g *GraphScreen) openDetail(topicID string) tea.Cmd {
	return router.Push(NewDetail(g.session, g.explainer, topicID))
}

// moveCourse shifts the card of the course under the cursor and keeps the
// cursor on the same row after reordering.
func (g *GraphScreen) moveCourse(ctx context.Context, dx float64) {
	r, ok := g.current()
	if !ok {
		return
	}
	g.session.MoveCourse(ctx, r.courseID, dx, 0)
	g.reposition()
}

// reposition rebuilds rows after a state change that can reorder courses.
func (g *GraphScreen) reposition() {
	r, ok := g.current()
	g.rebuild()
	if ok {
		for i, nr := range g.rows {
			if nr.kind == r.kind && nr.courseID == r.courseID && nr.topic.ID == r.topic.ID {
				g.cursor = i
				return
			}
		}
	}
	g.cursor = g.firstSelectable()
}

func (g *GraphScreen) applyFilter(term string) {
	g.filter = term
	g.scrollOffset = 0
	g.rebuild()
	g.cursor = g.firstSelectable()
}

// rebuild lays out rows in course position order, honoring the filter.
func (g *GraphScreen) rebuild() {
	cat := g.session.Catalog()
	positions := g.session.State().Positions

	var match map[string]bool
	g.matches = -1
	if g.filter != "" {
		refs := cat.Search(g.filter)
		g.matches = len(refs)
		match = make(map[string]bool, len(refs))
		for _, ref := range refs {
			match[ref.Topic.ID] = true
		}
	}

	g.rows = g.rows[:0]
	for _, course := range tracker.OrderedCourses(cat, positions) {
		var body []row
		for _, sec := range course.Sections {
			var topics []row
			for _, t := range sec.Topics {
				if match == nil || match[t.ID] {
					topics = append(topics, row{kind: rowTopic, courseID: course.ID, section: sec.Title, topic: t})
				}
			}
			if len(topics) > 0 {
				body = append(body, row{kind: rowSection, courseID: course.ID, section: sec.Title})
				body = append(body, topics...)
			}
		}
		if match != nil && len(body) == 0 {
			continue
		}
		g.rows = append(g.rows, row{kind: rowCourse, courseID: course.ID})
		g.rows = append(g.rows, body...)
	}
}

func (g *GraphScreen) current() (row, bool) {
	if g.cursor < 0 || g.cursor >= len(g.rows) {
		return row{}, false
	}
	return g.rows[g.cursor], true
}

func (g *GraphScreen) firstSelectable() int {
	for i, r := range g.rows {
		if r.selectable() {
			return i
		}
	}
	return 0
}

func (g *GraphScreen) moveCursor(delta int) {
	for next := g.cursor + delta; next >= 0 && next < len(g.rows); next += delta {
		if g.rows[next].selectable() {
			g.cursor = next
			return
		}
	}
}

func (g *GraphScreen) jumpCourse(delta int) {
	for next := g.cursor + delta; next >= 0 && next < len(g.rows); next += delta {
		if g.rows[next].kind == rowCourse {
			g.cursor = next
			return
		}
	}
}

func (g *GraphScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	top := g.cursor
	for top > 0 && g.rows[top-1].kind == rowSection {
		top--
	}
	if top < g.scrollOffset {
		g.scrollOffset = top
	}
	if g.cursor >= g.scrollOffset+height {
		g.scrollOffset = g.cursor - height + 1
	}
}

func (g *GraphScreen) View(width, height int) string {
	listWidth := width
	var panel string
	if layout.IsWide(width) {
		listWidth = width - linkPanelWidth - 1
		panel = g.renderLinks(linkPanelWidth, height)
	}

	listHeight := height
	var searchLine string
	if g.searching || g.filter != "" {
		if g.searching {
			searchLine = "  " + g.search.View(g.matches)
		} else {
			searchLine = theme.Dim.Render(fmt.Sprintf("  filter: %q (%d matches, / to edit)", g.filter, max(g.matches, 0)))
		}
		listHeight--
	}

	list := g.renderList(listWidth, listHeight)
	if searchLine != "" {
		list = searchLine + "\n" + list
	}
	if panel == "" {
		return list
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listWidth).Render(list), " ", panel)
}

func (g *GraphScreen) renderList(width, height int) string {
	if len(g.rows) == 0 {
		return theme.Hint.Render("\n  No topics match.")
	}
	g.adjustScroll(height)

	st := g.session.State()
	snap := g.session.View()
	cat := g.session.Catalog()
	selected := st.Selected.Map()
	completed := st.Completed.Map()

	var lines []string
	for i := g.scrollOffset; i < len(g.rows) && len(lines) < height; i++ {
		r := g.rows[i]
		focused := i == g.cursor
		switch r.kind {
		case rowCourse:
			lines = append(lines, renderCourseRow(cat, r.courseID, st, snap.Progress[r.courseID], completed, selected, focused, width))
		case rowSection:
			lines = append(lines, theme.SectionHeader.Render("    "+layout.Truncate(r.section, width-4)))
		case rowTopic:
			lines = append(lines, renderTopicRow(cat, r, selected[r.topic.ID], focused, width))
		}
	}
	return strings.Join(lines, "\n")
}

func renderCourseRow(cat *curriculum.Catalog, courseID string, st tracker.State, pct int, completed, selected map[string]bool, focused bool, width int) string {
	course, _ := cat.Course(courseID)
	state := cat.State(courseID, completed, selected)

	cursor := "  "
	style := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if focused {
		cursor = "▸ "
		style = style.Foreground(theme.Primary)
	}
	counts := fmt.Sprintf("%d/%d  %3d%%  %s",
		selection.SelectedIn(cat, st.Selected, courseID), course.TopicCount(), pct, state.Label())

	name := fmt.Sprintf("%s %s  %s", state.Icon(), course.Title, course.Description)
	nameWidth := max(width-lipgloss.Width(counts)-6, 10)
	return fmt.Sprintf("%s%s  %s", cursor,
		style.Render(fmt.Sprintf("%-*s", nameWidth, layout.Truncate(name, nameWidth))),
		theme.Dim.Render(counts))
}

func renderTopicRow(cat *curriculum.Catalog, r row, checked, focused bool, width int) string {
	box := "[ ]"
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if checked {
		box = "[x]"
		style = style.Foreground(theme.Success)
	}
	cursor := "      "
	if focused {
		cursor = "    ▸ "
		style = style.Foreground(theme.Primary).Bold(true)
	}

	var marker string
	if others := otherCourseTitles(cat, r.topic.ID, r.courseID); len(others) > 0 {
		marker = "  ⇄ " + strings.Join(others, " ")
	}
	titleWidth := max(width-lipgloss.Width(cursor)-4-lipgloss.Width(marker), 8)
	return cursor + style.Render(box+" "+layout.Truncate(r.topic.Title, titleWidth)) + theme.Dim.Render(marker)
}

// otherCourseTitles names the courses other than own that share the topic.
func otherCourseTitles(cat *curriculum.Catalog, topicID, own string) []string {
	var out []string
	for _, id := range cat.RelatedCourses(topicID) {
		if id == own {
			continue
		}
		if c, ok := cat.Course(id); ok {
			out = append(out, c.Title)
		}
	}
	return out
}

func (g *GraphScreen) renderLinks(width, height int) string {
	cat := g.session.Catalog()
	links := g.session.View().Links

	lines := []string{theme.SectionHeader.Render(fmt.Sprintf("Cross-course links (%d)", len(links)))}
	if len(links) == 0 {
		lines = append(lines, theme.Hint.Render("Select a shared topic to"), theme.Hint.Render("see its links."))
	}
	for _, l := range links {
		if len(lines) >= height-2 {
			lines = append(lines, theme.Dim.Render(fmt.Sprintf("… %d more", len(links)-len(lines)+1)))
			break
		}
		from, _ := cat.Course(l.From)
		to, _ := cat.Course(l.To)
		dot := lipgloss.NewStyle().Foreground(theme.Hex(l.Color)).Render("●")
		lines = append(lines, dot+" "+layout.Truncate(fmt.Sprintf("%s→%s %s", from.Title, to.Title, l.Concept), width-4))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(max(height-2, 1)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(strings.Join(lines, "\n"))
}
