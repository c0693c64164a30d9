package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kubestronaut/internal/explain"
	"github.com/abhisek/kubestronaut/internal/router"
	"github.com/abhisek/kubestronaut/internal/screen"
	"github.com/abhisek/kubestronaut/internal/screens/activity"
	"github.com/abhisek/kubestronaut/internal/screens/dashboard"
	"github.com/abhisek/kubestronaut/internal/screens/graph"
	"github.com/abhisek/kubestronaut/internal/screens/shared"
	"github.com/abhisek/kubestronaut/internal/tracker"
	"github.com/abhisek/kubestronaut/internal/ui/components"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	session   *tracker.Session
	explainer *explain.Service
	menu      components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. explainer and source may be nil.
func New(session *tracker.Session, explainer *explain.Service, source activity.Source) *HomeScreen {
	items := []components.MenuItem{
		{Label: "KNOWLEDGE GRAPH", Hint: "browse and select topics", Action: func() tea.Cmd {
			return router.Push(graph.New(session, explainer))
		}},
		{Label: "PROGRESS", Hint: "completion per certification", Action: func() tea.Cmd {
			return router.Push(dashboard.New(session))
		}},
		{Label: "SHARED TOPICS", Hint: "concepts taught more than once", Action: func() tea.Cmd {
			return router.Push(shared.New(session, explainer))
		}},
		{Label: "ACTIVITY", Hint: "what changed this run", Disabled: source == nil, Action: func() tea.Cmd {
			return router.Push(activity.New(source))
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		session:   session,
		explainer: explainer,
		menu:      components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps.
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := contentWidth(width)
	st := h.session.State()
	cat := h.session.Catalog()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(
		st.Selected.Len(), cat.TopicCount(),
		st.Completed.Len(), len(cat.Courses()),
		len(cat.Concepts()), cw, compact))
	if h.explainer == nil || !h.explainer.HasProvider() {
		sections = append(sections, renderLLMBanner(cw))
	}
	sections = append(sections, renderMenu(h.menu, cw))

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
