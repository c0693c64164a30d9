package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kubestronaut/internal/explain"
	"github.com/abhisek/kubestronaut/internal/logging"
	"github.com/abhisek/kubestronaut/internal/router"
	"github.com/abhisek/kubestronaut/internal/screen"
	"github.com/abhisek/kubestronaut/internal/screens/activity"
	"github.com/abhisek/kubestronaut/internal/screens/home"
	"github.com/abhisek/kubestronaut/internal/tracker"
	"github.com/abhisek/kubestronaut/internal/ui/components"
	"github.com/abhisek/kubestronaut/internal/ui/layout"
)

// MaxToasts is the number of notifications shown at once; older ones are
// dropped first.
const MaxToasts = 3

// Options wires the TUI to its services. Session is required.
type Options struct {
	Session   *tracker.Session
	Explainer *explain.Service
	Activity  activity.Source
	Logger    *logging.Logger
}

type toast struct {
	id   int
	note tracker.Notification
}

type toastExpiredMsg struct {
	id int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	session *tracker.Session
	log     *logging.Logger

	width  int
	height int

	toasts    []toast
	nextToast int
}

// New creates the root model with the home screen active.
func New(opts Options) AppModel {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return AppModel{
		router:  router.New(home.New(opts.Session, opts.Explainer, opts.Activity)),
		session: opts.Session,
		log:     log,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.NotifyMsg:
		return m, m.addToasts(msg.Notifications)

	case toastExpiredMsg:
		for i, t := range m.toasts {
			if t.id == msg.id {
				m.toasts = append(m.toasts[:i:i], m.toasts[i+1:]...)
				break
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// addToasts queues notifications and schedules their expiry.
func (m *AppModel) addToasts(notes []tracker.Notification) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(notes))
	for _, n := range notes {
		id := m.nextToast
		m.nextToast++
		m.toasts = append(m.toasts, toast{id: id, note: n})

		d := n.Duration
		if d <= 0 {
			d = tracker.NotificationDuration
		}
		cmds = append(cmds, tea.Tick(d, func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		}))
		m.log.Debug("notification", "title", n.Title, "lines", len(n.Lines))
	}
	if len(m.toasts) > MaxToasts {
		m.toasts = m.toasts[len(m.toasts)-MaxToasts:]
	}
	return tea.Batch(cmds...)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	notes := make([]tracker.Notification, len(m.toasts))
	for i, t := range m.toasts {
		notes[i] = t.note
	}
	overlay := components.RenderToasts(notes, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	if overlay != "" {
		contentHeight = max(contentHeight-lipgloss.Height(overlay), 0)
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, overlay, footer, m.width, m.height)
}

func (m AppModel) status() string {
	if m.session == nil {
		return ""
	}
	st := m.session.State()
	return fmt.Sprintf("%d selected  %d/%d done  ",
		st.Selected.Len(), st.Completed.Len(), len(m.session.Catalog().Courses()))
}

func (m AppModel) footerHints() []layout.KeyHint {
	quit := layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), quit)
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}, quit}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		quit,
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		m.log.Error("tui exited", "err", err)
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
