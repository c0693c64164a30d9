package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kubestronaut/internal/curriculum"
	"github.com/abhisek/kubestronaut/internal/router"
	"github.com/abhisek/kubestronaut/internal/screen"
	"github.com/abhisek/kubestronaut/internal/screens/graph"
	"github.com/abhisek/kubestronaut/internal/tracker"
)

func newModel(t *testing.T) AppModel {
	t.Helper()
	m := New(Options{Session: tracker.NewSession(curriculum.Default())})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(AppModel)
}

func send(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestApp_RendersHomeWithStatus(t *testing.T) {
	m := newModel(t)
	out := m.render()
	for _, want := range []string{"Kubestronaut", "Home", "0 selected", "0/5 done", "KNOWLEDGE GRAPH"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestApp_TooSmall(t *testing.T) {
	m := newModel(t)
	m, _ = send(m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected the minimum size message")
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	m := newModel(t)
	_, cmd := send(m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("got %T, want QuitMsg", cmd())
	}
}

func TestApp_EscPopsPushedScreen(t *testing.T) {
	m := newModel(t)
	sess := m.session
	m, _ = send(m, router.PushScreenMsg{Screen: graph.New(sess, nil)})
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}

	m, cmd := send(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	m, _ = send(m, cmd())
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d after esc, want 1", m.router.Depth())
	}

	// Esc at the root is a no-op.
	_, cmd = send(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc on home should do nothing")
	}
}

func TestApp_EscWhileSearchingStaysOnScreen(t *testing.T) {
	m := newModel(t)
	g := graph.New(m.session, nil)
	m, _ = send(m, router.PushScreenMsg{Screen: g})
	m, _ = send(m, tea.KeyPressMsg{Code: '/', Text: "/"})
	if !g.CapturingInput() {
		t.Fatal("graph should be capturing input")
	}

	m, _ = send(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 2 {
		t.Errorf("esc closed the screen instead of the search")
	}
	if g.CapturingInput() {
		t.Error("esc should leave search mode")
	}
}

func TestApp_ToastsShowAndExpire(t *testing.T) {
	m := newModel(t)
	m, cmd := send(m, screen.NotifyMsg{Notifications: []tracker.Notification{
		{Title: "Selected \"Pods\" in 3 courses", Lines: []string{"CKAD: Pods"}},
	}})
	if cmd == nil {
		t.Fatal("expected an expiry command")
	}
	if !strings.Contains(m.render(), "in 3 courses") {
		t.Error("toast not rendered")
	}

	m, _ = send(m, toastExpiredMsg{id: m.toasts[0].id})
	if len(m.toasts) != 0 {
		t.Errorf("toasts = %d after expiry, want 0", len(m.toasts))
	}
}

func TestApp_ToastsCapped(t *testing.T) {
	m := newModel(t)
	var notes []tracker.Notification
	for _, title := range []string{"one", "two", "three", "four", "five"} {
		notes = append(notes, tracker.Notification{Title: title})
	}
	m, _ = send(m, screen.NotifyMsg{Notifications: notes})
	if len(m.toasts) != MaxToasts {
		t.Fatalf("toasts = %d, want %d", len(m.toasts), MaxToasts)
	}
	if m.toasts[0].note.Title != "three" {
		t.Errorf("oldest kept = %q, want three", m.toasts[0].note.Title)
	}
}

func TestApp_StatusFollowsSession(t *testing.T) {
	m := newModel(t)
	m, _ = send(m, router.PushScreenMsg{Screen: graph.New(m.session, nil)})
	// Enter on the CKA row completes it and selects every topic.
	m, _ = send(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(m.status(), "1/5 done") {
		t.Errorf("status = %q", m.status())
	}
}

func TestApp_FooterUsesScreenHints(t *testing.T) {
	m := newModel(t)
	m, _ = send(m, router.PushScreenMsg{Screen: graph.New(m.session, nil)})
	hints := m.footerHints()
	if hints[len(hints)-1].Key != "Ctrl+C" {
		t.Error("quit hint should be last")
	}
	found := false
	for _, h := range hints {
		if h.Key == "/" {
			found = true
		}
	}
	if !found {
		t.Error("graph search hint missing from footer")
	}
}
