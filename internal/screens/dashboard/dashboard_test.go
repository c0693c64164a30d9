package dashboard

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kubestronaut/internal/curriculum"
	"github.com/abhisek/kubestronaut/internal/screen"
	"github.com/abhisek/kubestronaut/internal/tracker"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func notes(t *testing.T, cmd tea.Cmd) []tracker.Notification {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(screen.NotifyMsg)
	if !ok {
		t.Fatalf("expected NotifyMsg, got %T", cmd())
	}
	return msg.Notifications
}

func TestDashboard_Title(t *testing.T) {
	d := New(tracker.NewSession(curriculum.Default()))
	if d.Title() != "Progress" {
		t.Errorf("Title = %q", d.Title())
	}
}

func TestDashboard_CompleteFocusedCourse(t *testing.T) {
	s := tracker.NewSession(curriculum.Default())
	d := New(s)

	_, cmd := d.Update(key('c'))
	got := notes(t, cmd)
	if len(got) == 0 || got[0].Title != "CKA completed" {
		t.Fatalf("notifications = %+v", got)
	}
	if !s.State().Completed.Has("cka") {
		t.Fatal("cka should be completed")
	}
	if pct := s.View().Progress["ckad"]; pct != 72 {
		t.Errorf("ckad progress = %d, want 72", pct)
	}

	view := d.View(100, 60)
	if !strings.Contains(view, "+72% from CKA") {
		t.Errorf("view missing contributor line:\n%s", view)
	}
}

func TestDashboard_PrerequisiteRejected(t *testing.T) {
	s := tracker.NewSession(curriculum.Default())
	d := New(s)

	// cka, ckad, kcna, kcsa, cks by card position.
	for range 4 {
		d.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := d.Update(key('c'))
	got := notes(t, cmd)
	if len(got) != 1 || got[0].Title != "Prerequisites required" {
		t.Fatalf("notifications = %+v", got)
	}
	if s.State().Completed.Has("cks") {
		t.Error("cks must stay incomplete without cka")
	}
	if !strings.Contains(d.View(100, 80), "Requires CKA") {
		t.Error("locked card should name its missing prerequisite")
	}
}

func TestDashboard_CursorBounds(t *testing.T) {
	d := New(tracker.NewSession(curriculum.Default()))
	d.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if d.cursor != 0 {
		t.Errorf("cursor = %d after up at top", d.cursor)
	}
	for range 10 {
		d.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if d.cursor != 4 {
		t.Errorf("cursor = %d, want 4", d.cursor)
	}
}

func TestDashboard_Undo(t *testing.T) {
	s := tracker.NewSession(curriculum.Default())
	d := New(s)

	_, cmd := d.Update(key('u'))
	if got := notes(t, cmd); got[0].Title != "Nothing to undo" {
		t.Errorf("notifications = %+v", got)
	}

	d.Update(key('c'))
	d.Update(key('u'))
	if s.State().Completed.Has("cka") {
		t.Error("undo should revert the completion")
	}
}

func TestDashboard_QuitPops(t *testing.T) {
	d := New(tracker.NewSession(curriculum.Default()))
	_, cmd := d.Update(key('q'))
	if cmd == nil {
		t.Fatal("expected pop command")
	}
}
