package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kubestronaut/internal/tracker"
)

func TestProgressBar_Filled(t *testing.T) {
	tests := []struct {
		percent int
		width   int
		want    int
	}{
		{0, 20, 0},
		{50, 20, 10},
		{72, 20, 14},
		{100, 20, 20},
		{140, 20, 20},
		{-5, 20, 0},
	}
	for _, tt := range tests {
		bar := NewProgressBar("", tt.percent, false, tt.width)
		if got := bar.Filled(tt.width); got != tt.want {
			t.Errorf("Filled(%d%% of %d) = %d, want %d", tt.percent, tt.width, got, tt.want)
		}
	}
}

func TestProgressBar_ViewShowsPercent(t *testing.T) {
	view := NewProgressBar("CKA", 72, true, 40).View()
	if !strings.Contains(view, "CKA") || !strings.Contains(view, "72%") {
		t.Errorf("view = %q", view)
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "a"},
		{Label: "off", Disabled: true},
		{Label: "b"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("down selected %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("down at bottom moved to %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("up selected %d, want 1", m.Selected)
	}
}

func TestMenu_EnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd {
		ran = true
		return nil
	}}})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !ran {
		t.Error("enter should run the selected action")
	}
	if !strings.Contains(m.View(), "▸ go") {
		t.Errorf("view = %q", m.View())
	}
}

func TestRenderToasts(t *testing.T) {
	if RenderToasts(nil, 80) != "" {
		t.Error("no notifications should render nothing")
	}

	lines := []string{"a", "b", "c", "d", "e", "f"}
	out := RenderToasts([]tracker.Notification{{Title: "CKA completed", Lines: lines, Level: tracker.LevelSuccess}}, 80)
	if !strings.Contains(out, "CKA completed") {
		t.Errorf("title missing: %q", out)
	}
	if !strings.Contains(out, "… and 2 more") {
		t.Errorf("overflow line missing: %q", out)
	}
}

func TestPluralize(t *testing.T) {
	if got := pluralize(1, "match", "matches"); got != "1 match" {
		t.Errorf("got %q", got)
	}
	if got := pluralize(0, "match", "matches"); got != "0 matches" {
		t.Errorf("got %q", got)
	}
}

func TestTextInput(t *testing.T) {
	ti := NewTextInput("search", 40)
	if ti.Value() != "" {
		t.Fatalf("new input has value %q", ti.Value())
	}
	ti.Model.SetValue("pods")
	if !strings.Contains(ti.View(3), "3 matches") {
		t.Errorf("view = %q", ti.View(3))
	}
	if strings.Contains(ti.View(-1), "match") {
		t.Error("negative count hides the match counter")
	}
	ti.Reset()
	if ti.Value() != "" {
		t.Errorf("Reset left %q", ti.Value())
	}
}
