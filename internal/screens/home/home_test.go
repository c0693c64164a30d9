package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kubestronaut/internal/curriculum"
	"github.com/abhisek/kubestronaut/internal/explain"
	"github.com/abhisek/kubestronaut/internal/journal"
	"github.com/abhisek/kubestronaut/internal/llm"
	"github.com/abhisek/kubestronaut/internal/router"
	"github.com/abhisek/kubestronaut/internal/screens/activity"
	"github.com/abhisek/kubestronaut/internal/screens/dashboard"
	"github.com/abhisek/kubestronaut/internal/screens/graph"
	"github.com/abhisek/kubestronaut/internal/tracker"
)

func down(h *HomeScreen, n int) {
	for range n {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
}

func pushed(t *testing.T, cmd tea.Cmd) any {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("got %T, want PushScreenMsg", cmd())
	}
	return msg.Screen
}

func TestHomeScreen_View(t *testing.T) {
	sess := tracker.NewSession(curriculum.Default())
	sess.ToggleTopic(context.Background(), "pods", "cka")
	h := New(sess, nil, nil)

	view := h.View(120, 40)
	for _, want := range []string{"KNOWLEDGE GRAPH", "PROGRESS", "SHARED TOPICS", "ACTIVITY", "QUIT", "0/5 DONE", "LLM API key"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if !strings.Contains(view, "3/") {
		t.Error("selecting pods should count its three shared topics")
	}
}

func TestHomeScreen_NoBannerWithProvider(t *testing.T) {
	cat := curriculum.Default()
	svc := explain.NewService(cat, llm.NewMockProvider(), explain.DefaultConfig(), nil)
	h := New(tracker.NewSession(cat), svc, nil)
	if strings.Contains(h.View(120, 40), "LLM API key") {
		t.Error("banner should be hidden when a provider is configured")
	}
}

func TestHomeScreen_OpensGraph(t *testing.T) {
	h := New(tracker.NewSession(curriculum.Default()), nil, nil)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*graph.GraphScreen); !ok {
		t.Error("first item should open the knowledge graph")
	}
}

func TestHomeScreen_OpensProgress(t *testing.T) {
	h := New(tracker.NewSession(curriculum.Default()), nil, nil)
	down(h, 1)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*dashboard.DashboardScreen); !ok {
		t.Error("second item should open progress")
	}
}

func TestHomeScreen_ActivityNeedsJournal(t *testing.T) {
	h := New(tracker.NewSession(curriculum.Default()), nil, nil)
	down(h, 3)
	if h.menu.Items[h.menu.Selected].Label != "QUIT" {
		t.Errorf("selected %q, disabled activity should be skipped", h.menu.Items[h.menu.Selected].Label)
	}

	j, err := journal.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer j.Close()

	h = New(tracker.NewSession(curriculum.Default()), nil, j)
	down(h, 3)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*activity.ActivityScreen); !ok {
		t.Error("activity item should open the activity screen")
	}
}
