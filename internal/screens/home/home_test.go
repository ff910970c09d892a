package home

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skilldash/internal/dashboard"
	"github.com/abhisek/skilldash/internal/router"
	"github.com/abhisek/skilldash/internal/screen"
)

func press(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

func TestHome_SnapshotEmitsStatus(t *testing.T) {
	h := New(Deps{Email: "ada@example.com"})

	snap := dashboard.Snapshot{
		Name:  "Ada",
		Stats: dashboard.UserStats{SkillsCount: 3, AssessmentsCount: 4, CompletedAssessments: 2},
	}
	_, cmd := h.Update(snapshotLoadedMsg{Snapshot: snap})
	if cmd == nil {
		t.Fatal("expected status command")
	}
	status, ok := cmd().(screen.StatusMsg)
	if !ok {
		t.Fatalf("msg = %T, want StatusMsg", cmd())
	}
	if status.Skills != 3 || status.Completion != 50 {
		t.Errorf("status = %+v", status)
	}

	view := h.View(120, 40)
	for _, want := range []string{"Welcome back, Ada!", "Recent assessments", "Learning Paths"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHome_LoadError(t *testing.T) {
	h := New(Deps{})
	_, cmd := h.Update(snapshotLoadedMsg{Err: errors.New("disk on fire")})
	if cmd != nil {
		t.Error("no status expected on error")
	}
	view := h.View(120, 40)
	if !strings.Contains(view, "disk on fire") {
		t.Errorf("error not shown:\n%s", view)
	}
	if !strings.Contains(view, "Welcome back, there!") {
		t.Error("greeting should fall back to there")
	}
}

func TestHome_MenuShortcuts(t *testing.T) {
	h := New(Deps{})

	_, cmd := h.Update(press("2"))
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("msg = %T, want PushScreenMsg", cmd())
	}
	if push.Screen.Title() != "Courses" {
		t.Errorf("pushed %q, want Courses", push.Screen.Title())
	}

	_, cmd = h.Update(press("6"))
	if cmd == nil {
		t.Fatal("expected push command")
	}
	if push, ok := cmd().(router.PushScreenMsg); !ok || push.Screen.Title() != "Analytics" {
		t.Errorf("6 should open Analytics, got %T", cmd())
	}

	_, cmd = h.Update(press("8"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("8 should quit")
	}
}
