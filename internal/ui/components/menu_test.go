package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

type pickedMsg string

func pick(label string) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return pickedMsg(label) }
	}
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func testMenu() Menu {
	return NewMenu([]MenuItem{
		{Label: "Soon", Disabled: true},
		{Label: "Open", Hint: "open it", Action: pick("open")},
		{Label: "Label only"},
		{Label: "Quit", Action: pick("quit")},
	})
}

func TestNewMenu_SkipsDisabled(t *testing.T) {
	m := testMenu()
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
	if got := NewMenu(nil).Selected; got != 0 {
		t.Errorf("empty menu Selected = %d, want 0", got)
	}
}

func TestMenu_NavigationWraps(t *testing.T) {
	m := testMenu()

	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Fatalf("after down Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(key("j"))
	if m.Selected != 1 {
		t.Fatalf("after wrap Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(key("up"))
	if m.Selected != 3 {
		t.Fatalf("after up wrap Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(key("g"))
	if m.Selected != 1 {
		t.Errorf("after g Selected = %d, want 1", m.Selected)
	}
}

func TestMenu_Enter(t *testing.T) {
	m := testMenu()
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if got := cmd(); got != pickedMsg("open") {
		t.Errorf("msg = %v, want open", got)
	}
}

func TestMenu_DigitShortcut(t *testing.T) {
	m := testMenu()

	m, cmd := m.Update(key("4"))
	if cmd == nil || cmd() != pickedMsg("quit") {
		t.Fatal("4 should activate Quit")
	}
	if m.Selected != 3 {
		t.Errorf("Selected = %d, want 3", m.Selected)
	}

	if _, cmd := m.Update(key("1")); cmd != nil {
		t.Error("disabled item should not activate")
	}
	if _, cmd := m.Update(key("3")); cmd != nil {
		t.Error("item without action should not activate")
	}
	if _, cmd := m.Update(key("9")); cmd != nil {
		t.Error("out of range digit should be ignored")
	}
}

func TestMenu_View(t *testing.T) {
	view := testMenu().View()
	if !strings.Contains(view, "▸ 2. Open") {
		t.Errorf("selected item not marked:\n%s", view)
	}
	if !strings.Contains(view, "open it") {
		t.Error("hint missing")
	}
	if lines := strings.Count(view, "\n"); lines != 4 {
		t.Errorf("lines = %d, want 4", lines)
	}
}
