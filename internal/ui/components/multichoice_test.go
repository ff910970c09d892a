package components

import (
	"strings"
	"testing"
)

func TestNewMultiChoice_RestoresAnswer(t *testing.T) {
	opts := []string{"var", "let", "const"}

	m := NewMultiChoice("Block scoped?", opts, 2)
	if m.Selected != 2 || m.Chosen != 2 {
		t.Errorf("restored = (%d, %d), want (2, 2)", m.Selected, m.Chosen)
	}

	m = NewMultiChoice("Block scoped?", opts, 7)
	if m.HasChoice() || m.Selected != 0 {
		t.Errorf("out of range answer should be dropped: (%d, %d)", m.Selected, m.Chosen)
	}
}

func TestMultiChoice_Keys(t *testing.T) {
	m := NewMultiChoice("Q", []string{"a", "b", "c"}, -1)

	m, _ = m.Update(key("up"))
	if m.Selected != 2 {
		t.Fatalf("up from top Selected = %d, want 2", m.Selected)
	}
	if m.HasChoice() {
		t.Fatal("moving should not choose")
	}

	m, _ = m.Update(key(" "))
	if m.Chosen != 2 {
		t.Fatalf("space Chosen = %d, want 2", m.Chosen)
	}

	m, _ = m.Update(key("1"))
	if m.Chosen != 0 || m.Selected != 0 {
		t.Errorf("digit = (%d, %d), want (0, 0)", m.Selected, m.Chosen)
	}

	m, _ = m.Update(key("4"))
	if m.Chosen != 0 {
		t.Errorf("out of range digit changed the answer to %d", m.Chosen)
	}
}

func TestMultiChoice_View(t *testing.T) {
	m := NewMultiChoice("Pick one", []string{"alpha", "beta"}, 1)
	view := m.View()
	if !strings.Contains(view, "Pick one") {
		t.Error("question missing")
	}
	if !strings.Contains(view, "▸ (•) 2) beta") {
		t.Errorf("chosen option not marked:\n%s", view)
	}
	if !strings.Contains(view, "( ) 1) alpha") {
		t.Errorf("unchosen option missing:\n%s", view)
	}
}
