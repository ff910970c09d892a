package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skilldash/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Items with a nil Action or Disabled set
// are shown but cannot be activated.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. Navigation wraps around and skips
// disabled items; digits 1-9 activate the matching item directly.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu returns a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

func (m Menu) Init() tea.Cmd {
	return nil
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.move(-1)
	case "down", "j", "tab":
		m.move(1)
	case "home", "g":
		m.Selected = -1
		m.move(1)
	case "end", "G":
		m.Selected = len(m.Items)
		m.move(-1)
	case "enter":
		return m, m.activate(m.Selected)
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= min(9, len(m.Items)) {
			if m.enabled(n - 1) {
				m.Selected = n - 1
				return m, m.activate(n - 1)
			}
		}
	}
	return m, nil
}

// move steps the selection by delta, wrapping at either end. The selection
// is unchanged when no item is enabled.
func (m *Menu) move(delta int) {
	n := len(m.Items)
	i := m.Selected
	for range n {
		i = ((i+delta)%n + n) % n
		if m.enabled(i) {
			m.Selected = i
			return
		}
	}
}

func (m Menu) enabled(i int) bool {
	return i >= 0 && i < len(m.Items) && !m.Items[i].Disabled && m.Items[i].Action != nil
}

func (m Menu) activate(i int) tea.Cmd {
	if !m.enabled(i) {
		return nil
	}
	return m.Items[i].Action()
}

func (m Menu) View() string {
	var (
		b        strings.Builder
		selected = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		normal   = lipgloss.NewStyle().Foreground(theme.Text)
		dim      = lipgloss.NewStyle().Foreground(theme.TextDim)
	)
	for i, item := range m.Items {
		num := "   "
		if i < 9 {
			num = strconv.Itoa(i+1) + ". "
		}
		switch {
		case !m.enabled(i):
			b.WriteString(dim.Render("    " + num + item.Label))
		case i == m.Selected:
			b.WriteString(selected.Render("  ▸ " + num + item.Label))
		default:
			b.WriteString(normal.Render("    " + num + item.Label))
		}
		if item.Hint != "" && m.enabled(i) {
			b.WriteString(dim.Render("  " + item.Hint))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
