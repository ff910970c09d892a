package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skilldash/internal/ui/theme"
)

// MultiChoice renders a question with numbered options. Selected is the
// highlighted row, Chosen the recorded answer or -1. It never reveals which
// option is correct.
type MultiChoice struct {
	Question string
	Options  []string
	Selected int
	Chosen   int
}

// NewMultiChoice starts on the previously chosen option when chosen is in
// range.
func NewMultiChoice(question string, options []string, chosen int) MultiChoice {
	m := MultiChoice{Question: question, Options: options, Chosen: -1}
	m.Choose(chosen)
	return m
}

func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Choose records option i as the answer and highlights it. Out-of-range
// indexes are ignored.
func (m *MultiChoice) Choose(i int) bool {
	if i < 0 || i >= len(m.Options) {
		return false
	}
	m.Selected, m.Chosen = i, i
	return true
}

// Update moves the highlight with up/down (wrapping), chooses it with
// space or enter, and chooses directly with 1-9.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Options) == 0 {
		return m, nil
	}

	n := len(m.Options)
	switch key := kmsg.String(); key {
	case "up", "k":
		m.Selected = (m.Selected - 1 + n) % n
	case "down", "j":
		m.Selected = (m.Selected + 1) % n
	case "space", " ", "enter":
		m.Chosen = m.Selected
	default:
		if d, err := strconv.Atoi(key); err == nil && d >= 1 && d <= 9 {
			m.Choose(d - 1)
		}
	}
	return m, nil
}

func (m MultiChoice) HasChoice() bool {
	return m.Chosen >= 0
}

func (m MultiChoice) View() string {
	var (
		b         strings.Builder
		highlight = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		picked    = lipgloss.NewStyle().Foreground(theme.Secondary)
		plain     = lipgloss.NewStyle().Foreground(theme.Text)
	)

	b.WriteString(plain.Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		cursor, radio := "  ", "( )"
		if i == m.Selected {
			cursor = "▸ "
		}
		if i == m.Chosen {
			radio = "(•)"
		}
		line := cursor + radio + " " + strconv.Itoa(i+1) + ") " + opt

		style := plain
		switch i {
		case m.Selected:
			style = highlight
		case m.Chosen:
			style = picked
		}
		b.WriteString(style.Render(line))
		b.WriteByte('\n')
	}
	return b.String()
}
