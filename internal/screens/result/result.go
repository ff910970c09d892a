package result

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skilldash/internal/assessment"
	"github.com/abhisek/skilldash/internal/router"
	"github.com/abhisek/skilldash/internal/screen"
	"github.com/abhisek/skilldash/internal/ui/components"
	"github.com/abhisek/skilldash/internal/ui/layout"
	"github.com/abhisek/skilldash/internal/ui/theme"
)

// ResultScreen displays the outcome of a finished assessment.
type ResultScreen struct {
	def     assessment.Definition
	result  assessment.Result
	saveErr error
	retake  func() screen.Screen
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen. saveErr is shown when the result could not
// be stored. retake may be nil to hide the retake action.
func New(def assessment.Definition, res assessment.Result, saveErr error, retake func() screen.Screen) *ResultScreen {
	return &ResultScreen{def: def, result: res, saveErr: saveErr, retake: retake}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Assessment Results"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Done"},
		{Key: "h", Description: "Dashboard"},
	}
	if s.retake != nil {
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Retake"})
	}
	return hints
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "h":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "r":
			if s.retake == nil {
				return s, nil
			}
			next := s.retake()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	res := s.result
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder

	b.WriteString(center(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Assessment complete!")))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.def.Title)))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().
		Foreground(components.ScoreColor(res.Score)).
		Bold(true).
		Render(fmt.Sprintf("%d%%", res.Score))))
	b.WriteString("\n\n")

	mins := int(res.Duration.Minutes())
	secs := int(res.Duration.Seconds()) % 60
	statsLine := fmt.Sprintf("Correct: %d/%d        Time: %d:%02d        Messages: %d",
		res.Correct, res.Total, mins, secs, res.ChatMessages)
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Render(statsLine)))
	b.WriteString("\n\n")

	if len(res.SkillScores) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Skills")))
		b.WriteString("\n")
		b.WriteString(center(divider))
		b.WriteString("\n\n")

		for _, name := range sortedSkills(res.SkillScores) {
			score := res.SkillScores[name]
			level := assessment.SkillLevel(score)
			label := fmt.Sprintf("%-22s %s", name, components.DifficultyBadge(level))
			bar := components.NewProgressBar(label, float64(score)/100, true, min(width-8, 60)).Scored()
			b.WriteString(center(bar.View()))
			b.WriteString("\n")
		}
	}

	if s.saveErr != nil {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Error).
			Render("Your result could not be saved: " + s.saveErr.Error())))
		b.WriteString("\n")
	}

	return b.String()
}

func sortedSkills(scores map[string]int) []string {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

