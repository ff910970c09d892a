package wizard

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/skilldash/internal/assessment"
	"github.com/abhisek/skilldash/internal/render"
	"github.com/abhisek/skilldash/internal/ui/components"
	"github.com/abhisek/skilldash/internal/ui/layout"
	"github.com/abhisek/skilldash/internal/ui/theme"
)

func (s *WizardScreen) View(width, height int) string {
	if s.fatal != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nCould not start assessment: %s", s.fatal))
	}
	step, err := s.wiz.Current()
	if err != nil {
		return layout.Placeholder(width, "Saving your results...")
	}

	inner := width - 4
	var b strings.Builder

	b.WriteString(s.renderInfoLine(inner))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", s.wiz.Progress(), true, inner).View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(inner, 0))))
	b.WriteString("\n\n")

	switch step.Kind {
	case assessment.KindIntro:
		b.WriteString(s.renderIntro(step, inner))
	case assessment.KindQuestion:
		b.WriteString(s.choice.View())
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Select with 1-9 or arrows, Enter to continue"))
	case assessment.KindChat:
		b.WriteString(s.renderChat(step, inner, height-8))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(s.errMsg))
	}
	if s.saving {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Saving your results..."))
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(b.String())
}

func (s *WizardScreen) renderInfoLine(width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(s.def.Title) +
		"  " + components.DifficultyBadge(s.def.Difficulty)
	right := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Step %d of %d", s.wiz.Index()+1, s.wiz.Model().Len()))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func (s *WizardScreen) renderIntro(step assessment.Step, width int) string {
	var md strings.Builder
	title := step.Title
	if title == "" {
		title = s.def.Title
	}
	fmt.Fprintf(&md, "# %s\n\n%s\n", title, step.Body)
	if s.def.Duration != "" || len(s.def.Skills) > 0 {
		md.WriteString("\n")
		if s.def.Duration != "" {
			fmt.Fprintf(&md, "- **Duration:** %s\n", s.def.Duration)
		}
		fmt.Fprintf(&md, "- **Questions:** %d\n", s.wiz.Model().QuestionCount())
		if len(s.def.Skills) > 0 {
			fmt.Fprintf(&md, "- **Skills:** %s\n", strings.Join(s.def.Skills, ", "))
		}
	}
	return s.markdown(md.String(), width) + "\n\n" + theme.Hint.Render("Press Enter to begin")
}

func (s *WizardScreen) renderChat(step assessment.Step, width, height int) string {
	transcript := s.wiz.Transcript(step.ID)
	if s.typing && len(transcript) > 0 {
		transcript = transcript[:len(transcript)-1]
	}

	var lines []string
	for _, m := range transcript {
		lines = append(lines, s.renderMessage(m, width))
	}
	if s.typing {
		lines = append(lines, theme.Hint.Render("Assistant is typing..."))
	}

	// Keep the newest messages visible.
	body := strings.Join(lines, "\n\n")
	if height > 4 {
		rows := strings.Split(body, "\n")
		if len(rows) > height-3 {
			rows = rows[len(rows)-(height-3):]
		}
		body = strings.Join(rows, "\n")
	}

	return body + "\n\n" + s.input.View()
}

func (s *WizardScreen) renderMessage(m assessment.Message, width int) string {
	if m.Role == assessment.RoleUser {
		bubble := theme.UserBubble.Render(m.Text)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
	}
	label := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Assistant")
	return label + "\n" + s.markdown(m.Text, width-4)
}

func (s *WizardScreen) markdown(content string, width int) string {
	key := fmt.Sprintf("%d:%s", width, content)
	if out, ok := s.mdCache[key]; ok {
		return out
	}
	out := render.MarkdownOrPlain(content, width)
	s.mdCache[key] = out
	return out
}
