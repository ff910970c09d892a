package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	report "github.com/abhisek/skilldash/internal/analytics"
	"github.com/abhisek/skilldash/internal/screen"
	"github.com/abhisek/skilldash/internal/ui/components"
	"github.com/abhisek/skilldash/internal/ui/layout"
	"github.com/abhisek/skilldash/internal/ui/theme"
)

// targetStep is how far +/- move the skill target.
const targetStep = 5

// Reporter builds the analytics report. *analytics.Service satisfies it.
type Reporter interface {
	Report(ctx context.Context, target int) (report.Report, error)
}

type reportLoadedMsg struct {
	Report report.Report
	Err    error
}

// AnalyticsScreen shows skill progress against a target, the score history
// and learning time per month.
type AnalyticsScreen struct {
	reporter Reporter
	target   int
	rep      report.Report
	offset   int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*AnalyticsScreen)(nil)
var _ screen.KeyHintProvider = (*AnalyticsScreen)(nil)

// New creates a new AnalyticsScreen.
func New(reporter Reporter) *AnalyticsScreen {
	return &AnalyticsScreen{reporter: reporter, target: report.DefaultTarget}
}

func (s *AnalyticsScreen) Init() tea.Cmd {
	reporter, target := s.reporter, s.target
	return func() tea.Msg {
		r, err := reporter.Report(context.Background(), target)
		return reportLoadedMsg{Report: r, Err: err}
	}
}

func (s *AnalyticsScreen) Title() string {
	return "Analytics"
}

func (s *AnalyticsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "+/-", Description: "Target"},
		{Key: "r", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *AnalyticsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.rep = msg.Report
		s.target = msg.Report.Target
		return s, nil

	case screen.ResumeMsg:
		return s, s.Init()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.offset = max(s.offset-1, 0)
		case "down", "j":
			s.offset++
		case "+", "=":
			if s.target+targetStep <= 100 {
				s.target += targetStep
				return s, s.Init()
			}
		case "-", "_":
			if s.target-targetStep >= targetStep {
				s.target -= targetStep
				return s, s.Init()
			}
		case "r":
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *AnalyticsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.ErrorText(width, s.errMsg)
	}
	if !s.loaded {
		return layout.Placeholder(width, "Loading analytics...")
	}

	cw := min(width-4, 96)
	sections := []string{
		renderMetrics(s.rep.Metrics),
		renderSkills(s.rep, cw),
		renderHistory(s.rep.History),
		renderMonthly(s.rep.Monthly, cw),
	}
	lines := strings.Split(strings.Join(sections, "\n\n"), "\n")

	visible := max(height-1, 1)
	s.offset = min(s.offset, max(len(lines)-visible, 0))
	end := min(s.offset+visible, len(lines))

	return lipgloss.NewStyle().PaddingLeft(2).Render("\n" + strings.Join(lines[s.offset:end], "\n"))
}

func heading(text string) string {
	return lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(text)
}

func renderMetrics(m report.Metrics) string {
	value := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	items := []struct{ v, l string }{
		{fmt.Sprintf("%d", m.SkillsTracked), "skills tracked"},
		{fmt.Sprintf("%d", m.AssessmentsCompleted), "assessments"},
		{fmt.Sprintf("%d", m.CoursesCompleted), "courses completed"},
		{fmt.Sprintf("%d%%", m.AverageScore), "average score"},
		{report.FormatDuration(m.TimeSpent), "spent"},
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, value.Render(it.v)+" "+label.Render(it.l))
	}
	return heading("Key metrics") + "\n" + strings.Join(parts, label.Render("  ·  "))
}

func renderSkills(rep report.Report, width int) string {
	var b strings.Builder
	b.WriteString(heading(fmt.Sprintf("Skill progress (target %d%%)", rep.Target)))
	if len(rep.Skills) == 0 {
		b.WriteString("\n" + theme.Hint.Render("  Complete an assessment to see skill scores."))
		return b.String()
	}

	nameWidth := 0
	for _, sk := range rep.Skills {
		nameWidth = max(nameWidth, lipgloss.Width(sk.Name))
	}
	for _, sk := range rep.Skills {
		status := lipgloss.NewStyle().Foreground(theme.Accent).Render("In Progress")
		if sk.Reached() {
			status = lipgloss.NewStyle().Foreground(theme.Success).Render("Complete")
		}
		label := fmt.Sprintf("%-*s", nameWidth, sk.Name)
		bar := components.NewProgressBar(label, float64(sk.Current)/100, true, max(width-16, 20)).Scored()
		b.WriteString("\n  " + bar.View() + "  " + status)
	}
	return b.String()
}

func renderHistory(entries []report.ScoreEntry) string {
	var b strings.Builder
	b.WriteString(heading("Score history"))
	if len(entries) == 0 {
		b.WriteString("\n" + theme.Hint.Render("  No completed assessments yet."))
		return b.String()
	}
	plain := lipgloss.NewStyle().Foreground(theme.Text)
	for _, e := range entries {
		b.WriteString("\n")
		b.WriteString(plain.Render(fmt.Sprintf("  %s  %-32s ", e.CompletedAt.Local().Format("2006-01-02"), e.Title)))
		b.WriteString(lipgloss.NewStyle().Foreground(components.ScoreColor(e.Percent)).Bold(true).
			Render(fmt.Sprintf("%4d%%  %s", e.Percent, e.Band)))
	}
	return b.String()
}

func renderMonthly(months []report.MonthTotal, width int) string {
	var b strings.Builder
	b.WriteString(heading("Learning time"))
	if len(months) == 0 {
		b.WriteString("\n" + theme.Hint.Render("  Nothing recorded yet."))
		return b.String()
	}
	var most time.Duration
	for _, m := range months {
		most = max(most, m.Spent)
	}
	for _, m := range months {
		frac := 0.0
		if most > 0 {
			frac = float64(m.Spent) / float64(most)
		}
		bar := components.NewProgressBar(m.Label(), frac, false, max(width-16, 20))
		b.WriteString("\n  " + bar.View() + "  " + report.FormatDuration(m.Spent))
	}
	return b.String()
}
