package assessments

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/skilldash/internal/assessment"
	"github.com/abhisek/skilldash/internal/router"
	"github.com/abhisek/skilldash/internal/screen"
	"github.com/abhisek/skilldash/internal/screens/notice"
	"github.com/abhisek/skilldash/internal/screens/wizard"
	"github.com/abhisek/skilldash/internal/settings"
	"github.com/abhisek/skilldash/internal/store"
	"github.com/abhisek/skilldash/internal/ui/components"
	"github.com/abhisek/skilldash/internal/ui/layout"
	"github.com/abhisek/skilldash/internal/ui/theme"
)

// Tracker reads past attempts and records new ones. *tracker.Service
// satisfies it.
type Tracker interface {
	wizard.Recorder
	LatestResults(ctx context.Context) (map[string]store.AssessmentRecord, error)
}

// Preferences loads user preferences. *settings.Service satisfies it.
type Preferences interface {
	Load(ctx context.Context) (settings.Preferences, error)
}

type attemptsLoadedMsg struct {
	Latest map[string]store.AssessmentRecord
	Err    error
}

// AssessmentsScreen lists the assessment catalog with the learner's
// latest result for each.
type AssessmentsScreen struct {
	catalog *assessment.Catalog
	tracker Tracker
	prefs   Preferences
	logger  *zap.Logger

	defs     []assessment.Definition
	latest   map[string]store.AssessmentRecord
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*AssessmentsScreen)(nil)
var _ screen.KeyHintProvider = (*AssessmentsScreen)(nil)

// New creates a new AssessmentsScreen.
func New(cat *assessment.Catalog, tracker Tracker, prefs Preferences, logger *zap.Logger) *AssessmentsScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentsScreen{
		catalog: cat,
		tracker: tracker,
		prefs:   prefs,
		logger:  logger,
		defs:    cat.All(),
		latest:  make(map[string]store.AssessmentRecord),
	}
}

func (s *AssessmentsScreen) Init() tea.Cmd {
	return s.load()
}

func (s *AssessmentsScreen) load() tea.Cmd {
	tr := s.tracker
	return func() tea.Msg {
		latest, err := tr.LatestResults(context.Background())
		if err != nil {
			return attemptsLoadedMsg{Err: err}
		}
		return attemptsLoadedMsg{Latest: latest}
	}
}

func (s *AssessmentsScreen) Title() string {
	return "Assessments"
}

func (s *AssessmentsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *AssessmentsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.latest = msg.Latest
		return s, nil

	case screen.ResumeMsg:
		return s, s.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.defs)-1 {
				s.selected++
			}
		case "enter":
			if len(s.defs) == 0 {
				return s, nil
			}
			return s, Open(s.catalog, s.defs[s.selected].ID, s.tracker, s.prefs, s.logger)
		}
	}
	return s, nil
}

func (s *AssessmentsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.ErrorText(width, s.errMsg)
	}
	if len(s.defs) == 0 {
		return layout.Placeholder(width, "No assessments available.")
	}

	cw := min(width-4, 96)
	var cards []string
	for i, d := range s.defs {
		cards = append(cards, s.renderCard(d, i == s.selected, cw))
	}

	content := strings.Join(cards, "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

func (s *AssessmentsScreen) renderCard(d assessment.Definition, selected bool, width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	border := theme.Border
	if selected {
		titleStyle = titleStyle.Foreground(theme.Primary)
		border = theme.Primary
	}

	head := titleStyle.Render(d.Title) + "  " + components.DifficultyBadge(d.Difficulty)
	if d.Duration != "" {
		head += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + d.Duration)
	}

	status := theme.Hint.Render("Not taken yet")
	if !s.loaded {
		status = theme.Hint.Render("...")
	} else if r, ok := s.latest[d.ID]; ok {
		if pct, ok := r.Percent(); ok {
			status = theme.Done.Render(fmt.Sprintf("Last score %d%%", pct)) +
				lipgloss.NewStyle().Foreground(theme.TextDim).
					Render("  "+r.CompletedAt.Local().Format("Jan 02, 2006"))
		} else {
			status = theme.Done.Render("Completed")
		}
	}

	lines := []string{head}
	if d.Description != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render(d.Description))
	}
	if len(d.Skills) > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).
			Render("Skills: "+strings.Join(d.Skills, ", ")))
	}
	lines = append(lines, status)

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Open builds a wizard for the assessment id and pushes it. The typing
// delay comes from the stored preferences.
func Open(cat *assessment.Catalog, id string, rec wizard.Recorder, prefs Preferences, logger *zap.Logger) tea.Cmd {
	return func() tea.Msg {
		def, err := cat.Get(id)
		if err != nil {
			return router.PushScreenMsg{Screen: notice.Error("Assessment", err)}
		}
		wiz, err := cat.NewWizard(id, nil)
		if err != nil {
			return router.PushScreenMsg{Screen: notice.Error("Assessment", err)}
		}
		delay := settings.Defaults().AssistantDelay
		if prefs != nil {
			p, err := prefs.Load(context.Background())
			if err != nil && logger != nil {
				logger.Warn("load preferences", zap.Error(err))
			}
			delay = p.AssistantDelay
		}
		return router.PushScreenMsg{Screen: wizard.New(def, wiz, rec, delay, logger)}
	}
}
