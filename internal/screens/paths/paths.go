package paths

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skilldash/internal/catalog"
	"github.com/abhisek/skilldash/internal/router"
	"github.com/abhisek/skilldash/internal/screen"
	"github.com/abhisek/skilldash/internal/settings"
	"github.com/abhisek/skilldash/internal/store"
	"github.com/abhisek/skilldash/internal/ui/components"
	"github.com/abhisek/skilldash/internal/ui/layout"
	"github.com/abhisek/skilldash/internal/ui/theme"
)

// Tracker reads and updates learning path progress. *tracker.Service
// satisfies it.
type Tracker interface {
	Enrollments(ctx context.Context) ([]store.Enrollment, error)
	Enroll(ctx context.Context, pathID string) error
	SetCourseCompleted(ctx context.Context, pathID, courseID string, done bool) error
}

// Preferences loads user preferences. *settings.Service satisfies it.
type Preferences interface {
	Load(ctx context.Context) (settings.Preferences, error)
}

type enrollmentsLoadedMsg struct {
	Enrollments map[string]store.Enrollment
	Err         error
}

type enrolledMsg struct {
	PathID string
	Err    error
}

// PathsScreen lists learning paths with the learner's progress.
type PathsScreen struct {
	tracker     Tracker
	prefs       Preferences
	paths       []catalog.Path
	enrollments map[string]store.Enrollment
	selected    int
	loaded      bool
	errMsg      string
}

var _ screen.Screen = (*PathsScreen)(nil)
var _ screen.KeyHintProvider = (*PathsScreen)(nil)

// New creates a new PathsScreen.
func New(tracker Tracker, prefs Preferences) *PathsScreen {
	return &PathsScreen{
		tracker:     tracker,
		prefs:       prefs,
		paths:       catalog.AllPaths(),
		enrollments: make(map[string]store.Enrollment),
	}
}

func (s *PathsScreen) Init() tea.Cmd {
	return loadEnrollments(s.tracker)
}

func loadEnrollments(tr Tracker) tea.Cmd {
	return func() tea.Msg {
		es, err := tr.Enrollments(context.Background())
		if err != nil {
			return enrollmentsLoadedMsg{Err: err}
		}
		byPath := make(map[string]store.Enrollment, len(es))
		for _, e := range es {
			byPath[e.PathID] = e
		}
		return enrollmentsLoadedMsg{Enrollments: byPath}
	}
}

func enroll(tr Tracker, pathID string) tea.Cmd {
	return func() tea.Msg {
		return enrolledMsg{PathID: pathID, Err: tr.Enroll(context.Background(), pathID)}
	}
}

func (s *PathsScreen) Title() string {
	return "Learning Paths"
}

func (s *PathsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "e", Description: "Enroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PathsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case enrollmentsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.enrollments = msg.Enrollments
		return s, nil

	case enrolledMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, loadEnrollments(s.tracker)

	case screen.ResumeMsg:
		return s, loadEnrollments(s.tracker)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.paths)-1 {
				s.selected++
			}
		case "e":
			if len(s.paths) > 0 {
				return s, enroll(s.tracker, s.paths[s.selected].ID)
			}
		case "enter":
			if len(s.paths) > 0 {
				detail := NewDetail(s.paths[s.selected], s.tracker, s.prefs)
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
			}
		}
	}
	return s, nil
}

func (s *PathsScreen) View(width, height int) string {
	if !s.loaded && s.errMsg == "" {
		return layout.Placeholder(width, "Loading learning paths...")
	}

	cw := min(width-4, 96)
	var cards []string
	for i, p := range s.paths {
		cards = append(cards, s.renderCard(p, i == s.selected, cw))
	}

	content := strings.Join(cards, "\n")
	if s.errMsg != "" {
		content = lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+s.errMsg) + "\n\n" + content
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

func (s *PathsScreen) renderCard(p catalog.Path, selected bool, width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	border := theme.Border
	if selected {
		titleStyle = titleStyle.Foreground(theme.Primary)
		border = theme.Primary
	}

	head := titleStyle.Render(p.Title) + "  " + components.DifficultyBadge(p.Difficulty) +
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %s · %d courses", p.EstimatedTime, len(p.CourseIDs)))

	lines := []string{
		head,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Description),
	}

	e, enrolled := s.enrollments[p.ID]
	if enrolled {
		prog := catalog.PathProgress(p, completedSet(e))
		label := fmt.Sprintf("%d/%d", prog.Completed, prog.Total)
		lines = append(lines, components.NewProgressBar(label, float64(prog.Percent)/100, true, width-4).View())
		switch {
		case prog.Done():
			lines = append(lines, theme.Done.Render("Path complete!"))
		case prog.Next != nil:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).Render("Next: "+prog.Next.Title))
		}
	} else {
		lines = append(lines, theme.Hint.Render("Not enrolled · press e to enroll"))
	}

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func completedSet(e store.Enrollment) map[string]bool {
	done := make(map[string]bool, len(e.CompletedCourses))
	for _, id := range e.CompletedCourses {
		done[id] = true
	}
	return done
}
