package paths

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skilldash/internal/catalog"
	"github.com/abhisek/skilldash/internal/screen"
	"github.com/abhisek/skilldash/internal/store"
	"github.com/abhisek/skilldash/internal/ui/components"
	"github.com/abhisek/skilldash/internal/ui/layout"
	"github.com/abhisek/skilldash/internal/ui/theme"
)

type detailLoadedMsg struct {
	Enrollment    *store.Enrollment
	ShowCompleted bool
	Err           error
}

type courseToggledMsg struct {
	Err error
}

// DetailScreen shows one learning path's courses and lets the learner
// enroll and tick courses off.
type DetailScreen struct {
	path    catalog.Path
	courses []catalog.Course
	tracker Tracker
	prefs   Preferences

	enrollment    *store.Enrollment
	showCompleted bool
	cursor        int
	loaded        bool
	errMsg        string
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

// NewDetail creates a DetailScreen for p.
func NewDetail(p catalog.Path, tracker Tracker, prefs Preferences) *DetailScreen {
	return &DetailScreen{
		path:          p,
		courses:       catalog.PathCourses(p),
		tracker:       tracker,
		prefs:         prefs,
		showCompleted: true,
	}
}

func (s *DetailScreen) Init() tea.Cmd {
	return s.load()
}

func (s *DetailScreen) load() tea.Cmd {
	tr, prefs, pathID := s.tracker, s.prefs, s.path.ID
	return func() tea.Msg {
		ctx := context.Background()
		msg := detailLoadedMsg{ShowCompleted: true}
		if prefs != nil {
			p, _ := prefs.Load(ctx)
			msg.ShowCompleted = p.ShowCompleted
		}
		es, err := tr.Enrollments(ctx)
		if err != nil {
			msg.Err = err
			return msg
		}
		for i := range es {
			if es[i].PathID == pathID {
				msg.Enrollment = &es[i]
				break
			}
		}
		return msg
	}
}

func (s *DetailScreen) Title() string {
	return s.path.Title
}

func (s *DetailScreen) KeyHints() []layout.KeyHint {
	if s.enrollment == nil {
		return []layout.KeyHint{
			{Key: "e", Description: "Enroll"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Toggle done"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.enrollment = msg.Enrollment
		s.showCompleted = msg.ShowCompleted
		s.clampCursor()
		return s, nil

	case enrolledMsg:
		return s.afterWrite(msg.Err)

	case courseToggledMsg:
		return s.afterWrite(msg.Err)

	case tea.KeyMsg:
		visible := s.visibleCourses()
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(visible)-1 {
				s.cursor++
			}
		case "e":
			if s.enrollment == nil {
				return s, enroll(s.tracker, s.path.ID)
			}
		case "space", " ", "enter":
			if s.enrollment == nil {
				s.errMsg = "Enroll in this path first (press e)."
				return s, nil
			}
			if s.cursor < len(visible) {
				return s, s.toggle(visible[s.cursor].ID)
			}
		}
	}
	return s, nil
}

// afterWrite reloads the enrollment once a change has been stored.
func (s *DetailScreen) afterWrite(err error) (screen.Screen, tea.Cmd) {
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.errMsg = ""
	return s, s.load()
}

func (s *DetailScreen) toggle(courseID string) tea.Cmd {
	done := !s.isDone(courseID)
	tr, pathID := s.tracker, s.path.ID
	return func() tea.Msg {
		return courseToggledMsg{Err: tr.SetCourseCompleted(context.Background(), pathID, courseID, done)}
	}
}

func (s *DetailScreen) isDone(courseID string) bool {
	if s.enrollment == nil {
		return false
	}
	for _, id := range s.enrollment.CompletedCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

func (s *DetailScreen) visibleCourses() []catalog.Course {
	if s.showCompleted {
		return s.courses
	}
	var out []catalog.Course
	for _, c := range s.courses {
		if !s.isDone(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

func (s *DetailScreen) clampCursor() {
	if n := len(s.visibleCourses()); s.cursor >= n {
		s.cursor = max(n-1, 0)
	}
}

func (s *DetailScreen) View(width, height int) string {
	var b strings.Builder
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(s.path.Title))
	b.WriteString("  " + components.DifficultyBadge(s.path.Difficulty))
	b.WriteString(dim.Render("  " + s.path.EstimatedTime))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(max(width-4, 20)).Render(s.path.Description))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render("Skills: " + strings.Join(s.path.Skills, ", ")))
	b.WriteString("\n\n")

	completed := make(map[string]bool)
	if s.enrollment != nil {
		completed = completedSet(*s.enrollment)
		prog := catalog.PathProgress(s.path, completed)
		b.WriteString(components.NewProgressBar(
			fmt.Sprintf("%d/%d courses", prog.Completed, prog.Total),
			float64(prog.Percent)/100, true, min(width-4, 80)).View())
		b.WriteString("\n\n")
	} else if s.loaded {
		b.WriteString(theme.Hint.Render("You are not enrolled in this path. Press e to enroll."))
		b.WriteString("\n\n")
	}

	started := make(map[string]bool)
	if s.enrollment != nil {
		for _, c := range s.courses {
			started[c.ID] = true
		}
	}

	for i, c := range s.visibleCourses() {
		state := catalog.State(c.ID, completed, started)
		check := "[ ]"
		if completed[c.ID] {
			check = "[x]"
		}
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.cursor {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := style.Render(fmt.Sprintf("%s%s %d. %-32s", prefix, check, i+1, c.Title)) + " " +
			lipgloss.NewStyle().Foreground(components.CourseStateColor(state)).Render(state.String()) +
			dim.Render("  "+c.Duration)
		b.WriteString(line)
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(b.String())
}
