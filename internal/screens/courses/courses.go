package courses

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skilldash/internal/assessment"
	"github.com/abhisek/skilldash/internal/catalog"
	"github.com/abhisek/skilldash/internal/screen"
	"github.com/abhisek/skilldash/internal/settings"
	"github.com/abhisek/skilldash/internal/store"
	"github.com/abhisek/skilldash/internal/ui/components"
	"github.com/abhisek/skilldash/internal/ui/layout"
	"github.com/abhisek/skilldash/internal/ui/theme"
)

// Progress reads the learner's path enrollments. *tracker.Service
// satisfies it.
type Progress interface {
	Enrollments(ctx context.Context) ([]store.Enrollment, error)
	CompletedCourses(ctx context.Context) (map[string]bool, error)
}

// Preferences loads user preferences. *settings.Service satisfies it.
type Preferences interface {
	Load(ctx context.Context) (settings.Preferences, error)
}

type progressLoadedMsg struct {
	Completed     map[string]bool
	Started       map[string]bool
	ShowCompleted bool
	Err           error
}

// CoursesScreen browses and filters the course catalog.
type CoursesScreen struct {
	progress Progress
	prefs    Preferences

	query    components.TextInput
	filter   catalog.Filter
	skills   []string
	skillIdx int // -1 for any skill

	results       []catalog.Course
	completed     map[string]bool
	started       map[string]bool
	showCompleted bool

	cursor       int
	scrollOffset int
	expanded     map[string]bool
	errMsg       string
}

var _ screen.Screen = (*CoursesScreen)(nil)
var _ screen.KeyHintProvider = (*CoursesScreen)(nil)
var _ screen.InputCapturer = (*CoursesScreen)(nil)

// New creates a new CoursesScreen.
func New(progress Progress, prefs Preferences) *CoursesScreen {
	q := components.NewTextInput("Search courses...", 64)
	q.Blur()
	s := &CoursesScreen{
		progress:      progress,
		prefs:         prefs,
		query:         q,
		skills:        catalog.Skills(),
		skillIdx:      -1,
		completed:     make(map[string]bool),
		started:       make(map[string]bool),
		showCompleted: true,
		expanded:      make(map[string]bool),
	}
	s.refresh()
	return s
}

func (s *CoursesScreen) Init() tea.Cmd {
	return s.load()
}

func (s *CoursesScreen) load() tea.Cmd {
	progress, prefs := s.progress, s.prefs
	return func() tea.Msg {
		ctx := context.Background()
		msg := progressLoadedMsg{ShowCompleted: true, Started: make(map[string]bool)}
		if prefs != nil {
			p, _ := prefs.Load(ctx)
			msg.ShowCompleted = p.ShowCompleted
		}
		if progress == nil {
			msg.Completed = map[string]bool{}
			return msg
		}
		completed, err := progress.CompletedCourses(ctx)
		if err != nil {
			msg.Err = err
			return msg
		}
		enrollments, err := progress.Enrollments(ctx)
		if err != nil {
			msg.Err = err
			return msg
		}
		for _, e := range enrollments {
			p, err := catalog.GetPath(e.PathID)
			if err != nil {
				continue
			}
			for _, id := range p.CourseIDs {
				msg.Started[id] = true
			}
		}
		msg.Completed = completed
		return msg
	}
}

func (s *CoursesScreen) Title() string {
	return "Courses"
}

func (s *CoursesScreen) CapturesInput() bool {
	return s.query.Focused()
}

func (s *CoursesScreen) KeyHints() []layout.KeyHint {
	if s.query.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "/", Description: "Search"},
		{Key: "d", Description: "Difficulty"},
		{Key: "s", Description: "Skill"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CoursesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.completed = msg.Completed
		s.started = msg.Started
		s.showCompleted = msg.ShowCompleted
		s.refresh()
		return s, nil

	case screen.ResumeMsg:
		return s, s.load()

	case tea.KeyMsg:
		if s.query.Focused() {
			return s.handleQueryKey(msg)
		}
		return s.handleKey(msg)
	}

	if s.query.Focused() {
		var cmd tea.Cmd
		s.query, cmd = s.query.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *CoursesScreen) handleQueryKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		s.query.Blur()
		return s, nil
	case "esc":
		s.query.Reset()
		s.query.Blur()
		s.filter.Query = ""
		s.refresh()
		return s, nil
	}
	var cmd tea.Cmd
	s.query, cmd = s.query.Update(msg)
	s.filter.Query = s.query.Value()
	s.refresh()
	return s, cmd
}

func (s *CoursesScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "/":
		return s, s.query.Focus()
	case "d":
		s.filter.Difficulty = nextDifficulty(s.filter.Difficulty)
		s.refresh()
	case "s":
		s.skillIdx++
		if s.skillIdx >= len(s.skills) {
			s.skillIdx = -1
		}
		s.filter.Skill = ""
		if s.skillIdx >= 0 {
			s.filter.Skill = s.skills[s.skillIdx]
		}
		s.refresh()
	case "c":
		s.filter = catalog.Filter{}
		s.skillIdx = -1
		s.query.Reset()
		s.refresh()
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.results)-1 {
			s.cursor++
		}
	case "enter", "space", " ":
		if s.cursor < len(s.results) {
			id := s.results[s.cursor].ID
			s.expanded[id] = !s.expanded[id]
		}
	}
	return s, nil
}

// nextDifficulty cycles any → Beginner → Intermediate → Advanced → any.
func nextDifficulty(d assessment.Difficulty) assessment.Difficulty {
	all := assessment.AllDifficulties()
	if d == "" {
		return all[0]
	}
	for i, x := range all {
		if x == d && i+1 < len(all) {
			return all[i+1]
		}
	}
	return ""
}

// refresh re-runs the filter and clamps the cursor.
func (s *CoursesScreen) refresh() {
	results := catalog.Search(s.filter)
	if !s.showCompleted {
		kept := results[:0]
		for _, c := range results {
			if !s.completed[c.ID] {
				kept = append(kept, c)
			}
		}
		results = kept
	}
	s.results = results
	if s.cursor >= len(s.results) {
		s.cursor = max(len(s.results)-1, 0)
	}
}

func (s *CoursesScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("  " + s.renderFilterBar())
	b.WriteString("\n")
	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")

	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  Error: " + s.errMsg))
		b.WriteString("\n")
	}

	if len(s.results) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("\n  No courses match your filters. Press c to clear them."))
		return b.String()
	}

	var rows []string
	cursorRow := 0
	for i, c := range s.results {
		if i == s.cursor {
			cursorRow = len(rows)
		}
		rows = append(rows, s.renderRow(c, i == s.cursor, width))
		if s.expanded[c.ID] {
			rows = append(rows, s.renderDetail(c, width)...)
		}
	}

	visible := height - 3
	if visible < 1 {
		visible = 1
	}
	if cursorRow < s.scrollOffset {
		s.scrollOffset = cursorRow
	}
	if cursorRow >= s.scrollOffset+visible {
		s.scrollOffset = cursorRow - visible + 1
	}
	end := min(s.scrollOffset+visible, len(rows))
	b.WriteString(strings.Join(rows[s.scrollOffset:end], "\n"))
	return b.String()
}

func (s *CoursesScreen) renderFilterBar() string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	difficulty := "any"
	if s.filter.Difficulty != "" {
		difficulty = string(s.filter.Difficulty)
	}
	skill := "any"
	if s.filter.Skill != "" {
		skill = s.filter.Skill
	}
	return s.query.View() + dim.Render(fmt.Sprintf("   difficulty: %s   skill: %s   %d courses",
		difficulty, skill, len(s.results)))
}

func (s *CoursesScreen) renderRow(c catalog.Course, selected bool, width int) string {
	state := catalog.State(c.ID, s.completed, s.started)
	prefix := "  "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		prefix = "▸ "
		style = style.Foreground(theme.Primary).Bold(true)
	}
	title := style.Render(fmt.Sprintf("%s%-34s", prefix, c.Title))
	stateLabel := lipgloss.NewStyle().Foreground(components.CourseStateColor(state)).Render(fmt.Sprintf("%-12s", state))
	return "  " + title + " " + components.DifficultyBadge(c.Difficulty) + "  " + stateLabel +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(c.Duration)
}

func (s *CoursesScreen) renderDetail(c catalog.Course, width int) []string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	indent := "       "
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Text).Width(max(width-12, 20)).Render(indent + c.Description),
	}
	if len(c.Skills) > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).
			Render(indent+"Skills: "+strings.Join(c.Skills, ", ")))
	}
	if prereqs := catalog.Prerequisites(c.ID); len(prereqs) > 0 {
		lines = append(lines, dim.Render(indent+"Requires: "+courseTitles(prereqs)))
	}
	if deps := catalog.Dependents(c.ID); len(deps) > 0 {
		lines = append(lines, dim.Render(indent+"Unlocks: "+courseTitles(deps)))
	}
	return lines
}

func courseTitles(courses []catalog.Course) string {
	titles := make([]string, len(courses))
	for i, c := range courses {
		titles[i] = c.Title
	}
	return strings.Join(titles, ", ")
}
