package activity

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skilldash/internal/screen"
	"github.com/abhisek/skilldash/internal/store"
	"github.com/abhisek/skilldash/internal/ui/components"
	"github.com/abhisek/skilldash/internal/ui/layout"
	"github.com/abhisek/skilldash/internal/ui/theme"
)

// Limit is the number of entries the screen shows.
const Limit = 50

// Log reads the activity log. store.ActivityRepo satisfies it.
type Log interface {
	Recent(ctx context.Context, userID string, limit int) ([]store.Activity, error)
}

type activityLoadedMsg struct {
	Entries []store.Activity
	Err     error
}

// ActivityScreen lists recent activity, newest first.
type ActivityScreen struct {
	log      Log
	userID   string
	entries  []store.Activity
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ActivityScreen)(nil)
var _ screen.KeyHintProvider = (*ActivityScreen)(nil)

// New creates a new ActivityScreen.
func New(log Log, userID string) *ActivityScreen {
	return &ActivityScreen{
		log:      log,
		userID:   userID,
		expanded: make(map[int]bool),
	}
}

func (s *ActivityScreen) Init() tea.Cmd {
	log, userID := s.log, s.userID
	return func() tea.Msg {
		entries, err := log.Recent(context.Background(), userID, Limit)
		return activityLoadedMsg{Entries: entries, Err: err}
	}
}

func (s *ActivityScreen) Title() string {
	return "Activity"
}

func (s *ActivityScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ActivityScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case activityLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = msg.Entries
		}
		s.loaded = true
		return s, nil

	case screen.ResumeMsg:
		return s, s.Init()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *ActivityScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.ErrorText(width, s.errMsg)
	}
	if !s.loaded {
		return layout.Placeholder(width, "Loading activity...")
	}
	if len(s.entries) == 0 {
		return layout.Placeholder(width, "Nothing here yet. Take an assessment to get started!")
	}

	// Keep the selected row on screen.
	visible := max(height-2, 1)
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}

	var b strings.Builder
	b.WriteString("\n")
	for i := start; i < len(s.entries) && i < start+visible; i++ {
		a := s.entries[i]

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		line := fmt.Sprintf("%s%s  %s  %s",
			prefix, a.Timestamp.Local().Format("Jan 02 15:04"), KindLabel(a.Kind), a.Title)
		b.WriteString(style.Render(line))
		if a.Score != nil {
			b.WriteString(lipgloss.NewStyle().Foreground(components.ScoreColor(*a.Score)).
				Render(fmt.Sprintf("  %d%%", *a.Score)))
		}
		b.WriteString("\n")

		if s.expanded[i] {
			detail := a.Detail
			if detail == "" {
				detail = "No details recorded"
			}
			b.WriteString(theme.Hint.Render("      " + detail))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(b.String())
}

// KindLabel returns a short display label for an activity kind.
func KindLabel(kind string) string {
	switch kind {
	case store.ActivityAssessmentCompleted:
		return "Assessment"
	case store.ActivityProfileUpdated:
		return "Profile   "
	case store.ActivityPathEnrolled:
		return "Enrolled  "
	case store.ActivityCourseCompleted:
		return "Course    "
	case store.ActivitySkillAdded, store.ActivitySkillRemoved:
		return "Skill     "
	default:
		return kind
	}
}
