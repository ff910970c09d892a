package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/skilldash/internal/analytics"
	"github.com/abhisek/skilldash/internal/assessment"
	"github.com/abhisek/skilldash/internal/dashboard"
	"github.com/abhisek/skilldash/internal/profile"
	"github.com/abhisek/skilldash/internal/router"
	"github.com/abhisek/skilldash/internal/screen"
	"github.com/abhisek/skilldash/internal/screens/activity"
	analyticsscreen "github.com/abhisek/skilldash/internal/screens/analytics"
	"github.com/abhisek/skilldash/internal/screens/assessments"
	"github.com/abhisek/skilldash/internal/screens/courses"
	"github.com/abhisek/skilldash/internal/screens/paths"
	profilescreen "github.com/abhisek/skilldash/internal/screens/profile"
	settingsscreen "github.com/abhisek/skilldash/internal/screens/settings"
	"github.com/abhisek/skilldash/internal/settings"
	"github.com/abhisek/skilldash/internal/store"
	"github.com/abhisek/skilldash/internal/tracker"
	"github.com/abhisek/skilldash/internal/ui/components"
	"github.com/abhisek/skilldash/internal/ui/layout"
	"github.com/abhisek/skilldash/internal/ui/theme"
)

// Deps carries the services the home screen and the screens it opens need.
type Deps struct {
	Dashboard   *dashboard.Service
	Assessments *assessment.Catalog
	Tracker     *tracker.Service
	Profile     *profile.Service
	Settings    *settings.Service
	Activity    store.ActivityRepo
	Analytics   *analytics.Service
	Email       string
	Logger      *zap.Logger
}

type snapshotLoadedMsg struct {
	Snapshot dashboard.Snapshot
	Err      error
}

// HomeScreen is the dashboard: greeting, stats and the main menu.
type HomeScreen struct {
	deps   Deps
	menu   components.Menu
	snap   dashboard.Snapshot
	loaded bool
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	d := h.deps
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}
	return []components.MenuItem{
		{Label: "Assessments", Hint: "take a skill assessment", Action: push(func() screen.Screen {
			return assessments.New(d.Assessments, d.Tracker, d.Settings, d.Logger)
		})},
		{Label: "Courses", Hint: "browse the catalog", Action: push(func() screen.Screen {
			return courses.New(d.Tracker, d.Settings)
		})},
		{Label: "Learning Paths", Hint: "track your progress", Action: push(func() screen.Screen {
			return paths.New(d.Tracker, d.Settings)
		})},
		{Label: "Profile", Hint: "edit details and skills", Action: push(func() screen.Screen {
			return profilescreen.New(d.Profile, d.Tracker.UserID(), d.Email)
		})},
		{Label: "Activity", Hint: "recent history", Action: push(func() screen.Screen {
			return activity.New(d.Activity, d.Tracker.UserID())
		})},
		{Label: "Analytics", Hint: "skill progress and score history", Action: push(func() screen.Screen {
			return analyticsscreen.New(d.Analytics)
		})},
		{Label: "Settings", Action: push(func() screen.Screen {
			return settingsscreen.New(d.Settings)
		})},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) load() tea.Cmd {
	svc, email := h.deps.Dashboard, h.deps.Email
	return func() tea.Msg {
		snap, err := svc.Load(context.Background(), email)
		return snapshotLoadedMsg{Snapshot: snap, Err: err}
	}
}

func (h *HomeScreen) Title() string {
	return "Dashboard"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "1-8", Description: "Jump"},
		{Key: "r", Description: "Refresh"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotLoadedMsg:
		h.loaded = true
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			h.deps.Logger.Warn("load dashboard", zap.Error(msg.Err))
			return h, nil
		}
		h.errMsg = ""
		h.snap = msg.Snapshot
		stats := msg.Snapshot.Stats
		return h, func() tea.Msg {
			return screen.StatusMsg{Skills: stats.SkillsCount, Completion: stats.CompletionRate()}
		}

	case screen.ResumeMsg:
		return h, h.load()

	case tea.KeyMsg:
		if msg.String() == "r" {
			return h, h.load()
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(width-4, 96)
	compact := layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight)

	var sections []string
	sections = append(sections, h.renderGreeting(cw))

	switch {
	case h.errMsg != "":
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).
			Render("Could not load your dashboard: "+h.errMsg))
	case !h.loaded:
		sections = append(sections, theme.Hint.Render("Loading your dashboard..."))
	default:
		sections = append(sections, renderStats(h.snap.Stats, cw))
		if !compact {
			sections = append(sections, renderOverview(h.snap.Overview))
			sections = append(sections, renderRecent(h.snap.Recent))
		}
	}

	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(content))
}

func (h *HomeScreen) renderGreeting(width int) string {
	name := h.snap.Name
	if name == "" {
		name = dashboard.GreetingName(nil, h.deps.Email)
	}
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("Welcome back, %s!", name))
	sub := theme.Hint.Render("Pick up where you left off or try a new assessment.")
	return lipgloss.NewStyle().Width(width).Render(title + "\n" + sub)
}

func renderStats(stats dashboard.UserStats, width int) string {
	cards := []struct {
		label string
		value string
	}{
		{"Skills", fmt.Sprintf("%d", stats.SkillsCount)},
		{"Assessments", fmt.Sprintf("%d", stats.AssessmentsCount)},
		{"Learning Paths", fmt.Sprintf("%d", stats.LearningPathsCount)},
		{"Completion", fmt.Sprintf("%d%%", stats.CompletionRate())},
	}

	cardWidth := width/len(cards) - 2
	if cardWidth < 12 {
		cardWidth = 12
	}

	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		body := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(c.value) + "\n" +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(c.label)
		rendered = append(rendered, lipgloss.NewStyle().
			Width(cardWidth).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderOverview(o dashboard.Overview) string {
	return lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf(
		"Assessments: %d available  ·  %d completed  ·  %d%% average score",
		o.Available, o.Completed, o.AverageScore))
}

func renderRecent(items []dashboard.RecentItem) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Recent assessments"))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(theme.Hint.Render("  No completed assessments yet."))
		return b.String()
	}
	for _, it := range items {
		score := "—"
		if it.HasScore {
			score = fmt.Sprintf("%d%%", it.Percent)
		}
		line := fmt.Sprintf("  %-32s %6s   %s", it.Title, score, it.CompletedAt.Local().Format("Jan 02, 2006"))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
