package settings

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skilldash/internal/screen"
	prefs "github.com/abhisek/skilldash/internal/settings"
	"github.com/abhisek/skilldash/internal/ui/layout"
	"github.com/abhisek/skilldash/internal/ui/theme"
)

// Store loads and saves preferences. *settings.Service satisfies it.
type Store interface {
	Load(ctx context.Context) (prefs.Preferences, error)
	Save(ctx context.Context, p prefs.Preferences) error
	Reset(ctx context.Context) error
}

// delayPresets are the typing delays the screen cycles through.
var delayPresets = []time.Duration{
	0,
	300 * time.Millisecond,
	600 * time.Millisecond,
	time.Second,
	2 * time.Second,
}

type row struct {
	label  string
	value  func(p prefs.Preferences) string
	change func(p *prefs.Preferences)
}

var rows = []row{
	{
		label:  "Email notifications",
		value:  func(p prefs.Preferences) string { return onOff(p.Notifications.Email) },
		change: func(p *prefs.Preferences) { p.Notifications.Email = !p.Notifications.Email },
	},
	{
		label:  "Push notifications",
		value:  func(p prefs.Preferences) string { return onOff(p.Notifications.Push) },
		change: func(p *prefs.Preferences) { p.Notifications.Push = !p.Notifications.Push },
	},
	{
		label:  "Marketing emails",
		value:  func(p prefs.Preferences) string { return onOff(p.Notifications.Marketing) },
		change: func(p *prefs.Preferences) { p.Notifications.Marketing = !p.Notifications.Marketing },
	},
	{
		label:  "Show completed courses",
		value:  func(p prefs.Preferences) string { return onOff(p.ShowCompleted) },
		change: func(p *prefs.Preferences) { p.ShowCompleted = !p.ShowCompleted },
	},
	{
		label:  "Assistant typing delay",
		value:  func(p prefs.Preferences) string { return p.AssistantDelay.String() },
		change: func(p *prefs.Preferences) { p.AssistantDelay = nextDelay(p.AssistantDelay) },
	},
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// nextDelay returns the preset after d, wrapping around.
func nextDelay(d time.Duration) time.Duration {
	for _, p := range delayPresets {
		if p > d {
			return p
		}
	}
	return delayPresets[0]
}

type prefsLoadedMsg struct {
	Prefs prefs.Preferences
	Err   error
}

type prefsSavedMsg struct {
	Err error
}

// SettingsScreen toggles local preferences. Every change is saved at once.
type SettingsScreen struct {
	store  Store
	prefs  prefs.Preferences
	cursor int
	loaded bool
	notice string
	errMsg string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates a new SettingsScreen.
func New(store Store) *SettingsScreen {
	return &SettingsScreen{store: store, prefs: prefs.Defaults()}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return s.load()
}

func (s *SettingsScreen) load() tea.Cmd {
	st := s.store
	return func() tea.Msg {
		p, err := st.Load(context.Background())
		return prefsLoadedMsg{Prefs: p, Err: err}
	}
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Change"},
		{Key: "r", Description: "Reset"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case prefsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.prefs = msg.Prefs
		return s, nil

	case prefsSavedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.notice = ""
			return s, s.load()
		}
		s.errMsg = ""
		s.notice = "Saved."
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(rows)-1 {
				s.cursor++
			}
		case "space", " ", "enter":
			rows[s.cursor].change(&s.prefs)
			return s, s.save(s.prefs)
		case "r":
			s.prefs = prefs.Defaults()
			st := s.store
			return s, func() tea.Msg {
				return prefsSavedMsg{Err: st.Reset(context.Background())}
			}
		}
	}
	return s, nil
}

func (s *SettingsScreen) save(p prefs.Preferences) tea.Cmd {
	st := s.store
	return func() tea.Msg {
		return prefsSavedMsg{Err: st.Save(context.Background(), p)}
	}
}

func (s *SettingsScreen) View(width, height int) string {
	if !s.loaded {
		return layout.Placeholder(width, "Loading settings...")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Preferences"))
	b.WriteString("\n\n")

	for i, r := range rows {
		prefix := "  "
		labelStyle := lipgloss.NewStyle().Foreground(theme.Text).Width(28)
		if i == s.cursor {
			prefix = "▸ "
			labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
		}
		value := r.value(s.prefs)
		valueStyle := lipgloss.NewStyle().Foreground(theme.Accent)
		switch value {
		case "on":
			valueStyle = theme.Done
		case "off":
			valueStyle = theme.Locked
		}
		b.WriteString(fmt.Sprintf("%s%s%s\n", prefix, labelStyle.Render(r.label), valueStyle.Render(value)))
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	} else if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(s.notice))
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(b.String())
}
