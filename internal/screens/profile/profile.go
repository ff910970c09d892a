package profile

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	prof "github.com/abhisek/skilldash/internal/profile"
	"github.com/abhisek/skilldash/internal/screen"
	"github.com/abhisek/skilldash/internal/store"
	"github.com/abhisek/skilldash/internal/ui/components"
	"github.com/abhisek/skilldash/internal/ui/layout"
	"github.com/abhisek/skilldash/internal/ui/theme"
)

// Editor loads and stores the profile. *profile.Service satisfies it.
type Editor interface {
	Load(ctx context.Context, userID string) (*store.Profile, error)
	Save(ctx context.Context, p *store.Profile) error
	Skills(ctx context.Context, userID string) ([]store.UserSkill, error)
	AddSkill(ctx context.Context, userID, name string) error
	RemoveSkill(ctx context.Context, userID, name string) error
}

type mode int

const (
	modeBrowse mode = iota
	modeEditField
	modeAddSkill
)

type profileLoadedMsg struct {
	Profile *store.Profile
	Skills  []store.UserSkill
	Err     error
}

type savedMsg struct {
	Profile *store.Profile
	Notice  string
	Err     error
}

// ProfileScreen edits profile fields and the skill list.
type ProfileScreen struct {
	editor        Editor
	userID        string
	fallbackEmail string

	profile *store.Profile
	skills  []store.UserSkill

	cursor int
	mode   mode
	input  components.TextInput

	loaded bool
	notice string
	errMsg string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)
var _ screen.InputCapturer = (*ProfileScreen)(nil)

// New creates a new ProfileScreen. fallbackEmail is shown while the
// profile has no email of its own.
func New(editor Editor, userID, fallbackEmail string) *ProfileScreen {
	return &ProfileScreen{
		editor:        editor,
		userID:        userID,
		fallbackEmail: fallbackEmail,
		profile:       &store.Profile{UserID: userID},
		input:         components.NewTextInput("", 256),
	}
}

func (s *ProfileScreen) Init() tea.Cmd {
	return s.load()
}

func (s *ProfileScreen) load() tea.Cmd {
	editor, userID := s.editor, s.userID
	return func() tea.Msg {
		ctx := context.Background()
		p, err := editor.Load(ctx, userID)
		if err != nil {
			return profileLoadedMsg{Err: err}
		}
		skills, err := editor.Skills(ctx, userID)
		if err != nil {
			return profileLoadedMsg{Err: err}
		}
		return profileLoadedMsg{Profile: p, Skills: skills}
	}
}

func (s *ProfileScreen) Title() string {
	return "Profile"
}

func (s *ProfileScreen) CapturesInput() bool {
	return s.mode != modeBrowse
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	if s.mode != modeBrowse {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Edit"},
		{Key: "a", Description: "Add skill"},
	}
	if s.onSkill() {
		hints = append(hints, layout.KeyHint{Key: "x", Description: "Remove skill"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// rows: profile fields, then skills, then the add-skill row.
func (s *ProfileScreen) rowCount() int {
	return len(prof.Fields) + len(s.skills) + 1
}

func (s *ProfileScreen) onField() bool {
	return s.cursor < len(prof.Fields)
}

func (s *ProfileScreen) onSkill() bool {
	i := s.cursor - len(prof.Fields)
	return i >= 0 && i < len(s.skills)
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.profile = msg.Profile
		s.skills = msg.Skills
		if s.cursor >= s.rowCount() {
			s.cursor = s.rowCount() - 1
		}
		return s, nil

	case savedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.notice = ""
			return s, nil
		}
		s.errMsg = ""
		s.notice = msg.Notice
		if msg.Profile != nil {
			s.profile = msg.Profile
		}
		return s, s.load()

	case tea.KeyMsg:
		if s.mode != modeBrowse {
			return s.handleInputKey(msg)
		}
		return s.handleKey(msg)
	}

	if s.mode != modeBrowse {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ProfileScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < s.rowCount()-1 {
			s.cursor++
		}
	case "a":
		return s, s.beginInput(modeAddSkill, "")
	case "x", "delete", "backspace":
		if s.onSkill() {
			return s, s.removeSkill(s.skills[s.cursor-len(prof.Fields)].Name)
		}
	case "enter":
		switch {
		case s.onField():
			f := prof.Fields[s.cursor]
			return s, s.beginInput(modeEditField, f.Value(s.profile))
		case s.onSkill():
			return s, nil
		default:
			return s, s.beginInput(modeAddSkill, "")
		}
	}
	return s, nil
}

func (s *ProfileScreen) beginInput(m mode, value string) tea.Cmd {
	s.mode = m
	s.notice = ""
	s.errMsg = ""
	s.input.Reset()
	s.input.SetValue(value)
	if m == modeAddSkill {
		s.input.Model.Placeholder = "New skill name"
	} else {
		s.input.Model.Placeholder = prof.Fields[s.cursor].Label
	}
	return s.input.Focus()
}

func (s *ProfileScreen) handleInputKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = modeBrowse
		s.input.Blur()
		return s, nil
	case "enter":
		value := s.input.Value()
		m := s.mode
		s.mode = modeBrowse
		s.input.Blur()
		if m == modeAddSkill {
			return s, s.addSkill(value)
		}
		return s, s.saveField(prof.Fields[s.cursor].Key, value)
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// saveField stores a copy of the profile with one field changed, so a
// rejected value leaves the shown profile untouched.
func (s *ProfileScreen) saveField(key, value string) tea.Cmd {
	updated := *s.profile
	editor := s.editor
	return func() tea.Msg {
		if err := prof.SetField(&updated, key, value); err != nil {
			return savedMsg{Err: err}
		}
		if err := editor.Save(context.Background(), &updated); err != nil {
			return savedMsg{Err: err}
		}
		return savedMsg{Profile: &updated, Notice: "Profile saved."}
	}
}

func (s *ProfileScreen) addSkill(name string) tea.Cmd {
	editor, userID := s.editor, s.userID
	return func() tea.Msg {
		if err := editor.AddSkill(context.Background(), userID, name); err != nil {
			return savedMsg{Err: err}
		}
		return savedMsg{Notice: fmt.Sprintf("Added %s.", strings.TrimSpace(name))}
	}
}

func (s *ProfileScreen) removeSkill(name string) tea.Cmd {
	editor, userID := s.editor, s.userID
	return func() tea.Msg {
		if err := editor.RemoveSkill(context.Background(), userID, name); err != nil {
			return savedMsg{Err: err}
		}
		return savedMsg{Notice: fmt.Sprintf("Removed %s.", name)}
	}
}

func (s *ProfileScreen) View(width, height int) string {
	if !s.loaded && s.errMsg == "" {
		return layout.Placeholder(width, "Loading profile...")
	}

	var b strings.Builder
	section := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	b.WriteString(section.Render("Details"))
	b.WriteString("\n")
	for i, f := range prof.Fields {
		value := f.Value(s.profile)
		valueStyle := lipgloss.NewStyle().Foreground(theme.Text)
		if value == "" {
			valueStyle = dim.Italic(true)
			value = "not set"
			if f.Key == "email" && s.fallbackEmail != "" {
				value = s.fallbackEmail + " (from config)"
			}
		}
		selected := i == s.cursor
		if selected && s.mode == modeEditField {
			b.WriteString(s.renderLabel(f.Label, true) + s.input.View() + "\n")
			continue
		}
		b.WriteString(s.renderLabel(f.Label, selected) + valueStyle.Render(value) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(section.Render(fmt.Sprintf("Skills (%d)", len(s.skills))))
	b.WriteString("\n")
	for i, sk := range s.skills {
		row := len(prof.Fields) + i
		line := sk.Name
		if sk.Level != "" {
			line += dim.Render(fmt.Sprintf("  %s · %d%%", sk.Level, sk.Score))
		}
		b.WriteString(s.renderBullet(row == s.cursor) + lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n")
	}
	addRow := len(prof.Fields) + len(s.skills)
	if s.mode == modeAddSkill {
		b.WriteString(s.renderBullet(true) + s.input.View() + "\n")
	} else {
		b.WriteString(s.renderBullet(s.cursor == addRow) + dim.Render("+ Add skill") + "\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Width(max(width-6, 20)).Render(s.errMsg))
	} else if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Done.Render(s.notice))
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(b.String())
}

func (s *ProfileScreen) renderLabel(label string, selected bool) string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim).Width(14)
	if selected {
		style = style.Foreground(theme.Primary).Bold(true)
	}
	return s.renderBullet(selected) + style.Render(label)
}

func (s *ProfileScreen) renderBullet(selected bool) string {
	if selected {
		return lipgloss.NewStyle().Foreground(theme.Primary).Render("▸ ")
	}
	return "  "
}
