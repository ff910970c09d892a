package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skilldash/internal/router"
	"github.com/abhisek/skilldash/internal/screen"
	"github.com/abhisek/skilldash/internal/screens/assessments"
	"github.com/abhisek/skilldash/internal/screens/home"
	"github.com/abhisek/skilldash/internal/ui/layout"
)

// Options configures the interactive program.
type Options struct {
	Deps home.Deps

	// InitialAssessment opens this assessment on top of the dashboard
	// when non-empty.
	InitialAssessment string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router     *router.Router
	initCmd    tea.Cmd
	skills     int
	completion int
	width      int
	height     int
}

// newAppModel creates a new AppModel rooted at root. extra runs alongside
// the root screen's Init.
func newAppModel(root screen.Screen, extra tea.Cmd) AppModel {
	return AppModel{
		router:  router.New(root),
		initCmd: tea.Batch(root.Init(), extra),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.StatusMsg:
		m.skills = msg.Skills
		m.completion = msg.Completion
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturesInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := m.router.Breadcrumb(" › ")
	if layout.IsCompactWidth(m.width) && active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.skills, m.completion, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	d := opts.Deps

	var open tea.Cmd
	if opts.InitialAssessment != "" {
		open = assessments.Open(d.Assessments, opts.InitialAssessment, d.Tracker, d.Settings, d.Logger)
	}

	p := tea.NewProgram(newAppModel(home.New(d), open))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
