package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skilldash/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ResumeMsg is delivered to a screen when it becomes active again after
// the screen above it was popped. Screens showing persisted data reload.
type ResumeMsg struct{}


// InputCapturer is an optional interface for screens with a focused text
// field. While CapturesInput reports true the app forwards Esc to the
// screen instead of popping it.
type InputCapturer interface {
	CapturesInput() bool
}

// StatusMsg updates the counters shown in the header bar.
type StatusMsg struct {
	Skills     int
	Completion int
}
