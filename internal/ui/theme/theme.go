// Package theme holds the skilldash color palette and shared styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette.
var (
	Primary   = lipgloss.Color("#3B82F6") // Blue
	Secondary = lipgloss.Color("#06B6D4") // Cyan
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#10B981") // Emerald
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#E5E7EB")
	TextDim   = lipgloss.Color("#9CA3AF")
	BgCard    = lipgloss.Color("#1F2937")
	Border    = lipgloss.Color("#374151")
)

var (
	// Hint renders secondary, de-emphasized text.
	Hint = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	// Done marks completed items.
	Done = lipgloss.NewStyle().Foreground(Success).Bold(true)

	// Locked marks items that cannot be chosen yet.
	Locked = lipgloss.NewStyle().Foreground(TextDim)

	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)

	// UserBubble frames messages the user typed in a chat step.
	UserBubble = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary).
			Padding(0, 1)
)
