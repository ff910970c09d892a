package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/skilldash/internal/assessment"
	"github.com/abhisek/skilldash/internal/catalog"
	"github.com/abhisek/skilldash/internal/ui/theme"
)

// DifficultyBadge renders a difficulty label in its level color.
func DifficultyBadge(d assessment.Difficulty) string {
	return lipgloss.NewStyle().
		Foreground(DifficultyColor(d)).
		Bold(true).
		Render("[" + string(d) + "]")
}

// DifficultyColor maps a difficulty level to a theme color.
func DifficultyColor(d assessment.Difficulty) color.Color {
	switch d {
	case assessment.DifficultyBeginner:
		return theme.Success
	case assessment.DifficultyIntermediate:
		return theme.Accent
	case assessment.DifficultyAdvanced:
		return theme.Error
	default:
		return theme.TextDim
	}
}

// CourseStateColor maps a course state to a theme color.
func CourseStateColor(s catalog.CourseState) color.Color {
	switch s {
	case catalog.StateCompleted:
		return theme.Success
	case catalog.StateInProgress:
		return theme.Accent
	case catalog.StateAvailable:
		return theme.Secondary
	default:
		return theme.TextDim
	}
}
