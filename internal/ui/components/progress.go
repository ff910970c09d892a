package components

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/skilldash/internal/ui/theme"
)

// ProgressBar is a horizontal bar for a fraction in [0, 1].
type ProgressBar struct {
	Label       string
	Fraction    float64
	ShowPercent bool
	Width       int
	Fill        color.Color // nil means theme.Secondary
}

// NewProgressBar creates a progress bar. fraction is clamped to [0, 1].
func NewProgressBar(label string, fraction float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Fraction:    min(max(fraction, 0), 1),
		ShowPercent: showPercent,
		Width:       width,
	}
}

// Scored returns a copy of p filled with the color of its score band.
func (p ProgressBar) Scored() ProgressBar {
	p.Fill = ScoreColor(p.percent())
	return p
}

func (p ProgressBar) percent() int {
	return int(math.Round(p.Fraction * 100))
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}
	barWidth := max(p.Width-lipgloss.Width(b.String())-percentWidth, 4)

	filled := min(int(math.Round(float64(barWidth)*p.Fraction)), barWidth)

	fill := theme.ProgressFilled
	if p.Fill != nil {
		fill = fill.Background(p.Fill)
	}
	b.WriteString(fill.Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)))

	if p.ShowPercent {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", p.percent())))
	}

	return b.String()
}

// ScoreColor maps a percentage to the color of its skill band:
// below 50 is weak, below 80 is fair, the rest is strong.
func ScoreColor(score int) color.Color {
	switch {
	case score >= 80:
		return theme.Success
	case score >= 50:
		return theme.Accent
	default:
		return theme.Error
	}
}
