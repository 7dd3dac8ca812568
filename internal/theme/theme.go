package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/productivity-tracker/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// Apply selects the light or dark side of every adaptive color from the
// user's theme preference. The system theme keeps lipgloss's terminal
// background detection.
func Apply(pref string) {
	switch pref {
	case model.ThemeDark:
		lipgloss.SetHasDarkBackground(true)
	case model.ThemeLight:
		lipgloss.SetHasDarkBackground(false)
	}
}

// HeaderStyle is used for section headers.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// PanelStyle wraps a block of report content.
var PanelStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// MutedStyle is used for secondary details such as ids and dates.
var MutedStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// TaskStatusStyle returns a color-coded style for a derived task status.
func TaskStatusStyle(status model.TaskStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch status {
	case model.TaskPending:
		return base.Foreground(ColorBlue)
	case model.TaskOverdue:
		return base.Foreground(ColorRed)
	case model.TaskCompleted:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// ChallengeStatusStyle returns a color-coded style for a derived
// challenge status.
func ChallengeStatusStyle(status model.ChallengeStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch status {
	case model.ChallengeActive:
		return base.Foreground(ColorBlue)
	case model.ChallengeUpcoming:
		return base.Foreground(ColorMagenta)
	case model.ChallengeOverdue:
		return base.Foreground(ColorRed)
	case model.ChallengeCompleted:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// PriorityStyle returns a color-coded style for a task priority.
func PriorityStyle(p model.Priority) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch p {
	case model.PriorityHigh:
		return base.Foreground(ColorRed)
	case model.PriorityMedium:
		return base.Foreground(ColorYellow)
	case model.PriorityLow:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// LabelStyle renders a label in a user-chosen hex color, as stored on
// categories, habits and challenges.
func LabelStyle(hex string) lipgloss.Style {
	if hex == "" {
		return lipgloss.NewStyle().Foreground(ColorGray)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
