package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dpp0007/HackHerth/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RiskIndicator returns a colored risk badge such as "● CRITICAL".
func RiskIndicator(level domain.RiskLevel) string {
	switch level {
	case domain.RiskCritical:
		return StyleRed.Render("● CRITICAL")
	case domain.RiskWatch:
		return StyleYellow.Render("● WATCH")
	case domain.RiskNormal:
		return StyleGreen.Render("● NORMAL")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// SafetyIndicator returns a colored safety badge.
func SafetyIndicator(level domain.SafetyLevel) string {
	switch level {
	case domain.SafetyCritical:
		return StyleRed.Render("▲ CRITICAL")
	case domain.SafetyWarning:
		return StyleYellow.Render("△ WARNING")
	case domain.SafetySafe:
		return StyleGreen.Render("✔ SAFE")
	default:
		return StyleDim.Render("· none")
	}
}

func UrgencyStyle(u domain.Urgency) lipgloss.Style {
	switch u {
	case domain.UrgencyCritical:
		return StyleRed
	case domain.UrgencyHigh:
		return StyleYellow
	case domain.UrgencyMedium:
		return StyleBlue
	default:
		return StyleDim
	}
}

func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return StyleRed
	case domain.PriorityMedium:
		return StyleYellow
	default:
		return StyleDim
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
