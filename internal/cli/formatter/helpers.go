package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dpp0007/HackHerth/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// DueLabel describes a todo due date relative to now, e.g. "Today",
// "In 3d" or "2d ago". Unparseable dates are returned unchanged.
func DueLabel(due string, now time.Time) string {
	t, err := domain.ParseDate(due)
	if err != nil {
		return due
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(math.Round(t.Sub(today).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0:
		return fmt.Sprintf("In %dw", days/7)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	default:
		return fmt.Sprintf("%dw ago", -days/7)
	}
}

// DueLabelStyled colors overdue and imminent pending todos.
func DueLabelStyled(due string, now time.Time, completed bool) string {
	text := DueLabel(due, now)
	if completed {
		return StyleDim.Render(text)
	}
	if strings.HasSuffix(text, "ago") || text == "Yesterday" {
		return StyleRed.Render(text)
	}
	if text == "Today" || text == "Tomorrow" {
		return StyleYellow.Render(text)
	}
	return StyleFg.Render(text)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Bullets renders each line with a leading dot, or a dimmed placeholder.
func Bullets(lines []string, empty string) string {
	if len(lines) == 0 {
		return "  " + Dim(empty) + "\n"
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString("  • " + l + "\n")
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return Dim("--")
	}
	return s
}
