package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
)

// FormatProfile renders pregnancy details for one user.
func FormatProfile(userID string, p *domain.Profile) string {
	var b strings.Builder
	b.WriteString(Header("Profile") + "\n")
	fmt.Fprintf(&b, "  %-18s %s\n", "User", userID)
	if p.CurrentWeek > 0 {
		fmt.Fprintf(&b, "  %-18s %d\n", "Week", p.CurrentWeek)
	} else {
		fmt.Fprintf(&b, "  %-18s %s\n", "Week", Dim("not set"))
	}
	if p.Trimester > 0 {
		fmt.Fprintf(&b, "  %-18s %d\n", "Trimester", p.Trimester)
	} else {
		fmt.Fprintf(&b, "  %-18s %s\n", "Trimester", Dim("not set"))
	}
	fmt.Fprintf(&b, "  %-18s %s\n", "Due date", orDash(p.DueDate))
	fmt.Fprintf(&b, "  %-18s %s\n", "LMP", orDash(p.LMP))
	fmt.Fprintf(&b, "  %-18s %s\n", "Allergies", orDash(strings.Join(p.Allergies, ", ")))
	fmt.Fprintf(&b, "  %-18s %s\n", "Food preferences", orDash(strings.Join(p.FoodPreferences, ", ")))
	return b.String()
}

// FormatLogged confirms a newly written log entry.
func FormatLogged(kind, id string, week int) string {
	msg := fmt.Sprintf("%s Logged %s %s", StyleGreen.Render("✔"), kind, TruncID(id))
	if week > 0 {
		msg += Dim(fmt.Sprintf(" (week %d)", week))
	}
	return msg + "\n"
}

// FormatTodos renders the task list in insertion order.
func FormatTodos(todos []domain.TodoEntry, now time.Time) string {
	if len(todos) == 0 {
		return Dim("No tasks yet.") + "\n"
	}
	rows := make([][]string, 0, len(todos))
	done := 0
	for _, t := range todos {
		mark := "○"
		task := t.Task
		if t.Completed {
			mark = StyleGreen.Render("✔")
			task = Dim(task)
			done++
		}
		rows = append(rows, []string{
			mark,
			TruncID(t.ID),
			task,
			PriorityStyle(t.Priority).Render(string(t.Priority)),
			DueLabelStyled(t.DueDate, now, t.Completed),
		})
	}

	var b strings.Builder
	b.WriteString(Header("Tasks") + "\n")
	b.WriteString(RenderTable([]string{"", "ID", "TASK", "PRIORITY", "DUE"}, rows))
	fmt.Fprintf(&b, "\n%s of %d done\n", Bold(fmt.Sprint(done)), len(todos))
	return b.String()
}
