package formatter

import (
	"fmt"
	"strings"

	"github.com/dpp0007/HackHerth/internal/intelligence"
)

// FormatSafetyCheck renders a message verdict and, when present, the
// screening of a proposed response.
func FormatSafetyCheck(a intelligence.SafetyAnalysis, rs *intelligence.ResponseSafety) string {
	var b strings.Builder
	b.WriteString(Header("Safety check") + "\n")
	fmt.Fprintf(&b, "  %s\n", SafetyIndicator(a.SafetyLevel))
	if len(a.DetectedKeywords) > 0 {
		fmt.Fprintf(&b, "  Keywords: %s\n", strings.Join(a.DetectedKeywords, ", "))
	}
	if a.RequiresEscalation {
		fmt.Fprintf(&b, "  %s\n", StyleRed.Render(a.EscalationMessage))
	}
	b.WriteString("\n" + RenderBox("Suggested reply", a.RecommendedResponse.Template) + "\n")

	if rs != nil {
		b.WriteString("\n" + Header("Response screening") + "\n")
		if rs.IsSafe {
			b.WriteString("  " + StyleGreen.Render("✔ response is safe") + "\n")
		} else {
			fmt.Fprintf(&b, "  %s %s\n", StyleYellow.Render("△ unsafe phrasing:"), strings.Join(rs.UnsafePatterns, ", "))
			b.WriteString("\n" + RenderBox("Safe alternative", rs.SafeAlternative) + "\n")
		}
	}
	return b.String()
}

// FormatValidation renders the final response an agent should send.
func FormatValidation(v intelligence.ValidationResult) string {
	var b strings.Builder
	b.WriteString(Header("Validation") + "\n")
	if v.IsValid {
		b.WriteString("  " + StyleGreen.Render("✔ valid") + "\n")
	} else {
		b.WriteString("  " + StyleYellow.Render("△ replaced") + "\n")
	}
	if v.RequiresEscalation {
		b.WriteString("  " + StyleRed.Render("escalation required") + "\n")
	}
	b.WriteString("\n" + RenderBox("Final response", v.FinalResponse) + "\n")
	return b.String()
}

// FormatSafetyReport renders aggregate safety history.
func FormatSafetyReport(r intelligence.SafetyReport) string {
	var b strings.Builder
	b.WriteString(Header("Safety report") + "\n")
	fmt.Fprintf(&b, "  %-14s %d\n", "Interactions", r.TotalInteractions)
	fmt.Fprintf(&b, "  %-14s %s\n", "Escalations", StyleRed.Render(fmt.Sprint(r.Escalations)))
	fmt.Fprintf(&b, "  %-14s %s\n", "Warnings", StyleYellow.Render(fmt.Sprint(r.Warnings)))
	fmt.Fprintf(&b, "  %-14s %s\n", "Safe", StyleGreen.Render(fmt.Sprint(r.SafeInteractions)))
	if len(r.SafetyIncidents) == 0 {
		return b.String()
	}

	rows := make([][]string, 0, len(r.SafetyIncidents))
	for _, inc := range r.SafetyIncidents {
		escalated := ""
		if inc.Escalated {
			escalated = StyleRed.Render("yes")
		}
		rows = append(rows, []string{
			inc.Timestamp.Format("2006-01-02 15:04"),
			SafetyIndicator(inc.Level),
			strings.Join(inc.Keywords, ", "),
			escalated,
		})
	}
	b.WriteString("\n" + RenderTable([]string{"WHEN", "LEVEL", "KEYWORDS", "ESCALATED"}, rows))
	return b.String()
}
