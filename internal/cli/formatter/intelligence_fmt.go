package formatter

import (
	"fmt"
	"strings"

	"github.com/dpp0007/HackHerth/internal/intelligence"
)

// FormatAnalysis renders the trend, risk and personalization summary.
func FormatAnalysis(trends intelligence.TrendSummary, risk intelligence.RiskAssessment, pers intelligence.Personalization) string {
	var b strings.Builder
	b.WriteString(formatRisk(risk))
	b.WriteString("\n" + Header("Trends") + "\n")
	fmt.Fprintf(&b, "  %-14s %s (streak %d negative, %d positive)\n", "Mood",
		string(trends.Moods.MoodPattern), trends.Moods.NegativeStreak, trends.Moods.PositiveStreak)
	fmt.Fprintf(&b, "  %-14s %d repeating, %d emergencies\n", "Symptoms",
		len(trends.Symptoms.RepeatingSymptoms), trends.Symptoms.EmergencyCount)
	if trends.Tasks.TotalTasks > 0 {
		fmt.Fprintf(&b, "  %-14s %s %s\n", "Tasks", RenderRate(trends.Tasks.CompletionRate, 10), Dim(string(trends.Tasks.TaskAdherence)))
	} else {
		fmt.Fprintf(&b, "  %-14s %s\n", "Tasks", Dim("none logged"))
	}
	fmt.Fprintf(&b, "  %-14s %d unsafe, %d allergen warnings\n", "Nutrition",
		trends.Nutrition.UnsafeFoodQueries, trends.Nutrition.AllergenWarnings)

	var patterns []string
	for _, group := range [][]intelligence.ConcerningPattern{
		trends.Symptoms.ConcerningPatterns,
		trends.Moods.ConcerningPatterns,
		trends.Tasks.ConcerningPatterns,
		trends.Nutrition.ConcerningPatterns,
	} {
		for _, p := range group {
			patterns = append(patterns, StyleYellow.Render(p.Message))
		}
	}
	b.WriteString("\n" + Header("Concerning patterns") + "\n")
	b.WriteString(Bullets(patterns, "none"))

	b.WriteString("\n" + Header("Personalized") + "\n")
	fmt.Fprintf(&b, "  Level: %s\n", string(pers.PersonalizationLevel))
	b.WriteString(formatRecommendations(pers.PersonalizedRecommendations))
	return b.String()
}

func formatRisk(risk intelligence.RiskAssessment) string {
	var b strings.Builder
	b.WriteString(Header("Risk") + "\n")
	fmt.Fprintf(&b, "  %s  score %d\n", RiskIndicator(risk.RiskLevel), risk.TotalScore)
	fmt.Fprintf(&b, "  %s\n", risk.Recommendation)
	for _, f := range risk.RiskFactors {
		fmt.Fprintf(&b, "  %s %-22s %3d\n", RiskIndicator(f.Severity), f.Category, f.Score)
	}
	return b.String()
}

func formatRecommendations(recs []intelligence.Recommendation) string {
	lines := make([]string, 0, len(recs))
	for _, r := range recs {
		lines = append(lines, fmt.Sprintf("%s %s", PriorityStyle(r.Priority).Render("["+string(r.Priority)+"]"), r.Suggestion))
	}
	return Bullets(lines, "not enough history yet")
}

// FormatActionPlan renders ranked actions.
func FormatActionPlan(plan intelligence.ActionPlan) string {
	var b strings.Builder
	b.WriteString(Header("Action plan") + "\n")
	fmt.Fprintf(&b, "  %d actions, %d high priority\n\n", plan.TotalActions, plan.HighPriorityCount)
	if len(plan.Actions) == 0 {
		b.WriteString("  " + Dim("Nothing to do right now.") + "\n")
		return b.String()
	}
	for _, a := range plan.Actions {
		style := UrgencyStyle(a.Urgency)
		fmt.Fprintf(&b, "  %2d. %s %s\n", a.FinalPriority, style.Render(strings.ToUpper(string(a.Urgency))), Bold(a.Title))
		fmt.Fprintf(&b, "      %s\n", Dim(a.Description))
	}
	return b.String()
}

// FormatReport renders a weekly, monthly or full report.
func FormatReport(r intelligence.Report) string {
	var b strings.Builder
	title := string(r.ReportType) + " report"
	if r.Period != nil {
		title += fmt.Sprintf(" %s → %s", r.Period.Start.Format("Jan 2"), r.Period.End.Format("Jan 2, 2006"))
	}
	b.WriteString(Header(title) + "\n")

	info := r.PregnancyInfo
	if info.CurrentWeek > 0 {
		fmt.Fprintf(&b, "  Week %d, trimester %d, due %s\n", info.CurrentWeek, info.Trimester, orDash(info.DueDate))
	}

	b.WriteString("\n" + Bold("Emotional") + Dim(fmt.Sprintf(" (%d entries)", r.EmotionalSummary.TotalEntries)) + "\n")
	b.WriteString(Bullets(r.EmotionalSummary.Insights, "no insights"))
	b.WriteString("\n" + Bold("Physical") + Dim(fmt.Sprintf(" (%d symptoms)", r.PhysicalTrends.TotalSymptoms)) + "\n")
	b.WriteString(Bullets(r.PhysicalTrends.Insights, "no insights"))
	b.WriteString("\n" + Bold("Nutrition") + Dim(fmt.Sprintf(" (%d queries)", r.NutritionAnalysis.TotalQueries)) + "\n")
	b.WriteString(Bullets(r.NutritionAnalysis.Insights, "no insights"))
	b.WriteString("\n" + Bold("Tasks") + Dim(fmt.Sprintf(" (%d tasks)", r.TaskAdherence.TotalTasks)) + "\n")
	b.WriteString(Bullets(r.TaskAdherence.Insights, "no insights"))

	b.WriteString("\n" + formatRisk(r.RiskEvaluation))
	b.WriteString("\n" + Header("Recommendations") + "\n")
	b.WriteString(formatRecommendations(r.Recommendations))
	b.WriteString("\n" + Header("Notes") + "\n")
	b.WriteString(Bullets(r.AgentNotes, "none"))
	return b.String()
}

// FormatSummary renders the count-based journal summary.
func FormatSummary(s intelligence.JournalSummary) string {
	var b strings.Builder
	b.WriteString(Header(string(s.ReportType)+" summary") + "\n")
	if s.PregnancyInfo.CurrentWeek > 0 {
		fmt.Fprintf(&b, "  Week %d, trimester %d, due %s\n", s.PregnancyInfo.CurrentWeek, s.PregnancyInfo.Trimester, orDash(s.PregnancyInfo.DueDate))
	}
	fmt.Fprintf(&b, "  %-14s %d (most common %s)\n", "Moods", s.MoodAnalysis.Entries, orDashPtr(s.MoodAnalysis.MostCommon))
	fmt.Fprintf(&b, "  %-14s %d (most common %s, %d emergencies)\n", "Symptoms",
		s.SymptomAnalysis.Entries, orDashPtr(s.SymptomAnalysis.MostCommon), s.SymptomAnalysis.EmergencyCount)
	fmt.Fprintf(&b, "  %-14s %d (%d unsafe, %d allergen warnings)\n", "Nutrition",
		s.NutritionAnalysis.Queries, s.NutritionAnalysis.UnsafeFoodsChecked, s.NutritionAnalysis.AllergenWarnings)
	if s.TodoAnalysis.Total > 0 {
		fmt.Fprintf(&b, "  %-14s %s %d pending\n", "Tasks", RenderRate(s.TodoAnalysis.CompletionRate, 10), s.TodoAnalysis.Pending)
	} else {
		fmt.Fprintf(&b, "  %-14s %s\n", "Tasks", Dim("none logged"))
	}

	if len(s.MoodAnalysis.RecentMoods) > 0 {
		rows := make([][]string, 0, len(s.MoodAnalysis.RecentMoods))
		for _, m := range s.MoodAnalysis.RecentMoods {
			rows = append(rows, []string{m.Date, m.Mood})
		}
		b.WriteString("\n" + RenderTable([]string{"DATE", "MOOD"}, rows))
	}
	if len(s.SymptomAnalysis.RecentSymptoms) > 0 {
		rows := make([][]string, 0, len(s.SymptomAnalysis.RecentSymptoms))
		for _, sym := range s.SymptomAnalysis.RecentSymptoms {
			rows = append(rows, []string{sym.Date, sym.Symptom, string(sym.Severity)})
		}
		b.WriteString("\n" + RenderTable([]string{"DATE", "SYMPTOM", "SEVERITY"}, rows))
	}
	return b.String()
}

func orDashPtr(s *string) string {
	if s == nil {
		return orDash("")
	}
	return orDash(*s)
}
