package formatter

import (
	"testing"
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
	"github.com/dpp0007/HackHerth/internal/intelligence"
	"github.com/stretchr/testify/assert"
)

var fmtNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func TestFormatProfile_ShowsDatesAndPlaceholders(t *testing.T) {
	out := FormatProfile("user-1", &domain.Profile{
		CurrentWeek: 11,
		Trimester:   1,
		LMP:         "2025-01-04",
		DueDate:     "2025-10-11",
		Allergies:   []string{"peanuts", "shellfish"},
	})
	assert.Contains(t, out, "user-1")
	assert.Contains(t, out, "11")
	assert.Contains(t, out, "2025-10-11")
	assert.Contains(t, out, "peanuts, shellfish")
	assert.Contains(t, out, "--")

	empty := FormatProfile("user-2", &domain.Profile{})
	assert.Contains(t, empty, "not set")
}

func TestFormatLogged(t *testing.T) {
	out := FormatLogged("mood", "abcdef0123456789", 12)
	assert.Contains(t, out, "Logged mood abcdef01")
	assert.Contains(t, out, "week 12")
	assert.NotContains(t, FormatLogged("mood", "abc", 0), "week")
}

func TestFormatTodos(t *testing.T) {
	assert.Contains(t, FormatTodos(nil, fmtNow), "No tasks yet.")

	out := FormatTodos([]domain.TodoEntry{
		{ID: "todo-aaaa-1", Task: "Book ultrasound", Priority: domain.PriorityHigh, DueDate: "2025-03-15"},
		{ID: "todo-bbbb-2", Task: "Take vitamins", Priority: domain.PriorityLow, DueDate: "2025-03-10", Completed: true},
	}, fmtNow)
	assert.Contains(t, out, "Book ultrasound")
	assert.Contains(t, out, "Take vitamins")
	assert.Contains(t, out, "Today")
	assert.Contains(t, out, "5d ago")
	assert.Contains(t, out, "of 2 done")
}

func TestFormatAnalysis_IncludesRiskAndPatterns(t *testing.T) {
	trends := intelligence.TrendSummary{
		Moods: intelligence.MoodTrends{
			MoodPattern:    intelligence.MoodConsistentlyNegative,
			NegativeStreak: 4,
			ConcerningPatterns: []intelligence.ConcerningPattern{
				{Pattern: "persistent_negative_mood", Message: "Negative mood for 4 consecutive entries"},
			},
		},
		Tasks: intelligence.TaskTrends{TotalTasks: 4, CompletionRate: 25, TaskAdherence: intelligence.AdherencePoor},
	}
	risk := intelligence.RiskAssessment{
		RiskLevel:      domain.RiskWatch,
		TotalScore:     35,
		Recommendation: "Monitor closely",
		RiskFactors: []intelligence.RiskFactor{
			{Category: intelligence.CategoryTaskAdherence, Score: 15, Severity: domain.RiskWatch},
		},
	}
	pers := intelligence.Personalization{
		PersonalizationLevel: intelligence.TierLow,
		PersonalizedRecommendations: []intelligence.Recommendation{
			{Category: "nutrition", Suggestion: "Try iron-rich meals", Priority: domain.PriorityMedium},
		},
	}

	out := FormatAnalysis(trends, risk, pers)
	assert.Contains(t, out, "WATCH")
	assert.Contains(t, out, "score 35")
	assert.Contains(t, out, "Monitor closely")
	assert.Contains(t, out, "task_adherence")
	assert.Contains(t, out, "consistently_negative")
	assert.Contains(t, out, "25%")
	assert.Contains(t, out, "Negative mood for 4 consecutive entries")
	assert.Contains(t, out, "Try iron-rich meals")
}

func TestFormatAnalysis_EmptyHistory(t *testing.T) {
	out := FormatAnalysis(intelligence.TrendSummary{}, intelligence.RiskAssessment{RiskLevel: domain.RiskNormal}, intelligence.Personalization{})
	assert.Contains(t, out, "NORMAL")
	assert.Contains(t, out, "none logged")
	assert.Contains(t, out, "not enough history yet")
}

func TestFormatActionPlan(t *testing.T) {
	assert.Contains(t, FormatActionPlan(intelligence.ActionPlan{}), "Nothing to do right now.")

	out := FormatActionPlan(intelligence.ActionPlan{
		TotalActions:      2,
		HighPriorityCount: 1,
		Actions: []intelligence.Action{
			{Title: "Contact your provider", Description: "Severe symptoms logged", Urgency: domain.UrgencyCritical, FinalPriority: 1},
			{Title: "Hydrate", Description: "Drink water", Urgency: domain.UrgencyLow, FinalPriority: 2},
		},
	})
	assert.Contains(t, out, "2 actions, 1 high priority")
	assert.Contains(t, out, "CRITICAL")
	assert.Contains(t, out, "Contact your provider")
	assert.Contains(t, out, "Drink water")
}

func TestFormatReport_WeeklyHasPeriod(t *testing.T) {
	out := FormatReport(intelligence.Report{
		ReportType: intelligence.ReportWeekly,
		Period:     &intelligence.ReportPeriod{Start: fmtNow.AddDate(0, 0, -7), End: fmtNow},
		PregnancyInfo: intelligence.PregnancyInfo{
			CurrentWeek: 20,
			Trimester:   2,
			DueDate:     "2025-07-26",
		},
		EmotionalSummary: intelligence.EmotionalSummary{TotalEntries: 3, Insights: []string{"Mood is stable"}},
		RiskEvaluation:   intelligence.RiskAssessment{RiskLevel: domain.RiskNormal},
		AgentNotes:       []string{"Week 20 check-in"},
	})
	assert.Contains(t, out, "WEEKLY REPORT")
	assert.Contains(t, out, "MAR 15, 2025")
	assert.Contains(t, out, "Week 20, trimester 2")
	assert.Contains(t, out, "3 entries")
	assert.Contains(t, out, "Mood is stable")
	assert.Contains(t, out, "Week 20 check-in")
}

func TestFormatReport_FullHasNoPeriod(t *testing.T) {
	out := FormatReport(intelligence.Report{ReportType: intelligence.ReportFull})
	assert.Contains(t, out, "FULL REPORT")
	assert.NotContains(t, out, "→")
}

func TestFormatSummary(t *testing.T) {
	mood := "anxious"
	out := FormatSummary(intelligence.JournalSummary{
		ReportType:    intelligence.SummaryWeekly,
		PregnancyInfo: intelligence.SummaryPregnancyInfo{CurrentWeek: 12, Trimester: 1},
		MoodAnalysis: intelligence.MoodSummary{
			Entries:     2,
			MostCommon:  &mood,
			RecentMoods: []intelligence.RecentMood{{Date: "2025-03-14", Mood: "anxious"}},
		},
		SymptomAnalysis: intelligence.SymptomSummary{
			RecentSymptoms: []intelligence.RecentSymptom{{Date: "2025-03-15", Symptom: "nausea", Severity: domain.SeverityMild}},
		},
		TodoAnalysis: intelligence.TodoSummary{Total: 2, Completed: 1, Pending: 1, CompletionRate: 50},
	})
	assert.Contains(t, out, "WEEKLY SUMMARY")
	assert.Contains(t, out, "Week 12, trimester 1")
	assert.Contains(t, out, "most common anxious")
	assert.Contains(t, out, "1 pending")
	assert.Contains(t, out, "2025-03-14")
	assert.Contains(t, out, "nausea")

	empty := FormatSummary(intelligence.JournalSummary{ReportType: intelligence.SummaryOverall})
	assert.Contains(t, empty, "OVERALL SUMMARY")
	assert.Contains(t, empty, "none logged")
	assert.NotContains(t, empty, "DATE")
}

func TestFormatSafetyCheck(t *testing.T) {
	a := intelligence.SafetyAnalysis{
		SafetyLevel:         domain.SafetyCritical,
		RequiresEscalation:  true,
		DetectedKeywords:    []string{"bleeding"},
		EscalationMessage:   "Seek care now",
		RecommendedResponse: intelligence.SafeResponse{Template: "Please contact emergency services."},
	}
	rs := &intelligence.ResponseSafety{
		UnsafePatterns:  []string{"you have"},
		SafeAlternative: "It may help to speak with your provider.",
	}

	out := FormatSafetyCheck(a, rs)
	assert.Contains(t, out, "CRITICAL")
	assert.Contains(t, out, "bleeding")
	assert.Contains(t, out, "Seek care now")
	assert.Contains(t, out, "Please contact emergency services.")
	assert.Contains(t, out, "you have")
	assert.Contains(t, out, "speak with your provider")

	safe := FormatSafetyCheck(intelligence.SafetyAnalysis{SafetyLevel: domain.SafetySafe}, &intelligence.ResponseSafety{IsSafe: true})
	assert.Contains(t, safe, "response is safe")
	assert.NotContains(t, FormatSafetyCheck(a, nil), "RESPONSE SCREENING")
}

func TestFormatValidation(t *testing.T) {
	out := FormatValidation(intelligence.ValidationResult{FinalResponse: "Stay hydrated.", RequiresEscalation: true})
	assert.Contains(t, out, "replaced")
	assert.Contains(t, out, "escalation required")
	assert.Contains(t, out, "Stay hydrated.")

	assert.Contains(t, FormatValidation(intelligence.ValidationResult{IsValid: true}), "valid")
}

func TestFormatSafetyReport(t *testing.T) {
	empty := FormatSafetyReport(intelligence.SafetyReport{TotalInteractions: 3, SafeInteractions: 3})
	assert.Contains(t, empty, "Interactions")
	assert.NotContains(t, empty, "ESCALATED")

	out := FormatSafetyReport(intelligence.SafetyReport{
		TotalInteractions: 2,
		Escalations:       1,
		SafetyIncidents: []intelligence.SafetyIncident{
			{Timestamp: fmtNow, Level: domain.SafetyCritical, Keywords: []string{"severe pain"}, Escalated: true},
		},
	})
	assert.Contains(t, out, "2025-03-15 12:00")
	assert.Contains(t, out, "severe pain")
	assert.Contains(t, out, "yes")
}
