package intelligence

import (
	"fmt"
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
)

type ReportKind string

const (
	ReportWeekly  ReportKind = "weekly"
	ReportMonthly ReportKind = "monthly"
	ReportFull    ReportKind = "full"
)

// ParseReportKind validates a report kind name.
func ParseReportKind(s string) (ReportKind, error) {
	switch k := ReportKind(s); k {
	case ReportWeekly, ReportMonthly, ReportFull:
		return k, nil
	default:
		return "", fmt.Errorf("unknown report kind %q (expected weekly, monthly or full)", s)
	}
}

var reportWindows = map[ReportKind]time.Duration{
	ReportWeekly:  7 * 24 * time.Hour,
	ReportMonthly: 30 * 24 * time.Hour,
}

type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type PregnancyInfo struct {
	CurrentWeek     int      `json:"current_week"`
	Trimester       int      `json:"trimester"`
	DueDate         string   `json:"due_date"`
	LMP             string   `json:"lmp"`
	Allergies       []string `json:"allergies"`
	FoodPreferences []string `json:"food_preferences"`
}

type EmotionalSummary struct {
	TotalEntries       int                 `json:"total_entries"`
	MoodPattern        MoodPattern         `json:"mood_pattern"`
	NegativeStreak     int                 `json:"negative_streak"`
	MostCommonMood     string              `json:"most_common_mood"`
	MoodVolatility     Tier                `json:"mood_volatility"`
	ConcerningPatterns []ConcerningPattern `json:"concerning_patterns"`
	Insights           []string            `json:"insights"`
}

type PhysicalTrends struct {
	TotalSymptoms      int                 `json:"total_symptoms"`
	RepeatingSymptoms  []RepeatingSymptom  `json:"repeating_symptoms"`
	EmergencyCount     int                 `json:"emergency_count"`
	ConcerningPatterns []ConcerningPattern `json:"concerning_patterns"`
	Insights           []string            `json:"insights"`
}

type NutritionAnalysis struct {
	TotalQueries      int      `json:"total_queries"`
	UnsafeFoodQueries int      `json:"unsafe_food_queries"`
	AllergenWarnings  int      `json:"allergen_warnings"`
	QueryFrequency    Tier     `json:"query_frequency"`
	CommonQueries     []string `json:"common_queries"`
	Insights          []string `json:"insights"`
}

type TaskAdherenceSummary struct {
	TotalTasks     int          `json:"total_tasks"`
	CompletionRate int          `json:"completion_rate"`
	TaskAdherence  Adherence    `json:"task_adherence"`
	MissedTasks    []MissedTask `json:"missed_tasks"`
	Insights       []string     `json:"insights"`
}

// Report is the document produced for weekly, monthly and full reports.
// Period is nil for full reports; LearningData is set only for full reports.
type Report struct {
	ReportType        ReportKind           `json:"report_type"`
	GeneratedAt       time.Time            `json:"generated_at"`
	UserID            string               `json:"user_id"`
	Period            *ReportPeriod        `json:"period,omitempty"`
	PregnancyInfo     PregnancyInfo        `json:"pregnancy_info"`
	EmotionalSummary  EmotionalSummary     `json:"emotional_summary"`
	PhysicalTrends    PhysicalTrends       `json:"physical_trends"`
	NutritionAnalysis NutritionAnalysis    `json:"nutrition_analysis"`
	TaskAdherence     TaskAdherenceSummary `json:"task_adherence"`
	RiskEvaluation    RiskAssessment       `json:"risk_evaluation"`
	Recommendations   []Recommendation     `json:"recommendations"`
	LearningData      *LearningData        `json:"learning_data,omitempty"`
	AgentNotes        []string             `json:"agent_notes"`
}

func GenerateWeeklyReport(u domain.UserData, now time.Time) Report {
	return GenerateReport(ReportWeekly, u, now)
}

func GenerateMonthlyReport(u domain.UserData, now time.Time) Report {
	return GenerateReport(ReportMonthly, u, now)
}

func GenerateFullReport(u domain.UserData, now time.Time) Report {
	return GenerateReport(ReportFull, u, now)
}

// GenerateReport narrows the logs to the window of kind, if any, and runs
// trends, risk and personalization over what remains. An unknown kind is
// treated as full.
func GenerateReport(kind ReportKind, u domain.UserData, now time.Time) Report {
	data := u
	var period *ReportPeriod
	if window, ok := reportWindows[kind]; ok {
		since := now.Add(-window)
		data = windowUserData(u, since)
		period = &ReportPeriod{Start: since, End: now}
	} else {
		kind = ReportFull
	}

	trends := AnalyzeTrends(data, now)
	risk := CalculateRiskScore(data, trends, now)
	pers := CalculatePersonalizationScore(data, now)

	report := Report{
		ReportType:    kind,
		GeneratedAt:   now,
		UserID:        u.UserID,
		Period:        period,
		PregnancyInfo: pregnancyInfo(u.Profile),
		EmotionalSummary: EmotionalSummary{
			TotalEntries:       len(data.MoodLog),
			MoodPattern:        trends.Moods.MoodPattern,
			NegativeStreak:     trends.Moods.NegativeStreak,
			MostCommonMood:     trends.Moods.MostCommonMood,
			MoodVolatility:     trends.Moods.MoodVolatility,
			ConcerningPatterns: trends.Moods.ConcerningPatterns,
			Insights:           emotionalInsights(trends.Moods),
		},
		PhysicalTrends: PhysicalTrends{
			TotalSymptoms:      len(data.SymptomLog),
			RepeatingSymptoms:  trends.Symptoms.RepeatingSymptoms,
			EmergencyCount:     trends.Symptoms.EmergencyCount,
			ConcerningPatterns: trends.Symptoms.ConcerningPatterns,
			Insights:           physicalInsights(trends.Symptoms),
		},
		NutritionAnalysis: NutritionAnalysis{
			TotalQueries:      len(data.NutritionLog),
			UnsafeFoodQueries: trends.Nutrition.UnsafeFoodQueries,
			AllergenWarnings:  trends.Nutrition.AllergenWarnings,
			QueryFrequency:    trends.Nutrition.QueryFrequency,
			CommonQueries:     trends.Nutrition.CommonQueries,
			Insights:          nutritionInsights(trends.Nutrition),
		},
		TaskAdherence: TaskAdherenceSummary{
			TotalTasks:     len(data.TodoList),
			CompletionRate: trends.Tasks.CompletionRate,
			TaskAdherence:  trends.Tasks.TaskAdherence,
			MissedTasks:    trends.Tasks.MissedTasks,
			Insights:       taskInsights(trends.Tasks),
		},
		RiskEvaluation:  risk,
		Recommendations: pers.PersonalizedRecommendations,
		AgentNotes:      agentNotes(trends, risk),
	}
	if kind == ReportFull {
		report.LearningData = &pers.LearningData
	}
	return report
}

// windowUserData keeps entries stamped at or after since. The agent log and
// feedback are not windowed.
func windowUserData(u domain.UserData, since time.Time) domain.UserData {
	out := u
	out.MoodLog = filterSince(u.MoodLog, since, func(e domain.MoodEntry) time.Time { return e.Timestamp })
	out.SymptomLog = filterSince(u.SymptomLog, since, func(e domain.SymptomEntry) time.Time { return e.Timestamp })
	out.NutritionLog = filterSince(u.NutritionLog, since, func(e domain.NutritionEntry) time.Time { return e.Timestamp })
	out.TodoList = filterSince(u.TodoList, since, func(e domain.TodoEntry) time.Time { return e.Timestamp })
	return out
}

func filterSince[T any](entries []T, since time.Time, ts func(T) time.Time) []T {
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if !ts(e).Before(since) {
			out = append(out, e)
		}
	}
	return out
}

func pregnancyInfo(p domain.Profile) PregnancyInfo {
	return PregnancyInfo{
		CurrentWeek:     p.CurrentWeek,
		Trimester:       p.Trimester,
		DueDate:         p.DueDate,
		LMP:             p.LMP,
		Allergies:       nonNil(p.Allergies),
		FoodPreferences: nonNil(p.FoodPreferences),
	}
}

func emotionalInsights(m MoodTrends) []string {
	insights := []string{}
	switch m.MoodPattern {
	case MoodConsistentlyPositive:
		insights = append(insights, "🌟 You've been maintaining positive emotions - great job!")
	case MoodConsistentlyNegative:
		insights = append(insights, "💙 You've been experiencing challenging emotions. Consider talking to someone you trust.")
	}
	if m.NegativeStreak >= 3 {
		insights = append(insights, "🤗 Extended difficult periods are normal in pregnancy. Self-care is important.")
	}
	return insights
}

func physicalInsights(s SymptomTrends) []string {
	insights := []string{}
	if len(s.RepeatingSymptoms) > 0 {
		top := s.RepeatingSymptoms[0]
		insights = append(insights, fmt.Sprintf("📊 %s has been your most common symptom (%d times)", top.Symptom, top.Count))
	}
	if s.EmergencyCount == 0 {
		insights = append(insights, "✅ No emergency symptoms detected - that's reassuring!")
	}
	return insights
}

func nutritionInsights(n NutritionTrends) []string {
	insights := []string{}
	if n.UnsafeFoodQueries > 0 {
		insights = append(insights, fmt.Sprintf("⚠️ You've asked about %d foods to avoid - staying informed is great!", n.UnsafeFoodQueries))
	}
	if n.QueryFrequency == TierHigh {
		insights = append(insights, "🍎 You're very engaged with nutrition - excellent for baby's development!")
	}
	return insights
}

func taskInsights(t TaskTrends) []string {
	insights := []string{}
	if t.TotalTasks == 0 {
		return insights
	}
	switch {
	case t.CompletionRate >= 80:
		insights = append(insights, fmt.Sprintf("🎯 Excellent task completion rate: %d%%", t.CompletionRate))
	case t.CompletionRate < 50:
		insights = append(insights, fmt.Sprintf("📝 Task completion could improve: %d%%. Small steps count!", t.CompletionRate))
	}
	return insights
}

func agentNotes(trends TrendSummary, risk RiskAssessment) []string {
	var notes []string
	switch risk.RiskLevel {
	case domain.RiskCritical:
		notes = append(notes, "🚨 CRITICAL: Immediate healthcare provider consultation recommended")
	case domain.RiskWatch:
		notes = append(notes, "👀 WATCH: Monitor patterns closely, consider healthcare consultation")
	default:
		notes = append(notes, "✅ NORMAL: Continue current care routine")
	}
	if len(trends.Moods.ConcerningPatterns) > 0 {
		notes = append(notes, "💭 Emotional support may be beneficial")
	}
	if len(trends.Symptoms.RepeatingSymptoms) > 0 {
		notes = append(notes, "📋 Discuss recurring symptoms with healthcare provider")
	}
	return notes
}
