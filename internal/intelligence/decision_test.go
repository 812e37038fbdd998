package intelligence

import (
	"fmt"
	"testing"
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planFor(u domain.UserData) ActionPlan {
	trends := AnalyzeTrends(u, refNow)
	risk := CalculateRiskScore(u, trends, refNow)
	pers := CalculatePersonalizationScore(u, refNow)
	return GenerateActionPlan(u, trends, risk, pers, refNow)
}

func actionIDs(actions []Action) []string {
	ids := make([]string, 0, len(actions))
	for _, a := range actions {
		ids = append(ids, a.ActionID)
	}
	return ids
}

func TestGenerateActionPlan_EmptyUserGetsTaskAndPreventive(t *testing.T) {
	plan := planFor(domain.UserData{UserID: "x"})

	assert.Equal(t, "x", plan.UserID)
	assert.Equal(t, 4, plan.TotalActions)
	assert.Zero(t, plan.HighPriorityCount)
	assert.Equal(t, []string{"improve_task_completion", "vitamin_reminder", "hydration_reminder", "rest_reminder"}, actionIDs(plan.Actions))
	assert.Equal(t, 65, plan.Actions[0].Score, "no tasks counts as a 0% completion rate")
	assert.Equal(t, domain.UrgencyMedium, plan.Actions[0].Urgency)
	for i, a := range plan.Actions {
		assert.Equal(t, i+1, a.FinalPriority)
	}
}

func TestGenerateActionPlan_TrimesterAction(t *testing.T) {
	tests := []struct {
		trimester int
		want      string
	}{
		{1, "first_trimester_care"},
		{2, "second_trimester_care"},
		{3, "third_trimester_care"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			plan := planFor(domain.UserData{Profile: domain.Profile{Trimester: tt.trimester}})
			trimester := ActionsByCategory(plan, ActionTrimesterSpecific)
			require.Len(t, trimester, 1)
			assert.Equal(t, tt.want, trimester[0].ActionID)
			assert.Equal(t, 15, trimester[0].Score)
			assert.Equal(t, 2, trimester[0].FinalPriority)
		})
	}

	unset := planFor(domain.UserData{Profile: domain.Profile{Trimester: 4}})
	assert.Empty(t, ActionsByCategory(unset, ActionTrimesterSpecific))
}

func TestGenerateActionPlan_EscalationFirst(t *testing.T) {
	u := domain.UserData{
		UserID:     "u-1",
		SymptomLog: []domain.SymptomEntry{symptomAt("water broke", ago(time.Hour))},
	}

	plan := planFor(u)

	require.NotEmpty(t, plan.Actions)
	first := plan.Actions[0]
	assert.Equal(t, ActionEmergency, first.Category)
	assert.Equal(t, domain.UrgencyCritical, first.Urgency)
	assert.Equal(t, 100, first.Score)
	assert.Empty(t, ActionsByCategory(plan, ActionRiskMitigation), "critical level adds no per-factor actions")
	assert.Equal(t, 1, plan.HighPriorityCount)
}

func TestGenerateActionPlan_SortStableAndTruncated(t *testing.T) {
	risk := RiskAssessment{
		RiskLevel: domain.RiskWatch,
		RiskFactors: []RiskFactor{
			{Category: CategoryMoodPatterns, Score: 10},
			{Category: CategoryNutrition, Score: 10},
			{Category: "made_up_category", Score: 5},
		},
	}
	var recs []Recommendation
	for i := range 6 {
		recs = append(recs, Recommendation{
			Category:   RecommendEmotional,
			Suggestion: fmt.Sprintf("rec-%d", i),
			Priority:   domain.PriorityHigh,
			Reason:     "Previously helped improve mood",
		})
	}
	u := domain.UserData{
		UserID:   "u-1",
		Profile:  domain.Profile{Trimester: 1},
		TodoList: []domain.TodoEntry{{ID: "t-1", Task: "walk", Completed: true}},
	}

	plan := GenerateActionPlan(u, AnalyzeTrends(u, refNow), risk, Personalization{PersonalizedRecommendations: recs}, refNow)

	assert.Equal(t, 13, plan.TotalActions)
	assert.Equal(t, 3, plan.HighPriorityCount)
	require.Len(t, plan.Actions, 10)

	for i, a := range plan.Actions {
		assert.Equal(t, i+1, a.FinalPriority)
		if i > 0 {
			assert.GreaterOrEqual(t, plan.Actions[i-1].Score, a.Score)
		}
	}
	assert.Equal(t, "⚠️ Address mood patterns", plan.Actions[0].Title)
	assert.Equal(t, "⚠️ Address nutrition patterns", plan.Actions[1].Title)
	assert.Equal(t, "⚠️ Address made up_category", plan.Actions[2].Title)
	assert.Equal(t, defaultMitigationAdvice, plan.Actions[2].Description)
	for i := range 6 {
		assert.Equal(t, fmt.Sprintf("⭐ rec-%d", i), plan.Actions[3+i].Title)
		assert.Equal(t, 35, plan.Actions[3+i].Score)
		assert.Equal(t, domain.UrgencyMedium, plan.Actions[3+i].Urgency)
	}
	assert.Equal(t, "first_trimester_care", plan.Actions[9].ActionID)
}

func TestGenerateActionPlan_TrendActions(t *testing.T) {
	trends := TrendSummary{
		Moods: MoodTrends{MoodPattern: MoodConsistentlyNegative, NegativeStreak: 4},
		Symptoms: SymptomTrends{RepeatingSymptoms: []RepeatingSymptom{
			{Symptom: "nausea", Count: 5, Severity: TierHigh},
			{Symptom: "fatigue", Count: 6, Severity: TierHigh},
		}},
		Tasks: TaskTrends{TotalTasks: 4, CompletionRate: 25},
	}

	plan := GenerateActionPlan(domain.UserData{}, trends, RiskAssessment{RiskLevel: domain.RiskNormal}, Personalization{}, refNow)

	assert.Equal(t, []string{
		"mood_support", "address_recurring_symptom", "improve_task_completion",
		"break_negative_streak", "vitamin_reminder", "hydration_reminder", "rest_reminder",
	}, actionIDs(plan.Actions))

	symptom := ActionsByCategory(plan, ActionSymptomManagement)
	require.Len(t, symptom, 1)
	assert.Equal(t, "🩺 Address nausea", symptom[0].Title)
	assert.Equal(t, 40, symptom[0].Score)
	assert.Equal(t, domain.UrgencyHigh, symptom[0].Urgency)
	assert.Equal(t, "Try ginger tea, small frequent meals, and crackers before getting up", symptom[0].Description)

	task := ActionsByCategory(plan, ActionTaskImprovement)
	require.Len(t, task, 1)
	assert.Equal(t, 40, task[0].Score)
}

func TestGenerateActionPlan_TaskCompletionThreshold(t *testing.T) {
	tests := []struct {
		name  string
		tasks TaskTrends
		score int
	}{
		{"no tasks", TaskTrends{}, 65},
		{"low rate", TaskTrends{TotalTasks: 10, CompletionRate: 30}, 35},
		{"just below", TaskTrends{TotalTasks: 10, CompletionRate: 49}, 16},
		{"at threshold", TaskTrends{TotalTasks: 2, CompletionRate: 50}, 0},
		{"high rate", TaskTrends{TotalTasks: 4, CompletionRate: 100}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := GenerateActionPlan(domain.UserData{}, TrendSummary{Tasks: tt.tasks},
				RiskAssessment{RiskLevel: domain.RiskNormal}, Personalization{}, refNow)

			task := ActionsByCategory(plan, ActionTaskImprovement)
			if tt.score == 0 {
				assert.Empty(t, task)
				return
			}
			require.Len(t, task, 1)
			assert.Equal(t, tt.score, task[0].Score)
		})
	}
}

func TestTopPriorityActions(t *testing.T) {
	plan := planFor(domain.UserData{Profile: domain.Profile{Trimester: 2}})

	top := TopPriorityActions(plan, 2)
	assert.Equal(t, []string{"improve_task_completion", "second_trimester_care"}, actionIDs(top))
	assert.Len(t, TopPriorityActions(plan, 50), len(plan.Actions))
	assert.Empty(t, TopPriorityActions(plan, -1))
}
