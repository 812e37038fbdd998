package intelligence

import (
	"strings"
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
)

// Action categories.
const (
	ActionEmergency         = "emergency"
	ActionRiskMitigation    = "risk_mitigation"
	ActionEmotionalSupport  = "emotional_support"
	ActionSymptomManagement = "symptom_management"
	ActionTaskImprovement   = "task_improvement"
	ActionPersonalized      = "personalized"
	ActionPreventive        = "preventive"
	ActionTrimesterSpecific = "trimester_specific"
)

// Base scores per candidate source.
const (
	weightEmergency       = 100
	weightRiskLevel       = 50
	weightTrendSeverity   = 30
	weightPersonalization = 20
	weightCompletionRate  = 15
)

const maxPlanActions = 10

type Action struct {
	Category      string         `json:"category"`
	ActionID      string         `json:"action_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Urgency       domain.Urgency `json:"urgency"`
	Score         int            `json:"score"`
	FinalPriority int            `json:"final_priority"`
}

type ActionPlan struct {
	Timestamp         time.Time `json:"timestamp"`
	UserID            string    `json:"user_id"`
	TotalActions      int       `json:"total_actions"`
	HighPriorityCount int       `json:"high_priority_count"`
	Actions           []Action  `json:"actions"`
}

// GenerateActionPlan ranks every candidate action by score and keeps the top
// ten. TotalActions and HighPriorityCount describe the full candidate list.
func GenerateActionPlan(u domain.UserData, trends TrendSummary, risk RiskAssessment, pers Personalization, now time.Time) ActionPlan {
	actions := []Action{}
	actions = append(actions, riskActions(risk)...)
	actions = append(actions, trendActions(trends)...)
	actions = append(actions, personalizedActions(pers)...)
	actions = append(actions, preventiveActions(u.Profile)...)

	stableSortDesc(actions, func(a Action) int { return a.Score })

	plan := ActionPlan{
		Timestamp:    now,
		UserID:       u.UserID,
		TotalActions: len(actions),
	}
	for i := range actions {
		actions[i].FinalPriority = i + 1
		if actions[i].Urgency == domain.UrgencyCritical || actions[i].Urgency == domain.UrgencyHigh {
			plan.HighPriorityCount++
		}
	}
	if len(actions) > maxPlanActions {
		actions = actions[:maxPlanActions]
	}
	plan.Actions = actions
	return plan
}

func riskActions(risk RiskAssessment) []Action {
	var out []Action
	if risk.RequiresEscalation {
		out = append(out, Action{
			Category:    ActionEmergency,
			ActionID:    "immediate_healthcare_consultation",
			Title:       "🚨 Contact Healthcare Provider",
			Description: risk.Recommendation,
			Urgency:     domain.UrgencyCritical,
			Score:       weightEmergency,
		})
	}
	if risk.RiskLevel != domain.RiskWatch {
		return out
	}
	for _, f := range risk.RiskFactors {
		out = append(out, Action{
			Category:    ActionRiskMitigation,
			ActionID:    "address_" + f.Category,
			Title:       "⚠️ Address " + strings.Replace(f.Category, "_", " ", 1),
			Description: MitigationAdvice(f.Category),
			Urgency:     domain.UrgencyHigh,
			Score:       weightRiskLevel,
		})
	}
	return out
}

func trendActions(trends TrendSummary) []Action {
	var out []Action
	if trends.Moods.MoodPattern == MoodConsistentlyNegative {
		out = append(out, Action{
			Category:    ActionEmotionalSupport,
			ActionID:    "mood_support",
			Title:       "💙 Emotional Support",
			Description: "Consider talking to someone you trust or practicing relaxation techniques",
			Urgency:     domain.UrgencyMedium,
			Score:       weightTrendSeverity + 10,
		})
	}
	if trends.Moods.NegativeStreak >= 3 {
		out = append(out, Action{
			Category:    ActionEmotionalSupport,
			ActionID:    "break_negative_streak",
			Title:       "🌈 Break Negative Pattern",
			Description: "Try a mood-lifting activity: gentle walk, music, or calling a friend",
			Urgency:     domain.UrgencyMedium,
			Score:       weightTrendSeverity + 5,
		})
	}
	if len(trends.Symptoms.RepeatingSymptoms) > 0 {
		top := trends.Symptoms.RepeatingSymptoms[0]
		urgency := domain.UrgencyMedium
		if top.Severity == TierHigh {
			urgency = domain.UrgencyHigh
		}
		out = append(out, Action{
			Category:    ActionSymptomManagement,
			ActionID:    "address_recurring_symptom",
			Title:       "🩺 Address " + top.Symptom,
			Description: SymptomAdvice(top.Symptom),
			Urgency:     urgency,
			Score:       weightTrendSeverity + top.Count*2,
		})
	}
	if trends.Tasks.CompletionRate < 50 {
		out = append(out, Action{
			Category:    ActionTaskImprovement,
			ActionID:    "improve_task_completion",
			Title:       "📝 Improve Task Completion",
			Description: "Start with 1-2 small, achievable tasks daily",
			Urgency:     domain.UrgencyMedium,
			Score:       weightCompletionRate + (50 - trends.Tasks.CompletionRate),
		})
	}
	return out
}

func personalizedActions(pers Personalization) []Action {
	var out []Action
	for _, rec := range pers.PersonalizedRecommendations {
		bonus := 5
		switch rec.Priority {
		case domain.PriorityHigh:
			bonus = 15
		case domain.PriorityMedium:
			bonus = 10
		}
		urgency := domain.UrgencyLow
		if rec.Priority == domain.PriorityHigh {
			urgency = domain.UrgencyMedium
		}
		out = append(out, Action{
			Category:    ActionPersonalized,
			ActionID:    "personalized_" + rec.Category,
			Title:       "⭐ " + rec.Suggestion,
			Description: rec.Reason,
			Urgency:     urgency,
			Score:       weightPersonalization + bonus,
		})
	}
	return out
}

var trimesterActions = map[int]Action{
	1: {
		ActionID:    "first_trimester_care",
		Title:       "🌱 First Trimester Care",
		Description: "Focus on folic acid, managing nausea, and regular checkups",
	},
	2: {
		ActionID:    "second_trimester_care",
		Title:       "🌿 Second Trimester Care",
		Description: "Maintain nutrition, gentle exercise, and monitor baby movements",
	},
	3: {
		ActionID:    "third_trimester_care",
		Title:       "🌸 Third Trimester Care",
		Description: "Prepare for birth, monitor contractions, and rest frequently",
	},
}

func preventiveActions(profile domain.Profile) []Action {
	out := []Action{
		{
			Category:    ActionPreventive,
			ActionID:    "hydration_reminder",
			Title:       "💧 Stay Hydrated",
			Description: "Drink 8-10 glasses of water daily for you and baby",
			Urgency:     domain.UrgencyLow,
			Score:       10,
		},
		{
			Category:    ActionPreventive,
			ActionID:    "vitamin_reminder",
			Title:       "💊 Take Prenatal Vitamins",
			Description: "Essential nutrients for baby's development",
			Urgency:     domain.UrgencyLow,
			Score:       12,
		},
		{
			Category:    ActionPreventive,
			ActionID:    "rest_reminder",
			Title:       "😴 Get Adequate Rest",
			Description: "Aim for 7-9 hours of sleep and rest when tired",
			Urgency:     domain.UrgencyLow,
			Score:       8,
		},
	}
	if a, ok := trimesterActions[profile.Trimester]; ok {
		a.Category = ActionTrimesterSpecific
		a.Urgency = domain.UrgencyLow
		a.Score = 15
		out = append(out, a)
	}
	return out
}

// TopPriorityActions returns the first n actions of a plan.
func TopPriorityActions(plan ActionPlan, n int) []Action {
	if n > len(plan.Actions) {
		n = len(plan.Actions)
	}
	if n < 0 {
		n = 0
	}
	return plan.Actions[:n]
}

func ActionsByCategory(plan ActionPlan, category string) []Action {
	out := []Action{}
	for _, a := range plan.Actions {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}
