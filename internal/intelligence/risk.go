package intelligence

import (
	"strings"
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
)

// Risk factor categories.
const (
	CategoryEmergencySymptoms = "emergency_symptoms"
	CategorySymptomPatterns   = "symptom_patterns"
	CategoryMoodPatterns      = "mood_patterns"
	CategoryTaskAdherence     = "task_adherence"
	CategoryNutrition         = "nutrition_patterns"
)

// Risk ladder cutoffs. A score equal to a cutoff belongs to the higher tier.
const (
	criticalScore = 50
	watchScore    = 25
)

const (
	recommendCritical = "⚠️ Please contact your healthcare provider immediately"
	recommendWatch    = "Monitor closely and consider consulting healthcare provider"
	recommendNormal   = "Continue current care routine"
)

// RiskDetail is one supporting record of a risk factor. Only the fields
// relevant to the factor are non-zero.
type RiskDetail struct {
	Symptom        string    `json:"symptom"`
	Timestamp      time.Time `json:"timestamp"`
	Pattern        string    `json:"pattern"`
	Count          int       `json:"count"`
	Streak         int       `json:"streak"`
	CompletionRate int       `json:"completion_rate"`
	Reason         string    `json:"reason"`
}

type RiskFactor struct {
	Category string           `json:"category"`
	Score    int              `json:"score"`
	Severity domain.RiskLevel `json:"severity"`
	Details  []RiskDetail     `json:"details"`
}

type RiskAssessment struct {
	Timestamp          time.Time        `json:"timestamp"`
	RiskLevel          domain.RiskLevel `json:"risk_level"`
	TotalScore         int              `json:"total_score"`
	RiskFactors        []RiskFactor     `json:"risk_factors"`
	Recommendation     string           `json:"recommendation"`
	RequiresEscalation bool             `json:"requires_escalation"`
}

func newRiskFactor(category string) RiskFactor {
	return RiskFactor{
		Category: category,
		Severity: domain.RiskNormal,
		Details:  []RiskDetail{},
	}
}

// CalculateRiskScore sums five independent assessments. Only factors with a
// non-zero score are listed, but every score counts toward the total.
func CalculateRiskScore(u domain.UserData, trends TrendSummary, now time.Time) RiskAssessment {
	assessment := RiskAssessment{
		Timestamp:   now,
		RiskFactors: []RiskFactor{},
	}

	factors := []RiskFactor{
		AssessEmergencyRisk(u.SymptomLog, now),
		AssessSymptomRisk(trends.Symptoms),
		AssessMoodRisk(trends.Moods),
		AssessTaskRisk(trends.Tasks),
		AssessNutritionRisk(trends.Nutrition),
	}
	for _, f := range factors {
		assessment.TotalScore += f.Score
		if f.Score > 0 {
			assessment.RiskFactors = append(assessment.RiskFactors, f)
		}
	}

	assessment.RiskLevel = RiskLevelForScore(assessment.TotalScore)
	switch assessment.RiskLevel {
	case domain.RiskCritical:
		assessment.Recommendation = recommendCritical
		assessment.RequiresEscalation = true
	case domain.RiskWatch:
		assessment.Recommendation = recommendWatch
	default:
		assessment.Recommendation = recommendNormal
	}
	return assessment
}

// RiskLevelForScore maps a total score onto the normal/watch/critical ladder.
func RiskLevelForScore(score int) domain.RiskLevel {
	switch {
	case score >= criticalScore:
		return domain.RiskCritical
	case score >= watchScore:
		return domain.RiskWatch
	default:
		return domain.RiskNormal
	}
}

// AssessEmergencyRisk adds 50 points for every symptom logged in the last
// 24 hours that is flagged or matches the emergency vocabulary. Matches are
// not capped.
func AssessEmergencyRisk(log []domain.SymptomEntry, now time.Time) RiskFactor {
	risk := newRiskFactor(CategoryEmergencySymptoms)
	for _, entry := range log {
		if !within(entry.Timestamp, now, emergencyWindow) {
			continue
		}
		if !entry.IsEmergency && !containsAny(strings.ToLower(entry.Symptom), emergencyKeywords) {
			continue
		}
		risk.Score += 50
		risk.Severity = domain.RiskCritical
		risk.Details = append(risk.Details, RiskDetail{
			Symptom:   entry.Symptom,
			Timestamp: entry.Timestamp,
			Reason:    "Emergency keyword detected",
		})
	}
	return risk
}

func AssessSymptomRisk(trends SymptomTrends) RiskFactor {
	risk := newRiskFactor(CategorySymptomPatterns)
	for _, s := range trends.RepeatingSymptoms {
		switch {
		case s.Count >= 5:
			risk.Score += 15
			risk.Severity = domain.RiskWatch
			risk.Details = append(risk.Details, RiskDetail{
				Symptom: s.Symptom,
				Count:   s.Count,
				Reason:  "Symptom repeated 5+ times",
			})
		case s.Count >= 3:
			risk.Score += 10
			if risk.Severity == domain.RiskNormal {
				risk.Severity = domain.RiskWatch
			}
			risk.Details = append(risk.Details, RiskDetail{
				Symptom: s.Symptom,
				Count:   s.Count,
				Reason:  "Symptom repeated 3+ times",
			})
		}
	}
	return risk
}

// AssessMoodRisk scores negative mood patterns. A 3-4 entry streak adds
// points without raising severity; only the 5+ branch sets watch.
func AssessMoodRisk(trends MoodTrends) RiskFactor {
	risk := newRiskFactor(CategoryMoodPatterns)
	if trends.MoodPattern == MoodConsistentlyNegative {
		risk.Score += 20
		risk.Severity = domain.RiskWatch
		risk.Details = append(risk.Details, RiskDetail{
			Pattern: string(MoodConsistentlyNegative),
			Reason:  "Frequent negative emotions detected",
		})
	}

	switch {
	case trends.NegativeStreak >= 5:
		risk.Score += 15
		risk.Severity = domain.RiskWatch
		risk.Details = append(risk.Details, RiskDetail{
			Streak: trends.NegativeStreak,
			Reason: "Extended period of negative emotions",
		})
	case trends.NegativeStreak >= 3:
		risk.Score += 10
		risk.Details = append(risk.Details, RiskDetail{
			Streak: trends.NegativeStreak,
			Reason: "Multiple consecutive negative moods",
		})
	}
	return risk
}

// AssessTaskRisk scores low adherence. An empty todo list carries no risk.
func AssessTaskRisk(trends TaskTrends) RiskFactor {
	risk := newRiskFactor(CategoryTaskAdherence)
	if trends.TotalTasks > 0 && trends.CompletionRate < 40 {
		risk.Score += 15
		risk.Severity = domain.RiskWatch
		risk.Details = append(risk.Details, RiskDetail{
			CompletionRate: trends.CompletionRate,
			Reason:         "Low task completion rate",
		})
	}
	if len(trends.MissedTasks) >= 3 {
		risk.Score += 10
		risk.Severity = domain.RiskWatch
		risk.Details = append(risk.Details, RiskDetail{
			Count:  len(trends.MissedTasks),
			Reason: "Multiple high-priority tasks incomplete",
		})
	}
	return risk
}

func AssessNutritionRisk(trends NutritionTrends) RiskFactor {
	risk := newRiskFactor(CategoryNutrition)
	if trends.UnsafeFoodQueries >= 5 {
		risk.Score += 10
		risk.Severity = domain.RiskWatch
		risk.Details = append(risk.Details, RiskDetail{
			Count:  trends.UnsafeFoodQueries,
			Reason: "Multiple queries about unsafe foods",
		})
	}
	if trends.AllergenWarnings >= 3 {
		risk.Score += 5
		risk.Details = append(risk.Details, RiskDetail{
			Count:  trends.AllergenWarnings,
			Reason: "Multiple allergen conflicts detected",
		})
	}
	return risk
}
