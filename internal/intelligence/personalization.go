package intelligence

import (
	"fmt"
	"strings"
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
)

// Task buckets used to infer which kinds of tasks a user keeps up with.
const (
	TaskCategoryMedication = "medication"
	TaskCategoryHydration  = "hydration"
	TaskCategoryRest       = "rest"
	TaskCategoryExercise   = "exercise"
	TaskCategoryMedical    = "medical"
	TaskCategoryOther      = "other"
)

// Recommendation categories.
const (
	RecommendEmotional = "emotional"
	RecommendTask      = "task"
	RecommendNutrition = "nutrition"
)

const (
	noteKeyLength       = 50
	symptomResolvedMax  = 2
	statusResolved      = "resolved"
	maxEmotionalSupport = 3
	maxFoodInterest     = 3
)

type EmotionalSupport struct {
	Key          string    `json:"key"`
	SuccessCount int       `json:"success_count"`
	LastUsed     time.Time `json:"last_used"`
}

type SymptomRelief struct {
	Symptom      string  `json:"symptom"`
	Status       string  `json:"status"`
	SuccessScore float64 `json:"success_score"`
	Occurrences  int     `json:"occurrences"`
}

type NutritionPreference struct {
	Food          string `json:"food"`
	QueryCount    int    `json:"query_count"`
	InterestLevel Tier   `json:"interest_level"`
}

type TaskPreference struct {
	Category       string `json:"category"`
	Total          int    `json:"total"`
	Completed      int    `json:"completed"`
	CompletionRate int    `json:"completion_rate"`
	Adherence      Tier   `json:"adherence"`
}

// LearningData records which past suggestions appear to have worked. Every
// list is in first-occurrence order.
type LearningData struct {
	EmotionalSupport     []EmotionalSupport    `json:"emotional_support"`
	SymptomRelief        []SymptomRelief       `json:"symptom_relief"`
	NutritionPreferences []NutritionPreference `json:"nutrition_preferences"`
	TaskPreferences      []TaskPreference      `json:"task_preferences"`
}

type Recommendation struct {
	Category       string          `json:"category"`
	Suggestion     string          `json:"suggestion"`
	Priority       domain.Priority `json:"priority"`
	SuccessRate    int             `json:"success_rate"`
	CompletionRate int             `json:"completion_rate"`
	QueryCount     int             `json:"query_count"`
	Reason         string          `json:"reason"`
}

type Personalization struct {
	Timestamp                   time.Time        `json:"timestamp"`
	UserID                      string           `json:"user_id"`
	LearningData                LearningData     `json:"learning_data"`
	PersonalizedRecommendations []Recommendation `json:"personalized_recommendations"`
	PersonalizationLevel        Tier             `json:"personalization_level"`
}

// CalculatePersonalizationScore derives learning data and the recommendations
// built from it.
func CalculatePersonalizationScore(u domain.UserData, now time.Time) Personalization {
	learning := TrackSuggestionSuccess(u)
	recs := GenerateRecommendations(u, learning)

	level := TierLow
	switch {
	case len(recs) >= 5:
		level = TierHigh
	case len(recs) >= 2:
		level = TierModerate
	}
	return Personalization{
		Timestamp:                   now,
		UserID:                      u.UserID,
		LearningData:                learning,
		PersonalizedRecommendations: recs,
		PersonalizationLevel:        level,
	}
}

func TrackSuggestionSuccess(u domain.UserData) LearningData {
	return LearningData{
		EmotionalSupport:     trackEmotionalSupport(u.MoodLog),
		SymptomRelief:        trackSymptomRelief(u.SymptomLog),
		NutritionPreferences: trackNutritionInterest(u.NutritionLog),
		TaskPreferences:      trackTaskPreferences(u.TodoList),
	}
}

// moodImproved holds only for a negative state followed by a positive one.
func moodImproved(prev, curr string) bool {
	return isNegativeMood(prev) && isPositiveMood(curr)
}

// trackEmotionalSupport keys improvements by the notes on the entry before
// the mood lifted.
func trackEmotionalSupport(log []domain.MoodEntry) []EmotionalSupport {
	out := []EmotionalSupport{}
	index := map[string]int{}
	for i := 1; i < len(log); i++ {
		prev, curr := log[i-1], log[i]
		if !moodImproved(prev.EmotionalState, curr.EmotionalState) || prev.Notes == "" {
			continue
		}
		key := truncateRunes(prev.Notes, noteKeyLength)
		if j, ok := index[key]; ok {
			out[j].SuccessCount++
			out[j].LastUsed = prev.Timestamp
			continue
		}
		index[key] = len(out)
		out = append(out, EmotionalSupport{Key: key, SuccessCount: 1, LastUsed: prev.Timestamp})
	}
	return out
}

// trackSymptomRelief treats a rarely repeated symptom as resolved. It cannot
// tell resolution apart from a symptom that simply did not recur.
func trackSymptomRelief(log []domain.SymptomEntry) []SymptomRelief {
	out := []SymptomRelief{}
	if len(log) < 2 {
		return out
	}
	counter := newOrderedCounter()
	for _, entry := range log {
		counter.add(strings.ToLower(entry.Symptom))
	}
	for _, symptom := range counter.order {
		count := counter.counts[symptom]
		if count > symptomResolvedMax {
			continue
		}
		out = append(out, SymptomRelief{
			Symptom:      symptom,
			Status:       statusResolved,
			SuccessScore: 1.0,
			Occurrences:  count,
		})
	}
	return out
}

func trackNutritionInterest(log []domain.NutritionEntry) []NutritionPreference {
	out := []NutritionPreference{}
	counter := newOrderedCounter()
	for _, entry := range log {
		counter.add(strings.ToLower(entry.FoodQuery))
	}
	for _, food := range counter.order {
		count := counter.counts[food]
		if count < 2 {
			continue
		}
		interest := TierModerate
		if count >= 3 {
			interest = TierHigh
		}
		out = append(out, NutritionPreference{Food: food, QueryCount: count, InterestLevel: interest})
	}
	return out
}

func trackTaskPreferences(list []domain.TodoEntry) []TaskPreference {
	out := []TaskPreference{}
	index := map[string]int{}
	for _, todo := range list {
		category := TaskCategory(todo.Task)
		j, ok := index[category]
		if !ok {
			j = len(out)
			index[category] = j
			out = append(out, TaskPreference{Category: category})
		}
		out[j].Total++
		if todo.Completed {
			out[j].Completed++
		}
	}
	for i := range out {
		out[i].CompletionRate = percent(out[i].Completed, out[i].Total)
		out[i].Adherence = adherenceTier(out[i].CompletionRate)
	}
	return out
}

// TaskCategory buckets a task by the first matching keyword rule.
func TaskCategory(task string) string {
	lower := strings.ToLower(task)
	for _, rule := range taskBuckets {
		if containsAny(lower, rule.keywords) {
			return rule.category
		}
	}
	return TaskCategoryOther
}

func adherenceTier(rate int) Tier {
	switch {
	case rate >= 70:
		return TierHigh
	case rate >= 40:
		return TierModerate
	default:
		return TierLow
	}
}

func GenerateRecommendations(_ domain.UserData, learning LearningData) []Recommendation {
	recs := []Recommendation{}

	support := append([]EmotionalSupport(nil), learning.EmotionalSupport...)
	stableSortDesc(support, func(s EmotionalSupport) int { return s.SuccessCount })
	if len(support) > maxEmotionalSupport {
		support = support[:maxEmotionalSupport]
	}
	for _, s := range support {
		recs = append(recs, Recommendation{
			Category:    RecommendEmotional,
			Suggestion:  s.Key,
			Priority:    domain.PriorityHigh,
			SuccessRate: s.SuccessCount,
			Reason:      "Previously helped improve mood",
		})
	}

	for _, t := range learning.TaskPreferences {
		switch t.Adherence {
		case TierHigh:
			recs = append(recs, Recommendation{
				Category:       RecommendTask,
				Suggestion:     "Continue " + t.Category + " tasks - you're doing great!",
				Priority:       domain.PriorityMedium,
				CompletionRate: t.CompletionRate,
				Reason:         "High adherence to this task type",
			})
		case TierLow:
			recs = append(recs, Recommendation{
				Category:       RecommendTask,
				Suggestion:     "Focus on " + t.Category + " tasks - they're important",
				Priority:       domain.PriorityHigh,
				CompletionRate: t.CompletionRate,
				Reason:         "Low adherence needs attention",
			})
		}
	}

	foods := 0
	for _, n := range learning.NutritionPreferences {
		if n.InterestLevel != TierHigh || foods == maxFoodInterest {
			continue
		}
		foods++
		recs = append(recs, Recommendation{
			Category:   RecommendNutrition,
			Suggestion: fmt.Sprintf("You've asked about %s %d times", n.Food, n.QueryCount),
			Priority:   domain.PriorityMedium,
			QueryCount: n.QueryCount,
			Reason:     "High interest in this food",
		})
	}

	stableSortDesc(recs, func(r Recommendation) int { return domain.PriorityWeight(r.Priority) })
	return recs
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
