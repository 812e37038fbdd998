package intelligence

import (
	"math"
	"strings"
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
)

const (
	trendWindow     = 7 * 24 * time.Hour
	emergencyWindow = 24 * time.Hour
)

type Tier string

const (
	TierLow      Tier = "low"
	TierModerate Tier = "moderate"
	TierHigh     Tier = "high"
)

type MoodPattern string

const (
	MoodStable               MoodPattern = "stable"
	MoodMixed                MoodPattern = "mixed"
	MoodConsistentlyNegative MoodPattern = "consistently_negative"
	MoodConsistentlyPositive MoodPattern = "consistently_positive"
)

type Adherence string

const (
	AdherenceUnknown   Adherence = "unknown"
	AdherenceExcellent Adherence = "excellent"
	AdherenceGood      Adherence = "good"
	AdherenceModerate  Adherence = "moderate"
	AdherencePoor      Adherence = "poor"
)

// Concerning pattern codes.
const (
	PatternHighSymptomFrequency    = "high_symptom_frequency"
	PatternFrequentNegativeMoods   = "frequent_negative_moods"
	PatternMoodDropStreak          = "mood_drop_streak"
	PatternLowTaskCompletion       = "low_task_completion"
	PatternMissedHighPriorityTasks = "missed_high_priority_tasks"
	PatternRepeatedUnsafeFood      = "repeated_unsafe_food_queries"
)

type ConcerningPattern struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
	Rate    int    `json:"rate"`
	Message string `json:"message"`
}

type RepeatingSymptom struct {
	Symptom  string `json:"symptom"`
	Count    int    `json:"count"`
	Severity Tier   `json:"severity"`
}

type SymptomTrends struct {
	// RepeatingSymptoms is ordered by first occurrence in the log.
	RepeatingSymptoms  []RepeatingSymptom  `json:"repeating_symptoms"`
	SymptomFrequency   map[string]int      `json:"symptom_frequency"`
	ConcerningPatterns []ConcerningPattern `json:"concerning_patterns"`
	EmergencyCount     int                 `json:"emergency_count"`
}

type MoodTrends struct {
	MoodPattern        MoodPattern         `json:"mood_pattern"`
	NegativeStreak     int                 `json:"negative_streak"`
	PositiveStreak     int                 `json:"positive_streak"`
	MostCommonMood     string              `json:"most_common_mood"`
	MoodVolatility     Tier                `json:"mood_volatility"`
	RecentEntries      int                 `json:"recent_entries"`
	ConcerningPatterns []ConcerningPattern `json:"concerning_patterns"`
}

type MissedTask struct {
	Task     string          `json:"task"`
	Priority domain.Priority `json:"priority"`
	DueDate  string          `json:"due_date"`
}

type TaskTrends struct {
	CompletionRate       int                 `json:"completion_rate"`
	TotalTasks           int                 `json:"total_tasks"`
	CompletedTasks       int                 `json:"completed_tasks"`
	MissedTasks          []MissedTask        `json:"missed_tasks"`
	ConsistentCompletion bool                `json:"consistent_completion"`
	TaskAdherence        Adherence           `json:"task_adherence"`
	ConcerningPatterns   []ConcerningPattern `json:"concerning_patterns"`
}

type NutritionTrends struct {
	UnsafeFoodQueries  int                 `json:"unsafe_food_queries"`
	AllergenWarnings   int                 `json:"allergen_warnings"`
	QueryFrequency     Tier                `json:"query_frequency"`
	CommonQueries      []string            `json:"common_queries"`
	ConcerningPatterns []ConcerningPattern `json:"concerning_patterns"`
}

type TrendSummary struct {
	Timestamp time.Time       `json:"timestamp"`
	UserID    string          `json:"user_id"`
	Symptoms  SymptomTrends   `json:"symptoms"`
	Moods     MoodTrends      `json:"moods"`
	Tasks     TaskTrends      `json:"tasks"`
	Nutrition NutritionTrends `json:"nutrition"`
}

// AnalyzeTrends computes all four trend categories at reference time now.
func AnalyzeTrends(u domain.UserData, now time.Time) TrendSummary {
	return TrendSummary{
		Timestamp: now,
		UserID:    u.UserID,
		Symptoms:  DetectSymptomTrends(u.SymptomLog, now),
		Moods:     DetectMoodTrends(u.MoodLog, now),
		Tasks:     DetectTaskTrends(u.TodoList),
		Nutrition: DetectNutritionTrends(u.NutritionLog, now),
	}
}

// within reports whether ts falls in the trailing window ending at now.
// The lower bound is inclusive.
func within(ts, now time.Time, window time.Duration) bool {
	return !ts.Before(now.Add(-window))
}

// orderedCounter counts string keys and remembers first-seen order.
type orderedCounter struct {
	counts map[string]int
	order  []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// top returns up to n keys with count >= minCount, highest count first,
// ties kept in first-seen order.
func (c *orderedCounter) top(n, minCount int) []string {
	keys := []string{}
	for _, k := range c.order {
		if c.counts[k] >= minCount {
			keys = append(keys, k)
		}
	}
	stableSortDesc(keys, func(k string) int { return c.counts[k] })
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

func DetectSymptomTrends(log []domain.SymptomEntry, now time.Time) SymptomTrends {
	trends := SymptomTrends{
		RepeatingSymptoms:  []RepeatingSymptom{},
		SymptomFrequency:   map[string]int{},
		ConcerningPatterns: []ConcerningPattern{},
	}
	if len(log) == 0 {
		return trends
	}

	counter := newOrderedCounter()
	recent := 0
	for _, entry := range log {
		counter.add(strings.ToLower(entry.Symptom))
		if entry.IsEmergency {
			trends.EmergencyCount++
		}
		if within(entry.Timestamp, now, trendWindow) {
			recent++
		}
	}
	trends.SymptomFrequency = counter.counts

	for _, symptom := range counter.order {
		count := counter.counts[symptom]
		if count < 3 {
			continue
		}
		severity := TierModerate
		if count >= 5 {
			severity = TierHigh
		}
		trends.RepeatingSymptoms = append(trends.RepeatingSymptoms, RepeatingSymptom{
			Symptom:  symptom,
			Count:    count,
			Severity: severity,
		})
	}

	if recent >= 5 {
		trends.ConcerningPatterns = append(trends.ConcerningPatterns, ConcerningPattern{
			Pattern: PatternHighSymptomFrequency,
			Count:   recent,
			Message: "Multiple symptoms reported in past week",
		})
	}
	return trends
}

// DetectMoodTrends classifies the trailing week of mood entries. Any entry
// that is not negative (positive or neutral) breaks a negative run.
// Volatility is a proxy from the entry count, not from mood changes.
func DetectMoodTrends(log []domain.MoodEntry, now time.Time) MoodTrends {
	trends := MoodTrends{
		MoodPattern:        MoodStable,
		MoodVolatility:     TierLow,
		ConcerningPatterns: []ConcerningPattern{},
	}
	if len(log) == 0 {
		return trends
	}

	var negative, positive, negRun, posRun int
	states := newOrderedCounter()
	for _, entry := range log {
		if !within(entry.Timestamp, now, trendWindow) {
			continue
		}
		trends.RecentEntries++
		states.add(strings.ToLower(strings.TrimSpace(entry.EmotionalState)))

		if isNegativeMood(entry.EmotionalState) {
			negative++
			negRun++
			trends.NegativeStreak = max(trends.NegativeStreak, negRun)
		} else {
			negRun = 0
		}
		if isPositiveMood(entry.EmotionalState) {
			positive++
			posRun++
			trends.PositiveStreak = max(trends.PositiveStreak, posRun)
		} else {
			posRun = 0
		}
	}

	n := float64(trends.RecentEntries)
	switch {
	case float64(negative) > n*0.6:
		trends.MoodPattern = MoodConsistentlyNegative
		trends.ConcerningPatterns = append(trends.ConcerningPatterns, ConcerningPattern{
			Pattern: PatternFrequentNegativeMoods,
			Count:   negative,
			Message: "Frequent negative emotions detected",
		})
	case float64(positive) > n*0.6:
		trends.MoodPattern = MoodConsistentlyPositive
	default:
		trends.MoodPattern = MoodMixed
	}

	if trends.NegativeStreak >= 3 {
		trends.ConcerningPatterns = append(trends.ConcerningPatterns, ConcerningPattern{
			Pattern: PatternMoodDropStreak,
			Count:   trends.NegativeStreak,
			Message: "Consecutive negative moods detected",
		})
	}

	if trends.RecentEntries >= 5 {
		changes := trends.RecentEntries - 1
		switch {
		case changes >= 4:
			trends.MoodVolatility = TierHigh
		case changes >= 2:
			trends.MoodVolatility = TierModerate
		}
	}

	if top := states.top(1, 1); len(top) > 0 {
		trends.MostCommonMood = top[0]
	}
	return trends
}

func DetectTaskTrends(list []domain.TodoEntry) TaskTrends {
	trends := TaskTrends{
		MissedTasks:        []MissedTask{},
		TaskAdherence:      AdherenceUnknown,
		ConcerningPatterns: []ConcerningPattern{},
	}
	if len(list) == 0 {
		return trends
	}

	for _, t := range list {
		if t.Completed {
			trends.CompletedTasks++
			continue
		}
		if t.Priority == domain.PriorityHigh {
			trends.MissedTasks = append(trends.MissedTasks, MissedTask{
				Task:     t.Task,
				Priority: t.Priority,
				DueDate:  t.DueDate,
			})
		}
	}
	trends.TotalTasks = len(list)
	trends.CompletionRate = percent(trends.CompletedTasks, trends.TotalTasks)

	switch rate := trends.CompletionRate; {
	case rate >= 80:
		trends.TaskAdherence = AdherenceExcellent
		trends.ConsistentCompletion = true
	case rate >= 60:
		trends.TaskAdherence = AdherenceGood
	case rate >= 40:
		trends.TaskAdherence = AdherenceModerate
	default:
		trends.TaskAdherence = AdherencePoor
		trends.ConcerningPatterns = append(trends.ConcerningPatterns, ConcerningPattern{
			Pattern: PatternLowTaskCompletion,
			Rate:    rate,
			Message: "Many tasks remain incomplete",
		})
	}

	if len(trends.MissedTasks) >= 3 {
		trends.ConcerningPatterns = append(trends.ConcerningPatterns, ConcerningPattern{
			Pattern: PatternMissedHighPriorityTasks,
			Count:   len(trends.MissedTasks),
			Message: "Multiple high-priority tasks incomplete",
		})
	}
	return trends
}

func DetectNutritionTrends(log []domain.NutritionEntry, now time.Time) NutritionTrends {
	trends := NutritionTrends{
		QueryFrequency:     TierLow,
		CommonQueries:      []string{},
		ConcerningPatterns: []ConcerningPattern{},
	}
	if len(log) == 0 {
		return trends
	}

	foods := newOrderedCounter()
	recent := 0
	for _, entry := range log {
		if !entry.IsSafe {
			trends.UnsafeFoodQueries++
		}
		if entry.AllergenWarning {
			trends.AllergenWarnings++
		}
		if within(entry.Timestamp, now, trendWindow) {
			recent++
		}
		foods.add(strings.ToLower(strings.TrimSpace(entry.FoodQuery)))
	}

	switch {
	case recent >= 10:
		trends.QueryFrequency = TierHigh
	case recent >= 5:
		trends.QueryFrequency = TierModerate
	}
	trends.CommonQueries = foods.top(3, 2)

	if trends.UnsafeFoodQueries >= 3 {
		trends.ConcerningPatterns = append(trends.ConcerningPatterns, ConcerningPattern{
			Pattern: PatternRepeatedUnsafeFood,
			Count:   trends.UnsafeFoodQueries,
			Message: "Multiple queries about unsafe foods",
		})
	}
	return trends
}

// percent returns round(100*part/total), or 0 when total is 0.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
