package intelligence

import (
	"testing"
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSymptomTrends_RepeatingTiers(t *testing.T) {
	log := symptoms(ago(72*time.Hour),
		"Nausea", "headache", "nausea", "backache", "headache",
		"NAUSEA", "headache", "backache", "headache", "headache",
	)

	trends := DetectSymptomTrends(log, refNow)

	require.Len(t, trends.RepeatingSymptoms, 2)
	assert.Equal(t, RepeatingSymptom{Symptom: "nausea", Count: 3, Severity: TierModerate}, trends.RepeatingSymptoms[0])
	assert.Equal(t, RepeatingSymptom{Symptom: "headache", Count: 5, Severity: TierHigh}, trends.RepeatingSymptoms[1])
	assert.Equal(t, 2, trends.SymptomFrequency["backache"])
	for _, s := range trends.RepeatingSymptoms {
		assert.NotEqual(t, "backache", s.Symptom, "symptoms seen fewer than 3 times never repeat")
	}
}

func TestDetectSymptomTrends_FrequencyAndEmergencies(t *testing.T) {
	log := symptoms(ago(48*time.Hour), "a", "b", "c", "d", "e")
	log[0].IsEmergency = true
	log = append(log, symptomAt("old", ago(10*24*time.Hour)))

	trends := DetectSymptomTrends(log, refNow)

	assert.Equal(t, 1, trends.EmergencyCount)
	require.Len(t, trends.ConcerningPatterns, 1)
	assert.Equal(t, PatternHighSymptomFrequency, trends.ConcerningPatterns[0].Pattern)
	assert.Equal(t, 5, trends.ConcerningPatterns[0].Count)
}

func TestDetectMoodTrends_ConsistentlyNegative(t *testing.T) {
	log := moods(ago(24*time.Hour), "anxious", "stressed", "overwhelmed", "scared")

	trends := DetectMoodTrends(log, refNow)

	assert.Equal(t, MoodConsistentlyNegative, trends.MoodPattern)
	assert.Equal(t, 4, trends.NegativeStreak)
	assert.Equal(t, 4, trends.RecentEntries)
	assert.Equal(t, TierLow, trends.MoodVolatility)

	var codes []string
	for _, p := range trends.ConcerningPatterns {
		codes = append(codes, p.Pattern)
	}
	assert.Contains(t, codes, PatternFrequentNegativeMoods)
	assert.Contains(t, codes, PatternMoodDropStreak)
}

func TestDetectMoodTrends_NeutralBreaksStreak(t *testing.T) {
	log := moods(ago(24*time.Hour), "anxious", "sad", "okay", "worried")

	trends := DetectMoodTrends(log, refNow)

	assert.Equal(t, 2, trends.NegativeStreak)
	assert.Equal(t, MoodConsistentlyNegative, trends.MoodPattern)
}

func TestDetectMoodTrends_PositiveStreakAndMostCommon(t *testing.T) {
	log := moods(ago(24*time.Hour), "happy", "calm", "happy", "sad", "happy")

	trends := DetectMoodTrends(log, refNow)

	assert.Equal(t, MoodConsistentlyPositive, trends.MoodPattern)
	assert.Equal(t, 3, trends.PositiveStreak)
	assert.Equal(t, "happy", trends.MostCommonMood)
	assert.Equal(t, TierHigh, trends.MoodVolatility)
}

func TestDetectMoodTrends_WindowEdges(t *testing.T) {
	t.Run("empty log is stable", func(t *testing.T) {
		trends := DetectMoodTrends(nil, refNow)
		assert.Equal(t, MoodStable, trends.MoodPattern)
		assert.NotNil(t, trends.ConcerningPatterns)
	})

	t.Run("only old entries is mixed", func(t *testing.T) {
		trends := DetectMoodTrends(moods(ago(10*24*time.Hour), "sad", "sad"), refNow)
		assert.Equal(t, MoodMixed, trends.MoodPattern)
		assert.Zero(t, trends.RecentEntries)
	})

	t.Run("lower bound is inclusive", func(t *testing.T) {
		log := []domain.MoodEntry{moodAt("sad", ago(7 * 24 * time.Hour))}
		trends := DetectMoodTrends(log, refNow)
		assert.Equal(t, 1, trends.RecentEntries)
	})
}

func TestDetectTaskTrends(t *testing.T) {
	tests := []struct {
		name      string
		list      []domain.TodoEntry
		rate      int
		adherence Adherence
		patterns  []string
	}{
		{"empty", nil, 0, AdherenceUnknown, nil},
		{
			"excellent",
			[]domain.TodoEntry{
				todo("a", domain.PriorityLow, true), todo("b", domain.PriorityLow, true),
				todo("c", domain.PriorityLow, true), todo("d", domain.PriorityLow, true),
				todo("e", domain.PriorityLow, false),
			},
			80, AdherenceExcellent, nil,
		},
		{
			"poor with missed high priority",
			[]domain.TodoEntry{
				todo("a", domain.PriorityHigh, false), todo("b", domain.PriorityHigh, false),
				todo("c", domain.PriorityHigh, false), todo("d", domain.PriorityMedium, true),
			},
			25, AdherencePoor, []string{PatternLowTaskCompletion, PatternMissedHighPriorityTasks},
		},
		{
			"moderate rounds",
			[]domain.TodoEntry{
				todo("a", domain.PriorityLow, true), todo("b", domain.PriorityLow, false),
				todo("c", domain.PriorityLow, false),
			},
			33, AdherencePoor, []string{PatternLowTaskCompletion},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trends := DetectTaskTrends(tt.list)
			assert.Equal(t, tt.rate, trends.CompletionRate)
			assert.Equal(t, tt.adherence, trends.TaskAdherence)
			assert.Equal(t, len(tt.list), trends.TotalTasks)

			var codes []string
			for _, p := range trends.ConcerningPatterns {
				codes = append(codes, p.Pattern)
			}
			assert.Equal(t, tt.patterns, codes)
		})
	}
}

func TestDetectNutritionTrends(t *testing.T) {
	at := ago(24 * time.Hour)
	log := []domain.NutritionEntry{
		foodAt("Sushi", false, at), foodAt("coffee", true, at), foodAt("sushi", false, at),
		foodAt("brie", true, at), foodAt("coffee", true, at), foodAt("sushi ", false, at),
	}
	log[3].AllergenWarning = true

	trends := DetectNutritionTrends(log, refNow)

	assert.Equal(t, 3, trends.UnsafeFoodQueries)
	assert.Equal(t, 1, trends.AllergenWarnings)
	assert.Equal(t, TierModerate, trends.QueryFrequency)
	assert.Equal(t, []string{"sushi", "coffee"}, trends.CommonQueries)
	require.Len(t, trends.ConcerningPatterns, 1)
	assert.Equal(t, PatternRepeatedUnsafeFood, trends.ConcerningPatterns[0].Pattern)
}

func TestAnalyzeTrends_EmptyUserData(t *testing.T) {
	summary := AnalyzeTrends(domain.UserData{UserID: "x"}, refNow)

	assert.Equal(t, "x", summary.UserID)
	assert.Empty(t, summary.Symptoms.RepeatingSymptoms)
	assert.NotNil(t, summary.Symptoms.RepeatingSymptoms)
	assert.Zero(t, summary.Symptoms.EmergencyCount)
	assert.Equal(t, MoodStable, summary.Moods.MoodPattern)
	assert.Equal(t, AdherenceUnknown, summary.Tasks.TaskAdherence)
	assert.Zero(t, summary.Tasks.CompletionRate)
	assert.Equal(t, TierLow, summary.Nutrition.QueryFrequency)
	assert.NotNil(t, summary.Nutrition.CommonQueries)
}
