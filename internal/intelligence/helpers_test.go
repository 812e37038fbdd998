package intelligence

import (
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
)

var refNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func ago(d time.Duration) time.Time {
	return refNow.Add(-d)
}

func moodAt(state string, at time.Time) domain.MoodEntry {
	return domain.MoodEntry{ID: "m-" + state, Timestamp: at, EmotionalState: state}
}

func moodWithNotes(state, notes string, at time.Time) domain.MoodEntry {
	m := moodAt(state, at)
	m.Notes = notes
	return m
}

func moods(at time.Time, states ...string) []domain.MoodEntry {
	out := make([]domain.MoodEntry, 0, len(states))
	for i, s := range states {
		out = append(out, moodAt(s, at.Add(time.Duration(i)*time.Minute)))
	}
	return out
}

func symptomAt(symptom string, at time.Time) domain.SymptomEntry {
	return domain.SymptomEntry{
		ID:        "s-" + symptom,
		Timestamp: at,
		Symptom:   symptom,
		Severity:  domain.SeverityModerate,
	}
}

func symptoms(at time.Time, names ...string) []domain.SymptomEntry {
	out := make([]domain.SymptomEntry, 0, len(names))
	for i, n := range names {
		out = append(out, symptomAt(n, at.Add(time.Duration(i)*time.Minute)))
	}
	return out
}

func foodAt(query string, safe bool, at time.Time) domain.NutritionEntry {
	return domain.NutritionEntry{ID: "n-" + query, Timestamp: at, FoodQuery: query, IsSafe: safe}
}

func todo(task string, priority domain.Priority, completed bool) domain.TodoEntry {
	return domain.TodoEntry{
		ID:        "t-" + task,
		Timestamp: ago(time.Hour),
		Task:      task,
		Priority:  priority,
		DueDate:   "2025-03-15",
		Completed: completed,
	}
}
