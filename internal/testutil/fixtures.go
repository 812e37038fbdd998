package testutil

import (
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
	"github.com/google/uuid"
)

// RefNow is the fixed reference clock shared by fixture-based tests.
var RefNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

// Mood options
type MoodOption func(*domain.MoodEntry)

func WithMoodAt(t time.Time) MoodOption {
	return func(m *domain.MoodEntry) {
		m.Timestamp = t
	}
}

func WithNotes(notes string) MoodOption {
	return func(m *domain.MoodEntry) {
		m.Notes = notes
	}
}

func NewTestMood(state string, opts ...MoodOption) domain.MoodEntry {
	m := domain.MoodEntry{
		ID:             uuid.New().String(),
		Timestamp:      RefNow.Add(-time.Hour),
		EmotionalState: state,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Symptom options
type SymptomOption func(*domain.SymptomEntry)

func WithSymptomAt(t time.Time) SymptomOption {
	return func(s *domain.SymptomEntry) {
		s.Timestamp = t
	}
}

func WithEmergency() SymptomOption {
	return func(s *domain.SymptomEntry) {
		s.IsEmergency = true
	}
}

func WithSeverity(sev domain.SymptomSeverity) SymptomOption {
	return func(s *domain.SymptomEntry) {
		s.Severity = sev
	}
}

func NewTestSymptom(symptom string, opts ...SymptomOption) domain.SymptomEntry {
	s := domain.SymptomEntry{
		ID:        uuid.New().String(),
		Timestamp: RefNow.Add(-time.Hour),
		Symptom:   symptom,
		Severity:  domain.SeverityModerate,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Nutrition options
type NutritionOption func(*domain.NutritionEntry)

func WithUnsafe() NutritionOption {
	return func(n *domain.NutritionEntry) {
		n.IsSafe = false
	}
}

func WithAllergenWarning() NutritionOption {
	return func(n *domain.NutritionEntry) {
		n.AllergenWarning = true
	}
}

func NewTestNutrition(food string, opts ...NutritionOption) domain.NutritionEntry {
	n := domain.NutritionEntry{
		ID:        uuid.New().String(),
		Timestamp: RefNow.Add(-time.Hour),
		FoodQuery: food,
		IsSafe:    true,
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// Todo options
type TodoOption func(*domain.TodoEntry)

func WithPriority(p domain.Priority) TodoOption {
	return func(t *domain.TodoEntry) {
		t.Priority = p
	}
}

func WithCompleted() TodoOption {
	return func(t *domain.TodoEntry) {
		t.Completed = true
	}
}

func NewTestTodo(task string, opts ...TodoOption) domain.TodoEntry {
	t := domain.TodoEntry{
		ID:        uuid.New().String(),
		Timestamp: RefNow.Add(-time.Hour),
		Task:      task,
		Priority:  domain.PriorityMedium,
		DueDate:   RefNow.Format(domain.DateLayout),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func NewTestAgentLog(event domain.AgentEvent, level domain.SafetyLevel, keywords ...string) domain.AgentLogEntry {
	return domain.AgentLogEntry{
		ID:               uuid.New().String(),
		Timestamp:        RefNow.Add(-time.Hour),
		Event:            event,
		SafetyLevel:      level,
		DetectedKeywords: append([]string{}, keywords...),
		Escalated:        level == domain.SafetyCritical,
	}
}
