package importer

import (
	"fmt"
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
	"github.com/google/uuid"
)

// Convert transforms a validated UserFile into a domain record ready for
// persistence. Call ValidateUserFile first; Convert assumes the file is valid.
// Defaults match what the journal applies on write.
func Convert(f *UserFile, now time.Time) (*domain.UserData, error) {
	profile, err := convertProfile(&f.Profile, now)
	if err != nil {
		return nil, err
	}

	u := domain.NewUserData(f.UserID, now)
	u.Profile = profile

	for i, e := range f.MoodLog {
		ts, err := parseTimestamp(e.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("mood_log[%d]: %w", i, err)
		}
		u.MoodLog = append(u.MoodLog, domain.MoodEntry{
			ID:             idOrNew(e.ID),
			Timestamp:      ts,
			EmotionalState: e.EmotionalState,
			Notes:          e.Notes,
			Week:           domain.IntFromPtrWithDefault(0, e.Week),
		})
	}

	for i, e := range f.SymptomLog {
		ts, err := parseTimestamp(e.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("symptom_log[%d]: %w", i, err)
		}
		u.SymptomLog = append(u.SymptomLog, domain.SymptomEntry{
			ID:            idOrNew(e.ID),
			Timestamp:     ts,
			Symptom:       e.Symptom,
			Severity:      domain.SymptomSeverity(domain.CoalesceStr(e.Severity, string(domain.SeverityModerate))),
			IsEmergency:   e.IsEmergency,
			AgentResponse: e.AgentResponse,
			Week:          domain.IntFromPtrWithDefault(0, e.Week),
		})
	}

	for i, e := range f.NutritionLog {
		ts, err := parseTimestamp(e.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("nutrition_log[%d]: %w", i, err)
		}
		u.NutritionLog = append(u.NutritionLog, domain.NutritionEntry{
			ID:              idOrNew(e.ID),
			Timestamp:       ts,
			FoodQuery:       e.FoodQuery,
			IsSafe:          domain.BoolFromPtrWithDefault(true, e.IsSafe),
			AllergenWarning: e.AllergenWarning,
			AgentResponse:   e.AgentResponse,
			Week:            domain.IntFromPtrWithDefault(0, e.Week),
		})
	}

	for i, e := range f.TodoList {
		ts, err := parseTimestamp(e.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("todo_list[%d]: %w", i, err)
		}
		u.TodoList = append(u.TodoList, domain.TodoEntry{
			ID:        idOrNew(e.ID),
			Timestamp: ts,
			Task:      e.Task,
			Priority:  domain.Priority(domain.CoalesceStr(e.Priority, string(domain.PriorityMedium))),
			DueDate:   domain.CoalesceStr(e.DueDate, ts.Format(domain.DateLayout)),
			Completed: e.Completed,
			Week:      domain.IntFromPtrWithDefault(0, e.Week),
		})
	}

	for i, e := range f.AgentLog {
		ts, err := parseTimestamp(e.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("agent_log[%d]: %w", i, err)
		}
		entry := domain.AgentLogEntry{
			ID:               idOrNew(e.ID),
			Timestamp:        ts,
			Event:            domain.AgentEvent(e.Event),
			Message:          e.Message,
			DetectedKeywords: []string{},
			Week:             domain.IntFromPtrWithDefault(0, e.Week),
		}
		if e.Data != nil && e.Data.SafetyAnalysis != nil {
			sa := e.Data.SafetyAnalysis
			entry.SafetyLevel = domain.SafetyLevel(sa.SafetyLevel)
			entry.Escalated = sa.RequiresEscalation
			if sa.DetectedKeywords != nil {
				entry.DetectedKeywords = sa.DetectedKeywords
			}
		}
		u.AgentLog = append(u.AgentLog, entry)
	}

	for i, e := range f.LearningData {
		ts, err := parseTimestamp(e.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("learning_data[%d]: %w", i, err)
		}
		u.LearningFeedback = append(u.LearningFeedback, domain.LearningFeedback{
			ID:           idOrNew(e.ID),
			Timestamp:    ts,
			SuggestionID: e.SuggestionID,
			WasHelpful:   e.WasHelpful,
			UserFeedback: e.UserFeedback,
			Week:         domain.IntFromPtrWithDefault(0, e.Week),
		})
	}

	return u, nil
}

// convertProfile keeps stored week and trimester as they were. A missing
// trimester is derived from the week.
func convertProfile(p *ProfileImport, now time.Time) (domain.Profile, error) {
	out := domain.Profile{
		CurrentWeek:     domain.IntFromPtrWithDefault(0, p.CurrentWeek),
		DueDate:         derefStr(p.DueDate),
		LMP:             derefStr(p.LMP),
		Allergies:       nonNilStrings(p.Allergies),
		FoodPreferences: nonNilStrings(p.FoodPreferences),
		CreatedAt:       now,
	}
	out.Trimester = domain.IntFromPtrWithDefault(domain.TrimesterForWeek(out.CurrentWeek), p.Trimester)

	if p.CreatedAt != "" {
		created, err := parseTimestamp(p.CreatedAt)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("profile.created_at: %w", err)
		}
		out.CreatedAt = created
	}
	return out, nil
}

func idOrNew(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
