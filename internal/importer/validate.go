package importer

import (
	"fmt"
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
)

var validSafetyLevels = map[string]bool{"safe": true, "warning": true, "critical": true}

// ValidateUserFile checks a legacy user file before conversion.
// Returns a slice of all validation errors found.
func ValidateUserFile(f *UserFile) []error {
	var errs []error

	if f.UserID == "" {
		errs = append(errs, fmt.Errorf("user_id is required"))
	}
	errs = append(errs, validateProfile(&f.Profile)...)

	for i, e := range f.MoodLog {
		prefix := fmt.Sprintf("mood_log[%d]", i)
		errs = append(errs, validateEntry(prefix, e.Timestamp, e.Week)...)
		if e.EmotionalState == "" {
			errs = append(errs, fmt.Errorf("%s.emotional_state is required", prefix))
		}
	}
	for i, e := range f.SymptomLog {
		prefix := fmt.Sprintf("symptom_log[%d]", i)
		errs = append(errs, validateEntry(prefix, e.Timestamp, e.Week)...)
		if e.Symptom == "" {
			errs = append(errs, fmt.Errorf("%s.symptom is required", prefix))
		}
		if e.Severity != "" && !domain.ValidSeverities[e.Severity] {
			errs = append(errs, fmt.Errorf("%s.severity: invalid value %q", prefix, e.Severity))
		}
	}
	for i, e := range f.NutritionLog {
		prefix := fmt.Sprintf("nutrition_log[%d]", i)
		errs = append(errs, validateEntry(prefix, e.Timestamp, e.Week)...)
		if e.FoodQuery == "" {
			errs = append(errs, fmt.Errorf("%s.food_query is required", prefix))
		}
	}
	for i, e := range f.TodoList {
		prefix := fmt.Sprintf("todo_list[%d]", i)
		errs = append(errs, validateEntry(prefix, e.Timestamp, e.Week)...)
		if e.Task == "" {
			errs = append(errs, fmt.Errorf("%s.task is required", prefix))
		}
		if e.Priority != "" && !domain.ValidPriorities[e.Priority] {
			errs = append(errs, fmt.Errorf("%s.priority: invalid value %q", prefix, e.Priority))
		}
		if e.DueDate != "" {
			if _, err := domain.ParseDate(e.DueDate); err != nil {
				errs = append(errs, fmt.Errorf("%s.due_date: %w", prefix, err))
			}
		}
	}
	for i, e := range f.AgentLog {
		prefix := fmt.Sprintf("agent_log[%d]", i)
		errs = append(errs, validateEntry(prefix, e.Timestamp, e.Week)...)
		if e.Event == "" {
			errs = append(errs, fmt.Errorf("%s.event is required", prefix))
		}
		if e.Data != nil && e.Data.SafetyAnalysis != nil && !validSafetyLevels[e.Data.SafetyAnalysis.SafetyLevel] {
			errs = append(errs, fmt.Errorf("%s.data.safety_analysis.safety_level: invalid value %q", prefix, e.Data.SafetyAnalysis.SafetyLevel))
		}
	}
	for i, e := range f.LearningData {
		prefix := fmt.Sprintf("learning_data[%d]", i)
		errs = append(errs, validateEntry(prefix, e.Timestamp, e.Week)...)
		if e.SuggestionID == "" {
			errs = append(errs, fmt.Errorf("%s.suggestion_id is required", prefix))
		}
	}

	errs = append(errs, validateUniqueIDs(f)...)
	return errs
}

func validateProfile(p *ProfileImport) []error {
	var errs []error

	if p.LMP != nil && *p.LMP != "" {
		if _, err := domain.ParseDate(*p.LMP); err != nil {
			errs = append(errs, fmt.Errorf("profile.lmp: %w", err))
		}
	}
	if p.DueDate != nil && *p.DueDate != "" {
		if _, err := domain.ParseDate(*p.DueDate); err != nil {
			errs = append(errs, fmt.Errorf("profile.due_date: %w", err))
		}
	}
	if p.CurrentWeek != nil && (*p.CurrentWeek < 0 || *p.CurrentWeek > 42) {
		errs = append(errs, fmt.Errorf("profile.current_week must be between 0 and 42, got %d", *p.CurrentWeek))
	}
	if p.Trimester != nil && (*p.Trimester < 0 || *p.Trimester > 3) {
		errs = append(errs, fmt.Errorf("profile.trimester must be between 0 and 3, got %d", *p.Trimester))
	}
	if p.CreatedAt != "" {
		if _, err := parseTimestamp(p.CreatedAt); err != nil {
			errs = append(errs, fmt.Errorf("profile.created_at: %w", err))
		}
	}

	return errs
}

func validateEntry(prefix, timestamp string, week *int) []error {
	var errs []error

	if timestamp == "" {
		errs = append(errs, fmt.Errorf("%s.timestamp is required", prefix))
	} else if _, err := parseTimestamp(timestamp); err != nil {
		errs = append(errs, fmt.Errorf("%s.timestamp: %w", prefix, err))
	}
	if week != nil && (*week < 0 || *week > 42) {
		errs = append(errs, fmt.Errorf("%s.week must be between 0 and 42, got %d", prefix, *week))
	}

	return errs
}

// validateUniqueIDs rejects an explicit entry ID that appears twice in the
// file. Entries without an ID get a fresh one on conversion.
func validateUniqueIDs(f *UserFile) []error {
	var errs []error
	seen := make(map[string]string)
	check := func(prefix, id string) {
		if id == "" {
			return
		}
		if first, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("%s.id %q duplicates %s", prefix, id, first))
			return
		}
		seen[id] = prefix
	}

	for i, e := range f.MoodLog {
		check(fmt.Sprintf("mood_log[%d]", i), e.ID)
	}
	for i, e := range f.SymptomLog {
		check(fmt.Sprintf("symptom_log[%d]", i), e.ID)
	}
	for i, e := range f.NutritionLog {
		check(fmt.Sprintf("nutrition_log[%d]", i), e.ID)
	}
	for i, e := range f.TodoList {
		check(fmt.Sprintf("todo_list[%d]", i), e.ID)
	}
	for i, e := range f.AgentLog {
		check(fmt.Sprintf("agent_log[%d]", i), e.ID)
	}
	for i, e := range f.LearningData {
		check(fmt.Sprintf("learning_data[%d]", i), e.ID)
	}
	return errs
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q (expected RFC3339)", s)
	}
	return t.UTC(), nil
}
