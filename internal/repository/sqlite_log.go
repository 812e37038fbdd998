package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dpp0007/HackHerth/internal/db"
	"github.com/dpp0007/HackHerth/internal/domain"
)

type SQLiteLogRepo struct {
	db db.DBTX
}

func NewSQLiteLogRepo(conn db.DBTX) *SQLiteLogRepo {
	return &SQLiteLogRepo{db: conn}
}

func (r *SQLiteLogRepo) AddMood(ctx context.Context, userID string, e domain.MoodEntry) error {
	query := `INSERT INTO mood_log (id, user_id, timestamp, emotional_state, notes, week)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, userID, formatTime(e.Timestamp), e.EmotionalState, e.Notes, e.Week)
	if err != nil {
		return fmt.Errorf("inserting mood entry: %w", err)
	}
	return nil
}

func (r *SQLiteLogRepo) AddSymptom(ctx context.Context, userID string, e domain.SymptomEntry) error {
	query := `INSERT INTO symptom_log (id, user_id, timestamp, symptom, severity, is_emergency,
		agent_response, week)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		userID,
		formatTime(e.Timestamp),
		e.Symptom,
		string(e.Severity),
		boolToInt(e.IsEmergency),
		e.AgentResponse,
		e.Week,
	)
	if err != nil {
		return fmt.Errorf("inserting symptom entry: %w", err)
	}
	return nil
}

func (r *SQLiteLogRepo) AddNutrition(ctx context.Context, userID string, e domain.NutritionEntry) error {
	query := `INSERT INTO nutrition_log (id, user_id, timestamp, food_query, is_safe,
		allergen_warning, agent_response, week)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		userID,
		formatTime(e.Timestamp),
		e.FoodQuery,
		boolToInt(e.IsSafe),
		boolToInt(e.AllergenWarning),
		e.AgentResponse,
		e.Week,
	)
	if err != nil {
		return fmt.Errorf("inserting nutrition entry: %w", err)
	}
	return nil
}

func (r *SQLiteLogRepo) AddTodo(ctx context.Context, userID string, e domain.TodoEntry) error {
	query := `INSERT INTO todo_list (id, user_id, timestamp, task, priority, due_date, completed, week)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		userID,
		formatTime(e.Timestamp),
		e.Task,
		string(e.Priority),
		e.DueDate,
		boolToInt(e.Completed),
		e.Week,
	)
	if err != nil {
		return fmt.Errorf("inserting todo: %w", err)
	}
	return nil
}

func (r *SQLiteLogRepo) CompleteTodo(ctx context.Context, userID, todoID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE todo_list SET completed = 1, completed_at = ? WHERE id = ? AND user_id = ?`,
		formatTime(at), todoID, userID)
	if err != nil {
		return fmt.Errorf("completing todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("completing todo: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("todo %s: %w", todoID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteLogRepo) ListTodos(ctx context.Context, userID string) ([]domain.TodoEntry, error) {
	todos, err := queryAll(ctx, r.db,
		`SELECT id, timestamp, task, priority, due_date, completed, week
		FROM todo_list WHERE user_id = ? ORDER BY rowid`,
		scanTodo, userID)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	return todos, nil
}

func (r *SQLiteLogRepo) AddAgentLog(ctx context.Context, userID string, e domain.AgentLogEntry) error {
	keywords, err := encodeStrings(e.DetectedKeywords)
	if err != nil {
		return err
	}
	query := `INSERT INTO agent_log (id, user_id, timestamp, event, message, safety_level,
		detected_keywords, escalated, week)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		e.ID,
		userID,
		formatTime(e.Timestamp),
		string(e.Event),
		e.Message,
		string(e.SafetyLevel),
		keywords,
		boolToInt(e.Escalated),
		e.Week,
	)
	if err != nil {
		return fmt.Errorf("inserting agent log entry: %w", err)
	}
	return nil
}

func (r *SQLiteLogRepo) AddFeedback(ctx context.Context, userID string, f domain.LearningFeedback) error {
	query := `INSERT INTO learning_feedback (id, user_id, timestamp, suggestion_id, was_helpful,
		user_feedback, week)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		f.ID,
		userID,
		formatTime(f.Timestamp),
		f.SuggestionID,
		boolToInt(f.WasHelpful),
		f.UserFeedback,
		f.Week,
	)
	if err != nil {
		return fmt.Errorf("inserting learning feedback: %w", err)
	}
	return nil
}

func (r *SQLiteLogRepo) LoadUserData(ctx context.Context, userID string) (*domain.UserData, error) {
	profile, err := NewSQLiteUserRepo(r.db).GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	u := &domain.UserData{UserID: userID, Profile: *profile}

	if u.MoodLog, err = queryAll(ctx, r.db,
		`SELECT id, timestamp, emotional_state, notes, week
		FROM mood_log WHERE user_id = ? ORDER BY rowid`,
		scanMood, userID); err != nil {
		return nil, fmt.Errorf("loading mood log: %w", err)
	}
	if u.SymptomLog, err = queryAll(ctx, r.db,
		`SELECT id, timestamp, symptom, severity, is_emergency, agent_response, week
		FROM symptom_log WHERE user_id = ? ORDER BY rowid`,
		scanSymptom, userID); err != nil {
		return nil, fmt.Errorf("loading symptom log: %w", err)
	}
	if u.NutritionLog, err = queryAll(ctx, r.db,
		`SELECT id, timestamp, food_query, is_safe, allergen_warning, agent_response, week
		FROM nutrition_log WHERE user_id = ? ORDER BY rowid`,
		scanNutrition, userID); err != nil {
		return nil, fmt.Errorf("loading nutrition log: %w", err)
	}
	if u.TodoList, err = r.ListTodos(ctx, userID); err != nil {
		return nil, err
	}
	if u.AgentLog, err = queryAll(ctx, r.db,
		`SELECT id, timestamp, event, message, safety_level, detected_keywords, escalated, week
		FROM agent_log WHERE user_id = ? ORDER BY rowid`,
		scanAgentLog, userID); err != nil {
		return nil, fmt.Errorf("loading agent log: %w", err)
	}
	if u.LearningFeedback, err = queryAll(ctx, r.db,
		`SELECT id, timestamp, suggestion_id, was_helpful, user_feedback, week
		FROM learning_feedback WHERE user_id = ? ORDER BY rowid`,
		scanFeedback, userID); err != nil {
		return nil, fmt.Errorf("loading learning feedback: %w", err)
	}
	return u, nil
}

func scanMood(s scanner) (domain.MoodEntry, error) {
	var (
		e  domain.MoodEntry
		ts string
	)
	if err := s.Scan(&e.ID, &ts, &e.EmotionalState, &e.Notes, &e.Week); err != nil {
		return e, fmt.Errorf("scanning mood entry: %w", err)
	}
	var err error
	e.Timestamp, err = parseTime(ts)
	return e, err
}

func scanSymptom(s scanner) (domain.SymptomEntry, error) {
	var (
		e            domain.SymptomEntry
		ts, severity string
		emergency    int
	)
	if err := s.Scan(&e.ID, &ts, &e.Symptom, &severity, &emergency, &e.AgentResponse, &e.Week); err != nil {
		return e, fmt.Errorf("scanning symptom entry: %w", err)
	}
	e.Severity = domain.SymptomSeverity(severity)
	e.IsEmergency = intToBool(emergency)
	var err error
	e.Timestamp, err = parseTime(ts)
	return e, err
}

func scanNutrition(s scanner) (domain.NutritionEntry, error) {
	var (
		e              domain.NutritionEntry
		ts             string
		safe, allergen int
	)
	if err := s.Scan(&e.ID, &ts, &e.FoodQuery, &safe, &allergen, &e.AgentResponse, &e.Week); err != nil {
		return e, fmt.Errorf("scanning nutrition entry: %w", err)
	}
	e.IsSafe = intToBool(safe)
	e.AllergenWarning = intToBool(allergen)
	var err error
	e.Timestamp, err = parseTime(ts)
	return e, err
}

func scanTodo(s scanner) (domain.TodoEntry, error) {
	var (
		e            domain.TodoEntry
		ts, priority string
		completed    int
	)
	if err := s.Scan(&e.ID, &ts, &e.Task, &priority, &e.DueDate, &completed, &e.Week); err != nil {
		return e, fmt.Errorf("scanning todo: %w", err)
	}
	e.Priority = domain.Priority(priority)
	e.Completed = intToBool(completed)
	var err error
	e.Timestamp, err = parseTime(ts)
	return e, err
}

func scanAgentLog(s scanner) (domain.AgentLogEntry, error) {
	var (
		e                         domain.AgentLogEntry
		ts, event, level, keyword string
		escalated                 int
	)
	if err := s.Scan(&e.ID, &ts, &event, &e.Message, &level, &keyword, &escalated, &e.Week); err != nil {
		return e, fmt.Errorf("scanning agent log entry: %w", err)
	}
	e.Event = domain.AgentEvent(event)
	e.SafetyLevel = domain.SafetyLevel(level)
	e.Escalated = intToBool(escalated)
	var err error
	if e.DetectedKeywords, err = decodeStrings(keyword); err != nil {
		return e, err
	}
	e.Timestamp, err = parseTime(ts)
	return e, err
}

func scanFeedback(s scanner) (domain.LearningFeedback, error) {
	var (
		f       domain.LearningFeedback
		ts      string
		helpful int
	)
	if err := s.Scan(&f.ID, &ts, &f.SuggestionID, &helpful, &f.UserFeedback, &f.Week); err != nil {
		return f, fmt.Errorf("scanning learning feedback: %w", err)
	}
	f.WasHelpful = intToBool(helpful)
	var err error
	f.Timestamp, err = parseTime(ts)
	return f, err
}
