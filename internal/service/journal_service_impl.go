package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dpp0007/HackHerth/internal/db"
	"github.com/dpp0007/HackHerth/internal/domain"
	"github.com/dpp0007/HackHerth/internal/repository"
	"github.com/google/uuid"
)

const sessionStartMessage = "New session started"

type journalService struct {
	users    repository.UserRepo
	logs     repository.LogRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewJournalService(
	users repository.UserRepo,
	logs repository.LogRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) JournalService {
	return &journalService{
		users:    users,
		logs:     logs,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *journalService) StartSession(ctx context.Context, now time.Time) (userID string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "start-session", startedAt, fields, err) }()

	now = resolveNow(now)
	userID = uuid.New().String()
	fields["user_id"] = userID

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteUserRepo(tx).Create(ctx, userID, domain.NewUserData(userID, now).Profile); err != nil {
			return err
		}
		return repository.NewSQLiteLogRepo(tx).AddAgentLog(ctx, userID, domain.AgentLogEntry{
			ID:               uuid.New().String(),
			Timestamp:        now,
			Event:            domain.EventSessionStart,
			Message:          sessionStartMessage,
			DetectedKeywords: []string{},
		})
	})
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *journalService) GetProfile(ctx context.Context, userID string, now time.Time) (*domain.Profile, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	p, err := s.users.GetProfile(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.NewUserData(userID, resolveNow(now)).Profile, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *journalService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate, now time.Time) (profile *domain.Profile, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": userID}
	defer func() { observe(ctx, s.observer, "update-profile", startedAt, fields, err) }()

	if err = requireUserID(userID); err != nil {
		return nil, err
	}
	now = resolveNow(now)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		users := repository.NewSQLiteUserRepo(tx)
		if err := users.Ensure(ctx, userID, now); err != nil {
			return err
		}
		p, err := users.GetProfile(ctx, userID)
		if err != nil {
			return err
		}
		if err := mergeProfile(p, upd, now); err != nil {
			return err
		}
		if err := users.UpdateProfile(ctx, userID, *p); err != nil {
			return err
		}
		profile = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["current_week"] = profile.CurrentWeek
	fields["trimester"] = profile.Trimester
	return profile, nil
}

// mergeProfile applies upd onto p. A new due date or LMP recomputes the week
// and trimester; a bare week recomputes only the trimester.
func mergeProfile(p *domain.Profile, upd ProfileUpdate, now time.Time) error {
	if upd.CurrentWeek != nil {
		p.CurrentWeek = *upd.CurrentWeek
	}
	if upd.Trimester != nil {
		p.Trimester = *upd.Trimester
	}
	if upd.Allergies != nil {
		p.Allergies = upd.Allergies
	}
	if upd.FoodPreferences != nil {
		p.FoodPreferences = upd.FoodPreferences
	}
	if upd.LMP != nil {
		p.LMP = *upd.LMP
	}
	if upd.DueDate != nil {
		p.DueDate = *upd.DueDate
	}

	dueGiven := upd.DueDate != nil && *upd.DueDate != ""
	lmpGiven := upd.LMP != nil && *upd.LMP != ""
	switch {
	case dueGiven || lmpGiven:
		if !dueGiven {
			p.DueDate = ""
		}
		if err := p.ApplyDates(now); err != nil {
			field := "due_date"
			if !dueGiven {
				field = "lmp"
			}
			return invalid(field, err.Error())
		}
	case upd.CurrentWeek != nil && upd.Trimester == nil:
		p.Trimester = domain.TrimesterForWeek(p.CurrentWeek)
	}

	if p.CurrentWeek < 0 || p.CurrentWeek > 42 {
		return invalid("current_week", "must be between 0 and 42")
	}
	if p.Trimester < 0 || p.Trimester > 3 {
		return invalid("trimester", "must be between 0 and 3")
	}
	return nil
}

func (s *journalService) LogMood(ctx context.Context, userID string, in MoodInput, now time.Time) (entry *domain.MoodEntry, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": userID}
	defer func() { observe(ctx, s.observer, "log-mood", startedAt, fields, err) }()

	if err = requireUserID(userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.EmotionalState) == "" {
		return nil, invalid("emotional_state", "is required")
	}
	now = resolveNow(now)
	fields["emotional_state"] = in.EmotionalState

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		week, err := ensureWeek(ctx, repository.NewSQLiteUserRepo(tx), userID, now)
		if err != nil {
			return err
		}
		e := domain.MoodEntry{
			ID:             uuid.New().String(),
			Timestamp:      now,
			EmotionalState: in.EmotionalState,
			Notes:          in.Notes,
			Week:           week,
		}
		if err := repository.NewSQLiteLogRepo(tx).AddMood(ctx, userID, e); err != nil {
			return err
		}
		entry = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *journalService) LogSymptom(ctx context.Context, userID string, in SymptomInput, now time.Time) (entry *domain.SymptomEntry, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": userID}
	defer func() { observe(ctx, s.observer, "log-symptom", startedAt, fields, err) }()

	if err = requireUserID(userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Symptom) == "" {
		return nil, invalid("symptom", "is required")
	}
	severity := domain.SymptomSeverity(domain.CoalesceStr(string(in.Severity), string(domain.SeverityModerate)))
	if !domain.ValidSeverities[string(severity)] {
		return nil, invalid("severity", fmt.Sprintf("unknown severity %q (want mild, moderate or severe)", severity))
	}
	now = resolveNow(now)
	fields["is_emergency"] = in.IsEmergency

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		week, err := ensureWeek(ctx, repository.NewSQLiteUserRepo(tx), userID, now)
		if err != nil {
			return err
		}
		e := domain.SymptomEntry{
			ID:            uuid.New().String(),
			Timestamp:     now,
			Symptom:       in.Symptom,
			Severity:      severity,
			IsEmergency:   in.IsEmergency,
			AgentResponse: in.AgentResponse,
			Week:          week,
		}
		if err := repository.NewSQLiteLogRepo(tx).AddSymptom(ctx, userID, e); err != nil {
			return err
		}
		entry = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *journalService) LogNutrition(ctx context.Context, userID string, in NutritionInput, now time.Time) (entry *domain.NutritionEntry, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": userID}
	defer func() { observe(ctx, s.observer, "log-nutrition", startedAt, fields, err) }()

	if err = requireUserID(userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.FoodQuery) == "" {
		return nil, invalid("food_query", "is required")
	}
	now = resolveNow(now)
	isSafe := domain.BoolFromPtrWithDefault(true, in.IsSafe)
	fields["is_safe"] = isSafe

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		week, err := ensureWeek(ctx, repository.NewSQLiteUserRepo(tx), userID, now)
		if err != nil {
			return err
		}
		e := domain.NutritionEntry{
			ID:              uuid.New().String(),
			Timestamp:       now,
			FoodQuery:       in.FoodQuery,
			IsSafe:          isSafe,
			AllergenWarning: in.AllergenWarning,
			AgentResponse:   in.AgentResponse,
			Week:            week,
		}
		if err := repository.NewSQLiteLogRepo(tx).AddNutrition(ctx, userID, e); err != nil {
			return err
		}
		entry = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *journalService) AddTodo(ctx context.Context, userID string, in TodoInput, now time.Time) (entry *domain.TodoEntry, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": userID}
	defer func() { observe(ctx, s.observer, "add-todo", startedAt, fields, err) }()

	if err = requireUserID(userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Task) == "" {
		return nil, invalid("task", "is required")
	}
	priority := domain.Priority(domain.CoalesceStr(string(in.Priority), string(domain.PriorityMedium)))
	if !domain.ValidPriorities[string(priority)] {
		return nil, invalid("priority", fmt.Sprintf("unknown priority %q (want low, medium or high)", priority))
	}
	now = resolveNow(now)
	due := domain.CoalesceStr(in.DueDate, now.Format(domain.DateLayout))
	if _, perr := domain.ParseDate(due); perr != nil {
		return nil, invalid("due_date", perr.Error())
	}
	fields["priority"] = string(priority)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		week, err := ensureWeek(ctx, repository.NewSQLiteUserRepo(tx), userID, now)
		if err != nil {
			return err
		}
		e := domain.TodoEntry{
			ID:        uuid.New().String(),
			Timestamp: now,
			Task:      in.Task,
			Priority:  priority,
			DueDate:   due,
			Week:      week,
		}
		if err := repository.NewSQLiteLogRepo(tx).AddTodo(ctx, userID, e); err != nil {
			return err
		}
		entry = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *journalService) CompleteTodo(ctx context.Context, userID, todoID string, now time.Time) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": userID, "todo_id": todoID}
	defer func() { observe(ctx, s.observer, "complete-todo", startedAt, fields, err) }()

	if err = requireUserID(userID); err != nil {
		return err
	}
	if strings.TrimSpace(todoID) == "" {
		return invalid("todo_id", "is required")
	}
	return s.logs.CompleteTodo(ctx, userID, todoID, resolveNow(now))
}

func (s *journalService) ListTodos(ctx context.Context, userID string) ([]domain.TodoEntry, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	return s.logs.ListTodos(ctx, userID)
}

func (s *journalService) LogAgentEvent(ctx context.Context, userID string, in AgentEventInput, now time.Time) (entry *domain.AgentLogEntry, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": userID, "event": string(in.Event)}
	defer func() { observe(ctx, s.observer, "log-agent-event", startedAt, fields, err) }()

	if err = requireUserID(userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(in.Event)) == "" {
		return nil, invalid("event", "is required")
	}
	switch in.SafetyLevel {
	case "", domain.SafetySafe, domain.SafetyWarning, domain.SafetyCritical:
	default:
		return nil, invalid("safety_level", fmt.Sprintf("unknown safety level %q", in.SafetyLevel))
	}
	now = resolveNow(now)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		week, err := ensureWeek(ctx, repository.NewSQLiteUserRepo(tx), userID, now)
		if err != nil {
			return err
		}
		e := domain.AgentLogEntry{
			ID:               uuid.New().String(),
			Timestamp:        now,
			Event:            in.Event,
			Message:          in.Message,
			SafetyLevel:      in.SafetyLevel,
			DetectedKeywords: append([]string{}, in.DetectedKeywords...),
			Escalated:        in.Escalated,
			Week:             week,
		}
		if err := repository.NewSQLiteLogRepo(tx).AddAgentLog(ctx, userID, e); err != nil {
			return err
		}
		entry = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *journalService) RecordFeedback(ctx context.Context, userID string, in FeedbackInput, now time.Time) (entry *domain.LearningFeedback, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": userID, "suggestion_id": in.SuggestionID}
	defer func() { observe(ctx, s.observer, "record-feedback", startedAt, fields, err) }()

	if err = requireUserID(userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.SuggestionID) == "" {
		return nil, invalid("suggestion_id", "is required")
	}
	now = resolveNow(now)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		week, err := ensureWeek(ctx, repository.NewSQLiteUserRepo(tx), userID, now)
		if err != nil {
			return err
		}
		f := domain.LearningFeedback{
			ID:           uuid.New().String(),
			Timestamp:    now,
			SuggestionID: in.SuggestionID,
			WasHelpful:   in.WasHelpful,
			UserFeedback: in.UserFeedback,
			Week:         week,
		}
		if err := repository.NewSQLiteLogRepo(tx).AddFeedback(ctx, userID, f); err != nil {
			return err
		}
		entry = &f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *journalService) LoadUserData(ctx context.Context, userID string, now time.Time) (*domain.UserData, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	return loadOrDefault(ctx, s.logs, userID, resolveNow(now))
}
