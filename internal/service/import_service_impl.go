package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dpp0007/HackHerth/internal/db"
	"github.com/dpp0007/HackHerth/internal/importer"
	"github.com/dpp0007/HackHerth/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportUserFile(ctx context.Context, filePath string, now time.Time) (*ImportResult, error) {
	f, err := importer.LoadUserFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportUserData(ctx, f, now)
}

func (s *importService) ImportUserData(ctx context.Context, f *importer.UserFile, now time.Time) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": f.UserID}
	defer func() { observe(ctx, s.observer, "import-user", startedAt, fields, err) }()

	if errs := importer.ValidateUserFile(f); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	u, err := importer.Convert(f, resolveNow(now))
	if err != nil {
		return nil, fmt.Errorf("converting user file: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		users := repository.NewSQLiteUserRepo(tx)
		logs := repository.NewSQLiteLogRepo(tx)

		exists, err := users.Exists(ctx, u.UserID)
		if err != nil {
			return err
		}
		if exists {
			return invalid("user_id", fmt.Sprintf("user %s already exists", u.UserID))
		}
		if err := users.Create(ctx, u.UserID, u.Profile); err != nil {
			return fmt.Errorf("creating user: %w", err)
		}

		for _, e := range u.MoodLog {
			if err := logs.AddMood(ctx, u.UserID, e); err != nil {
				return err
			}
		}
		for _, e := range u.SymptomLog {
			if err := logs.AddSymptom(ctx, u.UserID, e); err != nil {
				return err
			}
		}
		for _, e := range u.NutritionLog {
			if err := logs.AddNutrition(ctx, u.UserID, e); err != nil {
				return err
			}
		}
		for _, e := range u.TodoList {
			if err := logs.AddTodo(ctx, u.UserID, e); err != nil {
				return err
			}
		}
		for _, e := range u.AgentLog {
			if err := logs.AddAgentLog(ctx, u.UserID, e); err != nil {
				return err
			}
		}
		for _, fb := range u.LearningFeedback {
			if err := logs.AddFeedback(ctx, u.UserID, fb); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &ImportResult{
		UserID:           u.UserID,
		MoodEntries:      len(u.MoodLog),
		SymptomEntries:   len(u.SymptomLog),
		NutritionEntries: len(u.NutritionLog),
		Todos:            len(u.TodoList),
		AgentEvents:      len(u.AgentLog),
		Feedback:         len(u.LearningFeedback),
	}
	fields["entries"] = result.MoodEntries + result.SymptomEntries + result.NutritionEntries +
		result.Todos + result.AgentEvents + result.Feedback
	return result, nil
}

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - " + e.Error())
	}
	return invalid("file", b.String())
}
