package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/dpp0007/HackHerth/internal/db"
	"github.com/dpp0007/HackHerth/internal/repository"
	"github.com/dpp0007/HackHerth/internal/testutil"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return UseCaseEvent{}
	}
	return r.events[len(r.events)-1]
}

type testServices struct {
	db           *sql.DB
	journal      JournalService
	intelligence IntelligenceService
	observer     *recordingObserver
}

func setupServices(t *testing.T) testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	return servicesWithUoW(database, testutil.NewTestUoW(database))
}

func servicesWithUoW(database *sql.DB, uow db.UnitOfWork) testServices {
	obs := &recordingObserver{}
	users := repository.NewSQLiteUserRepo(database)
	logs := repository.NewSQLiteLogRepo(database)
	return testServices{
		db:           database,
		journal:      NewJournalService(users, logs, uow, obs),
		intelligence: NewIntelligenceService(logs, uow, obs),
		observer:     obs,
	}
}

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool { return &v }
