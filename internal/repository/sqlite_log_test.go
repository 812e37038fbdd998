package repository

import (
	"context"
	"testing"
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
	"github.com/dpp0007/HackHerth/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogRepo(t *testing.T, userID string) *SQLiteLogRepo {
	t.Helper()
	database := testutil.NewTestDB(t)
	require.NoError(t, NewSQLiteUserRepo(database).Ensure(context.Background(), userID, testutil.RefNow))
	return NewSQLiteLogRepo(database)
}

func TestLogRepo_LoadUserData_RoundTrip(t *testing.T) {
	repo := newLogRepo(t, "u-1")
	ctx := context.Background()

	mood := testutil.NewTestMood("anxious", testutil.WithNotes("deep breathing"))
	symptom := testutil.NewTestSymptom("heavy bleeding", testutil.WithEmergency(), testutil.WithSeverity(domain.SeveritySevere))
	food := testutil.NewTestNutrition("sushi", testutil.WithUnsafe(), testutil.WithAllergenWarning())
	todo := testutil.NewTestTodo("take vitamin", testutil.WithPriority(domain.PriorityHigh))
	agent := testutil.NewTestAgentLog(domain.EventSafetyCheck, domain.SafetyCritical, "bleeding", "heavy bleeding")
	feedback := domain.LearningFeedback{ID: "f-1", Timestamp: testutil.RefNow, SuggestionID: "mood_support", WasHelpful: true, UserFeedback: "thanks"}

	require.NoError(t, repo.AddMood(ctx, "u-1", mood))
	require.NoError(t, repo.AddSymptom(ctx, "u-1", symptom))
	require.NoError(t, repo.AddNutrition(ctx, "u-1", food))
	require.NoError(t, repo.AddTodo(ctx, "u-1", todo))
	require.NoError(t, repo.AddAgentLog(ctx, "u-1", agent))
	require.NoError(t, repo.AddFeedback(ctx, "u-1", feedback))

	u, err := repo.LoadUserData(ctx, "u-1")
	require.NoError(t, err)

	assert.Equal(t, "u-1", u.UserID)
	assert.Equal(t, []domain.MoodEntry{mood}, u.MoodLog)
	assert.Equal(t, []domain.SymptomEntry{symptom}, u.SymptomLog)
	assert.Equal(t, []domain.NutritionEntry{food}, u.NutritionLog)
	assert.Equal(t, []domain.TodoEntry{todo}, u.TodoList)
	assert.Equal(t, []domain.AgentLogEntry{agent}, u.AgentLog)
	assert.Equal(t, []domain.LearningFeedback{feedback}, u.LearningFeedback)
}

func TestLogRepo_PreservesInsertionOrder(t *testing.T) {
	repo := newLogRepo(t, "u-1")
	ctx := context.Background()

	// Later timestamps first: order must follow insertion, not time.
	states := []string{"happy", "sad", "calm"}
	for i, s := range states {
		at := testutil.RefNow.Add(-time.Duration(i) * time.Hour)
		require.NoError(t, repo.AddMood(ctx, "u-1", testutil.NewTestMood(s, testutil.WithMoodAt(at))))
	}

	u, err := repo.LoadUserData(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, u.MoodLog, 3)
	for i, s := range states {
		assert.Equal(t, s, u.MoodLog[i].EmotionalState)
	}
}

func TestLogRepo_EmptyUserHasEmptyLogs(t *testing.T) {
	repo := newLogRepo(t, "u-1")

	u, err := repo.LoadUserData(context.Background(), "u-1")
	require.NoError(t, err)

	assert.NotNil(t, u.MoodLog)
	assert.Empty(t, u.MoodLog)
	assert.NotNil(t, u.AgentLog)
	assert.Empty(t, u.TodoList)
}

func TestLogRepo_LoadUserData_NotFound(t *testing.T) {
	repo := NewSQLiteLogRepo(testutil.NewTestDB(t))

	_, err := repo.LoadUserData(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLogRepo_CompleteTodo(t *testing.T) {
	repo := newLogRepo(t, "u-1")
	ctx := context.Background()
	todo := testutil.NewTestTodo("drink water")
	require.NoError(t, repo.AddTodo(ctx, "u-1", todo))

	require.NoError(t, repo.CompleteTodo(ctx, "u-1", todo.ID, testutil.RefNow))

	todos, err := repo.ListTodos(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.True(t, todos[0].Completed)

	err = repo.CompleteTodo(ctx, "u-1", "missing", testutil.RefNow)
	assert.ErrorIs(t, err, ErrNotFound)
	err = repo.CompleteTodo(ctx, "someone-else", todo.ID, testutil.RefNow)
	assert.ErrorIs(t, err, ErrNotFound, "todos are scoped to their owner")
}

func TestLogRepo_RejectsUnknownUser(t *testing.T) {
	repo := NewSQLiteLogRepo(testutil.NewTestDB(t))

	err := repo.AddMood(context.Background(), "ghost", testutil.NewTestMood("calm"))
	assert.Error(t, err)
}
