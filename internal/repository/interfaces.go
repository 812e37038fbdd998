package repository

import (
	"context"
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, userID string, p domain.Profile) error
	// Ensure creates an empty user record if none exists yet.
	Ensure(ctx context.Context, userID string, now time.Time) error
	Exists(ctx context.Context, userID string) (bool, error)
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID string, p domain.Profile) error
}

type LogRepo interface {
	AddMood(ctx context.Context, userID string, e domain.MoodEntry) error
	AddSymptom(ctx context.Context, userID string, e domain.SymptomEntry) error
	AddNutrition(ctx context.Context, userID string, e domain.NutritionEntry) error
	AddTodo(ctx context.Context, userID string, e domain.TodoEntry) error
	CompleteTodo(ctx context.Context, userID, todoID string, at time.Time) error
	ListTodos(ctx context.Context, userID string) ([]domain.TodoEntry, error)
	AddAgentLog(ctx context.Context, userID string, e domain.AgentLogEntry) error
	AddFeedback(ctx context.Context, userID string, f domain.LearningFeedback) error
	// LoadUserData returns the full record with every log in insertion order.
	LoadUserData(ctx context.Context, userID string) (*domain.UserData, error)
}
