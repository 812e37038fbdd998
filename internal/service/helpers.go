package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
	"github.com/dpp0007/HackHerth/internal/repository"
)

func resolveNow(now time.Time) time.Time {
	if now.IsZero() {
		return time.Now().UTC()
	}
	return now.UTC()
}

func requireUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return invalid("user_id", "is required")
	}
	return nil
}

// loadOrDefault returns the stored record, or the empty default for a user
// that has never written anything.
func loadOrDefault(ctx context.Context, logs repository.LogRepo, userID string, now time.Time) (*domain.UserData, error) {
	u, err := logs.LoadUserData(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewUserData(userID, now), nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ensureWeek creates the user if needed and returns the current week stamped
// onto new log entries.
func ensureWeek(ctx context.Context, users repository.UserRepo, userID string, now time.Time) (int, error) {
	if err := users.Ensure(ctx, userID, now); err != nil {
		return 0, err
	}
	p, err := users.GetProfile(ctx, userID)
	if err != nil {
		return 0, err
	}
	return p.CurrentWeek, nil
}
