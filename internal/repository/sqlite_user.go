package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dpp0007/HackHerth/internal/db"
	"github.com/dpp0007/HackHerth/internal/domain"
)

type SQLiteUserRepo struct {
	db db.DBTX
}

func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: conn}
}

func (r *SQLiteUserRepo) Create(ctx context.Context, userID string, p domain.Profile) error {
	allergies, err := encodeStrings(p.Allergies)
	if err != nil {
		return err
	}
	prefs, err := encodeStrings(p.FoodPreferences)
	if err != nil {
		return err
	}
	created := formatTime(p.CreatedAt)
	query := `INSERT INTO users (id, current_week, trimester, due_date, lmp, allergies,
		food_preferences, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		userID,
		p.CurrentWeek,
		p.Trimester,
		p.DueDate,
		p.LMP,
		allergies,
		prefs,
		created,
		created,
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) Ensure(ctx context.Context, userID string, now time.Time) error {
	ts := formatTime(now)
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (id, created_at, updated_at) VALUES (?, ?, ?)`,
		userID, ts, ts)
	if err != nil {
		return fmt.Errorf("ensuring user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) Exists(ctx context.Context, userID string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE id = ?`, userID).Scan(&n); err != nil {
		return false, fmt.Errorf("checking user: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteUserRepo) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT current_week, trimester, due_date, lmp, allergies, food_preferences, created_at
		FROM users WHERE id = ?`
	var (
		p                      domain.Profile
		allergies, prefs, made string
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.CurrentWeek,
		&p.Trimester,
		&p.DueDate,
		&p.LMP,
		&allergies,
		&prefs,
		&made,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user profile: %w", err)
	}

	if p.Allergies, err = decodeStrings(allergies); err != nil {
		return nil, err
	}
	if p.FoodPreferences, err = decodeStrings(prefs); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(made); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteUserRepo) UpdateProfile(ctx context.Context, userID string, p domain.Profile) error {
	allergies, err := encodeStrings(p.Allergies)
	if err != nil {
		return err
	}
	prefs, err := encodeStrings(p.FoodPreferences)
	if err != nil {
		return err
	}
	query := `UPDATE users SET current_week = ?, trimester = ?, due_date = ?, lmp = ?,
		allergies = ?, food_preferences = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.CurrentWeek,
		p.Trimester,
		p.DueDate,
		p.LMP,
		allergies,
		prefs,
		nowUTC(),
		userID,
	)
	if err != nil {
		return fmt.Errorf("updating user profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating user profile: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return nil
}
