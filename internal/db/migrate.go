package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is idempotent so it runs on
// each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Logs are read back ordered by rowid, which preserves insertion order.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id               TEXT PRIMARY KEY,
		current_week     INTEGER NOT NULL DEFAULT 0 CHECK(current_week >= 0),
		trimester        INTEGER NOT NULL DEFAULT 0 CHECK(trimester BETWEEN 0 AND 3),
		due_date         TEXT NOT NULL DEFAULT '',
		lmp              TEXT NOT NULL DEFAULT '',
		allergies        TEXT NOT NULL DEFAULT '[]',
		food_preferences TEXT NOT NULL DEFAULT '[]',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS mood_log (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		timestamp       TEXT NOT NULL,
		emotional_state TEXT NOT NULL,
		notes           TEXT NOT NULL DEFAULT '',
		week            INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS symptom_log (
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		timestamp      TEXT NOT NULL,
		symptom        TEXT NOT NULL,
		severity       TEXT NOT NULL DEFAULT 'moderate'
		               CHECK(severity IN ('mild','moderate','severe')),
		is_emergency   INTEGER NOT NULL DEFAULT 0,
		agent_response TEXT NOT NULL DEFAULT '',
		week           INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS nutrition_log (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		timestamp        TEXT NOT NULL,
		food_query       TEXT NOT NULL,
		is_safe          INTEGER NOT NULL DEFAULT 1,
		allergen_warning INTEGER NOT NULL DEFAULT 0,
		agent_response   TEXT NOT NULL DEFAULT '',
		week             INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS todo_list (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		timestamp    TEXT NOT NULL,
		task         TEXT NOT NULL,
		priority     TEXT NOT NULL DEFAULT 'medium'
		             CHECK(priority IN ('low','medium','high')),
		due_date     TEXT NOT NULL DEFAULT '',
		completed    INTEGER NOT NULL DEFAULT 0,
		completed_at TEXT,
		week         INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS agent_log (
		id                TEXT PRIMARY KEY,
		user_id           TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		timestamp         TEXT NOT NULL,
		event             TEXT NOT NULL,
		message           TEXT NOT NULL DEFAULT '',
		safety_level      TEXT NOT NULL DEFAULT ''
		                  CHECK(safety_level IN ('','safe','warning','critical')),
		detected_keywords TEXT NOT NULL DEFAULT '[]',
		escalated         INTEGER NOT NULL DEFAULT 0,
		week              INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS learning_feedback (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		timestamp     TEXT NOT NULL,
		suggestion_id TEXT NOT NULL,
		was_helpful   INTEGER NOT NULL DEFAULT 0,
		user_feedback TEXT NOT NULL DEFAULT '',
		week          INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_mood_log_user ON mood_log(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_symptom_log_user ON symptom_log(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_nutrition_log_user ON nutrition_log(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_todo_list_user ON todo_list(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_agent_log_user ON agent_log(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_learning_feedback_user ON learning_feedback(user_id)`,
}
