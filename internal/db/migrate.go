package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and the full
// list re-runs on every open; additive ALTER TABLE statements tolerate the
// duplicate-column error they produce on databases that already have the
// column.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS study_plans (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		course      TEXT NOT NULL
		            CHECK(course IN ('AA_HL','AA_SL','AI_HL','AI_SL')),
		exam_date   TEXT NOT NULL,
		week_hours  TEXT NOT NULL,
		day_slots   TEXT,
		is_active   INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_study_plans_user_active
		ON study_plans(user_id, is_active)`,

	`CREATE TABLE IF NOT EXISTS scheduled_sessions (
		id              TEXT PRIMARY KEY,
		plan_id         TEXT NOT NULL REFERENCES study_plans(id) ON DELETE CASCADE,
		user_id         TEXT NOT NULL,
		topic_id        TEXT NOT NULL,
		topic_name      TEXT NOT NULL,
		scheduled_date  TEXT NOT NULL,
		estimated_min   INTEGER NOT NULL,
		status          TEXT NOT NULL DEFAULT 'pending'
		                CHECK(status IN ('pending','completed','missed','rescheduled')),
		kind            TEXT NOT NULL DEFAULT 'study'
		                CHECK(kind IN ('study','review','recovery')),
		part_index      INTEGER NOT NULL DEFAULT 0,
		part_total      INTEGER NOT NULL DEFAULT 0,
		completed_at    TEXT,
		xp_earned       INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_plan_date
		ON scheduled_sessions(plan_id, scheduled_date)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_user_status_date
		ON scheduled_sessions(user_id, status, scheduled_date)`,

	`ALTER TABLE scheduled_sessions ADD COLUMN needs_tutor_help INTEGER NOT NULL DEFAULT 0`,

	`CREATE TABLE IF NOT EXISTS study_session_logs (
		id                    TEXT PRIMARY KEY,
		user_id               TEXT NOT NULL,
		scheduled_session_id  TEXT NOT NULL REFERENCES scheduled_sessions(id) ON DELETE CASCADE,
		duration_min          INTEGER NOT NULL,
		started_at            TEXT NOT NULL,
		ended_at              TEXT NOT NULL,
		xp_earned             INTEGER NOT NULL DEFAULT 0,
		confidence            TEXT
		                      CHECK(confidence IN ('low','medium','high')),
		created_at            TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_logs_user
		ON study_session_logs(user_id)`,

	`CREATE TABLE IF NOT EXISTS profiles (
		id               TEXT PRIMARY KEY,
		total_xp         INTEGER NOT NULL DEFAULT 0,
		current_streak   INTEGER NOT NULL DEFAULT 0,
		longest_streak   INTEGER NOT NULL DEFAULT 0,
		last_study_date  TEXT,
		created_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS topic_assessments (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		plan_id     TEXT NOT NULL REFERENCES study_plans(id) ON DELETE CASCADE,
		topic_id    TEXT NOT NULL,
		confidence  TEXT NOT NULL
		            CHECK(confidence IN ('known','needs_work','new')),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		UNIQUE(plan_id, topic_id)
	)`,

	`CREATE TABLE IF NOT EXISTS weekly_overrides (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		plan_id     TEXT NOT NULL REFERENCES study_plans(id) ON DELETE CASCADE,
		week_start  TEXT NOT NULL,
		week_hours  TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		UNIQUE(plan_id, week_start)
	)`,

	`CREATE TABLE IF NOT EXISTS user_badges (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		badge_id   TEXT NOT NULL,
		earned_at  TEXT NOT NULL,
		UNIQUE(user_id, badge_id)
	)`,
}
