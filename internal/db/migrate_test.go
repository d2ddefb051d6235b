package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time — should succeed without error.
	err := Migrate(db)
	require.NoError(t, err)

	// Third time for good measure.
	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"study_plans",
		"scheduled_sessions",
		"study_session_logs",
		"profiles",
		"topic_assessments",
		"weekly_overrides",
		"user_badges",
	}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_study_plans_user_active",
		"idx_sessions_plan_date",
		"idx_sessions_user_status_date",
		"idx_logs_user",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_TutorHelpColumnAdded(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`PRAGMA table_info(scheduled_sessions)`)
	require.NoError(t, err)
	defer rows.Close()

	found := false
	for rows.Next() {
		var cid int
		var name, typ string
		var notNull, pk int
		var dflt sql.NullString
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk))
		if name == "needs_tutor_help" {
			found = true
		}
	}
	assert.True(t, found, "scheduled_sessions should have needs_tutor_help column")
}

func TestMigrate_SessionStatusCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO study_plans (id, user_id, course, exam_date, week_hours, created_at, updated_at)
		VALUES ('p1', 'u1', 'AA_HL', '2026-05-01', '{}', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO scheduled_sessions (id, plan_id, user_id, topic_id, topic_name, scheduled_date, estimated_min, status, created_at)
		VALUES ('s1', 'p1', 'u1', 'aa_1_1', 'Sequences', '2026-01-10', 50, 'INVALID', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "invalid status should be rejected by CHECK constraint")

	_, err = db.Exec(`INSERT INTO scheduled_sessions (id, plan_id, user_id, topic_id, topic_name, scheduled_date, estimated_min, status, created_at)
		VALUES ('s1', 'p1', 'u1', 'aa_1_1', 'Sequences', '2026-01-10', 50, 'pending', '2026-01-01T00:00:00Z')`)
	assert.NoError(t, err)
}

func TestMigrate_InvalidCourseRejected(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO study_plans (id, user_id, course, exam_date, week_hours, created_at, updated_at)
		VALUES ('p1', 'u1', 'NOT_A_COURSE', '2026-05-01', '{}', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "invalid course should be rejected by CHECK constraint")
}

func TestMigrate_SessionsCascadeWithPlan(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO study_plans (id, user_id, course, exam_date, week_hours, created_at, updated_at)
		VALUES ('p1', 'u1', 'AA_SL', '2026-05-01', '{}', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO scheduled_sessions (id, plan_id, user_id, topic_id, topic_name, scheduled_date, estimated_min, created_at)
		VALUES ('s1', 'p1', 'u1', 'aa_1_1', 'Sequences', '2026-01-10', 50, '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM study_plans WHERE id = 'p1'`)
	require.NoError(t, err)

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM scheduled_sessions WHERE plan_id = 'p1'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "deleting a plan should cascade to its sessions")
}

func TestMigrate_BadgeUniquePerUser(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO user_badges (id, user_id, badge_id, earned_at)
		VALUES ('b1', 'u1', 'first_step', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO user_badges (id, user_id, badge_id, earned_at)
		VALUES ('b2', 'u1', 'first_step', '2026-01-02T00:00:00Z')`)
	assert.Error(t, err, "a badge can only be earned once per user")

	_, err = db.Exec(`INSERT INTO user_badges (id, user_id, badge_id, earned_at)
		VALUES ('b3', 'u2', 'first_step', '2026-01-02T00:00:00Z')`)
	assert.NoError(t, err, "a different user can earn the same badge")
}

func TestMigrate_AssessmentUniquePerPlanTopic(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO study_plans (id, user_id, course, exam_date, week_hours, created_at, updated_at)
		VALUES ('p1', 'u1', 'AI_SL', '2026-05-01', '{}', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO topic_assessments (id, user_id, plan_id, topic_id, confidence, created_at, updated_at)
		VALUES ('a1', 'u1', 'p1', 'ai_1_1', 'known', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO topic_assessments (id, user_id, plan_id, topic_id, confidence, created_at, updated_at)
		VALUES ('a2', 'u1', 'p1', 'ai_1_1', 'new', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "one assessment per plan and topic")
}

func TestMigrate_LogConfidenceCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO study_plans (id, user_id, course, exam_date, week_hours, created_at, updated_at)
		VALUES ('p1', 'u1', 'AA_HL', '2026-05-01', '{}', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO scheduled_sessions (id, plan_id, user_id, topic_id, topic_name, scheduled_date, estimated_min, created_at)
		VALUES ('s1', 'p1', 'u1', 'aa_1_1', 'Sequences', '2026-01-10', 50, '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO study_session_logs (id, user_id, scheduled_session_id, duration_min, started_at, ended_at, confidence, created_at)
		VALUES ('l1', 'u1', 's1', 45, '2026-01-10T16:00:00Z', '2026-01-10T16:45:00Z', 'sideways', '2026-01-10T16:45:00Z')`)
	assert.Error(t, err, "invalid confidence should be rejected by CHECK constraint")

	_, err = db.Exec(`INSERT INTO study_session_logs (id, user_id, scheduled_session_id, duration_min, started_at, ended_at, confidence, created_at)
		VALUES ('l1', 'u1', 's1', 45, '2026-01-10T16:00:00Z', '2026-01-10T16:45:00Z', NULL, '2026-01-10T16:45:00Z')`)
	assert.NoError(t, err, "NULL confidence is allowed")
}
