package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielmeier/cramplan/internal/db"
	"github.com/danielmeier/cramplan/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo over scheduled_sessions.
type SQLiteSessionRepo struct {
	db db.DBTX
}

func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

const sessionColumns = `id, plan_id, user_id, topic_id, topic_name, scheduled_date, estimated_min,
	status, kind, part_index, part_total, completed_at, xp_earned, needs_tutor_help, created_at`

const insertSessionQuery = `INSERT INTO scheduled_sessions
	(id, plan_id, user_id, topic_id, topic_name, scheduled_date, estimated_min,
	 status, kind, part_index, part_total, completed_at, xp_earned, needs_tutor_help, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.ScheduledSession) error {
	_, err := r.db.ExecContext(ctx, insertSessionQuery, sessionInsertArgs(s)...)
	if err != nil {
		return fmt.Errorf("inserting scheduled session: %w", err)
	}
	return nil
}

// CreateBatch inserts sessions one statement at a time; callers run it inside
// a unit of work when atomicity matters.
func (r *SQLiteSessionRepo) CreateBatch(ctx context.Context, sessions []*domain.ScheduledSession) error {
	for _, s := range sessions {
		if _, err := r.db.ExecContext(ctx, insertSessionQuery, sessionInsertArgs(s)...); err != nil {
			return fmt.Errorf("inserting scheduled session %s: %w", s.ID, err)
		}
	}
	return nil
}

func sessionInsertArgs(s *domain.ScheduledSession) []any {
	return []any{
		s.ID,
		s.PlanID,
		s.UserID,
		s.TopicID,
		s.TopicName,
		s.ScheduledDate.Format(dateLayout),
		s.EstimatedMin,
		string(s.Status),
		string(s.Kind),
		s.PartIndex,
		s.PartTotal,
		nullableTimeToString(s.CompletedAt, time.RFC3339),
		s.XPEarned,
		boolToInt(s.NeedsTutorHelp),
		s.CreatedAt.Format(time.RFC3339),
	}
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.ScheduledSession, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM scheduled_sessions WHERE id = ?`, id)
	s, err := scanSession(row)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSessionRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.ScheduledSession, error) {
	return r.list(ctx,
		`SELECT `+sessionColumns+` FROM scheduled_sessions
		WHERE plan_id = ? ORDER BY scheduled_date, created_at, id`, planID)
}

func (r *SQLiteSessionRepo) ListByPlanAndStatus(ctx context.Context, planID string, status domain.SessionStatus) ([]*domain.ScheduledSession, error) {
	return r.list(ctx,
		`SELECT `+sessionColumns+` FROM scheduled_sessions
		WHERE plan_id = ? AND status = ? ORDER BY scheduled_date, created_at, id`,
		planID, string(status))
}

func (r *SQLiteSessionRepo) ListByDateRange(ctx context.Context, planID string, from, to time.Time) ([]*domain.ScheduledSession, error) {
	return r.list(ctx,
		`SELECT `+sessionColumns+` FROM scheduled_sessions
		WHERE plan_id = ? AND scheduled_date >= ? AND scheduled_date <= ?
		ORDER BY scheduled_date, created_at, id`,
		planID, from.Format(dateLayout), to.Format(dateLayout))
}

// MarkCompleted is a conditional update: only a pending session completes.
// A second completion attempt finds the row in the wrong state and reports
// ErrConflict rather than double-awarding.
func (r *SQLiteSessionRepo) MarkCompleted(ctx context.Context, id string, completedAt time.Time, xpEarned int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE scheduled_sessions SET status = 'completed', completed_at = ?, xp_earned = ?
		WHERE id = ? AND status = 'pending'`,
		completedAt.UTC().Format(time.RFC3339), xpEarned, id)
	if err != nil {
		return fmt.Errorf("completing session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("completing session: %w", err)
	}
	if affected == 0 {
		var status string
		err := r.db.QueryRowContext(ctx, `SELECT status FROM scheduled_sessions WHERE id = ?`, id).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("scheduled session: %w", ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("checking session status: %w", err)
		}
		return fmt.Errorf("session already %s: %w", status, ErrConflict)
	}
	return nil
}

// MarkMissedBefore flips every pending session dated before the cutoff to
// missed and returns how many rows changed.
func (r *SQLiteSessionRepo) MarkMissedBefore(ctx context.Context, planID string, before time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE scheduled_sessions SET status = 'missed'
		WHERE plan_id = ? AND status = 'pending' AND scheduled_date < ?`,
		planID, before.Format(dateLayout))
	if err != nil {
		return 0, fmt.Errorf("marking sessions missed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("marking sessions missed: %w", err)
	}
	return int(affected), nil
}

func (r *SQLiteSessionRepo) UpdateStatus(ctx context.Context, id string, status domain.SessionStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE scheduled_sessions SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating session status: %w", err)
	}
	return requireAffected(res, "scheduled session")
}

func (r *SQLiteSessionRepo) SetTutorHelp(ctx context.Context, id string, needed bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE scheduled_sessions SET needs_tutor_help = ? WHERE id = ?`, boolToInt(needed), id)
	if err != nil {
		return fmt.Errorf("flagging session for tutor help: %w", err)
	}
	return requireAffected(res, "scheduled session")
}

// CountCompletedForTopic reports prior completed sessions for a user and
// topic; any non-zero count makes the next completion a repeat exposure.
func (r *SQLiteSessionRepo) CountCompletedForTopic(ctx context.Context, userID, topicID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM scheduled_sessions
		WHERE user_id = ? AND topic_id = ? AND status = 'completed'`,
		userID, topicID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting completed sessions: %w", err)
	}
	return count, nil
}

func (r *SQLiteSessionRepo) CountUniqueCompletedTopics(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT topic_id) FROM scheduled_sessions
		WHERE user_id = ? AND status = 'completed'`,
		userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting unique completed topics: %w", err)
	}
	return count, nil
}

func (r *SQLiteSessionRepo) list(ctx context.Context, query string, args ...any) ([]*domain.ScheduledSession, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing scheduled sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.ScheduledSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scheduled sessions: %w", err)
	}
	return sessions, nil
}

func scanSession(row rowScanner) (*domain.ScheduledSession, error) {
	var s domain.ScheduledSession
	var scheduledDate, status, kind, createdAt string
	var completedAt sql.NullString
	var tutorHelp int

	err := row.Scan(&s.ID, &s.PlanID, &s.UserID, &s.TopicID, &s.TopicName,
		&scheduledDate, &s.EstimatedMin, &status, &kind, &s.PartIndex, &s.PartTotal,
		&completedAt, &s.XPEarned, &tutorHelp, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("scheduled session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning scheduled session: %w", err)
	}

	if s.ScheduledDate, err = time.Parse(dateLayout, scheduledDate); err != nil {
		return nil, fmt.Errorf("parsing scheduled date: %w", err)
	}
	s.Status = domain.SessionStatus(status)
	s.Kind = domain.SessionKind(kind)
	s.CompletedAt = parseNullableTime(completedAt, time.RFC3339)
	s.NeedsTutorHelp = intToBool(tutorHelp)
	if s.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &s, nil
}

func requireAffected(res sql.Result, entity string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
