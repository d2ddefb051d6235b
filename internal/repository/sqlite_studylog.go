package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielmeier/cramplan/internal/db"
	"github.com/danielmeier/cramplan/internal/domain"
)

// SQLiteStudyLogRepo implements StudyLogRepo over study_session_logs.
type SQLiteStudyLogRepo struct {
	db db.DBTX
}

func NewSQLiteStudyLogRepo(conn db.DBTX) *SQLiteStudyLogRepo {
	return &SQLiteStudyLogRepo{db: conn}
}

func (r *SQLiteStudyLogRepo) Create(ctx context.Context, l *domain.StudyLog) error {
	var confidence interface{}
	if l.Confidence != nil {
		confidence = string(*l.Confidence)
	}

	query := `INSERT INTO study_session_logs
		(id, user_id, scheduled_session_id, duration_min, started_at, ended_at, xp_earned, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.UserID,
		l.ScheduledSessionID,
		l.DurationMin,
		l.StartedAt.UTC().Format(time.RFC3339),
		l.EndedAt.UTC().Format(time.RFC3339),
		l.XPEarned,
		confidence,
		l.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting study log: %w", err)
	}
	return nil
}

const logColumns = `id, user_id, scheduled_session_id, duration_min, started_at, ended_at, xp_earned, confidence, created_at`

func (r *SQLiteStudyLogRepo) ListBySession(ctx context.Context, sessionID string) ([]*domain.StudyLog, error) {
	return r.list(ctx,
		`SELECT `+logColumns+` FROM study_session_logs WHERE scheduled_session_id = ? ORDER BY started_at`,
		sessionID)
}

// ListRecent returns logs started within the last N days, newest first.
func (r *SQLiteStudyLogRepo) ListRecent(ctx context.Context, userID string, days int) ([]*domain.StudyLog, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)
	return r.list(ctx,
		`SELECT `+logColumns+` FROM study_session_logs
		WHERE user_id = ? AND started_at >= ? ORDER BY started_at DESC`,
		userID, cutoff)
}

func (r *SQLiteStudyLogRepo) list(ctx context.Context, query string, args ...any) ([]*domain.StudyLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing study logs: %w", err)
	}
	defer rows.Close()

	var logs []*domain.StudyLog
	for rows.Next() {
		l, err := scanStudyLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating study logs: %w", err)
	}
	return logs, nil
}

func scanStudyLog(row rowScanner) (*domain.StudyLog, error) {
	var l domain.StudyLog
	var startedAt, endedAt, createdAt string
	var confidence sql.NullString

	err := row.Scan(&l.ID, &l.UserID, &l.ScheduledSessionID, &l.DurationMin,
		&startedAt, &endedAt, &l.XPEarned, &confidence, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("scanning study log: %w", err)
	}

	if l.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if l.EndedAt, err = time.Parse(time.RFC3339, endedAt); err != nil {
		return nil, fmt.Errorf("parsing ended_at: %w", err)
	}
	if confidence.Valid && confidence.String != "" {
		c := domain.SessionConfidence(confidence.String)
		l.Confidence = &c
	}
	if l.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &l, nil
}
