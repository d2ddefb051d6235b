package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielmeier/cramplan/internal/db"
	"github.com/danielmeier/cramplan/internal/domain"
)

// SQLitePlanRepo implements PlanRepo on a db.DBTX, so the same type serves
// both standalone reads and transactional writes.
type SQLitePlanRepo struct {
	db db.DBTX
}

func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.StudyPlan) error {
	hoursJSON, err := json.Marshal(p.Hours)
	if err != nil {
		return fmt.Errorf("encoding week hours: %w", err)
	}
	var slotsValue interface{}
	if p.Slots != nil {
		slotsJSON, err := json.Marshal(p.Slots)
		if err != nil {
			return fmt.Errorf("encoding day slots: %w", err)
		}
		slotsValue = string(slotsJSON)
	}

	query := `INSERT INTO study_plans (id, user_id, course, exam_date, week_hours, day_slots, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		p.Course,
		p.ExamDate.Format(dateLayout),
		string(hoursJSON),
		slotsValue,
		boolToInt(p.IsActive),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting study plan: %w", err)
	}
	return nil
}

const planColumns = `id, user_id, course, exam_date, week_hours, day_slots, is_active, created_at, updated_at`

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.StudyPlan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+planColumns+` FROM study_plans WHERE id = ?`, id)
	return scanPlan(row)
}

func (r *SQLitePlanRepo) GetActive(ctx context.Context, userID string) (*domain.StudyPlan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+planColumns+` FROM study_plans WHERE user_id = ? AND is_active = 1 ORDER BY created_at DESC LIMIT 1`,
		userID)
	return scanPlan(row)
}

func (r *SQLitePlanRepo) List(ctx context.Context, userID string) ([]*domain.StudyPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+planColumns+` FROM study_plans WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing study plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.StudyPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating study plans: %w", err)
	}
	return plans, nil
}

func (r *SQLitePlanRepo) DeactivateAll(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE study_plans SET is_active = 0, updated_at = ? WHERE user_id = ? AND is_active = 1`,
		nowUTC(), userID)
	if err != nil {
		return fmt.Errorf("deactivating study plans: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM study_plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting study plan: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*domain.StudyPlan, error) {
	var p domain.StudyPlan
	var examDate, hoursJSON, createdAt, updatedAt string
	var slotsJSON sql.NullString
	var isActive int

	err := row.Scan(&p.ID, &p.UserID, &p.Course, &examDate, &hoursJSON, &slotsJSON, &isActive, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("study plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning study plan: %w", err)
	}

	if p.ExamDate, err = time.Parse(dateLayout, examDate); err != nil {
		return nil, fmt.Errorf("parsing exam date: %w", err)
	}
	if err := json.Unmarshal([]byte(hoursJSON), &p.Hours); err != nil {
		return nil, fmt.Errorf("decoding week hours: %w", err)
	}
	if slotsJSON.Valid && slotsJSON.String != "" {
		if err := json.Unmarshal([]byte(slotsJSON.String), &p.Slots); err != nil {
			return nil, fmt.Errorf("decoding day slots: %w", err)
		}
	}
	p.IsActive = intToBool(isActive)
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
