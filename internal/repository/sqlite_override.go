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

// SQLiteOverrideRepo implements OverrideRepo over weekly_overrides.
type SQLiteOverrideRepo struct {
	db db.DBTX
}

func NewSQLiteOverrideRepo(conn db.DBTX) *SQLiteOverrideRepo {
	return &SQLiteOverrideRepo{db: conn}
}

// Upsert keys on (plan_id, week_start): reducing an already-reduced week
// replaces the stored hours instead of stacking reductions.
func (r *SQLiteOverrideRepo) Upsert(ctx context.Context, o *domain.WeeklyOverride) error {
	hoursJSON, err := json.Marshal(o.Hours)
	if err != nil {
		return fmt.Errorf("encoding override hours: %w", err)
	}

	query := `INSERT INTO weekly_overrides (id, user_id, plan_id, week_start, week_hours, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(plan_id, week_start) DO UPDATE SET
			week_hours = excluded.week_hours`
	_, err = r.db.ExecContext(ctx, query,
		o.ID,
		o.UserID,
		o.PlanID,
		o.WeekStart.Format(dateLayout),
		string(hoursJSON),
		o.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting weekly override: %w", err)
	}
	return nil
}

func (r *SQLiteOverrideRepo) GetByPlanWeek(ctx context.Context, planID string, weekStart time.Time) (*domain.WeeklyOverride, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, plan_id, week_start, week_hours, created_at
		FROM weekly_overrides WHERE plan_id = ? AND week_start = ?`,
		planID, weekStart.Format(dateLayout))
	o, err := scanOverride(row)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *SQLiteOverrideRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.WeeklyOverride, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, plan_id, week_start, week_hours, created_at
		FROM weekly_overrides WHERE plan_id = ? ORDER BY week_start`, planID)
	if err != nil {
		return nil, fmt.Errorf("listing weekly overrides: %w", err)
	}
	defer rows.Close()

	var overrides []*domain.WeeklyOverride
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating weekly overrides: %w", err)
	}
	return overrides, nil
}

func scanOverride(row rowScanner) (*domain.WeeklyOverride, error) {
	var o domain.WeeklyOverride
	var weekStart, hoursJSON, createdAt string

	err := row.Scan(&o.ID, &o.UserID, &o.PlanID, &weekStart, &hoursJSON, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("weekly override: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning weekly override: %w", err)
	}

	if o.WeekStart, err = time.Parse(dateLayout, weekStart); err != nil {
		return nil, fmt.Errorf("parsing week start: %w", err)
	}
	if err := json.Unmarshal([]byte(hoursJSON), &o.Hours); err != nil {
		return nil, fmt.Errorf("decoding override hours: %w", err)
	}
	if o.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &o, nil
}
