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

// SQLiteProfileRepo implements ProfileRepo over profiles.
type SQLiteProfileRepo struct {
	db db.DBTX
}

func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

func (r *SQLiteProfileRepo) Get(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT id, total_xp, current_streak, longest_streak, last_study_date, created_at
		FROM profiles WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var p domain.Profile
	var lastStudy sql.NullString
	var createdAt string
	err := row.Scan(&p.ID, &p.TotalXP, &p.CurrentStreak, &p.LongestStreak, &lastStudy, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}

	p.LastStudyDate = parseNullableTime(lastStudy, dateLayout)
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &p, nil
}

func (r *SQLiteProfileRepo) Upsert(ctx context.Context, p *domain.Profile) error {
	query := `INSERT OR REPLACE INTO profiles (id, total_xp, current_streak, longest_streak, last_study_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.TotalXP,
		p.CurrentStreak,
		p.LongestStreak,
		nullableTimeToString(p.LastStudyDate, dateLayout),
		p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}
