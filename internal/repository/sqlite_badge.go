package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/danielmeier/cramplan/internal/db"
	"github.com/danielmeier/cramplan/internal/domain"
)

// SQLiteBadgeRepo implements BadgeRepo over user_badges.
type SQLiteBadgeRepo struct {
	db db.DBTX
}

func NewSQLiteBadgeRepo(conn db.DBTX) *SQLiteBadgeRepo {
	return &SQLiteBadgeRepo{db: conn}
}

func (r *SQLiteBadgeRepo) Create(ctx context.Context, b *domain.EarnedBadge) error {
	query := `INSERT INTO user_badges (id, user_id, badge_id, earned_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.UserID, b.BadgeID, b.EarnedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting badge: %w", err)
	}
	return nil
}

func (r *SQLiteBadgeRepo) ListByUser(ctx context.Context, userID string) ([]*domain.EarnedBadge, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, badge_id, earned_at FROM user_badges WHERE user_id = ? ORDER BY earned_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("listing badges: %w", err)
	}
	defer rows.Close()

	var badges []*domain.EarnedBadge
	for rows.Next() {
		var b domain.EarnedBadge
		var earnedAt string
		if err := rows.Scan(&b.ID, &b.UserID, &b.BadgeID, &earnedAt); err != nil {
			return nil, fmt.Errorf("scanning badge: %w", err)
		}
		if b.EarnedAt, err = time.Parse(time.RFC3339, earnedAt); err != nil {
			return nil, fmt.Errorf("parsing earned_at: %w", err)
		}
		badges = append(badges, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating badges: %w", err)
	}
	return badges, nil
}
