package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/danielmeier/cramplan/internal/db"
	"github.com/danielmeier/cramplan/internal/domain"
)

// SQLiteAssessmentRepo implements AssessmentRepo over topic_assessments.
type SQLiteAssessmentRepo struct {
	db db.DBTX
}

func NewSQLiteAssessmentRepo(conn db.DBTX) *SQLiteAssessmentRepo {
	return &SQLiteAssessmentRepo{db: conn}
}

// Upsert keys on (plan_id, topic_id): re-rating a topic replaces the prior
// rating but keeps the original created_at.
func (r *SQLiteAssessmentRepo) Upsert(ctx context.Context, a *domain.TopicAssessment) error {
	query := `INSERT INTO topic_assessments (id, user_id, plan_id, topic_id, confidence, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(plan_id, topic_id) DO UPDATE SET
			confidence = excluded.confidence,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.UserID,
		a.PlanID,
		a.TopicID,
		string(a.Confidence),
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting topic assessment: %w", err)
	}
	return nil
}

func (r *SQLiteAssessmentRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.TopicAssessment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, plan_id, topic_id, confidence, created_at, updated_at
		FROM topic_assessments WHERE plan_id = ? ORDER BY topic_id`, planID)
	if err != nil {
		return nil, fmt.Errorf("listing topic assessments: %w", err)
	}
	defer rows.Close()

	var assessments []*domain.TopicAssessment
	for rows.Next() {
		var a domain.TopicAssessment
		var confidence, createdAt, updatedAt string
		if err := rows.Scan(&a.ID, &a.UserID, &a.PlanID, &a.TopicID, &confidence, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning topic assessment: %w", err)
		}
		a.Confidence = domain.TopicConfidence(confidence)
		if a.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		if a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		assessments = append(assessments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating topic assessments: %w", err)
	}
	return assessments, nil
}
