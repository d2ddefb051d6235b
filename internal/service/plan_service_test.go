package service

import (
	"context"
	"testing"
	"time"

	"github.com/danielmeier/cramplan/internal/contract"
	"github.com/danielmeier/cramplan/internal/domain"
	"github.com/danielmeier/cramplan/internal/repository"
	"github.com/danielmeier/cramplan/internal/syllabus"
	"github.com/danielmeier/cramplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monday is a fixed reference date (2026-01-05 is a Monday).
var monday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func newPlanService(t *testing.T) (PlanService, *repository.SQLitePlanRepo, *repository.SQLiteSessionRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	plans := repository.NewSQLitePlanRepo(database)
	sessions := repository.NewSQLiteSessionRepo(database)
	svc := NewPlanService(plans, sessions, testutil.NewTestUoW(database))
	return svc, plans, sessions
}

// allKnownExcept rates every course topic as known except the listed IDs,
// which stay new.
func allKnownExcept(course string, keep ...string) map[string]domain.TopicConfidence {
	keepSet := make(map[string]bool, len(keep))
	for _, id := range keep {
		keepSet[id] = true
	}
	out := make(map[string]domain.TopicConfidence)
	for _, topic := range syllabus.TopicsForCourse(syllabus.Course(course)) {
		if !keepSet[topic.ID] {
			out[topic.ID] = domain.ConfidenceKnown
		}
	}
	return out
}

func TestCreatePlan_PersistsPlanAndSessions(t *testing.T) {
	svc, plans, sessions := newPlanService(t)
	ctx := context.Background()

	req := contract.CreatePlanRequest{
		UserID:      testutil.TestUserID,
		Course:      "AA_SL",
		ExamDate:    monday.AddDate(0, 0, 28),
		Hours:       domain.WeekHours{"mon": 2, "wed": 2},
		Assessments: allKnownExcept("AA_SL", "aa_1_1", "aa_1_2"),
		Today:       &monday,
	}

	summary, err := svc.CreatePlan(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, "AA_SL", summary.Course)
	assert.Equal(t, 28, summary.DaysUntilExam)
	// Two topics, two hours each, nothing halved.
	assert.Equal(t, 4.0, summary.TotalTopicHours)
	assert.False(t, summary.HasCapacityWarning)
	assert.Positive(t, summary.TotalSessions)
	assert.Positive(t, summary.StudyDaysCount)

	plan, err := plans.GetActive(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Equal(t, summary.PlanID, plan.ID)
	assert.True(t, plan.IsActive)

	persisted, err := sessions.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, persisted, summary.TotalSessions)
	for _, s := range persisted {
		assert.Equal(t, domain.SessionPending, s.Status)
		assert.Equal(t, domain.KindStudy, s.Kind)
		assert.False(t, s.ScheduledDate.Before(monday))
	}
}

func TestCreatePlan_PreviewCoversFirstSevenStudyDates(t *testing.T) {
	svc, _, _ := newPlanService(t)

	// Mondays only: 50 usable minutes a week against 360 minutes of topics,
	// so the schedule needs eight Mondays. The preview follows the first
	// seven dates that actually carry sessions, not a calendar week.
	summary, err := svc.CreatePlan(context.Background(), contract.CreatePlanRequest{
		UserID:      testutil.TestUserID,
		Course:      "AA_SL",
		ExamDate:    monday.AddDate(0, 0, 70),
		Hours:       domain.WeekHours{"mon": 1},
		Assessments: allKnownExcept("AA_SL", "aa_1_1", "aa_1_2", "aa_1_3"),
		Today:       &monday,
	})
	require.NoError(t, err)

	assert.Equal(t, 8, summary.StudyDaysCount)

	require.NotEmpty(t, summary.FirstWeekPreview)
	dates := make(map[string]bool)
	for _, v := range summary.FirstWeekPreview {
		dates[v.Date.Format("2006-01-02")] = true
	}
	assert.Len(t, dates, 7)
	last := summary.FirstWeekPreview[len(summary.FirstWeekPreview)-1]
	assert.Equal(t, monday.AddDate(0, 0, 42), last.Date)
}

func TestCreatePlan_DeactivatesPreviousPlan(t *testing.T) {
	svc, plans, _ := newPlanService(t)
	ctx := context.Background()

	old := testutil.NewTestPlan()
	require.NoError(t, plans.Create(ctx, old))

	summary, err := svc.CreatePlan(ctx, contract.CreatePlanRequest{
		UserID:      testutil.TestUserID,
		Course:      "AA_SL",
		ExamDate:    monday.AddDate(0, 0, 14),
		Hours:       domain.WeekHours{"sat": 2},
		Assessments: allKnownExcept("AA_SL", "aa_1_1"),
		Today:       &monday,
	})
	require.NoError(t, err)

	active, err := plans.GetActive(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Equal(t, summary.PlanID, active.ID)

	stale, err := plans.GetByID(ctx, old.ID)
	require.NoError(t, err)
	assert.False(t, stale.IsActive)
}

func TestReset_DeactivatesTheActivePlan(t *testing.T) {
	svc, plans, _ := newPlanService(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan()
	require.NoError(t, plans.Create(ctx, plan))

	require.NoError(t, svc.Reset(ctx, testutil.TestUserID))

	stored, err := plans.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	_, err = plans.GetActive(ctx, testutil.TestUserID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// A second reset finds nothing left to deactivate.
	err = svc.Reset(ctx, testutil.TestUserID)
	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.PlanErrNoActivePlan, planErr.Code)
}

func TestCreatePlan_CollapsesSlotsWhenHoursMissing(t *testing.T) {
	svc, _, _ := newPlanService(t)

	summary, err := svc.CreatePlan(context.Background(), contract.CreatePlanRequest{
		UserID:   testutil.TestUserID,
		Course:   "AA_SL",
		ExamDate: monday.AddDate(0, 0, 14),
		Slots: domain.DaySlots{
			"mon": {{Start: "09:00", End: "11:00"}},
		},
		Assessments: allKnownExcept("AA_SL", "aa_1_1"),
		Today:       &monday,
	})
	require.NoError(t, err)
	assert.Positive(t, summary.TotalSessions)
}

func TestCreatePlan_CapacityShortfallIsAWarningNotAnError(t *testing.T) {
	svc, _, _ := newPlanService(t)

	// One half-hour day for the whole run: almost everything is dropped,
	// but the plan is still created.
	summary, err := svc.CreatePlan(context.Background(), contract.CreatePlanRequest{
		UserID:   testutil.TestUserID,
		Course:   "AA_SL",
		ExamDate: monday.AddDate(0, 0, 6),
		Hours:    domain.WeekHours{"mon": 0.5},
		Today:    &monday,
	})
	require.NoError(t, err)
	assert.True(t, summary.HasCapacityWarning)
	assert.Positive(t, summary.TotalSessions)
}

func TestCreatePlan_Validation(t *testing.T) {
	svc, _, _ := newPlanService(t)

	tests := []struct {
		name string
		req  contract.CreatePlanRequest
		code contract.PlanErrorCode
	}{
		{
			name: "unknown course",
			req: contract.CreatePlanRequest{
				UserID:   testutil.TestUserID,
				Course:   "IB_PHYSICS",
				ExamDate: monday.AddDate(0, 0, 14),
				Hours:    domain.WeekHours{"mon": 2},
				Today:    &monday,
			},
			code: contract.PlanErrInvalidCourse,
		},
		{
			name: "exam today",
			req: contract.CreatePlanRequest{
				UserID:   testutil.TestUserID,
				Course:   "AA_SL",
				ExamDate: monday,
				Hours:    domain.WeekHours{"mon": 2},
				Today:    &monday,
			},
			code: contract.PlanErrExamNotFuture,
		},
		{
			name: "exam in the past",
			req: contract.CreatePlanRequest{
				UserID:   testutil.TestUserID,
				Course:   "AA_SL",
				ExamDate: monday.AddDate(0, 0, -7),
				Hours:    domain.WeekHours{"mon": 2},
				Today:    &monday,
			},
			code: contract.PlanErrExamNotFuture,
		},
		{
			name: "no availability",
			req: contract.CreatePlanRequest{
				UserID:   testutil.TestUserID,
				Course:   "AA_SL",
				ExamDate: monday.AddDate(0, 0, 14),
				Hours:    domain.WeekHours{},
				Today:    &monday,
			},
			code: contract.PlanErrNoAvailability,
		},
		{
			name: "every topic already known",
			req: contract.CreatePlanRequest{
				UserID:      testutil.TestUserID,
				Course:      "AA_SL",
				ExamDate:    monday.AddDate(0, 0, 14),
				Hours:       domain.WeekHours{"mon": 2},
				Assessments: allKnownExcept("AA_SL"),
				Today:       &monday,
			},
			code: contract.PlanErrNoTopics,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePlan(context.Background(), tt.req)
			var planErr *contract.PlanError
			require.ErrorAs(t, err, &planErr)
			assert.Equal(t, tt.code, planErr.Code)
		})
	}
}
