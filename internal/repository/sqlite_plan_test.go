package repository

import (
	"context"
	"testing"
	"time"

	"github.com/danielmeier/cramplan/internal/domain"
	"github.com/danielmeier/cramplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan(
		testutil.WithCourse("AA_HL"),
		testutil.WithExamDate(time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)),
		testutil.WithWeekHours(domain.WeekHours{"mon": 1.5, "sat": 3}),
	)
	require.NoError(t, repo.Create(ctx, plan))

	fetched, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, fetched.ID)
	assert.Equal(t, "AA_HL", fetched.Course)
	assert.Equal(t, "2026-05-04", fetched.ExamDate.Format("2006-01-02"))
	assert.Equal(t, 1.5, fetched.Hours["mon"])
	assert.Equal(t, 3.0, fetched.Hours["sat"])
	assert.True(t, fetched.IsActive)
	assert.Nil(t, fetched.Slots)
}

func TestPlanRepo_RoundTripsDaySlots(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	slots := domain.DaySlots{
		"mon": {{Start: "16:00", End: "17:30"}},
	}
	plan := testutil.NewTestPlan(testutil.WithDaySlots(slots))
	require.NoError(t, repo.Create(ctx, plan))

	fetched, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Slots["mon"], 1)
	assert.Equal(t, "16:00", fetched.Slots["mon"][0].Start)
	assert.Equal(t, "17:30", fetched.Slots["mon"][0].End)
}

func TestPlanRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanRepo_GetActive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	inactive := testutil.NewTestPlan(testutil.WithInactive())
	active := testutil.NewTestPlan()
	require.NoError(t, repo.Create(ctx, inactive))
	require.NoError(t, repo.Create(ctx, active))

	fetched, err := repo.GetActive(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Equal(t, active.ID, fetched.ID)
}

func TestPlanRepo_GetActive_NoneActive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestPlan(testutil.WithInactive())))

	_, err := repo.GetActive(ctx, testutil.TestUserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanRepo_DeactivateAll(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	p1 := testutil.NewTestPlan()
	p2 := testutil.NewTestPlan()
	other := testutil.NewTestPlan(testutil.WithPlanUser("someone-else"))
	require.NoError(t, repo.Create(ctx, p1))
	require.NoError(t, repo.Create(ctx, p2))
	require.NoError(t, repo.Create(ctx, other))

	require.NoError(t, repo.DeactivateAll(ctx, testutil.TestUserID))

	_, err := repo.GetActive(ctx, testutil.TestUserID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Other users are untouched.
	fetched, err := repo.GetActive(ctx, "someone-else")
	require.NoError(t, err)
	assert.Equal(t, other.ID, fetched.ID)
}

func TestPlanRepo_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestPlan()))
	require.NoError(t, repo.Create(ctx, testutil.NewTestPlan(testutil.WithInactive())))

	plans, err := repo.List(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}

func TestPlanRepo_DeleteCascadesToSessions(t *testing.T) {
	db := testutil.NewTestDB(t)
	planRepo := NewSQLitePlanRepo(db)
	sessRepo := NewSQLiteSessionRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan()
	require.NoError(t, planRepo.Create(ctx, plan))
	sess := testutil.NewTestSession(plan.ID)
	require.NoError(t, sessRepo.Create(ctx, sess))

	require.NoError(t, planRepo.Delete(ctx, plan.ID))

	_, err := sessRepo.GetByID(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound, "sessions should be cascade-deleted with the plan")
}
