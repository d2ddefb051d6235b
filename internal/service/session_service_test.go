package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/danielmeier/cramplan/internal/contract"
	"github.com/danielmeier/cramplan/internal/domain"
	"github.com/danielmeier/cramplan/internal/repository"
	"github.com/danielmeier/cramplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	db       *sql.DB
	svc      SessionService
	plans    *repository.SQLitePlanRepo
	sessions *repository.SQLiteSessionRepo
	profiles *repository.SQLiteProfileRepo
	logs     *repository.SQLiteStudyLogRepo
	badges   *repository.SQLiteBadgeRepo
	plan     *domain.StudyPlan
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	f := &sessionFixture{
		db:       database,
		plans:    repository.NewSQLitePlanRepo(database),
		sessions: repository.NewSQLiteSessionRepo(database),
		profiles: repository.NewSQLiteProfileRepo(database),
		logs:     repository.NewSQLiteStudyLogRepo(database),
		badges:   repository.NewSQLiteBadgeRepo(database),
	}
	f.svc = NewSessionService(f.sessions, f.plans, testutil.NewTestUoW(database))

	f.plan = testutil.NewTestPlan(
		testutil.WithExamDate(monday.AddDate(0, 2, 0)),
		testutil.WithWeekHours(domain.WeekHours{"mon": 2, "wed": 2, "sat": 3}),
	)
	require.NoError(t, f.plans.Create(context.Background(), f.plan))
	return f
}

func (f *sessionFixture) addSession(t *testing.T, opts ...testutil.SessionOption) *domain.ScheduledSession {
	t.Helper()
	s := testutil.NewTestSession(f.plan.ID, opts...)
	require.NoError(t, f.sessions.Create(context.Background(), s))
	return s
}

func TestComplete_FirstCompletionAwardsFullXP(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	// aa_1_1 is difficulty 1: base 100, on-time +50, no streak yet.
	now := monday.Add(14 * time.Hour)
	session := f.addSession(t, testutil.WithSessionDate(monday))

	result, err := f.svc.Complete(ctx, contract.CompleteSessionRequest{
		UserID:    testutil.TestUserID,
		SessionID: session.ID,
		Now:       &now,
	})
	require.NoError(t, err)

	assert.Equal(t, 100, result.BaseXP)
	assert.Equal(t, 50, result.OnTimeBonus)
	assert.Equal(t, 0, result.StreakBonus)
	assert.Equal(t, 150, result.XPEarned)
	assert.False(t, result.IsReview)
	assert.Equal(t, 1, result.NewStreak)
	assert.Equal(t, 150, result.TotalXP)
	assert.Contains(t, result.NewBadgeIDs, "first_step")

	stored, err := f.sessions.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, stored.Status)
	assert.Equal(t, 150, stored.XPEarned)
	require.NotNil(t, stored.CompletedAt)

	profile, err := f.profiles.Get(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Equal(t, 150, profile.TotalXP)
	assert.Equal(t, 1, profile.CurrentStreak)
	require.NotNil(t, profile.LastStudyDate)
	assert.Equal(t, monday, *profile.LastStudyDate)

	logs, err := f.logs.ListBySession(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, session.EstimatedMin, logs[0].DurationMin)
}

func TestComplete_StreakBonusUsesStreakBeforeCompletion(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	yesterday := monday.AddDate(0, 0, -1)
	require.NoError(t, f.profiles.Upsert(ctx, testutil.NewTestProfile(
		testutil.WithXP(1000),
		testutil.WithStreak(5, 5),
		testutil.WithLastStudyDate(yesterday),
	)))

	now := monday.Add(16 * time.Hour)
	session := f.addSession(t,
		testutil.WithSessionDate(monday),
		testutil.WithTopic("aa_1_2", "Sequences & Series - Geometric"),
	)

	result, err := f.svc.Complete(ctx, contract.CompleteSessionRequest{
		UserID:    testutil.TestUserID,
		SessionID: session.ID,
		Now:       &now,
	})
	require.NoError(t, err)

	// Base 200 (difficulty 2) + 50 on-time + 5*10 from the streak as it
	// stood before this completion.
	assert.Equal(t, 300, result.XPEarned)
	assert.Equal(t, 50, result.StreakBonus)
	assert.Equal(t, 6, result.NewStreak)
	assert.Equal(t, 1300, result.TotalXP)
}

func TestComplete_SecondAttemptFailsAndChangesNothing(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	now := monday.Add(10 * time.Hour)
	session := f.addSession(t, testutil.WithSessionDate(monday))
	req := contract.CompleteSessionRequest{
		UserID:    testutil.TestUserID,
		SessionID: session.ID,
		Now:       &now,
	}

	first, err := f.svc.Complete(ctx, req)
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, req)
	var sessErr *contract.SessionError
	require.ErrorAs(t, err, &sessErr)
	assert.Equal(t, contract.SessionErrAlreadyCompleted, sessErr.Code)

	profile, err := f.profiles.Get(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Equal(t, first.TotalXP, profile.TotalXP)

	logs, err := f.logs.ListBySession(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestComplete_RepeatTopicIsAReview(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	now := monday.Add(10 * time.Hour)
	first := f.addSession(t, testutil.WithSessionDate(monday))
	second := f.addSession(t, testutil.WithSessionDate(monday))

	_, err := f.svc.Complete(ctx, contract.CompleteSessionRequest{
		UserID: testutil.TestUserID, SessionID: first.ID, Now: &now,
	})
	require.NoError(t, err)

	result, err := f.svc.Complete(ctx, contract.CompleteSessionRequest{
		UserID: testutil.TestUserID, SessionID: second.ID, Now: &now,
	})
	require.NoError(t, err)

	assert.True(t, result.IsReview)
	assert.Equal(t, 25, result.XPEarned)
	assert.Equal(t, 0, result.OnTimeBonus)
	assert.Equal(t, 0, result.StreakBonus)
}

func TestComplete_ReviewKindIsAlwaysAReview(t *testing.T) {
	f := newSessionFixture(t)

	now := monday.Add(10 * time.Hour)
	session := f.addSession(t,
		testutil.WithSessionDate(monday),
		testutil.WithSessionKind(domain.KindReview),
	)

	result, err := f.svc.Complete(context.Background(), contract.CompleteSessionRequest{
		UserID: testutil.TestUserID, SessionID: session.ID, Now: &now,
	})
	require.NoError(t, err)
	assert.True(t, result.IsReview)
	assert.Equal(t, 25, result.XPEarned)
}

func TestComplete_LowConfidenceSchedulesRecovery(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	now := monday.Add(10 * time.Hour)
	session := f.addSession(t, testutil.WithSessionDate(monday))
	low := domain.SessionConfidenceLow

	result, err := f.svc.Complete(ctx, contract.CompleteSessionRequest{
		UserID:     testutil.TestUserID,
		SessionID:  session.ID,
		Confidence: &low,
		Now:        &now,
	})
	require.NoError(t, err)

	require.Len(t, result.FollowUps, 1)
	recovery := result.FollowUps[0]
	assert.Equal(t, domain.KindRecovery, recovery.Kind)
	assert.Equal(t, 30, recovery.Minutes)
	assert.False(t, result.TopicMarkedKnown)
	// Recovery lands exactly three days out, availability map or not.
	assert.Equal(t, monday.AddDate(0, 0, 3), recovery.Date)
}

func TestComplete_HighConfidenceMarksKnownAndSchedulesReviews(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	assessments := repository.NewSQLiteAssessmentRepo(f.db)
	now := monday.Add(10 * time.Hour)
	session := f.addSession(t, testutil.WithSessionDate(monday))
	high := domain.SessionConfidenceHigh

	result, err := f.svc.Complete(ctx, contract.CompleteSessionRequest{
		UserID:     testutil.TestUserID,
		SessionID:  session.ID,
		Confidence: &high,
		Now:        &now,
	})
	require.NoError(t, err)

	assert.True(t, result.TopicMarkedKnown)
	require.Len(t, result.FollowUps, 2)
	assert.Equal(t, domain.KindReview, result.FollowUps[0].Kind)
	assert.Equal(t, 15, result.FollowUps[0].Minutes)
	assert.Equal(t, domain.KindReview, result.FollowUps[1].Kind)
	assert.Equal(t, 10, result.FollowUps[1].Minutes)
	assert.False(t, result.FollowUps[0].Date.Before(monday.AddDate(0, 0, 7)))
	assert.False(t, result.FollowUps[1].Date.Before(monday.AddDate(0, 0, 21)))

	rated, err := assessments.ListByPlan(ctx, f.plan.ID)
	require.NoError(t, err)
	require.Len(t, rated, 1)
	assert.Equal(t, session.TopicID, rated[0].TopicID)
	assert.Equal(t, domain.ConfidenceKnown, rated[0].Confidence)
}

func TestComplete_MediumConfidenceSchedulesReviewsOnly(t *testing.T) {
	f := newSessionFixture(t)

	now := monday.Add(10 * time.Hour)
	session := f.addSession(t, testutil.WithSessionDate(monday))
	medium := domain.SessionConfidenceMedium

	result, err := f.svc.Complete(context.Background(), contract.CompleteSessionRequest{
		UserID:     testutil.TestUserID,
		SessionID:  session.ID,
		Confidence: &medium,
		Now:        &now,
	})
	require.NoError(t, err)
	assert.False(t, result.TopicMarkedKnown)
	assert.Len(t, result.FollowUps, 2)
}

func TestComplete_OwnershipAndExistence(t *testing.T) {
	f := newSessionFixture(t)
	now := monday.Add(10 * time.Hour)
	session := f.addSession(t, testutil.WithSessionDate(monday))

	_, err := f.svc.Complete(context.Background(), contract.CompleteSessionRequest{
		UserID: "someone-else", SessionID: session.ID, Now: &now,
	})
	var sessErr *contract.SessionError
	require.ErrorAs(t, err, &sessErr)
	assert.Equal(t, contract.SessionErrNotOwned, sessErr.Code)

	_, err = f.svc.Complete(context.Background(), contract.CompleteSessionRequest{
		UserID: testutil.TestUserID, SessionID: "missing", Now: &now,
	})
	require.ErrorAs(t, err, &sessErr)
	assert.Equal(t, contract.SessionErrNotFound, sessErr.Code)
}

func TestComplete_RollsBackOnFailure(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	// The completion update is the first write in the transaction; failing
	// the profile upsert after it must roll the whole completion back.
	failingUoW := &testutil.FailOnNthExecUoW{
		DB:     f.db,
		FailOn: 2,
		Err:    errors.New("injected failure"),
	}
	svc := NewSessionService(f.sessions, f.plans, failingUoW)

	now := monday.Add(10 * time.Hour)
	session := f.addSession(t, testutil.WithSessionDate(monday))

	_, err := svc.Complete(ctx, contract.CompleteSessionRequest{
		UserID: testutil.TestUserID, SessionID: session.ID, Now: &now,
	})
	require.Error(t, err)

	stored, err := f.sessions.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionPending, stored.Status)

	_, err = f.profiles.Get(ctx, testutil.TestUserID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestComplete_ActualMinutesOverrideTheEstimate(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	now := monday.Add(10 * time.Hour)
	session := f.addSession(t, testutil.WithSessionDate(monday))

	_, err := f.svc.Complete(ctx, contract.CompleteSessionRequest{
		UserID:        testutil.TestUserID,
		SessionID:     session.ID,
		ActualMinutes: 37,
		Now:           &now,
	})
	require.NoError(t, err)

	logs, err := f.logs.ListBySession(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 37, logs[0].DurationMin)
}

func TestMarkMissed_SweepsOverduePendingSessions(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	overdue := f.addSession(t, testutil.WithSessionDate(monday.AddDate(0, 0, -3)))
	todays := f.addSession(t, testutil.WithSessionDate(monday))
	done := f.addSession(t,
		testutil.WithSessionDate(monday.AddDate(0, 0, -1)),
		testutil.WithSessionStatus(domain.SessionCompleted),
	)

	result, err := f.svc.MarkMissed(ctx, testutil.TestUserID, &monday)
	require.NoError(t, err)
	assert.Equal(t, 1, result.MarkedCount)

	stored, err := f.sessions.GetByID(ctx, overdue.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionMissed, stored.Status)

	stored, err = f.sessions.GetByID(ctx, todays.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionPending, stored.Status)

	stored, err = f.sessions.GetByID(ctx, done.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, stored.Status)
}

func TestMove_RetiresTheOldRowAndCreatesAReplacement(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	session := f.addSession(t, testutil.WithSessionDate(monday.AddDate(0, 0, 2)))
	target := monday.AddDate(0, 0, 5)

	moved, err := f.svc.Move(ctx, contract.MoveSessionRequest{
		UserID:    testutil.TestUserID,
		SessionID: session.ID,
		NewDate:   target,
		Now:       &monday,
	})
	require.NoError(t, err)

	// The original row keeps its date as history and flips to rescheduled;
	// the work carries on as a new pending session on the target date.
	stored, err := f.sessions.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionRescheduled, stored.Status)
	assert.Equal(t, session.ScheduledDate, stored.ScheduledDate)

	require.NotEqual(t, session.ID, moved.ID)
	assert.Equal(t, target, moved.ScheduledDate)
	assert.Equal(t, domain.SessionPending, moved.Status)
	assert.Equal(t, session.TopicID, moved.TopicID)
	assert.Equal(t, session.EstimatedMin, moved.EstimatedMin)

	all, err := f.sessions.ListByPlan(ctx, f.plan.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)

	pending, err := f.sessions.ListByPlanAndStatus(ctx, f.plan.ID, domain.SessionPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, moved.ID, pending[0].ID)
}

func TestMove_RejectsPastDatesAndSettledSessions(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	var sessErr *contract.SessionError

	pending := f.addSession(t, testutil.WithSessionDate(monday.AddDate(0, 0, 2)))
	_, err := f.svc.Move(ctx, contract.MoveSessionRequest{
		UserID:    testutil.TestUserID,
		SessionID: pending.ID,
		NewDate:   monday.AddDate(0, 0, -1),
		Now:       &monday,
	})
	require.ErrorAs(t, err, &sessErr)
	assert.Equal(t, contract.SessionErrInvalidDate, sessErr.Code)

	completed := f.addSession(t,
		testutil.WithSessionDate(monday),
		testutil.WithSessionStatus(domain.SessionCompleted),
	)
	_, err = f.svc.Move(ctx, contract.MoveSessionRequest{
		UserID:    testutil.TestUserID,
		SessionID: completed.ID,
		NewDate:   monday.AddDate(0, 0, 3),
		Now:       &monday,
	})
	require.ErrorAs(t, err, &sessErr)
	assert.Equal(t, contract.SessionErrAlreadyCompleted, sessErr.Code)
}

func TestToggleTutorHelp_FlipsTheFlag(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	session := f.addSession(t)

	needed, err := f.svc.ToggleTutorHelp(ctx, testutil.TestUserID, session.ID)
	require.NoError(t, err)
	assert.True(t, needed)

	needed, err = f.svc.ToggleTutorHelp(ctx, testutil.TestUserID, session.ID)
	require.NoError(t, err)
	assert.False(t, needed)

	_, err = f.svc.ToggleTutorHelp(ctx, "someone-else", session.ID)
	var sessErr *contract.SessionError
	require.ErrorAs(t, err, &sessErr)
	assert.Equal(t, contract.SessionErrNotOwned, sessErr.Code)
}
