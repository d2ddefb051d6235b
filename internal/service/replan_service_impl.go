package service

import (
	"context"
	"errors"
	"time"

	"github.com/danielmeier/cramplan/internal/contract"
	"github.com/danielmeier/cramplan/internal/db"
	"github.com/danielmeier/cramplan/internal/domain"
	"github.com/danielmeier/cramplan/internal/repository"
	"github.com/danielmeier/cramplan/internal/scheduler"
	"github.com/google/uuid"
)

type replanService struct {
	plans     repository.PlanRepo
	sessions  repository.SessionRepo
	overrides repository.OverrideRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewReplanService(
	plans repository.PlanRepo,
	sessions repository.SessionRepo,
	overrides repository.OverrideRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ReplanService {
	return &replanService{
		plans:     plans,
		sessions:  sessions,
		overrides: overrides,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Redistribute re-packs the active plan's missed sessions into future study
// days under the requested policy. Every source flips to rescheduled; work
// that finds no room in the policy window is dropped, and the skip policy
// creates no replacements at all.
func (s *replanService) Redistribute(ctx context.Context, req contract.RedistributeRequest) (result *contract.RedistributeResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"policy": string(req.Policy)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "redistribute",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	policy := req.Policy
	if policy == "" {
		policy = domain.PolicyDefault
	}
	if !domain.ValidRedistributePolicies[string(policy)] {
		return nil, &contract.ReplanError{Code: contract.ReplanErrInvalidPolicy, Message: "unknown policy " + string(policy)}
	}

	plan, err := s.plans.GetActive(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &contract.ReplanError{Code: contract.ReplanErrNoActivePlan, Message: "no active plan"}
		}
		return nil, err
	}

	missed, err := s.sessions.ListByPlanAndStatus(ctx, plan.ID, domain.SessionMissed)
	if err != nil {
		return nil, err
	}
	if len(missed) == 0 {
		return nil, &contract.ReplanError{Code: contract.ReplanErrNothingToDo, Message: "no missed sessions"}
	}
	fields["missed_count"] = len(missed)

	now := resolveNow(req.Now)
	today := scheduler.DateOf(now)

	if policy == domain.PolicySkip {
		// Skipped work is abandoned: the sources leave the missed state
		// without replacements so later replans do not pick them up again.
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txSessions := repository.NewSQLiteSessionRepo(tx)
			for _, m := range missed {
				if err := txSessions.UpdateStatus(ctx, m.ID, domain.SessionRescheduled); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &contract.RedistributeResult{
			Policy:       policy,
			MissedCount:  len(missed),
			DroppedCount: len(missed),
		}, nil
	}

	weekOverrides, err := s.overrides.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	pending, err := s.sessions.ListByPlanAndStatus(ctx, plan.ID, domain.SessionPending)
	if err != nil {
		return nil, err
	}

	days := studyDaysForPlan(plan, weekOverrides, today)
	work := missedWorkFromSessions(missed)
	placed := scheduler.Redistribute(work, commitmentsFromSessions(pending), days, today, policy)
	covered := fullyPlacedCount(work, placed)

	created := make([]*domain.ScheduledSession, 0, len(placed))
	for _, p := range placed {
		created = append(created, &domain.ScheduledSession{
			ID:            uuid.New().String(),
			PlanID:        plan.ID,
			UserID:        req.UserID,
			TopicID:       p.TopicID,
			TopicName:     p.TopicName,
			ScheduledDate: p.Date,
			EstimatedMin:  p.Minutes,
			Status:        domain.SessionPending,
			Kind:          p.Kind,
			CreatedAt:     now,
		})
	}

	// All sources flip, fully re-placed or not: the missed state must not
	// feed the same work into the next replan twice.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		for _, m := range missed {
			if err := txSessions.UpdateStatus(ctx, m.ID, domain.SessionRescheduled); err != nil {
				return err
			}
		}
		return txSessions.CreateBatch(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	fields["rescheduled_count"] = len(created)
	return &contract.RedistributeResult{
		Policy:           policy,
		MissedCount:      len(missed),
		RescheduledCount: len(created),
		DroppedCount:     len(missed) - covered,
		Sessions:         contract.NewSessionViews(created),
	}, nil
}

// ReduceWeek halves the current week's pending load: sessions up to half of
// the week's remaining minutes stay put, the rest are deferred past the week
// and re-packed, and the halved availability is recorded as an override so
// later replans respect it.
func (s *replanService) ReduceWeek(ctx context.Context, req contract.ReduceWeekRequest) (result *contract.ReduceWeekResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "reduce-week",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	plan, err := s.plans.GetActive(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &contract.ReplanError{Code: contract.ReplanErrNoActivePlan, Message: "no active plan"}
		}
		return nil, err
	}

	now := resolveNow(req.Now)
	today := scheduler.DateOf(now)
	weekStart := domain.WeekStartOf(today)
	weekEnd := weekStart.AddDate(0, 0, 6)
	fields["week_start"] = weekStart.Format("2006-01-02")

	inWeek, err := s.sessions.ListByDateRange(ctx, plan.ID, today, weekEnd)
	if err != nil {
		return nil, err
	}
	var pending []*domain.ScheduledSession
	for _, sess := range inWeek {
		if sess.Status == domain.SessionPending {
			pending = append(pending, sess)
		}
	}
	if len(pending) == 0 {
		return nil, &contract.ReplanError{Code: contract.ReplanErrNothingToDo, Message: "no pending sessions this week"}
	}

	minutes := make([]int, len(pending))
	for i, sess := range pending {
		minutes[i] = sess.EstimatedMin
	}
	keep := scheduler.SplitWeekLoad(minutes)
	deferred := pending[keep:]

	weekOverrides, err := s.overrides.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	otherPending, err := s.sessions.ListByPlanAndStatus(ctx, plan.ID, domain.SessionPending)
	if err != nil {
		return nil, err
	}
	var futureCommitted []*domain.ScheduledSession
	for _, sess := range otherPending {
		if sess.ScheduledDate.After(weekEnd) {
			futureCommitted = append(futureCommitted, sess)
		}
	}

	// Deferred work lands strictly after this week, on days net of what is
	// already scheduled there.
	days := studyDaysForPlan(plan, weekOverrides, today)
	work := missedWorkFromSessions(deferred)
	placed := scheduler.Redistribute(work, commitmentsFromSessions(futureCommitted), days, weekEnd, domain.PolicyDefault)
	covered := fullyPlacedCount(work, placed)

	created := make([]*domain.ScheduledSession, 0, len(placed))
	for _, p := range placed {
		created = append(created, &domain.ScheduledSession{
			ID:            uuid.New().String(),
			PlanID:        plan.ID,
			UserID:        req.UserID,
			TopicID:       p.TopicID,
			TopicName:     p.TopicName,
			ScheduledDate: p.Date,
			EstimatedMin:  p.Minutes,
			Status:        domain.SessionPending,
			Kind:          p.Kind,
			CreatedAt:     now,
		})
	}

	override := &domain.WeeklyOverride{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		PlanID:    plan.ID,
		WeekStart: weekStart,
		Hours:     plan.Hours.Halved(),
		CreatedAt: now,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txOverrides := repository.NewSQLiteOverrideRepo(tx)

		for _, sess := range deferred {
			if err := txSessions.UpdateStatus(ctx, sess.ID, domain.SessionRescheduled); err != nil {
				return err
			}
		}
		if err := txSessions.CreateBatch(ctx, created); err != nil {
			return err
		}
		return txOverrides.Upsert(ctx, override)
	})
	if err != nil {
		return nil, err
	}

	fields["kept_count"] = keep
	fields["deferred_count"] = len(deferred)
	return &contract.ReduceWeekResult{
		WeekStart:        weekStart,
		KeptCount:        keep,
		DeferredCount:    len(deferred),
		RescheduledCount: len(created),
		DroppedCount:     len(deferred) - covered,
	}, nil
}
