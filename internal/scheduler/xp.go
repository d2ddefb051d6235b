package scheduler

import (
	"time"

	"github.com/danielmeier/cramplan/internal/syllabus"
)

// XP and follow-up constants for the completion flow.
const (
	ReviewFlatXP      = 25
	OnTimeBonusXP     = 50
	StreakBonusPerDay = 10

	RecoveryOffsetDays = 3
	RecoverySessionMin = 30

	FirstReviewOffsetDays  = 7
	FirstReviewSessionMin  = 15
	SecondReviewOffsetDays = 21
	SecondReviewSessionMin = 10
)

// XPBreakdown itemizes the XP awarded for one completion.
type XPBreakdown struct {
	Total       int
	Base        int
	OnTimeBonus int
	StreakBonus int
}

// CalculateXP computes the award for completing a session. Repeat exposures
// to an already-completed topic earn a flat reduced value with no bonuses;
// first completions earn difficulty-based XP plus on-time and streak bonuses.
// The streak bonus uses the streak value before this completion.
func CalculateXP(topicID string, isOnTime bool, currentStreak int, isReview bool) XPBreakdown {
	if isReview {
		return XPBreakdown{Total: ReviewFlatXP, Base: ReviewFlatXP}
	}

	base := syllabus.BaseXP(topicID)
	onTime := 0
	if isOnTime {
		onTime = OnTimeBonusXP
	}
	streakBonus := currentStreak * StreakBonusPerDay

	return XPBreakdown{
		Total:       base + onTime + streakBonus,
		Base:        base,
		OnTimeBonus: onTime,
		StreakBonus: streakBonus,
	}
}

// NextStreak applies the daily streak law: no prior study starts a streak of
// 1, a second completion the same day leaves it unchanged, studying the day
// after the last study date extends it, and any longer gap resets it to 1.
func NextStreak(lastStudyDate *time.Time, today time.Time, current int) int {
	if lastStudyDate == nil {
		return 1
	}

	last := DateOf(*lastStudyDate)
	now := DateOf(today)

	if last.Equal(now) {
		return current
	}
	if last.AddDate(0, 0, 1).Equal(now) {
		return current + 1
	}
	return 1
}
