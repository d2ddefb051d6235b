package scheduler

// BadgeContext is the aggregate stat snapshot badges are evaluated against.
type BadgeContext struct {
	Streak                int
	UniqueCompletedTopics int
	TotalTopicsInCourse   int
	SessionHour           int
}

// BadgeRule pairs a badge ID with its unlock predicate. Predicates are pure
// and independent; "first_step" is unconditionally true and only ever fires
// once thanks to the already-earned filter.
type BadgeRule struct {
	ID    string
	Check func(BadgeContext) bool
}

// BadgeRules is the flat rule table evaluated after every completion.
var BadgeRules = []BadgeRule{
	{ID: "first_step", Check: func(BadgeContext) bool { return true }},
	{ID: "on_fire", Check: func(c BadgeContext) bool { return c.Streak >= 3 }},
	{ID: "week_warrior", Check: func(c BadgeContext) bool { return c.Streak >= 7 }},
	{ID: "consistent", Check: func(c BadgeContext) bool { return c.Streak >= 30 }},
	{ID: "topic_master", Check: func(c BadgeContext) bool { return c.UniqueCompletedTopics >= 10 }},
	{ID: "halfway", Check: func(c BadgeContext) bool {
		return c.TotalTopicsInCourse > 0 && float64(c.UniqueCompletedTopics)/float64(c.TotalTopicsInCourse) >= 0.5
	}},
	{ID: "full_coverage", Check: func(c BadgeContext) bool {
		return c.TotalTopicsInCourse > 0 && c.UniqueCompletedTopics >= c.TotalTopicsInCourse
	}},
	{ID: "early_bird", Check: func(c BadgeContext) bool { return c.SessionHour < 9 }},
	{ID: "night_owl", Check: func(c BadgeContext) bool { return c.SessionHour >= 21 }},
}

// NewBadges returns the badge IDs whose predicates are newly true and not
// already earned, in rule-table order.
func NewBadges(ctx BadgeContext, earned map[string]bool) []string {
	var out []string
	for _, rule := range BadgeRules {
		if earned[rule.ID] {
			continue
		}
		if rule.Check(ctx) {
			out = append(out, rule.ID)
		}
	}
	return out
}
