package scheduler

import (
	"github.com/danielmeier/cramplan/internal/domain"
	"github.com/danielmeier/cramplan/internal/syllabus"
)

// TopicWork is one curriculum topic scaled by the user's mastery assessment,
// ready to be packed into study days.
type TopicWork struct {
	TopicID        string
	TopicName      string
	EffectiveHours float64
}

// Minutes returns the topic's required study minutes.
func (w TopicWork) Minutes() int {
	return int(w.EffectiveHours * 60)
}

// SelectTopics filters and weights the course curriculum by per-topic
// confidence: known topics are excluded, needs_work topics count at half
// their hours, new or unrated topics at full hours. The returned list keeps
// syllabus order; the second return is the total effective hours.
func SelectTopics(topics []syllabus.Topic, assessments map[string]domain.TopicConfidence) ([]TopicWork, float64) {
	var work []TopicWork
	var totalHours float64
	for _, t := range topics {
		conf, ok := assessments[t.ID]
		if !ok {
			conf = domain.ConfidenceNew
		}
		if conf == domain.ConfidenceKnown {
			continue
		}
		hours := t.Hours
		if conf == domain.ConfidenceNeedsWork {
			hours *= 0.5
		}
		if hours <= 0 {
			continue
		}
		work = append(work, TopicWork{TopicID: t.ID, TopicName: t.Name, EffectiveHours: hours})
		totalHours += hours
	}
	return work, totalHours
}
