package scheduler

// Session packing constants. A study block is 50 minutes of work followed by
// a 10 minute break; no generated session may exceed MaxSessionMin.
const (
	MaxSessionMin = 50
	BreakMin      = 10
	BlockMin      = MaxSessionMin + BreakMin
)

// EffectiveStudyMinutes converts raw available hours into usable study
// minutes. Each full 60-minute block yields 50 minutes of study; a trailing
// partial block is pure study time since breaks only occur between chunks.
func EffectiveStudyMinutes(hours float64) int {
	totalMin := int(hours * 60)
	fullBlocks := totalMin / BlockMin
	leftover := totalMin - fullBlocks*BlockMin
	if leftover > MaxSessionMin {
		leftover = MaxSessionMin
	}
	return fullBlocks*MaxSessionMin + leftover
}
