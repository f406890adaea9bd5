package domain

// ProgressStats summarises how much of a plan is done.
type ProgressStats struct {
	Total      int
	Completed  int
	Percentage int
}

// ComputeStats derives progress from the plan's shape and the completion
// state. Keys that do not address an activity of plan are ignored.
func ComputeStats(plan *ItineraryPlan, state CompletionState) ProgressStats {
	stats := ProgressStats{Total: plan.ActivityCount()}
	for k, done := range state {
		if done && plan.Contains(k) {
			stats.Completed++
		}
	}
	stats.Percentage = Percentage(stats.Completed, stats.Total)
	return stats
}

// DayStats returns per-day progress, one entry per day of plan.
func DayStats(plan *ItineraryPlan, state CompletionState) []ProgressStats {
	if plan == nil {
		return nil
	}
	out := make([]ProgressStats, len(plan.Days))
	for d, day := range plan.Days {
		s := ProgressStats{Total: len(day.Activities)}
		for a := range day.Activities {
			if state[ActivityKey{Day: d, Activity: a}] {
				s.Completed++
			}
		}
		s.Percentage = Percentage(s.Completed, s.Total)
		out[d] = s
	}
	return out
}

// Percentage rounds completed/total*100 half-up without floating point.
func Percentage(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	return (completed*200 + total) / (2 * total)
}
