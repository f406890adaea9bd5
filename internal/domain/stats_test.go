package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// planWithDays builds a plan whose days have the given activity counts.
func planWithDays(counts ...int) *ItineraryPlan {
	p := &ItineraryPlan{}
	for d, n := range counts {
		day := Day{Day: d + 1, Title: fmt.Sprintf("Day %d", d+1)}
		for a := 0; a < n; a++ {
			day.Activities = append(day.Activities, Activity{
				Time: fmt.Sprintf("%02d:00", 9+a),
				Task: fmt.Sprintf("Task %d.%d", d, a),
				Type: ActivityGeneral,
			})
		}
		p.Days = append(p.Days, day)
	}
	return p
}

func TestComputeStats_TwoDaysTwoDone(t *testing.T) {
	plan := planWithDays(3, 2)
	state := CompletionState{{0, 0}: true, {0, 1}: true}

	got := ComputeStats(plan, state)

	assert.Equal(t, ProgressStats{Total: 5, Completed: 2, Percentage: 40}, got)
}

func TestComputeStats_EmptyPlanNeverDividesByZero(t *testing.T) {
	state := CompletionState{{0, 0}: true}

	assert.Equal(t, ProgressStats{}, ComputeStats(&ItineraryPlan{}, state))
	assert.Equal(t, ProgressStats{}, ComputeStats(nil, state))
	assert.Equal(t, ProgressStats{Total: 0}, ComputeStats(planWithDays(0, 0), nil))
}

func TestComputeStats_StaleKeysIgnored(t *testing.T) {
	plan := planWithDays(2, 1)
	state := CompletionState{
		{0, 0}:   true,
		{0, 5}:   true, // activity out of range
		{3, 0}:   true, // day out of range
		{-1, 0}:  true,
		{1, 0}:   false,
		{99, 99}: true,
	}

	got := ComputeStats(plan, state)

	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 1, got.Completed)
	assert.Equal(t, 33, got.Percentage)
}

func TestComputeStats_PercentageAlwaysInRange(t *testing.T) {
	for total := 0; total <= 12; total++ {
		plan := planWithDays(total)
		state := CompletionState{}
		for a := 0; a < total; a++ {
			state[ActivityKey{0, a}] = true
			got := ComputeStats(plan, state)
			assert.GreaterOrEqual(t, got.Percentage, 0)
			assert.LessOrEqual(t, got.Percentage, 100)
		}
		// extra stale keys must not push it past 100
		state[ActivityKey{0, total + 1}] = true
		assert.LessOrEqual(t, ComputeStats(plan, state).Percentage, 100)
	}
}

func TestComputeStats_RoundsHalfUp(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{1, 8, 13},  // 12.5
		{1, 3, 33},  // 33.3
		{2, 3, 67},  // 66.7
		{1, 200, 1}, // 0.5
		{1, 6, 17},  // 16.7
		{5, 5, 100},
		{0, 5, 0},
	}
	for _, tc := range cases {
		plan := planWithDays(tc.total)
		state := CompletionState{}
		for a := 0; a < tc.completed; a++ {
			state[ActivityKey{0, a}] = true
		}
		assert.Equal(t, tc.want, ComputeStats(plan, state).Percentage, "%d/%d", tc.completed, tc.total)
	}
}

func TestComputeStats_TwoTogglesOnFourActivities(t *testing.T) {
	plan := planWithDays(2, 2)
	state := CompletionState{}
	state = state.Toggled(ActivityKey{0, 0})
	state = state.Toggled(ActivityKey{0, 1})

	assert.Equal(t, 50, ComputeStats(plan, state).Percentage)
}

func TestComputeStats_ToggleTwiceRestoresPercentage(t *testing.T) {
	plan := planWithDays(3, 2)
	state := CompletionState{{1, 1}: true}
	before := ComputeStats(plan, state)

	key := ActivityKey{0, 2}
	after := state.Toggled(key).Toggled(key)

	assert.Equal(t, state.Done(key), after.Done(key))
	assert.Equal(t, before, ComputeStats(plan, after))
}

func TestDayStats(t *testing.T) {
	plan := planWithDays(2, 0, 4)
	state := CompletionState{{0, 0}: true, {2, 1}: true, {2, 3}: true, {1, 0}: true}

	got := DayStats(plan, state)

	assert.Equal(t, []ProgressStats{
		{Total: 2, Completed: 1, Percentage: 50},
		{Total: 0, Completed: 0, Percentage: 0},
		{Total: 4, Completed: 2, Percentage: 50},
	}, got)
	assert.Nil(t, DayStats(nil, state))
}
