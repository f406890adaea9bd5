package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/itinera/internal/app"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func samplePlan() *domain.ItineraryPlan {
	return &domain.ItineraryPlan{
		TotalBudget:   "$800",
		Duration:      "2 days",
		Accommodation: "Hostel",
		Transport:     "Metro",
		Highlights:    []string{"Louvre", "Seine"},
		Days: []domain.Day{
			{Day: 1, Title: "Arrival", Activities: []domain.Activity{
				{Time: "09:00", Task: "Check in", Type: domain.ActivityAccommodation},
				{Time: "12:00", Task: "Lunch", Type: domain.ActivityDining},
			}},
			{Day: 2, Title: "Museums", Activities: []domain.Activity{
				{Time: "10:00", Task: "Louvre", Type: domain.ActivitySightseeing},
			}},
		},
	}
}

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		pct   int
		width int
		want  string
	}{
		{0, 4, "[░░░░]   0%"},
		{50, 4, "[██░░]  50%"},
		{100, 4, "[████] 100%"},
		{150, 4, "[████] 100%"},
		{-5, 4, "[░░░░]   0%"},
		{50, 1, "[█░]  50%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripANSI(RenderProgress(tt.pct, tt.width)))
	}
}

func TestFormatItinerary(t *testing.T) {
	state := domain.CompletionState{{Day: 0, Activity: 1}: true}
	out := stripANSI(FormatItinerary("Paris, France", domain.TierBackpacker, samplePlan(), state))

	assert.Contains(t, out, "PARIS, FRANCE")
	assert.Contains(t, out, "Backpacker · Adventure on a Budget")
	assert.Contains(t, out, "Highlights:")
	assert.Contains(t, out, "Louvre, Seine")
	assert.Contains(t, out, "33% 1/3 activities")
	assert.Contains(t, out, "Day 1 · Arrival")
	assert.Contains(t, out, "[ ] 0-0    09:00 ⌂ Check in")
	assert.Contains(t, out, "[✓] 0-1    12:00 ♨ Lunch")
	assert.Contains(t, out, "[ ] 1-0    10:00 ◉ Louvre")
}

func TestFormatDestinations(t *testing.T) {
	dests := []*domain.Destination{
		{Name: "Tokyo, Japan", Country: "Japan", Popular: true},
		{Name: "Lisbon, Portugal", Country: "Portugal"},
	}
	out := stripANSI(FormatDestinations(dests, false))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[2], "★")
	assert.NotContains(t, lines[3], "★")

	assert.Contains(t, stripANSI(FormatDestinations(dests, true)), "built-in list")
	assert.Contains(t, stripANSI(FormatDestinations(nil, false)), "No destinations")
}

func TestTripDates(t *testing.T) {
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Jun 1 – Jun 3, 2026 · 2 nights", TripDates(domain.DateRange{From: from, To: from.AddDate(0, 0, 2)}))
	assert.Equal(t, "Jun 1, 2026 · 0 nights", TripDates(domain.DateRange{From: from, To: from}))
	newYear := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Dec 31, 2026 – Jan 1, 2027 · 1 night", TripDates(domain.DateRange{From: newYear, To: newYear.AddDate(0, 0, 1)}))
}

func TestSyncIndicator(t *testing.T) {
	assert.Equal(t, "● synced", stripANSI(SyncIndicator(domain.SyncSynced)))
	assert.Equal(t, "○ local only", stripANSI(SyncIndicator(domain.SyncLocalOnly)))
	assert.Contains(t, stripANSI(SyncIndicator(domain.SyncDegraded)), "saved locally")
}

func TestFormatProgressReportAndTrip(t *testing.T) {
	report := stripANSI(FormatProgressReport(&app.ProgressReport{
		TripID: "t-1", Destination: "Bali, Indonesia", BudgetTier: domain.TierLuxury, ProgressPercentage: 75,
	}))
	assert.Contains(t, report, "BALI, INDONESIA")
	assert.Contains(t, report, "75%")

	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	trip := stripANSI(FormatTrip(&domain.TripRecord{
		Destination: "Bali, Indonesia",
		DateRange:   domain.DateRange{From: from, To: from.AddDate(0, 0, 4)},
		Travelers:   1,
		BudgetTier:  domain.TierLuxury,
		CompletedActivities: domain.CompletionState{
			{Day: 0, Activity: 0}: true,
			{Day: 0, Activity: 1}: false,
		},
	}))
	assert.Contains(t, trip, "1 traveler")
	assert.Contains(t, trip, "4 nights")
	assert.Contains(t, trip, "1 activities checked off")
}

func TestRenderTable(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"SCOPE", "DONE"},
		[][]string{{"local", "3"}, {"trip-1234", "12"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "SCOPE      DONE", lines[0])
	assert.Equal(t, "─────────  ────", lines[1])
	assert.Equal(t, "local         3", lines[2])
	assert.Equal(t, "trip-1234    12", lines[3])
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
	out := stripANSI(RenderTable([]string{"A", "B"}, nil))
	assert.Contains(t, out, "A  B")
}
