package contract

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTripRequest_Parse(t *testing.T) {
	req := CreateTripRequest{
		Destination:    "  Paris ",
		StartDate:      "2026-06-01",
		EndDate:        "2026-06-03",
		Travelers:      2,
		SelectedBudget: "travel_enthusiast",
	}

	params, tier, err := req.Parse()
	require.NoError(t, err)
	assert.Equal(t, "Paris", params.Destination)
	assert.Equal(t, 3, params.DateRange.Days())
	assert.Equal(t, domain.TierTravelEnthusiast, tier)
}

func TestCreateTripRequest_ParseErrors(t *testing.T) {
	valid := CreateTripRequest{Destination: "Paris", StartDate: "2026-06-01", EndDate: "2026-06-03", Travelers: 1, SelectedBudget: "luxury"}

	tests := []struct {
		name   string
		mutate func(*CreateTripRequest)
		field  string
	}{
		{"bad start", func(r *CreateTripRequest) { r.StartDate = "06/01/2026" }, "start_date"},
		{"bad end", func(r *CreateTripRequest) { r.EndDate = "" }, "end_date"},
		{"end before start", func(r *CreateTripRequest) { r.EndDate = "2026-05-01" }, "dates"},
		{"no travelers", func(r *CreateTripRequest) { r.Travelers = 0 }, "travelers"},
		{"unknown tier", func(r *CreateTripRequest) { r.SelectedBudget = "midrange" }, "budget"},
		{"blank destination", func(r *CreateTripRequest) { r.Destination = "   " }, "destination"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, _, err := req.Parse()
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestCreateTripResponse_UsesCamelCaseKeys(t *testing.T) {
	data, err := json.Marshal(CreateTripResponse{TripID: "t1", ShareURL: ShareURL("tok"), ShareToken: "tok"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tripId":"t1","message":"","shareUrl":"/trips/tok","shareToken":"tok"}`, string(data))
}

func TestFromTravelPlans_SkipsNilAndRoundTripsKnownTiers(t *testing.T) {
	plan := &domain.ItineraryPlan{
		TotalBudget: "$800",
		Days: []domain.Day{{Day: 1, Title: "Arrival", Activities: []domain.Activity{
			{Time: "09:00", Task: "Check in", Type: domain.ActivityAccommodation},
		}}},
	}
	resp := FromTravelPlans(&domain.TravelPlans{
		Destination: "Paris",
		Plans:       map[domain.BudgetTier]*domain.ItineraryPlan{domain.TierBackpacker: plan, domain.TierLuxury: nil},
	})
	assert.Len(t, resp.Plans, 1)

	resp.Plans["midrange"] = BudgetPlan{}
	back := resp.ToDomain()
	assert.Len(t, back.Plans, 1)
	got := back.Plan(domain.TierBackpacker)
	require.NotNil(t, got)
	assert.Equal(t, "Check in", got.Days[0].Activities[0].Task)
	assert.Equal(t, domain.ActivityAccommodation, got.Days[0].Activities[0].Type)
}

func TestTrip_ToDomainKeepsCompletionKeys(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := &domain.TripRecord{
		ID:                  "t1",
		Destination:         "Tokyo",
		DateRange:           domain.DateRange{From: created, To: created.AddDate(0, 0, 4)},
		Travelers:           3,
		BudgetTier:          domain.TierLuxury,
		CompletedActivities: domain.CompletionState{{Day: 1, Activity: 0}: true},
		ShareToken:          "tok",
		CreatedAt:           created,
		UpdatedAt:           created,
	}

	wire := FromTrip(rec)
	assert.Equal(t, map[string]bool{"1-0": true}, wire.CompletedActivities)

	back := wire.ToDomain()
	assert.True(t, back.CompletedActivities.Done(domain.ActivityKey{Day: 1, Activity: 0}))
	assert.Equal(t, 5, back.DateRange.Days())
	assert.True(t, created.Equal(back.CreatedAt))
}
