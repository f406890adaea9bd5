package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/google/uuid"
)

// NewTestPlan builds a plan with one day per entry of daySizes, each holding
// that many activities.
func NewTestPlan(daySizes ...int) *domain.ItineraryPlan {
	p := &domain.ItineraryPlan{
		TotalBudget:   "$1,000",
		Duration:      fmt.Sprintf("%d days", len(daySizes)),
		Accommodation: "Test Hostel",
		Transport:     "Metro pass",
		Highlights:    []string{"Old town"},
	}
	for d, n := range daySizes {
		day := domain.Day{Day: d + 1, Title: fmt.Sprintf("Day %d", d+1)}
		for a := 0; a < n; a++ {
			day.Activities = append(day.Activities, domain.Activity{
				Time: fmt.Sprintf("%02d:00", 9+a),
				Task: fmt.Sprintf("Activity %d.%d", d+1, a+1),
				Type: domain.ActivitySightseeing,
			})
		}
		p.Days = append(p.Days, day)
	}
	return p
}

// Params options
type ParamsOption func(*domain.TripParameters)

func WithTravelers(n int) ParamsOption {
	return func(p *domain.TripParameters) {
		p.Travelers = n
	}
}

func WithDates(from, to time.Time) ParamsOption {
	return func(p *domain.TripParameters) {
		p.DateRange = domain.DateRange{From: from, To: to}
	}
}

func NewTestParams(destination string, opts ...ParamsOption) domain.TripParameters {
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	p := domain.TripParameters{
		Destination: destination,
		DateRange:   domain.DateRange{From: from, To: from.AddDate(0, 0, 2)},
		Travelers:   2,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Destination options
type DestinationOption func(*domain.Destination)

func WithPopular(popular bool) DestinationOption {
	return func(d *domain.Destination) {
		d.Popular = popular
	}
}

func WithImageURL(url string) DestinationOption {
	return func(d *domain.Destination) {
		d.ImageURL = &url
	}
}

func NewTestDestination(name, country string, opts ...DestinationOption) *domain.Destination {
	d := &domain.Destination{
		ID:        uuid.New().String(),
		Name:      name,
		Country:   country,
		Popular:   true,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Trip options
type TripOption func(*domain.TripRecord)

func WithCompleted(keys ...domain.ActivityKey) TripOption {
	return func(t *domain.TripRecord) {
		t.CompletedActivities = domain.CompletionState{}
		for _, k := range keys {
			t.CompletedActivities[k] = true
		}
	}
}

func WithUserEmail(email string) TripOption {
	return func(t *domain.TripRecord) {
		t.UserEmail = &email
	}
}

func NewTestTrip(destination string, tier domain.BudgetTier, opts ...TripOption) *domain.TripRecord {
	params := NewTestParams(destination)
	t := &domain.TripRecord{
		ID:                  uuid.New().String(),
		Destination:         params.Destination,
		DateRange:           params.DateRange,
		Travelers:           params.Travelers,
		BudgetTier:          tier,
		CompletedActivities: domain.CompletionState{},
		ShareToken:          uuid.New().String(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Keys builds a completion state with every key marked done.
func Keys(keys ...domain.ActivityKey) domain.CompletionState {
	s := domain.CompletionState{}
	for _, k := range keys {
		s[k] = true
	}
	return s
}

// K is shorthand for an ActivityKey.
func K(day, activity int) domain.ActivityKey {
	return domain.ActivityKey{Day: day, Activity: activity}
}
