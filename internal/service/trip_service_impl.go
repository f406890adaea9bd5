package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/itinera/internal/app"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/repository"
	"github.com/google/uuid"
)

type tripService struct {
	trips    repository.TripRepo
	plans    app.PlanProvider
	observer UseCaseObserver
}

// NewTripService creates the server-side trip service. plans is used to
// compute progress percentages and may be nil.
func NewTripService(trips repository.TripRepo, plans app.PlanProvider, observers ...UseCaseObserver) TripService {
	return &tripService{
		trips:    trips,
		plans:    plans,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *tripService) CreateTrip(ctx context.Context, params domain.TripParameters, tier domain.BudgetTier, userEmail *string) (trip *domain.TripRecord, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{"destination": params.Destination, "tier": string(tier)}
		if trip != nil {
			fields["trip_id"] = trip.ID
		}
		observe(ctx, s.observer, "create_trip", startedAt, err, fields)
	}()

	params = params.Normalized()
	if err = params.Validate(); err != nil {
		return nil, err
	}
	if !tier.Valid() {
		return nil, &domain.ValidationError{Field: "budget", Message: fmt.Sprintf("unknown budget tier %q", tier)}
	}

	trip = &domain.TripRecord{
		ID:                  uuid.New().String(),
		Destination:         params.Destination,
		DateRange:           params.DateRange,
		Travelers:           params.Travelers,
		BudgetTier:          tier,
		CompletedActivities: domain.CompletionState{},
		UserEmail:           userEmail,
		ShareToken:          newShareToken(),
	}
	if err = s.trips.Create(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *tripService) GetProgress(ctx context.Context, tripID string) (*app.ProgressReport, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, tripError(err)
	}
	return &app.ProgressReport{
		TripID:              trip.ID,
		Destination:         trip.Destination,
		BudgetTier:          trip.BudgetTier,
		CompletedActivities: trip.CompletedActivities,
		ProgressPercentage:  s.percentage(ctx, trip.Destination, trip.BudgetTier, trip.CompletedActivities),
	}, nil
}

func (s *tripService) UpdateProgress(ctx context.Context, tripID string, state domain.CompletionState) (ack *app.ProgressAck, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "update_trip_progress", startedAt, err, map[string]any{"trip_id": tripID})
	}()

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, tripError(err)
	}
	if err = s.trips.UpdateProgress(ctx, tripID, state); err != nil {
		return nil, tripError(err)
	}
	return &app.ProgressAck{
		ProgressPercentage: s.percentage(ctx, trip.Destination, trip.BudgetTier, state),
	}, nil
}

func (s *tripService) GetShared(ctx context.Context, token string) (*domain.TripRecord, error) {
	trip, err := s.trips.GetByShareToken(ctx, token)
	if err != nil {
		return nil, tripError(err)
	}
	return trip, nil
}

// percentage computes progress against the trip's plan. Without a plan it
// falls back to the share of true entries among all recorded entries.
func (s *tripService) percentage(ctx context.Context, destination string, tier domain.BudgetTier, state domain.CompletionState) int {
	if s.plans != nil {
		if plan, err := s.plans.FetchItineraryPlan(ctx, destination, tier); err == nil {
			return domain.ComputeStats(plan, state).Percentage
		}
	}
	done := 0
	for _, v := range state {
		if v {
			done++
		}
	}
	return domain.Percentage(done, len(state))
}

func tripError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %v", app.ErrNotFound, err)
	}
	return err
}

// newShareToken returns 16 random bytes, URL-safe base64 encoded.
func newShareToken() string {
	id := uuid.New()
	return base64.RawURLEncoding.EncodeToString(id[:])
}
