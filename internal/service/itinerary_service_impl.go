package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/itinera/internal/app"
	"github.com/alexanderramin/itinera/internal/domain"
)

// FallbackDestinations is offered when the destination listing cannot be
// fetched.
var FallbackDestinations = []domain.Destination{
	{Name: "Paris, France", Country: "France", Popular: true},
	{Name: "Tokyo, Japan", Country: "Japan", Popular: true},
	{Name: "New York, USA", Country: "United States", Popular: true},
	{Name: "Bali, Indonesia", Country: "Indonesia", Popular: true},
	{Name: "London, UK", Country: "United Kingdom", Popular: true},
	{Name: "Barcelona, Spain", Country: "Spain", Popular: true},
}

type itineraryService struct {
	provider app.PlanProvider
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewItineraryService(provider app.PlanProvider, logger *slog.Logger, observers ...UseCaseObserver) ItineraryService {
	return &itineraryService{
		provider: provider,
		logger:   loggerOrDiscard(logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

// LoadPlan fetches the plan for destination and tier. Every failure is
// reported as domain.ErrContentUnavailable wrapping the provider's cause.
func (s *itineraryService) LoadPlan(ctx context.Context, destination string, tier domain.BudgetTier) (plan *domain.ItineraryPlan, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "load_itinerary", startedAt, err, map[string]any{
			"destination": destination,
			"tier":        string(tier),
		})
	}()

	plan, err = s.provider.FetchItineraryPlan(ctx, destination, tier)
	if err != nil {
		return nil, fmt.Errorf("%w: %s plan for %q: %w", domain.ErrContentUnavailable, tier, destination, err)
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: %s plan for %q: %w", domain.ErrContentUnavailable, tier, destination, app.ErrNotFound)
	}
	return plan, nil
}

func (s *itineraryService) ListDestinations(ctx context.Context, popularOnly bool) (*DestinationList, error) {
	dests, err := s.provider.ListDestinations(ctx, popularOnly)
	if err == nil {
		return &DestinationList{Destinations: dests}, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	s.logger.WarnContext(ctx, "destination listing failed, using fallback", "error", err.Error())

	out := make([]*domain.Destination, 0, len(FallbackDestinations))
	for i := range FallbackDestinations {
		d := FallbackDestinations[i]
		out = append(out, &d)
	}
	return &DestinationList{Destinations: out, Fallback: true}, nil
}
