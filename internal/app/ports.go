package app

import (
	"context"
	"errors"

	"github.com/alexanderramin/itinera/internal/domain"
)

// Collaborator errors. Implementations wrap these so callers can match with
// errors.Is regardless of transport.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("service unavailable")
)

// PlanProvider serves read-only itinerary content keyed by destination name
// and budget tier.
type PlanProvider interface {
	FetchItineraryPlan(ctx context.Context, destination string, tier domain.BudgetTier) (*domain.ItineraryPlan, error)
	ListDestinations(ctx context.Context, popularOnly bool) ([]*domain.Destination, error)
}

// TripRegistrar creates the remote trip record that progress is synced to.
type TripRegistrar interface {
	RegisterTrip(ctx context.Context, params domain.TripParameters, tier domain.BudgetTier) (*TripRegistration, error)
}

// ProgressRemote reads and writes a trip's completion blob.
type ProgressRemote interface {
	FetchTripProgress(ctx context.Context, tripID string) (domain.CompletionState, error)
	WriteTripProgress(ctx context.Context, tripID string, state domain.CompletionState) (*ProgressAck, error)
}

// SharedTripLookup resolves a share token to the trip it was issued for.
type SharedTripLookup interface {
	GetSharedTrip(ctx context.Context, token string) (*domain.TripRecord, error)
}

// TripAPI is everything the HTTP client offers; tripapi.Client satisfies it.
type TripAPI interface {
	PlanProvider
	TripRegistrar
	ProgressRemote
	SharedTripLookup
}

// CatalogImporter loads destination content into the local catalog.
type CatalogImporter interface {
	Seed(ctx context.Context) (*CatalogImportResult, error)
	ImportFile(ctx context.Context, path string) (*CatalogImportResult, error)
}
