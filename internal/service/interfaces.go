package service

import (
	"context"

	"github.com/alexanderramin/itinera/internal/app"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/importer"
)

// PlanningFlow drives the Destination → Budget → Itinerary screens.
type PlanningFlow interface {
	SubmitDestination(params domain.TripParameters) (BudgetStage, error)
	SelectBudget(ctx context.Context, tier domain.BudgetTier) (ItineraryStage, error)
	BackToDestination() DestinationStage
	BackToBudget() (BudgetStage, error)
	State() FlowState
	Stage() domain.FlowStage
}

// ProgressService owns the completion state of the itinerary being viewed
// and decides how local and remote copies are reconciled.
type ProgressService interface {
	Initialize(ctx context.Context, tripID string) (domain.CompletionState, error)
	Toggle(ctx context.Context, key domain.ActivityKey) (domain.CompletionState, error)
	State() domain.CompletionState
	Subscribe() (<-chan domain.CompletionState, func())
	SyncStatus() domain.SyncStatus
	Scope() string
	Flush(ctx context.Context) error
	Close()
}

// CompletionStore is the subset of repository.CompletionRepo the progress
// service needs.
type CompletionStore interface {
	Read(ctx context.Context, scopeKey string) (domain.CompletionState, error)
	Write(ctx context.Context, scopeKey string, state domain.CompletionState) error
}

// DestinationList is a destination listing, possibly the built-in fallback.
type DestinationList struct {
	Destinations []*domain.Destination
	Fallback     bool
}

type ItineraryService interface {
	LoadPlan(ctx context.Context, destination string, tier domain.BudgetTier) (*domain.ItineraryPlan, error)
	ListDestinations(ctx context.Context, popularOnly bool) (*DestinationList, error)
}

type CatalogService interface {
	Seed(ctx context.Context) (*app.CatalogImportResult, error)
	ImportFile(ctx context.Context, path string) (*app.CatalogImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.CatalogSchema) (*app.CatalogImportResult, error)
	GetTravelPlans(ctx context.Context, destination string) (*domain.TravelPlans, error)
	ListDestinations(ctx context.Context, popularOnly bool) ([]*domain.Destination, error)
}

// TripService is the server side of trip persistence.
type TripService interface {
	CreateTrip(ctx context.Context, params domain.TripParameters, tier domain.BudgetTier, userEmail *string) (*domain.TripRecord, error)
	GetProgress(ctx context.Context, tripID string) (*app.ProgressReport, error)
	UpdateProgress(ctx context.Context, tripID string, state domain.CompletionState) (*app.ProgressAck, error)
	GetShared(ctx context.Context, token string) (*domain.TripRecord, error)
}
