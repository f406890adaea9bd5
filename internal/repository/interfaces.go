package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/itinera/internal/domain"
)

// ErrNotFound is wrapped by repository lookups that match no row.
var ErrNotFound = errors.New("not found")

// CompletionRepo is the local completion store: one state blob per scope key.
type CompletionRepo interface {
	Read(ctx context.Context, scopeKey string) (domain.CompletionState, error)
	Write(ctx context.Context, scopeKey string, state domain.CompletionState) error
	ListScopes(ctx context.Context) ([]ScopeSummary, error)
}

// ScopeSummary describes one stored completion scope.
type ScopeSummary struct {
	ScopeKey  string
	DoneCount int
	UpdatedAt string
}

type DestinationRepo interface {
	Create(ctx context.Context, d *domain.Destination) error
	GetByName(ctx context.Context, name string) (*domain.Destination, error)
	List(ctx context.Context, popularOnly bool) ([]*domain.Destination, error)
}

type TravelPlanRepo interface {
	Upsert(ctx context.Context, destinationID string, tier domain.BudgetTier, plan *domain.ItineraryPlan) error
	GetByDestinationName(ctx context.Context, name string) (*domain.TravelPlans, error)
}

type TripRepo interface {
	Create(ctx context.Context, t *domain.TripRecord) error
	GetByID(ctx context.Context, id string) (*domain.TripRecord, error)
	GetByShareToken(ctx context.Context, token string) (*domain.TripRecord, error)
	UpdateProgress(ctx context.Context, id string, state domain.CompletionState) error
}
