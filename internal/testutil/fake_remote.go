package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/itinera/internal/app"
	"github.com/alexanderramin/itinera/internal/domain"
)

// FakeRemote is an in-memory app.TripAPI with failure injection. Set the
// *Err fields to make the matching call fail. Gate, when non-nil, blocks
// WriteTripProgress until a value is received.
type FakeRemote struct {
	mu sync.Mutex

	Plans    map[string]*domain.TravelPlans
	Progress map[string]domain.CompletionState
	Trips    map[string]*domain.TripRecord

	RegisterErr     error
	FetchErr        error
	WriteErr        error
	PlanErr         error
	DestinationsErr error
	NextTripID      string
	Gate            chan struct{}

	RegisterCalls int
	FetchCalls    int
	Writes        []domain.CompletionState
}

func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		Plans:    map[string]*domain.TravelPlans{},
		Progress: map[string]domain.CompletionState{},
		Trips:    map[string]*domain.TripRecord{},
	}
}

// AddPlan registers plan for destination and tier.
func (f *FakeRemote) AddPlan(destination string, tier domain.BudgetTier, plan *domain.ItineraryPlan) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := normalizeName(destination)
	tp, ok := f.Plans[key]
	if !ok {
		tp = &domain.TravelPlans{Destination: destination, Plans: map[domain.BudgetTier]*domain.ItineraryPlan{}}
		f.Plans[key] = tp
	}
	tp.Plans[tier] = plan
}

func (f *FakeRemote) FetchItineraryPlan(_ context.Context, destination string, tier domain.BudgetTier) (*domain.ItineraryPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PlanErr != nil {
		return nil, f.PlanErr
	}
	plan := f.Plans[normalizeName(destination)].Plan(tier)
	if plan == nil {
		return nil, fmt.Errorf("plan %s/%s: %w", destination, tier, app.ErrNotFound)
	}
	return plan, nil
}

func (f *FakeRemote) ListDestinations(_ context.Context, _ bool) ([]*domain.Destination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DestinationsErr != nil {
		return nil, f.DestinationsErr
	}
	var out []*domain.Destination
	for _, tp := range f.Plans {
		out = append(out, &domain.Destination{Name: tp.Destination, Popular: true})
	}
	return out, nil
}

func (f *FakeRemote) RegisterTrip(_ context.Context, params domain.TripParameters, tier domain.BudgetTier) (*app.TripRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RegisterCalls++
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	id := f.NextTripID
	if id == "" {
		id = fmt.Sprintf("trip-%d", f.RegisterCalls)
	}
	token := "share-" + id
	f.Trips[id] = &domain.TripRecord{
		ID:          id,
		Destination: params.Destination,
		DateRange:   params.DateRange,
		Travelers:   params.Travelers,
		BudgetTier:  tier,
		ShareToken:  token,
	}
	return &app.TripRegistration{TripID: id, ShareToken: token, ShareURL: "/trips/" + token}, nil
}

func (f *FakeRemote) FetchTripProgress(_ context.Context, tripID string) (domain.CompletionState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FetchCalls++
	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	state, ok := f.Progress[tripID]
	if !ok {
		return domain.CompletionState{}, nil
	}
	return state.Clone(), nil
}

func (f *FakeRemote) WriteTripProgress(ctx context.Context, tripID string, state domain.CompletionState) (*app.ProgressAck, error) {
	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes = append(f.Writes, state.Clone())
	if f.WriteErr != nil {
		return nil, f.WriteErr
	}
	f.Progress[tripID] = state.Clone()
	return &app.ProgressAck{}, nil
}

func (f *FakeRemote) GetSharedTrip(_ context.Context, token string) (*domain.TripRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.Trips {
		if t.ShareToken == token {
			return t, nil
		}
	}
	return nil, fmt.Errorf("shared trip: %w", app.ErrNotFound)
}

// WriteCount returns the number of WriteTripProgress calls so far.
func (f *FakeRemote) WriteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Writes)
}

// LastWrite returns the most recent snapshot passed to WriteTripProgress.
func (f *FakeRemote) LastWrite() domain.CompletionState {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Writes) == 0 {
		return nil
	}
	return f.Writes[len(f.Writes)-1].Clone()
}

func (f *FakeRemote) Registers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.RegisterCalls
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
