package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/alexanderramin/itinera/internal/app"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockRegistrar struct {
	mock.Mock
}

func (m *mockRegistrar) RegisterTrip(ctx context.Context, params domain.TripParameters, tier domain.BudgetTier) (*app.TripRegistration, error) {
	args := m.Called(ctx, params, tier)
	reg, _ := args.Get(0).(*app.TripRegistration)
	return reg, args.Error(1)
}

type mockProgressRemote struct {
	mock.Mock
}

func (m *mockProgressRemote) FetchTripProgress(ctx context.Context, tripID string) (domain.CompletionState, error) {
	args := m.Called(ctx, tripID)
	state, _ := args.Get(0).(domain.CompletionState)
	return state, args.Error(1)
}

func (m *mockProgressRemote) WriteTripProgress(ctx context.Context, tripID string, state domain.CompletionState) (*app.ProgressAck, error) {
	args := m.Called(ctx, tripID, state)
	ack, _ := args.Get(0).(*app.ProgressAck)
	return ack, args.Error(1)
}

type mockPlanProvider struct {
	mock.Mock
}

func (m *mockPlanProvider) FetchItineraryPlan(ctx context.Context, destination string, tier domain.BudgetTier) (*domain.ItineraryPlan, error) {
	args := m.Called(ctx, destination, tier)
	plan, _ := args.Get(0).(*domain.ItineraryPlan)
	return plan, args.Error(1)
}

func (m *mockPlanProvider) ListDestinations(ctx context.Context, popularOnly bool) ([]*domain.Destination, error) {
	args := m.Called(ctx, popularOnly)
	dests, _ := args.Get(0).([]*domain.Destination)
	return dests, args.Error(1)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// recordHandler keeps every log record for inspection.
type recordHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordHandler) WithGroup(string) slog.Handler      { return h }

// loggedErrors returns the "error" attributes of records with message msg.
func (h *recordHandler) loggedErrors(msg string) []error {
	h.mu.Lock()
	defer h.mu.Unlock()
	var errs []error
	for _, r := range h.records {
		if r.Message != msg {
			continue
		}
		r.Attrs(func(a slog.Attr) bool {
			if err, ok := a.Value.Any().(error); ok && a.Key == "error" {
				errs = append(errs, err)
			}
			return true
		})
	}
	return errs
}
