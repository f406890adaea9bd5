package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/itinera/internal/app"
	"github.com/alexanderramin/itinera/internal/domain"
)

// FlowState is the planning flow's current stage. Exactly one of
// DestinationStage, BudgetStage or ItineraryStage.
type FlowState interface {
	Stage() domain.FlowStage
	isFlowState()
}

// DestinationStage is the initial stage: no parameters collected yet.
type DestinationStage struct{}

// BudgetStage holds validated trip parameters awaiting a tier choice.
type BudgetStage struct {
	Params domain.TripParameters
}

// ItineraryStage is the final stage. TripID is empty when registration was
// skipped or failed; that is a valid permanent state for the session.
type ItineraryStage struct {
	Params   domain.TripParameters
	Tier     domain.BudgetTier
	TripID   string
	ShareURL string
}

func (DestinationStage) Stage() domain.FlowStage { return domain.StageDestination }
func (BudgetStage) Stage() domain.FlowStage      { return domain.StageBudget }
func (ItineraryStage) Stage() domain.FlowStage   { return domain.StageItinerary }

func (DestinationStage) isFlowState() {}
func (BudgetStage) isFlowState()      {}
func (ItineraryStage) isFlowState()   {}

// DefaultRegisterTimeout bounds the single registration call made on budget
// selection.
const DefaultRegisterTimeout = 10 * time.Second

type planningFlow struct {
	registrar       app.TripRegistrar
	registerTimeout time.Duration
	logger          *slog.Logger
	observer        UseCaseObserver

	mu        sync.Mutex
	state     FlowState
	gen       uint64
	selecting bool
}

// FlowOption configures a PlanningFlow.
type FlowOption func(*planningFlow)

func WithRegisterTimeout(d time.Duration) FlowOption {
	return func(f *planningFlow) {
		if d > 0 {
			f.registerTimeout = d
		}
	}
}

func WithFlowLogger(logger *slog.Logger) FlowOption {
	return func(f *planningFlow) {
		f.logger = loggerOrDiscard(logger)
	}
}

func WithFlowObserver(obs UseCaseObserver) FlowOption {
	return func(f *planningFlow) {
		f.observer = useCaseObserverOrNoop([]UseCaseObserver{obs})
	}
}

// NewPlanningFlow creates a flow in the Destination stage. A nil registrar
// puts the flow in offline mode: budget selection makes no remote call.
func NewPlanningFlow(registrar app.TripRegistrar, opts ...FlowOption) PlanningFlow {
	f := &planningFlow{
		registrar:       registrar,
		registerTimeout: DefaultRegisterTimeout,
		logger:          loggerOrDiscard(nil),
		observer:        NoopUseCaseObserver{},
		state:           DestinationStage{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *planningFlow) SubmitDestination(params domain.TripParameters) (BudgetStage, error) {
	params = params.Normalized()
	if err := params.Validate(); err != nil {
		return BudgetStage{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	next := BudgetStage{Params: params}
	f.transition(next)
	return next, nil
}

func (f *planningFlow) SelectBudget(ctx context.Context, tier domain.BudgetTier) (stage ItineraryStage, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"tier": string(tier)}
	defer func() {
		fields["trip_id"] = stage.TripID
		observe(ctx, f.observer, "select_budget", startedAt, err, fields)
	}()

	f.mu.Lock()
	budget, ok := f.state.(BudgetStage)
	switch {
	case !ok:
		cur := f.state.Stage()
		f.mu.Unlock()
		return ItineraryStage{}, fmt.Errorf("select budget from %s stage: %w", cur, ErrInvalidTransition)
	case f.selecting:
		f.mu.Unlock()
		return ItineraryStage{}, fmt.Errorf("select budget: selection already in progress: %w", ErrInvalidTransition)
	case !tier.Valid():
		f.mu.Unlock()
		return ItineraryStage{}, &domain.ValidationError{Field: "budget", Message: fmt.Sprintf("unknown budget tier %q", tier)}
	}
	gen := f.gen
	f.selecting = true
	f.mu.Unlock()

	next := ItineraryStage{Params: budget.Params, Tier: tier}
	if f.registrar != nil {
		regCtx, cancel := context.WithTimeout(ctx, f.registerTimeout)
		reg, regErr := f.registrar.RegisterTrip(regCtx, budget.Params, tier)
		cancel()
		if regErr == nil && (reg == nil || reg.TripID == "") {
			regErr = errNoRegistration
		}
		if regErr != nil {
			syncDegraded(ctx, f.logger, "register_trip", regErr, "destination", budget.Params.Destination)
			fields["sync"] = string(domain.SyncDegraded)
		} else {
			next.TripID = reg.TripID
			next.ShareURL = reg.ShareURL
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen {
		return ItineraryStage{}, ErrStaleTransition
	}
	f.selecting = false
	f.transition(next)
	return next, nil
}

func (f *planningFlow) BackToDestination() DestinationStage {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transition(DestinationStage{})
	return DestinationStage{}
}

// BackToBudget returns to tier selection keeping the trip parameters. The
// tier and trip id are discarded.
func (f *planningFlow) BackToBudget() (BudgetStage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var params domain.TripParameters
	switch s := f.state.(type) {
	case ItineraryStage:
		params = s.Params
	case BudgetStage:
		params = s.Params
	default:
		return BudgetStage{}, fmt.Errorf("back to budget from %s stage: %w", s.Stage(), ErrInvalidTransition)
	}
	next := BudgetStage{Params: params}
	f.transition(next)
	return next, nil
}

func (f *planningFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *planningFlow) Stage() domain.FlowStage {
	return f.State().Stage()
}

// transition installs next and invalidates any in-flight selection.
// Callers hold f.mu.
func (f *planningFlow) transition(next FlowState) {
	f.gen++
	f.selecting = false
	f.state = next
}
