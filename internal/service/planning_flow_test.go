package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/alexanderramin/itinera/internal/app"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlanningFlow_StartsAtDestination(t *testing.T) {
	flow := NewPlanningFlow(nil)

	assert.Equal(t, domain.StageDestination, flow.Stage())
	assert.IsType(t, DestinationStage{}, flow.State())
}

func TestPlanningFlow_SubmitDestination_ValidatesAndNormalizes(t *testing.T) {
	flow := NewPlanningFlow(nil)

	_, err := flow.SubmitDestination(testutil.NewTestParams("Paris", testutil.WithTravelers(0)))
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "travelers", ve.Field)
	assert.Equal(t, domain.StageDestination, flow.Stage(), "invalid input blocks navigation")

	stage, err := flow.SubmitDestination(testutil.NewTestParams("  Paris  "))
	require.NoError(t, err)
	assert.Equal(t, "Paris", stage.Params.Destination)
	assert.Equal(t, domain.StageBudget, flow.Stage())
}

func TestPlanningFlow_SelectBudget_RegistersExactlyOnce(t *testing.T) {
	reg := &mockRegistrar{}
	params := testutil.NewTestParams("Paris")
	reg.On("RegisterTrip", mock.Anything, params, domain.TierLuxury).
		Return(&app.TripRegistration{TripID: "trip-1", ShareURL: "/trips/tok"}, nil).Once()

	flow := NewPlanningFlow(reg)
	_, err := flow.SubmitDestination(params)
	require.NoError(t, err)

	stage, err := flow.SelectBudget(context.Background(), domain.TierLuxury)
	require.NoError(t, err)
	assert.Equal(t, "trip-1", stage.TripID)
	assert.Equal(t, "/trips/tok", stage.ShareURL)
	assert.Equal(t, domain.TierLuxury, stage.Tier)
	assert.Equal(t, domain.StageItinerary, flow.Stage())
	reg.AssertExpectations(t)
}

func TestPlanningFlow_SelectBudget_RegistrationFailureStillAdvances(t *testing.T) {
	var logs bytes.Buffer
	reg := &mockRegistrar{}
	reg.On("RegisterTrip", mock.Anything, mock.Anything, domain.TierBackpacker).
		Return(nil, fmt.Errorf("dial: %w", app.ErrUnavailable)).Once()

	flow := NewPlanningFlow(reg, WithFlowLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	_, err := flow.SubmitDestination(testutil.NewTestParams("Paris"))
	require.NoError(t, err)

	stage, err := flow.SelectBudget(context.Background(), domain.TierBackpacker)
	require.NoError(t, err, "sync failures never block the flow")
	assert.Empty(t, stage.TripID)
	assert.Equal(t, domain.StageItinerary, flow.Stage())
	assert.Contains(t, logs.String(), "remote sync degraded")
	reg.AssertNumberOfCalls(t, "RegisterTrip", 1)
}

func TestPlanningFlow_SelectBudget_OfflineMakesNoCall(t *testing.T) {
	flow := NewPlanningFlow(nil)
	_, err := flow.SubmitDestination(testutil.NewTestParams("Tokyo"))
	require.NoError(t, err)

	stage, err := flow.SelectBudget(context.Background(), domain.TierTravelEnthusiast)
	require.NoError(t, err)
	assert.Empty(t, stage.TripID)
}

func TestPlanningFlow_SelectBudget_WrongStage(t *testing.T) {
	reg := &mockRegistrar{}
	flow := NewPlanningFlow(reg)

	_, err := flow.SelectBudget(context.Background(), domain.TierLuxury)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	reg.AssertNotCalled(t, "RegisterTrip", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlanningFlow_SelectBudget_InvalidTier(t *testing.T) {
	reg := &mockRegistrar{}
	flow := NewPlanningFlow(reg)
	_, err := flow.SubmitDestination(testutil.NewTestParams("Paris"))
	require.NoError(t, err)

	_, err = flow.SelectBudget(context.Background(), "midrange")
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, domain.StageBudget, flow.Stage())
	reg.AssertNotCalled(t, "RegisterTrip", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlanningFlow_SelectBudget_NavigationDuringCallIsStale(t *testing.T) {
	reg := &mockRegistrar{}
	var flow PlanningFlow
	reg.On("RegisterTrip", mock.Anything, mock.Anything, domain.TierLuxury).
		Run(func(mock.Arguments) { flow.BackToDestination() }).
		Return(&app.TripRegistration{TripID: "late"}, nil).Once()

	flow = NewPlanningFlow(reg)
	_, err := flow.SubmitDestination(testutil.NewTestParams("Paris"))
	require.NoError(t, err)

	_, err = flow.SelectBudget(context.Background(), domain.TierLuxury)
	assert.ErrorIs(t, err, ErrStaleTransition)
	assert.Equal(t, domain.StageDestination, flow.Stage(), "late response must not resurrect the itinerary")
}

func TestPlanningFlow_SelectBudget_ConcurrentSelectionRejected(t *testing.T) {
	reg := &mockRegistrar{}
	var flow PlanningFlow
	var innerErr error
	reg.On("RegisterTrip", mock.Anything, mock.Anything, domain.TierBackpacker).
		Run(func(mock.Arguments) {
			_, innerErr = flow.SelectBudget(context.Background(), domain.TierLuxury)
		}).
		Return(&app.TripRegistration{TripID: "t1"}, nil).Once()

	flow = NewPlanningFlow(reg)
	_, err := flow.SubmitDestination(testutil.NewTestParams("Paris"))
	require.NoError(t, err)

	stage, err := flow.SelectBudget(context.Background(), domain.TierBackpacker)
	require.NoError(t, err)
	assert.Equal(t, "t1", stage.TripID)
	assert.ErrorIs(t, innerErr, ErrInvalidTransition)
	reg.AssertNumberOfCalls(t, "RegisterTrip", 1)
}

func TestPlanningFlow_BackToBudget_KeepsParamsDropsTrip(t *testing.T) {
	reg := &mockRegistrar{}
	reg.On("RegisterTrip", mock.Anything, mock.Anything, mock.Anything).
		Return(&app.TripRegistration{TripID: "t1"}, nil)

	flow := NewPlanningFlow(reg)
	params := testutil.NewTestParams("Paris", testutil.WithTravelers(4))
	_, err := flow.SubmitDestination(params)
	require.NoError(t, err)
	_, err = flow.SelectBudget(context.Background(), domain.TierLuxury)
	require.NoError(t, err)

	stage, err := flow.BackToBudget()
	require.NoError(t, err)
	assert.Equal(t, params, stage.Params)
	assert.Equal(t, BudgetStage{Params: params}, flow.State())
}

func TestPlanningFlow_BackToBudget_FromDestinationIsInvalid(t *testing.T) {
	flow := NewPlanningFlow(nil)
	_, err := flow.BackToBudget()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPlanningFlow_BackToDestination_FromAnyStage(t *testing.T) {
	flow := NewPlanningFlow(nil)
	_, err := flow.SubmitDestination(testutil.NewTestParams("Paris"))
	require.NoError(t, err)
	_, err = flow.SelectBudget(context.Background(), domain.TierBackpacker)
	require.NoError(t, err)

	flow.BackToDestination()
	assert.Equal(t, domain.StageDestination, flow.Stage())

	// Resubmitting from Destination starts fresh.
	stage, err := flow.SubmitDestination(testutil.NewTestParams("Tokyo"))
	require.NoError(t, err)
	assert.Equal(t, "Tokyo", stage.Params.Destination)
}

func TestPlanningFlow_ObserverRecordsSelection(t *testing.T) {
	var buf bytes.Buffer
	flow := NewPlanningFlow(nil, WithFlowObserver(NewLogUseCaseObserver(&buf)))
	_, err := flow.SubmitDestination(testutil.NewTestParams("Paris"))
	require.NoError(t, err)
	_, err = flow.SelectBudget(context.Background(), domain.TierLuxury)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "use_case=select_budget")
	assert.Contains(t, buf.String(), "tier=luxury")
}

func TestPlanningFlow_SelectBudget_FailureLoggedAsSyncDegraded(t *testing.T) {
	h := &recordHandler{}
	reg := &mockRegistrar{}
	reg.On("RegisterTrip", mock.Anything, mock.Anything, domain.TierLuxury).
		Return(nil, app.ErrUnavailable).Once()

	flow := NewPlanningFlow(reg, WithFlowLogger(slog.New(h)))
	_, err := flow.SubmitDestination(testutil.NewTestParams("Paris"))
	require.NoError(t, err)
	_, err = flow.SelectBudget(context.Background(), domain.TierLuxury)
	require.NoError(t, err)

	errs := h.loggedErrors("remote sync degraded")
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrSyncDegraded)
	assert.ErrorIs(t, errs[0], app.ErrUnavailable)
}

func TestPlanningFlow_SelectBudget_NilRegistrationIsDegraded(t *testing.T) {
	h := &recordHandler{}
	reg := &mockRegistrar{}
	reg.On("RegisterTrip", mock.Anything, mock.Anything, domain.TierBackpacker).
		Return(nil, nil).Once()

	flow := NewPlanningFlow(reg, WithFlowLogger(slog.New(h)))
	_, err := flow.SubmitDestination(testutil.NewTestParams("Paris"))
	require.NoError(t, err)

	stage, err := flow.SelectBudget(context.Background(), domain.TierBackpacker)
	require.NoError(t, err)
	assert.Empty(t, stage.TripID)
	assert.Equal(t, domain.StageItinerary, flow.Stage())
	require.Len(t, h.loggedErrors("remote sync degraded"), 1)
}
