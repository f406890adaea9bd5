package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteTripRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	trip := testutil.NewTestTrip("Paris", domain.TierTravelEnthusiast,
		testutil.WithCompleted(testutil.K(0, 0)),
		testutil.WithUserEmail("ana@example.com"))
	require.NoError(t, repo.Create(ctx, trip))

	got, err := repo.GetByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paris", got.Destination)
	assert.Equal(t, domain.TierTravelEnthusiast, got.BudgetTier)
	assert.Equal(t, trip.Travelers, got.Travelers)
	assert.True(t, trip.DateRange.From.Equal(got.DateRange.From))
	assert.True(t, trip.DateRange.To.Equal(got.DateRange.To))
	assert.True(t, got.CompletedActivities.Done(testutil.K(0, 0)))
	require.NotNil(t, got.UserEmail)
	assert.Equal(t, "ana@example.com", *got.UserEmail)
	assert.Equal(t, trip.ShareToken, got.ShareToken)
}

func TestTripRepo_GetByShareToken(t *testing.T) {
	repo := NewSQLiteTripRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	trip := testutil.NewTestTrip("Tokyo", domain.TierLuxury)
	require.NoError(t, repo.Create(ctx, trip))

	got, err := repo.GetByShareToken(ctx, trip.ShareToken)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, got.ID)
	assert.Nil(t, got.UserEmail)

	_, err = repo.GetByShareToken(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTripRepo_GetByIDNotFound(t *testing.T) {
	_, err := NewSQLiteTripRepo(testutil.NewTestDB(t)).GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTripRepo_UpdateProgressReplacesState(t *testing.T) {
	repo := NewSQLiteTripRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	trip := testutil.NewTestTrip("Paris", domain.TierBackpacker, testutil.WithCompleted(testutil.K(0, 0)))
	require.NoError(t, repo.Create(ctx, trip))

	require.NoError(t, repo.UpdateProgress(ctx, trip.ID, testutil.Keys(testutil.K(1, 0))))

	got, err := repo.GetByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.ActivityKey{testutil.K(1, 0)}, got.CompletedActivities.Keys())
}

func TestTripRepo_UpdateProgressUnknownTrip(t *testing.T) {
	err := NewSQLiteTripRepo(testutil.NewTestDB(t)).UpdateProgress(context.Background(), "ghost", domain.CompletionState{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTripRepo_DuplicateShareTokenRejected(t *testing.T) {
	repo := NewSQLiteTripRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	a := testutil.NewTestTrip("Paris", domain.TierBackpacker)
	b := testutil.NewTestTrip("Tokyo", domain.TierBackpacker)
	b.ShareToken = a.ShareToken
	require.NoError(t, repo.Create(ctx, a))
	assert.Error(t, repo.Create(ctx, b))
}
