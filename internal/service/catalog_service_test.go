package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/itinera/internal/app"
	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/importer"
	"github.com/alexanderramin/itinera/internal/repository"
	"github.com/alexanderramin/itinera/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService(t *testing.T) CatalogService {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewCatalogService(
		repository.NewSQLiteDestinationRepo(database),
		repository.NewSQLiteTravelPlanRepo(database),
		testutil.NewTestUoW(database),
	)
}

func smallSchema(names ...string) *importer.CatalogSchema {
	schema := &importer.CatalogSchema{}
	for _, n := range names {
		schema.Destinations = append(schema.Destinations, importer.DestinationImport{Name: n, Country: "Testland", Popular: true})
		schema.Plans = append(schema.Plans, importer.PlanSetImport{
			Destination: n,
			Tiers: map[string]contract.BudgetPlan{
				string(domain.TierBackpacker): contract.FromPlan(testutil.NewTestPlan(2, 1)),
				string(domain.TierLuxury):     contract.FromPlan(testutil.NewTestPlan(1)),
			},
		})
	}
	return schema
}

func TestCatalog_SeedPopulatesStore(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	result, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, result.Destinations)
	assert.Equal(t, 6, result.Plans)
	assert.Empty(t, result.Skipped)

	dests, err := svc.ListDestinations(ctx, true)
	require.NoError(t, err)
	assert.Len(t, dests, 6)

	plans, err := svc.GetTravelPlans(ctx, "paris, france")
	require.NoError(t, err)
	require.NotNil(t, plans.Plan(domain.TierTravelEnthusiast))
	assert.Equal(t, 18, plans.Plan(domain.TierTravelEnthusiast).ActivityCount())
}

func TestCatalog_ReseedSkipsExistingDestinations(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.Seed(ctx)
	require.NoError(t, err)
	result, err := svc.Seed(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Destinations)
	assert.Len(t, result.Skipped, 6)
	assert.Equal(t, 6, result.Plans, "plans of skipped destinations are refreshed")

	dests, err := svc.ListDestinations(ctx, false)
	require.NoError(t, err)
	assert.Len(t, dests, 6)
}

func TestCatalog_ImportRollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewCatalogService(
		repository.NewSQLiteDestinationRepo(database),
		repository.NewSQLiteTravelPlanRepo(database),
		&testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: errors.New("disk full")},
	)
	ctx := context.Background()

	_, err := svc.ImportSchema(ctx, smallSchema("Alpha", "Beta"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk full")

	dests, err := repository.NewSQLiteDestinationRepo(database).List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, dests, "transaction must leave no partial catalog behind")
}

func TestCatalog_ImportRejectsInvalidSchema(t *testing.T) {
	svc := newCatalogService(t)
	schema := smallSchema("Alpha")
	schema.Plans[0].Tiers["deluxe"] = contract.FromPlan(testutil.NewTestPlan(1))

	_, err := svc.ImportSchema(context.Background(), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog validation failed (1 errors)")
	assert.Contains(t, err.Error(), `invalid tier "deluxe"`)
}

func TestCatalog_ImportFile(t *testing.T) {
	svc := newCatalogService(t)
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `{
  "destinations": [{"name": "Lisbon, Portugal", "country": "Portugal", "popular": false}],
  "plans": [{
    "destination": "Lisbon, Portugal",
    "tiers": {
      "backpacker": {
        "total_budget": "$600",
        "duration": "1 day",
        "accommodation": "Hostel",
        "transport": "Tram 28",
        "highlights": ["Alfama"],
        "itinerary": [{"day": 1, "title": "Old town", "activities": [
          {"time": "10:00", "task": "Walk Alfama", "type": "sightseeing"}
        ]}]
      }
    }
  }]
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	result, err := svc.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Destinations)
	assert.Equal(t, 1, result.Plans)

	popular, err := svc.ListDestinations(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, popular)
}

func TestCatalogPlanProvider_MapsErrors(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()
	_, err := svc.ImportSchema(ctx, smallSchema("Alpha"))
	require.NoError(t, err)

	provider := NewCatalogPlanProvider(svc)

	plan, err := provider.FetchItineraryPlan(ctx, "alpha", domain.TierBackpacker)
	require.NoError(t, err)
	assert.Equal(t, 2, plan.ActivityCount())

	_, err = provider.FetchItineraryPlan(ctx, "Alpha", domain.TierTravelEnthusiast)
	assert.ErrorIs(t, err, app.ErrNotFound)

	_, err = provider.FetchItineraryPlan(ctx, "Omega", domain.TierBackpacker)
	assert.ErrorIs(t, err, app.ErrNotFound)
}
