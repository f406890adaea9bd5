package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/repository"
	"github.com/alexanderramin/itinera/internal/service"
	"github.com/alexanderramin/itinera/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, seed bool) *httptest.Server {
	t.Helper()
	database := testutil.NewTestDB(t)
	catalog := service.NewCatalogService(
		repository.NewSQLiteDestinationRepo(database),
		repository.NewSQLiteTravelPlanRepo(database),
		testutil.NewTestUoW(database),
	)
	if seed {
		_, err := catalog.Seed(context.Background())
		require.NoError(t, err)
	}
	trips := service.NewTripService(repository.NewSQLiteTripRepo(database), service.NewCatalogPlanProvider(catalog))

	ts := httptest.NewServer(New("", catalog, trips).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, target string, body any, out any) int {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createTrip(t *testing.T, ts *httptest.Server, destination, tier string) contract.CreateTripResponse {
	t.Helper()
	var created contract.CreateTripResponse
	status := doJSON(t, http.MethodPost, ts.URL+"/api/trips", contract.CreateTripRequest{
		Destination:    destination,
		StartDate:      "2026-06-01",
		EndDate:        "2026-06-03",
		Travelers:      2,
		SelectedBudget: tier,
	}, &created)
	require.Equal(t, http.StatusOK, status)
	return created
}

func TestServer_Status(t *testing.T) {
	ts := newTestServer(t, false)

	var resp contract.StatusResponse
	assert.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/api/", nil, &resp))
	assert.Equal(t, Version, resp.Version)
	assert.NotEmpty(t, resp.Message)
}

func TestServer_SeedAndListDestinations(t *testing.T) {
	ts := newTestServer(t, false)

	var seeded contract.SeedResponse
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, ts.URL+"/api/seed-database", nil, &seeded))
	assert.Equal(t, 6, seeded.Destinations)
	assert.Equal(t, 6, seeded.Plans)

	var dests []contract.Destination
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/api/destinations?popular=true", nil, &dests))
	assert.Len(t, dests, 6)

	var errResp contract.ErrorResponse
	assert.Equal(t, http.StatusUnprocessableEntity, doJSON(t, http.MethodGet, ts.URL+"/api/destinations?popular=maybe", nil, &errResp))
}

func TestServer_PlansCaseInsensitive(t *testing.T) {
	ts := newTestServer(t, true)

	var plans contract.TravelPlansResponse
	status := doJSON(t, http.MethodGet, ts.URL+"/api/destinations/"+url.PathEscape("PARIS, france")+"/plans", nil, &plans)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Paris, France", plans.Destination)
	assert.Len(t, plans.Plans, 3)
	assert.Contains(t, plans.Plans, "travelEnthusiast")
}

func TestServer_PlansNotFound(t *testing.T) {
	ts := newTestServer(t, true)

	// London exists in the catalog but has no plans.
	for _, name := range []string{"Atlantis", "London, UK"} {
		var errResp contract.ErrorResponse
		status := doJSON(t, http.MethodGet, ts.URL+"/api/destinations/"+url.PathEscape(name)+"/plans", nil, &errResp)
		assert.Equal(t, http.StatusNotFound, status, name)
		assert.Equal(t, "Travel plans not found for "+name, errResp.Detail)
	}
}

func TestServer_TripLifecycle(t *testing.T) {
	ts := newTestServer(t, true)
	created := createTrip(t, ts, "Paris, France", "backpacker")

	assert.NotEmpty(t, created.TripID)
	assert.Equal(t, "/trips/"+created.ShareToken, created.ShareURL)

	var progress contract.ProgressResponse
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/api/trips/"+created.TripID+"/progress", nil, &progress))
	assert.Equal(t, 0, progress.ProgressPercentage)
	assert.Equal(t, "backpacker", progress.SelectedBudget)

	// 9 of the 18 seeded backpacker activities.
	done := map[string]bool{}
	for day := 0; day < 3; day++ {
		for act := 0; act < 3; act++ {
			done[testutil.K(day, act).String()] = true
		}
	}
	var updated contract.ProgressUpdateResponse
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPut, ts.URL+"/api/trips/"+created.TripID+"/progress",
		contract.ProgressUpdateRequest{CompletedActivities: done}, &updated))
	assert.Equal(t, 50, updated.ProgressPercentage)

	var shared contract.Trip
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/api/trips/shared/"+created.ShareToken, nil, &shared))
	assert.Equal(t, created.TripID, shared.ID)
	assert.Equal(t, done, shared.CompletedActivities)
}

func TestServer_TripNotFound(t *testing.T) {
	ts := newTestServer(t, false)

	var errResp contract.ErrorResponse
	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodGet, ts.URL+"/api/trips/missing/progress", nil, &errResp))
	assert.Equal(t, "Trip not found", errResp.Detail)

	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodPut, ts.URL+"/api/trips/missing/progress",
		contract.ProgressUpdateRequest{CompletedActivities: map[string]bool{"0-0": true}}, &errResp))

	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodGet, ts.URL+"/api/trips/shared/nope", nil, &errResp))
	assert.Equal(t, "Shared trip not found", errResp.Detail)
}

func TestServer_CreateTripValidation(t *testing.T) {
	ts := newTestServer(t, false)

	tests := []struct {
		name string
		req  contract.CreateTripRequest
	}{
		{"bad date", contract.CreateTripRequest{Destination: "Paris", StartDate: "06/01/2026", EndDate: "2026-06-03", Travelers: 1, SelectedBudget: "luxury"}},
		{"end before start", contract.CreateTripRequest{Destination: "Paris", StartDate: "2026-06-05", EndDate: "2026-06-03", Travelers: 1, SelectedBudget: "luxury"}},
		{"no travelers", contract.CreateTripRequest{Destination: "Paris", StartDate: "2026-06-01", EndDate: "2026-06-03", SelectedBudget: "luxury"}},
		{"unknown tier", contract.CreateTripRequest{Destination: "Paris", StartDate: "2026-06-01", EndDate: "2026-06-03", Travelers: 1, SelectedBudget: "deluxe"}},
		{"no destination", contract.CreateTripRequest{StartDate: "2026-06-01", EndDate: "2026-06-03", Travelers: 1, SelectedBudget: "luxury"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errResp contract.ErrorResponse
			assert.Equal(t, http.StatusUnprocessableEntity, doJSON(t, http.MethodPost, ts.URL+"/api/trips", tt.req, &errResp))
			assert.NotEmpty(t, errResp.Detail)
		})
	}
}

func TestServer_MalformedBody(t *testing.T) {
	ts := newTestServer(t, false)

	resp, err := http.Post(ts.URL+"/api/trips", "application/json", bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_UnknownTripSubresource(t *testing.T) {
	ts := newTestServer(t, false)

	resp, err := http.Get(ts.URL + "/api/trips/abc/itinerary")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_StartAndShutdown(t *testing.T) {
	database := testutil.NewTestDB(t)
	catalog := service.NewCatalogService(
		repository.NewSQLiteDestinationRepo(database),
		repository.NewSQLiteTravelPlanRepo(database),
		testutil.NewTestUoW(database),
	)
	srv := New("127.0.0.1:0", catalog, service.NewTripService(repository.NewSQLiteTripRepo(database), nil))

	require.NoError(t, srv.Start(context.Background()))
	require.NotEmpty(t, srv.Addr())
	assert.Error(t, srv.Start(context.Background()), "second start is rejected")

	resp, err := http.Get("http://" + srv.Addr() + "/api/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	assert.Empty(t, srv.Addr())
}
