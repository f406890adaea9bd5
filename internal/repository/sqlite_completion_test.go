package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionRepo_ReadMissingScopeIsEmpty(t *testing.T) {
	repo := NewSQLiteCompletionRepo(testutil.NewTestDB(t))

	state, err := repo.Read(context.Background(), "never-written")
	require.NoError(t, err)
	assert.NotNil(t, state)
	assert.Empty(t, state)
}

func TestCompletionRepo_WriteThenReadRoundTrips(t *testing.T) {
	repo := NewSQLiteCompletionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	want := testutil.Keys(testutil.K(0, 0), testutil.K(1, 2))
	want[testutil.K(0, 1)] = false
	require.NoError(t, repo.Write(ctx, "trip-1", want))

	got, err := repo.Read(ctx, "trip-1")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
	assert.True(t, got.Done(testutil.K(1, 2)))
}

func TestCompletionRepo_WriteReplacesWholeState(t *testing.T) {
	repo := NewSQLiteCompletionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Write(ctx, domain.LocalScope, testutil.Keys(testutil.K(0, 0), testutil.K(0, 1))))
	require.NoError(t, repo.Write(ctx, domain.LocalScope, testutil.Keys(testutil.K(2, 0))))

	got, err := repo.Read(ctx, domain.LocalScope)
	require.NoError(t, err)
	assert.Equal(t, []domain.ActivityKey{testutil.K(2, 0)}, got.Keys())
}

func TestCompletionRepo_ScopesAreIsolated(t *testing.T) {
	repo := NewSQLiteCompletionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Write(ctx, "a", testutil.Keys(testutil.K(0, 0))))
	require.NoError(t, repo.Write(ctx, "b", testutil.Keys(testutil.K(1, 1))))

	a, err := repo.Read(ctx, "a")
	require.NoError(t, err)
	assert.False(t, a.Done(testutil.K(1, 1)))
}

func TestCompletionRepo_MalformedContentReadsAsEmpty(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteCompletionRepo(database)
	ctx := context.Background()

	_, err := database.Exec(
		`INSERT INTO completion_states (scope_key, state_json, updated_at) VALUES (?, ?, ?)`,
		"broken", "{not json", nowUTC())
	require.NoError(t, err)

	state, err := repo.Read(ctx, "broken")
	require.NoError(t, err)
	assert.Empty(t, state)

	// A JSON array is valid JSON but the wrong shape.
	_, err = database.Exec(`UPDATE completion_states SET state_json = '[1,2]' WHERE scope_key = 'broken'`)
	require.NoError(t, err)
	state, err = repo.Read(ctx, "broken")
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestCompletionRepo_UnparseableKeysAreDropped(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteCompletionRepo(database)

	_, err := database.Exec(
		`INSERT INTO completion_states (scope_key, state_json, updated_at) VALUES (?, ?, ?)`,
		"mixed", `{"0-1": true, "garbage": true, "-1-2": true}`, nowUTC())
	require.NoError(t, err)

	state, err := repo.Read(context.Background(), "mixed")
	require.NoError(t, err)
	assert.Equal(t, []domain.ActivityKey{testutil.K(0, 1)}, state.Keys())
}

func TestCompletionRepo_ListScopesCountsDoneEntries(t *testing.T) {
	repo := NewSQLiteCompletionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	s := testutil.Keys(testutil.K(0, 0), testutil.K(0, 1))
	s[testutil.K(0, 2)] = false
	require.NoError(t, repo.Write(ctx, "trip-9", s))
	require.NoError(t, repo.Write(ctx, domain.LocalScope, domain.CompletionState{}))

	scopes, err := repo.ListScopes(ctx)
	require.NoError(t, err)
	require.Len(t, scopes, 2)

	byKey := map[string]ScopeSummary{}
	for _, sc := range scopes {
		byKey[sc.ScopeKey] = sc
	}
	assert.Equal(t, 2, byKey["trip-9"].DoneCount)
	assert.Equal(t, 0, byKey[domain.LocalScope].DoneCount)
	assert.NotEmpty(t, byKey["trip-9"].UpdatedAt)
}
