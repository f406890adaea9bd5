package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/itinera/internal/db"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentAccess_ReadsDuringWrites runs a writer that keeps growing a
// completion scope while readers poll it. Every read must decode to a state
// the writer actually stored.
func TestConcurrentAccess_ReadsDuringWrites(t *testing.T) {
	database := newConcurrentTestDB(t)
	repo := NewSQLiteCompletionRepo(database)
	ctx := context.Background()
	require.NoError(t, repo.Write(ctx, "trip", domain.CompletionState{}))

	const writes = 20
	var wg sync.WaitGroup
	errs := make(chan error, writes*4)

	wg.Add(1)
	go func() {
		defer wg.Done()
		state := domain.CompletionState{}
		for i := 0; i < writes; i++ {
			state[domain.ActivityKey{Day: 0, Activity: i}] = true
			if err := repo.Write(ctx, "trip", state); err != nil {
				errs <- err
				return
			}
		}
	}()

	for r := 0; r < 3; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < writes; i++ {
				state, err := repo.Read(ctx, "trip")
				if err != nil {
					errs <- err
					return
				}
				// Writes only ever add the next key, so a consistent snapshot
				// is always a prefix 0..n-1.
				for k := range state {
					if k.Activity >= len(state) {
						errs <- assert.AnError
						return
					}
				}
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	final, err := repo.Read(ctx, "trip")
	require.NoError(t, err)
	assert.Len(t, final, writes)
}
