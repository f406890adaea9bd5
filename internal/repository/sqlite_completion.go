package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/itinera/internal/db"
	"github.com/alexanderramin/itinera/internal/domain"
)

// SQLiteCompletionRepo implements CompletionRepo using a SQLite database.
type SQLiteCompletionRepo struct {
	db db.DBTX
}

// NewSQLiteCompletionRepo creates a new SQLiteCompletionRepo.
func NewSQLiteCompletionRepo(conn db.DBTX) *SQLiteCompletionRepo {
	return &SQLiteCompletionRepo{db: conn}
}

// Read returns the stored state for scopeKey. A missing row or a blob that
// does not decode yields an empty state rather than an error.
func (r *SQLiteCompletionRepo) Read(ctx context.Context, scopeKey string) (domain.CompletionState, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT state_json FROM completion_states WHERE scope_key = ?`, scopeKey).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CompletionState{}, nil
		}
		return nil, fmt.Errorf("reading completion state %q: %w", scopeKey, err)
	}
	return decodeCompletion(raw), nil
}

// Write replaces the stored state for scopeKey.
func (r *SQLiteCompletionRepo) Write(ctx context.Context, scopeKey string, state domain.CompletionState) error {
	data, err := json.Marshal(state.Clone())
	if err != nil {
		return fmt.Errorf("encoding completion state: %w", err)
	}
	query := `INSERT INTO completion_states (scope_key, state_json, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(scope_key) DO UPDATE SET state_json = excluded.state_json, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, scopeKey, string(data), nowUTC()); err != nil {
		return fmt.Errorf("writing completion state %q: %w", scopeKey, err)
	}
	return nil
}

func (r *SQLiteCompletionRepo) ListScopes(ctx context.Context) ([]ScopeSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT scope_key, state_json, updated_at FROM completion_states ORDER BY updated_at DESC, scope_key`)
	if err != nil {
		return nil, fmt.Errorf("listing completion scopes: %w", err)
	}
	defer rows.Close()

	var out []ScopeSummary
	for rows.Next() {
		var s ScopeSummary
		var raw string
		if err := rows.Scan(&s.ScopeKey, &raw, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning completion scope: %w", err)
		}
		for _, done := range decodeCompletion(raw) {
			if done {
				s.DoneCount++
			}
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating completion scopes: %w", err)
	}
	return out, nil
}

func decodeCompletion(raw string) domain.CompletionState {
	var state domain.CompletionState
	if err := json.Unmarshal([]byte(raw), &state); err != nil || state == nil {
		return domain.CompletionState{}
	}
	return state
}
