package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/itinera/internal/domain"
)

// MemCompletionRepo is an in-memory completion store with the Read and Write
// methods of repository.CompletionRepo. WriteErr and ReadErr make the
// matching call fail.
type MemCompletionRepo struct {
	mu       sync.Mutex
	states   map[string]domain.CompletionState
	ReadErr  error
	WriteErr error
	writes   int
}

func NewMemCompletionRepo() *MemCompletionRepo {
	return &MemCompletionRepo{states: map[string]domain.CompletionState{}}
}

// Seed stores state under scopeKey without counting it as a write.
func (m *MemCompletionRepo) Seed(scopeKey string, state domain.CompletionState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[scopeKey] = state.Clone()
}

func (m *MemCompletionRepo) Read(_ context.Context, scopeKey string) (domain.CompletionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	return m.states[scopeKey].Clone(), nil
}

func (m *MemCompletionRepo) Write(_ context.Context, scopeKey string, state domain.CompletionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.writes++
	m.states[scopeKey] = state.Clone()
	return nil
}

// Stored returns a copy of what is persisted under scopeKey.
func (m *MemCompletionRepo) Stored(scopeKey string) domain.CompletionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[scopeKey].Clone()
}

// SetWriteErr changes WriteErr under the lock.
func (m *MemCompletionRepo) SetWriteErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteErr = err
}

func (m *MemCompletionRepo) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
