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

// DefaultProgressTimeout bounds each remote progress fetch and write.
const DefaultProgressTimeout = 10 * time.Second

type progressService struct {
	store         CompletionStore
	remote        app.ProgressRemote
	remoteTimeout time.Duration
	logger        *slog.Logger
	observer      UseCaseObserver

	mu     sync.Mutex
	gen    uint64
	active bool
	scope  string
	tripID string
	state  domain.CompletionState
	status domain.SyncStatus

	// remote write coalescing for the active session
	writing bool
	dirty   bool
	idle    []chan struct{}

	subs    map[int]chan domain.CompletionState
	nextSub int
}

// ProgressOption configures a ProgressService.
type ProgressOption func(*progressService)

func WithProgressTimeout(d time.Duration) ProgressOption {
	return func(s *progressService) {
		if d > 0 {
			s.remoteTimeout = d
		}
	}
}

func WithProgressLogger(logger *slog.Logger) ProgressOption {
	return func(s *progressService) {
		s.logger = loggerOrDiscard(logger)
	}
}

func WithProgressObserver(obs UseCaseObserver) ProgressOption {
	return func(s *progressService) {
		s.observer = useCaseObserverOrNoop([]UseCaseObserver{obs})
	}
}

// NewProgressService creates a reconciler over store. A nil remote keeps
// every session local-only.
func NewProgressService(store CompletionStore, remote app.ProgressRemote, opts ...ProgressOption) ProgressService {
	s := &progressService{
		store:         store,
		remote:        remote,
		remoteTimeout: DefaultProgressTimeout,
		logger:        loggerOrDiscard(nil),
		observer:      NoopUseCaseObserver{},
		status:        domain.SyncLocalOnly,
		subs:          make(map[int]chan domain.CompletionState),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize starts a session for tripID ("" for a local-only session).
// A successful remote fetch replaces the local state and is written back
// locally; a failed one keeps the local state.
func (s *progressService) Initialize(ctx context.Context, tripID string) (state domain.CompletionState, err error) {
	startedAt := time.Now().UTC()
	scope := domain.ScopeKey(tripID)
	fields := map[string]any{"scope": scope}
	defer func() {
		fields["done"] = len(state.Keys())
		observe(ctx, s.observer, "progress_initialize", startedAt, err, fields)
	}()

	s.mu.Lock()
	s.resetLocked()
	gen := s.gen
	s.mu.Unlock()

	local, err := s.store.Read(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("reading local progress for %s: %w", scope, err)
	}

	state = local
	status := domain.SyncLocalOnly
	fromRemote := false
	if tripID != "" && s.remote != nil {
		fetchCtx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
		remote, fetchErr := s.remote.FetchTripProgress(fetchCtx, tripID)
		cancel()
		if fetchErr != nil {
			syncDegraded(ctx, s.logger, "fetch_progress", fetchErr, "trip_id", tripID)
			status = domain.SyncDegraded
		} else {
			state = remote.Clone()
			status = domain.SyncSynced
			fromRemote = true
		}
	}
	fields["sync"] = string(status)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil, ErrStaleScope
	}
	if fromRemote {
		if werr := s.store.Write(ctx, scope, state); werr != nil {
			s.logger.WarnContext(ctx, "caching remote progress locally failed", "scope", scope, "error", werr.Error())
		}
	}
	s.active = true
	s.scope = scope
	s.tripID = tripID
	s.state = state.Clone()
	s.status = status
	s.publishLocked()
	return s.state.Clone(), nil
}

// Toggle flips key and persists the full snapshot locally before returning.
// The in-memory flip is kept even when the local write fails. When the
// session has a trip id the snapshot is also sent to the remote in the
// background.
func (s *progressService) Toggle(ctx context.Context, key domain.ActivityKey) (state domain.CompletionState, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"key": key.String()}
	defer func() {
		observe(ctx, s.observer, "progress_toggle", startedAt, err, fields)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return nil, ErrNoSession
	}

	s.state = s.state.Toggled(key)
	fields["done"] = s.state.Done(key)
	fields["scope"] = s.scope
	s.publishLocked()

	werr := s.store.Write(ctx, s.scope, s.state)
	if s.tripID != "" && s.remote != nil {
		s.scheduleRemoteWriteLocked()
	}
	if werr != nil {
		return s.state.Clone(), fmt.Errorf("saving progress locally: %w", werr)
	}
	return s.state.Clone(), nil
}

func (s *progressService) State() domain.CompletionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe returns a channel that receives the latest state after every
// install or toggle. Slow readers only see the most recent value.
func (s *progressService) Subscribe() (<-chan domain.CompletionState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan domain.CompletionState, 1)
	s.subs[id] = ch
	if s.active {
		ch <- s.state.Clone()
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (s *progressService) SyncStatus() domain.SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *progressService) Scope() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

// Flush waits until the active session has no remote write in flight.
func (s *progressService) Flush(ctx context.Context) error {
	s.mu.Lock()
	if !s.writing {
		s.mu.Unlock()
		return nil
	}
	ch := make(chan struct{})
	s.idle = append(s.idle, ch)
	s.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close ends the session. Results of writes still in flight are ignored.
func (s *progressService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *progressService) resetLocked() {
	s.gen++
	s.active = false
	s.scope = ""
	s.tripID = ""
	s.state = nil
	s.status = domain.SyncLocalOnly
	s.writing = false
	s.dirty = false
	s.releaseIdleLocked()
}

func (s *progressService) publishLocked() {
	snapshot := s.state.Clone()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snapshot.Clone()
	}
}

func (s *progressService) releaseIdleLocked() {
	for _, ch := range s.idle {
		close(ch)
	}
	s.idle = nil
}

// scheduleRemoteWriteLocked starts the session's writer, or marks the state
// dirty so the running writer sends one more snapshot when it finishes.
func (s *progressService) scheduleRemoteWriteLocked() {
	s.status = domain.SyncPending
	if s.writing {
		s.dirty = true
		return
	}
	s.writing = true
	go s.remoteWriter(s.gen, s.tripID)
}

func (s *progressService) remoteWriter(gen uint64, tripID string) {
	for {
		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			return
		}
		snapshot := s.state.Clone()
		s.dirty = false
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), s.remoteTimeout)
		_, err := s.remote.WriteTripProgress(ctx, tripID, snapshot)
		cancel()

		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			return
		}
		if err != nil {
			syncDegraded(context.Background(), s.logger, "write_progress", err, "trip_id", tripID)
			s.status = domain.SyncDegraded
		} else if !s.dirty {
			s.status = domain.SyncSynced
		}
		if !s.dirty {
			s.writing = false
			s.releaseIdleLocked()
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
	}
}
