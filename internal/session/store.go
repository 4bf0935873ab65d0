// Package session keeps the authentication state of each browser session
// in sync with the identity provider and the account store.
package session

import (
	"context"
	"log/slog"
	"sync"

	"internhub/internal/domain/entity"
	domainerrors "internhub/internal/domain/errors"
	"internhub/internal/domain/service"
	"internhub/internal/usecase"
)

// Store is the single source of truth for one browser session.
//
// Provider callbacks only record the new session and enqueue synchronization;
// database work always runs on the store's task queue, after the callback has
// returned. Results from a superseded user or a closed store are discarded.
type Store struct {
	provider     service.IdentityProvider
	synchronizer usecase.ProfileSynchronizer
	roles        usecase.RoleResolver
	metrics      service.MetricsRecorder
	logger       *slog.Logger

	queue   *taskQueue
	notices *noticeBuffer

	mu          sync.Mutex
	state       entity.AuthState
	generation  uint64
	changed     chan struct{}
	closed      bool
	started     bool
	unsubscribe func()
}

// StoreParams holds the collaborators of a Store.
type StoreParams struct {
	Provider     service.IdentityProvider
	Synchronizer usecase.ProfileSynchronizer
	Roles        usecase.RoleResolver
	Metrics      service.MetricsRecorder
	Logger       *slog.Logger
}

// NewStore creates a store in the loading state. Call Start to subscribe to the provider.
func NewStore(params StoreParams) *Store {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		provider:     params.Provider,
		synchronizer: params.Synchronizer,
		roles:        params.Roles,
		metrics:      params.Metrics,
		logger:       logger,
		queue:        newTaskQueue(logger),
		notices:      &noticeBuffer{},
		state: entity.AuthState{
			IsLoading: true,
			Sync:      entity.SyncIdle,
		},
		changed: make(chan struct{}),
	}
}

// Start subscribes to provider session events. The provider reports the
// initial session to the new subscriber, which ends the loading state.
func (s *Store) Start() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return domainerrors.ErrSessionClosed
	}
	if s.started {
		s.mu.Unlock()

		return nil
	}
	s.started = true
	s.mu.Unlock()

	unsubscribe := s.provider.Subscribe(s.handleEvent)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		unsubscribe()

		return domainerrors.ErrSessionClosed
	}
	s.unsubscribe = unsubscribe
	s.mu.Unlock()

	return nil
}

// State returns a snapshot of the current auth state.
func (s *Store) State() entity.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// IsAuthenticated reports whether a user is signed in.
func (s *Store) IsAuthenticated() bool {
	return s.State().IsAuthenticated()
}

// IsLoading reports whether the initial session check is still running.
func (s *Store) IsLoading() bool {
	return s.State().IsLoading
}

// GetUserRole returns the settled role, resolving it on demand when
// synchronization has not finished. It returns "" when nobody is signed in.
func (s *Store) GetUserRole(ctx context.Context) entity.Role {
	state := s.State()
	if state.User == nil {
		return ""
	}
	if state.RoleKnown() {
		return state.Role
	}

	return s.roles.ResolveRole(ctx, state.User)
}

// Synchronize runs account synchronization for the current user on the
// calling goroutine and applies the result. It returns nil when nobody is
// signed in or synchronization failed.
func (s *Store) Synchronize(ctx context.Context) (*entity.Account, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return nil, domainerrors.ErrSessionClosed
	}
	user := s.state.User
	generation := s.generation
	s.mu.Unlock()

	if user == nil {
		return nil, nil
	}

	account, role := s.synchronize(ctx, user)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.apply(generation, account, role)

	return account, nil
}

// RequestSync schedules a synchronization for the current user.
// It reports false when nobody is signed in or the store is closed.
func (s *Store) RequestSync() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state.User == nil {
		return false
	}
	s.scheduleSyncLocked()

	return true
}

// EnsureSync schedules a synchronization only when none was requested for the current user yet.
func (s *Store) EnsureSync() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state.User == nil || s.state.Sync != entity.SyncIdle {
		return
	}
	s.scheduleSyncLocked()
}

// WaitSettled blocks until the initial session check is done and, for a
// signed-in user, synchronization has settled. It returns the latest state
// together with ctx.Err() when ctx ends first.
func (s *Store) WaitSettled(ctx context.Context) (entity.AuthState, error) {
	for {
		s.mu.Lock()
		state := s.state
		changed := s.changed
		closed := s.closed
		s.mu.Unlock()

		if closed {
			return state, domainerrors.ErrSessionClosed
		}
		if settled(state) {
			return state, nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return state, ctx.Err()
		}
	}
}

// SignIn signs in through the provider. The store learns about the new
// session from the provider's SIGNED_IN event.
func (s *Store) SignIn(ctx context.Context, email, password string) (*entity.Session, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	return s.provider.SignIn(ctx, email, password)
}

// SignUp registers a new identity, passing roleHint as registration metadata.
func (s *Store) SignUp(ctx context.Context, email, password string, roleHint entity.Role) (*entity.Session, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	return s.provider.SignUp(ctx, email, password, roleHint)
}

// SignOut ends the provider session.
func (s *Store) SignOut(ctx context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	return s.provider.SignOut(ctx)
}

// PushNotice queues a notice for the browser session.
func (s *Store) PushNotice(notice entity.Notice) {
	s.notices.push(notice)
}

// Notices returns and clears the pending notices.
func (s *Store) Notices() []entity.Notice {
	return s.notices.drain()
}

// Close unsubscribes from the provider and stops deferred work. State never
// changes after Close returns, even if a synchronization was in flight.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return nil
	}
	s.closed = true
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.broadcastLocked()
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	s.queue.Close()

	return s.provider.Close()
}

func (s *Store) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domainerrors.ErrSessionClosed
	}

	return nil
}

// handleEvent runs on the provider's dispatch path and must not block on the database.
func (s *Store) handleEvent(event service.SessionEvent) {
	if s.metrics != nil {
		s.metrics.RecordSessionEvent(event.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	switch event.Type {
	case service.EventInitialSession:
		s.applySessionLocked(event.Session)
		s.state.IsLoading = false
	case service.EventSignedIn, service.EventTokenRefreshed:
		s.applySessionLocked(event.Session)
		if s.state.User != nil {
			s.scheduleSyncLocked()
		}
	case service.EventSignedOut:
		s.applySessionLocked(nil)
	default:
		s.logger.Debug("Ignoring unknown session event", slog.String("event", string(event.Type)))

		return
	}

	s.broadcastLocked()
}

// applySessionLocked records a new session. A different user resets the
// account, role and sync status and invalidates in-flight synchronization.
func (s *Store) applySessionLocked(session *entity.Session) {
	var user *entity.Identity
	if session != nil {
		user = session.User
	}

	if !sameIdentity(s.state.User, user) {
		s.generation++
		s.state.Account = nil
		s.state.Role = ""
		s.state.Sync = entity.SyncIdle
	}

	s.state.Session = session
	s.state.User = user
}

func (s *Store) scheduleSyncLocked() {
	user := s.state.User
	generation := s.generation

	if s.state.Sync != entity.SyncSettled {
		s.state.Sync = entity.SyncPending
	}

	queued := s.queue.Defer(func(ctx context.Context) {
		account, role := s.synchronize(ctx, user)
		s.apply(generation, account, role)
	})
	if !queued {
		s.logger.Debug("Session queue closed, synchronization dropped")
	}
	s.broadcastLocked()
}

// synchronize ensures the account exists and falls back to a read-only role
// resolution when it could not be produced.
func (s *Store) synchronize(ctx context.Context, user *entity.Identity) (*entity.Account, entity.Role) {
	ctx = service.WithNotifier(ctx, s.notices)

	account, err := s.synchronizer.Synchronize(ctx, user)
	if ctx.Err() != nil {
		return nil, ""
	}
	if err != nil {
		s.logger.Error("Account synchronization failed", slog.Any("error", err))
		account = nil
	}
	if account != nil && account.Role.IsValid() {
		return account, account.Role
	}

	return account, s.roles.ResolveRole(ctx, user)
}

func (s *Store) apply(generation uint64, account *entity.Account, role entity.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || generation != s.generation {
		s.logger.Debug("Discarding stale synchronization result")

		return
	}

	s.state.Account = account
	s.state.Role = role
	s.state.Sync = entity.SyncSettled
	s.broadcastLocked()
}

func (s *Store) broadcastLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

func settled(state entity.AuthState) bool {
	if state.IsLoading {
		return false
	}

	return state.User == nil || state.Sync == entity.SyncSettled
}

func sameIdentity(a, b *entity.Identity) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.SubjectID == b.SubjectID && a.Email == b.Email
}
