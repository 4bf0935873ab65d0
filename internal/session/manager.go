package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"internhub/config"
	domainerrors "internhub/internal/domain/errors"
	"internhub/internal/domain/service"
	"internhub/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const janitorInterval = time.Minute

type managedStore struct {
	store    *Store
	lastSeen time.Time
}

// Manager owns one Store per browser session id and closes idle ones.
type Manager struct {
	providers    service.IdentityProviderFactory
	synchronizer usecase.ProfileSynchronizer
	roles        usecase.RoleResolver
	metrics      service.MetricsRecorder
	logger       *slog.Logger
	idleTTL      time.Duration
	maxStores    int
	now          func() time.Time

	mu      sync.Mutex
	entries map[string]*managedStore
	closed  bool

	stopJanitor context.CancelFunc
	janitorDone chan struct{}
}

// ManagerParams holds dependencies for Manager, injected by Fx.
type ManagerParams struct {
	fx.In

	Lifecycle    fx.Lifecycle `optional:"true"`
	Config       *config.Config
	Providers    service.IdentityProviderFactory
	Synchronizer usecase.ProfileSynchronizer
	Roles        usecase.RoleResolver
	Metrics      service.MetricsRecorder `optional:"true"`
	Logger       *slog.Logger
}

// NewManager creates a Manager and ties its janitor to the application lifecycle.
func NewManager(params ManagerParams) *Manager {
	var (
		idleTTL   time.Duration
		maxStores int
	)
	if params.Config != nil && params.Config.Session != nil {
		idleTTL = params.Config.Session.IdleTTL
		maxStores = params.Config.Session.MaxStores
	}

	m := &Manager{
		providers:    params.Providers,
		synchronizer: params.Synchronizer,
		roles:        params.Roles,
		metrics:      params.Metrics,
		logger:       params.Logger,
		idleTTL:      idleTTL,
		maxStores:    maxStores,
		now:          time.Now,
		entries:      make(map[string]*managedStore),
	}

	if params.Lifecycle != nil {
		params.Lifecycle.Append(fx.Hook{
			OnStart: func(context.Context) error {
				m.startJanitor()

				return nil
			},
			OnStop: func(context.Context) error {
				m.CloseAll()

				return nil
			},
		})
	}

	return m
}

// NewSessionID returns a fresh opaque browser session id.
func NewSessionID() string {
	return uuid.NewString()
}

// Get returns the store for id, creating and starting it on first use. When
// maxStores stores are live the least recently used one is closed first.
func (m *Manager) Get(id string) (*Store, error) {
	store, displaced, err := m.getOrCreate(id)
	if displaced != nil {
		m.logger.Info("Session store limit reached, closing least recently used store",
			slog.String("session_id", displaced.id),
			slog.Int("max_stores", m.maxStores),
		)
		m.closeStore(displaced.id, displaced.store)
	}

	return store, err
}

type displacedStore struct {
	id    string
	store *Store
}

func (m *Manager) getOrCreate(id string) (*Store, *displacedStore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, nil, domainerrors.ErrSessionClosed
	}

	if entry, ok := m.entries[id]; ok {
		entry.lastSeen = m.now()

		return entry.store, nil, nil
	}

	store := NewStore(StoreParams{
		Provider:     m.providers.NewClient(),
		Synchronizer: m.synchronizer,
		Roles:        m.roles,
		Metrics:      m.metrics,
		Logger:       m.logger.With(slog.String("session_id", id)),
	})
	if err := store.Start(); err != nil {
		return nil, nil, err
	}

	var displaced *displacedStore
	if m.maxStores > 0 && len(m.entries) >= m.maxStores {
		displaced = m.popLeastRecentLocked()
	}
	m.entries[id] = &managedStore{store: store, lastSeen: m.now()}

	return store, displaced, nil
}

func (m *Manager) popLeastRecentLocked() *displacedStore {
	var (
		oldestID string
		oldest   *managedStore
	)
	for id, entry := range m.entries {
		if oldest == nil || entry.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, entry
		}
	}
	if oldest == nil {
		return nil
	}
	delete(m.entries, oldestID)

	return &displacedStore{id: oldestID, store: oldest.store}
}

// Lookup returns the store for id without creating one.
func (m *Manager) Lookup(id string) (*Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = m.now()

	return entry.store, true
}

// Remove closes and forgets the store for id.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	entry, ok := m.entries[id]
	delete(m.entries, id)
	m.mu.Unlock()

	if ok {
		m.closeStore(id, entry.store)
	}
}

// Len returns the number of live stores.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}

// EvictIdle closes stores that have not been used for longer than the idle TTL.
func (m *Manager) EvictIdle() int {
	if m.idleTTL <= 0 {
		return 0
	}

	cutoff := m.now().Add(-m.idleTTL)
	evicted := make(map[string]*Store)

	m.mu.Lock()
	for id, entry := range m.entries {
		if entry.lastSeen.Before(cutoff) {
			evicted[id] = entry.store
			delete(m.entries, id)
		}
	}
	m.mu.Unlock()

	for id, store := range evicted {
		m.closeStore(id, store)
	}

	return len(evicted)
}

// CloseAll closes every store and rejects further Get calls.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()

		return
	}
	m.closed = true
	entries := m.entries
	m.entries = make(map[string]*managedStore)
	stop := m.stopJanitor
	done := m.janitorDone
	m.mu.Unlock()

	if stop != nil {
		stop()
		<-done
	}

	for id, entry := range entries {
		m.closeStore(id, entry.store)
	}
}

func (m *Manager) closeStore(id string, store *Store) {
	if err := store.Close(); err != nil {
		m.logger.Warn("Failed to close session store",
			slog.String("session_id", id),
			slog.Any("error", err),
		)
	}
}

func (m *Manager) startJanitor() {
	if m.idleTTL <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	m.mu.Lock()
	m.stopJanitor = cancel
	m.janitorDone = done
	m.mu.Unlock()

	go func() {
		defer close(done)

		ticker := time.NewTicker(janitorInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := m.EvictIdle(); n > 0 {
					m.logger.Debug("Evicted idle session stores", slog.Int("count", n))
				}
			}
		}
	}()
}
