package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"internhub/internal/domain/entity"
	domainerrors "internhub/internal/domain/errors"
	"internhub/internal/domain/service"
	mockUsecase "internhub/internal/mocks/usecase"
	"internhub/internal/session/sessiontest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

// gatedSynchronizer returns a canned account per email once its gate is opened.
type gatedSynchronizer struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account
	gates    map[string]chan struct{}
	calls    map[string]int
	notice   *entity.Notice
}

func newGatedSynchronizer() *gatedSynchronizer {
	return &gatedSynchronizer{
		accounts: make(map[string]*entity.Account),
		gates:    make(map[string]chan struct{}),
		calls:    make(map[string]int),
	}
}

func (g *gatedSynchronizer) hold(email string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gates[email] = make(chan struct{})
}

func (g *gatedSynchronizer) release(email string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gate, ok := g.gates[email]; ok {
		close(gate)
		delete(g.gates, email)
	}
}

func (g *gatedSynchronizer) callCount(email string) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.calls[email]
}

func (g *gatedSynchronizer) Synchronize(ctx context.Context, identity *entity.Identity) (*entity.Account, error) {
	g.mu.Lock()
	g.calls[identity.Email]++
	gate := g.gates[identity.Email]
	account := g.accounts[identity.Email]
	notice := g.notice
	g.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if notice != nil {
		service.NotifierFromContext(ctx).Notify(ctx, *notice)
	}

	return account, nil
}

type storeFixtures struct {
	store        *Store
	provider     *sessiontest.Provider
	synchronizer *gatedSynchronizer
	roles        *mockUsecase.MockRoleResolver
}

func createTestStore(t *testing.T) storeFixtures {
	t.Helper()

	provider := sessiontest.NewProvider()
	synchronizer := newGatedSynchronizer()
	roles := mockUsecase.NewMockRoleResolver(t)
	store := NewStore(StoreParams{
		Provider:     provider,
		Synchronizer: synchronizer,
		Roles:        roles,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	t.Cleanup(func() { _ = store.Close() })

	return storeFixtures{
		store:        store,
		provider:     provider,
		synchronizer: synchronizer,
		roles:        roles,
	}
}

func waitSettled(t *testing.T, store *Store) entity.AuthState {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()

	state, err := store.WaitSettled(ctx)
	require.NoError(t, err)

	return state
}

func TestStore_StartsLoading(t *testing.T) {
	fx := createTestStore(t)

	assert.True(t, fx.store.IsLoading())
	assert.False(t, fx.store.IsAuthenticated())
	assert.Equal(t, entity.SyncIdle, fx.store.State().Sync)
}

func TestStore_InitialSessionWithoutUser(t *testing.T) {
	fx := createTestStore(t)

	require.NoError(t, fx.store.Start())

	state := waitSettled(t, fx.store)
	assert.False(t, state.IsLoading)
	assert.False(t, state.IsAuthenticated())
	assert.Equal(t, entity.Role(""), fx.store.GetUserRole(context.Background()))
}

func TestStore_InitialSessionWithUserDoesNotSync(t *testing.T) {
	fx := createTestStore(t)
	identity := &entity.Identity{SubjectID: "sub-1", Email: "ada@example.com"}
	fx.provider.Emit(service.SessionEvent{Type: service.EventSignedIn, Session: sessiontest.NewSession(identity)})

	require.NoError(t, fx.store.Start())

	state := fx.store.State()
	assert.False(t, state.IsLoading)
	assert.True(t, state.IsAuthenticated())
	assert.Equal(t, entity.SyncIdle, state.Sync)
	assert.Equal(t, 0, fx.synchronizer.callCount("ada@example.com"))
}

func TestStore_SignedInSchedulesSyncOutsideCallback(t *testing.T) {
	fx := createTestStore(t)
	require.NoError(t, fx.store.Start())

	identity := &entity.Identity{SubjectID: "sub-1", Email: "hr@acme.example"}
	fx.synchronizer.accounts["hr@acme.example"] = &entity.Account{Email: "hr@acme.example", Role: entity.RoleCompany}
	fx.synchronizer.hold("hr@acme.example")

	emitted := make(chan struct{})
	go func() {
		defer close(emitted)
		fx.provider.Emit(service.SessionEvent{Type: service.EventSignedIn, Session: sessiontest.NewSession(identity)})
	}()

	// The callback must return while the synchronization is still blocked.
	select {
	case <-emitted:
	case <-time.After(waitFor):
		t.Fatal("provider callback blocked on account synchronization")
	}

	state := fx.store.State()
	assert.True(t, state.IsAuthenticated())
	assert.Equal(t, entity.SyncPending, state.Sync)
	assert.Empty(t, fx.store.State().Role)

	fx.synchronizer.release("hr@acme.example")

	state = waitSettled(t, fx.store)
	assert.Equal(t, entity.SyncSettled, state.Sync)
	assert.Equal(t, entity.RoleCompany, state.Role)
	require.NotNil(t, state.Account)
	assert.Equal(t, "hr@acme.example", state.Account.Email)
}

func TestStore_SyncFailureFallsBackToResolvedRole(t *testing.T) {
	fx := createTestStore(t)
	require.NoError(t, fx.store.Start())

	identity := &entity.Identity{SubjectID: "sub-2", Email: "down@example.com"}
	fx.roles.EXPECT().ResolveRole(mock.Anything, identity).Return(entity.RoleCompany)

	fx.provider.Emit(service.SessionEvent{Type: service.EventSignedIn, Session: sessiontest.NewSession(identity)})

	state := waitSettled(t, fx.store)
	assert.Nil(t, state.Account)
	assert.Equal(t, entity.RoleCompany, state.Role)
	assert.Equal(t, entity.SyncSettled, state.Sync)
}

func TestStore_NoUpdatesAfterClose(t *testing.T) {
	fx := createTestStore(t)
	require.NoError(t, fx.store.Start())

	identity := &entity.Identity{SubjectID: "sub-3", Email: "gone@example.com"}
	fx.synchronizer.accounts["gone@example.com"] = &entity.Account{Email: "gone@example.com", Role: entity.RoleStudent}
	fx.synchronizer.hold("gone@example.com")

	fx.provider.Emit(service.SessionEvent{Type: service.EventSignedIn, Session: sessiontest.NewSession(identity)})
	require.Eventually(t, func() bool {
		return fx.synchronizer.callCount("gone@example.com") == 1
	}, waitFor, 10*time.Millisecond)

	require.NoError(t, fx.store.Close())
	fx.synchronizer.release("gone@example.com")

	before := fx.store.State()
	fx.provider.Emit(service.SessionEvent{Type: service.EventSignedOut})

	after := fx.store.State()
	assert.Equal(t, before, after)
	assert.Nil(t, after.Account)
	assert.Equal(t, entity.SyncPending, after.Sync)
	assert.True(t, fx.provider.Closed())
	assert.Equal(t, 0, fx.provider.Subscribers())

	assert.False(t, fx.store.RequestSync())
	_, err := fx.store.WaitSettled(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrSessionClosed)
	_, err = fx.store.SignIn(context.Background(), "gone@example.com", "pw")
	assert.ErrorIs(t, err, domainerrors.ErrSessionClosed)
}

func TestStore_StaleResultIsDiscarded(t *testing.T) {
	fx := createTestStore(t)
	require.NoError(t, fx.store.Start())

	first := &entity.Identity{SubjectID: "sub-a", Email: "a@example.com"}
	second := &entity.Identity{SubjectID: "sub-b", Email: "b@example.com"}
	fx.synchronizer.accounts["a@example.com"] = &entity.Account{Email: "a@example.com", Role: entity.RoleCompany}
	fx.synchronizer.accounts["b@example.com"] = &entity.Account{Email: "b@example.com", Role: entity.RoleStudent}
	fx.synchronizer.hold("a@example.com")

	fx.provider.Emit(service.SessionEvent{Type: service.EventSignedIn, Session: sessiontest.NewSession(first)})
	require.Eventually(t, func() bool {
		return fx.synchronizer.callCount("a@example.com") == 1
	}, waitFor, 10*time.Millisecond)

	fx.provider.Emit(service.SessionEvent{Type: service.EventSignedOut})
	assert.Nil(t, fx.store.State().User)

	fx.provider.Emit(service.SessionEvent{Type: service.EventSignedIn, Session: sessiontest.NewSession(second)})
	fx.synchronizer.release("a@example.com")

	state := waitSettled(t, fx.store)
	require.NotNil(t, state.Account)
	assert.Equal(t, "b@example.com", state.User.Email)
	assert.Equal(t, "b@example.com", state.Account.Email)
	assert.Equal(t, entity.RoleStudent, state.Role)
}

func TestStore_TokenRefreshKeepsSettledRole(t *testing.T) {
	fx := createTestStore(t)
	require.NoError(t, fx.store.Start())

	identity := &entity.Identity{SubjectID: "sub-4", Email: "keep@example.com"}
	fx.synchronizer.accounts["keep@example.com"] = &entity.Account{Email: "keep@example.com", Role: entity.RoleCompany}

	fx.provider.Emit(service.SessionEvent{Type: service.EventSignedIn, Session: sessiontest.NewSession(identity)})
	waitSettled(t, fx.store)

	fx.synchronizer.hold("keep@example.com")
	refreshed := sessiontest.NewSession(&entity.Identity{SubjectID: "sub-4", Email: "keep@example.com"})
	fx.provider.Emit(service.SessionEvent{Type: service.EventTokenRefreshed, Session: refreshed})

	state := fx.store.State()
	assert.Equal(t, entity.SyncSettled, state.Sync)
	assert.Equal(t, entity.RoleCompany, state.Role)
	assert.Same(t, refreshed, state.Session)

	fx.synchronizer.release("keep@example.com")
}

func TestStore_WaitSettledHonorsContext(t *testing.T) {
	fx := createTestStore(t)
	require.NoError(t, fx.store.Start())

	identity := &entity.Identity{SubjectID: "sub-5", Email: "slow@example.com"}
	fx.synchronizer.accounts["slow@example.com"] = &entity.Account{Email: "slow@example.com", Role: entity.RoleStudent}
	fx.synchronizer.hold("slow@example.com")
	fx.provider.Emit(service.SessionEvent{Type: service.EventSignedIn, Session: sessiontest.NewSession(identity)})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	state, err := fx.store.WaitSettled(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, entity.SyncPending, state.Sync)

	fx.synchronizer.release("slow@example.com")
}

func TestStore_EnsureSyncRunsOncePerUser(t *testing.T) {
	fx := createTestStore(t)
	identity := &entity.Identity{SubjectID: "sub-6", Email: "restore@example.com"}
	fx.synchronizer.accounts["restore@example.com"] = &entity.Account{Email: "restore@example.com", Role: entity.RoleStudent}
	fx.provider.Emit(service.SessionEvent{Type: service.EventSignedIn, Session: sessiontest.NewSession(identity)})
	require.NoError(t, fx.store.Start())

	fx.store.EnsureSync()
	state := waitSettled(t, fx.store)
	assert.Equal(t, entity.RoleStudent, state.Role)

	fx.store.EnsureSync()
	waitSettled(t, fx.store)
	assert.Equal(t, 1, fx.synchronizer.callCount("restore@example.com"))

	assert.True(t, fx.store.RequestSync())
	require.Eventually(t, func() bool {
		return fx.synchronizer.callCount("restore@example.com") == 2
	}, waitFor, 10*time.Millisecond)
}

func TestStore_SynchronizeInline(t *testing.T) {
	fx := createTestStore(t)
	require.NoError(t, fx.store.Start())

	account, err := fx.store.Synchronize(context.Background())
	require.NoError(t, err)
	assert.Nil(t, account)

	identity := &entity.Identity{SubjectID: "sub-7", Email: "inline@example.com"}
	fx.synchronizer.accounts["inline@example.com"] = &entity.Account{Email: "inline@example.com", Role: entity.RoleCompany}
	fx.provider.Emit(service.SessionEvent{Type: service.EventSignedIn, Session: sessiontest.NewSession(identity)})

	account, err = fx.store.Synchronize(context.Background())
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, entity.RoleCompany, fx.store.GetUserRole(context.Background()))
}

func TestStore_GetUserRoleBeforeSettled(t *testing.T) {
	fx := createTestStore(t)
	identity := &entity.Identity{SubjectID: "sub-8", Email: "early@example.com", UserMetadata: map[string]any{"role": "company"}}
	fx.provider.Emit(service.SessionEvent{Type: service.EventSignedIn, Session: sessiontest.NewSession(identity)})
	require.NoError(t, fx.store.Start())

	fx.roles.EXPECT().ResolveRole(mock.Anything, identity).Return(entity.RoleCompany)

	assert.Equal(t, entity.RoleCompany, fx.store.GetUserRole(context.Background()))
}

func TestStore_NoticesFromSynchronization(t *testing.T) {
	fx := createTestStore(t)
	require.NoError(t, fx.store.Start())

	identity := &entity.Identity{SubjectID: "sub-9", Email: "welcome@example.com"}
	fx.synchronizer.accounts["welcome@example.com"] = &entity.Account{Email: "welcome@example.com", Role: entity.RoleStudent}
	fx.synchronizer.notice = &entity.Notice{Level: entity.NoticeSuccess, Message: "Welcome!"}

	fx.provider.Emit(service.SessionEvent{Type: service.EventSignedIn, Session: sessiontest.NewSession(identity)})
	waitSettled(t, fx.store)

	fx.store.PushNotice(entity.Notice{Level: entity.NoticeInfo, Message: "hello"})

	notices := fx.store.Notices()
	require.Len(t, notices, 2)
	assert.Equal(t, "Welcome!", notices[0].Message)
	assert.Equal(t, "hello", notices[1].Message)
	assert.Empty(t, fx.store.Notices())
}

func TestNoticeBuffer_KeepsLatest(t *testing.T) {
	var buf noticeBuffer
	for i := range maxPendingNotices + 5 {
		buf.push(entity.Notice{Message: string(rune('a' + i))})
	}

	got := buf.drain()
	require.Len(t, got, maxPendingNotices)
	assert.Equal(t, string(rune('a'+5)), got[0].Message)
}
