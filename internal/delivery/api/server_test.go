package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"internhub/config"
	apimiddleware "internhub/internal/delivery/api/middleware"
	"internhub/internal/delivery/api/router"
	"internhub/internal/delivery/api/router/handler"
	"internhub/internal/domain/entity"
	"internhub/internal/infra/metrics"
	"internhub/internal/infra/persistence/memory"
	"internhub/internal/session"
	"internhub/internal/session/sessiontest"
	"internhub/internal/usecase"
	"internhub/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCookieName = "internhub_session"

type testAppOptions struct {
	settleWait   time.Duration
	authRate     float64
	synchronizer func(usecase.ProfileSynchronizer) usecase.ProfileSynchronizer
}

type testApp struct {
	echo      *echo.Echo
	providers *sessiontest.Factory
	accounts  *memory.Store
	sessions  *session.Manager
}

func newTestApp(t *testing.T, opts testAppOptions) *testApp {
	t.Helper()

	if opts.settleWait == 0 {
		opts.settleWait = time.Second
	}
	if opts.authRate == 0 {
		opts.authRate = 1000
	}

	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "1M"
	cfg.Session = &config.SessionConfig{CookieName: testCookieName, IdleTTL: time.Hour}
	cfg.Guard = &config.GuardConfig{SettleWait: opts.settleWait}
	cfg.RateLimit = &config.RateLimitConfig{Auth: opts.authRate}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := metrics.NewRegistry()
	recorder := metrics.NewRecorder(registry)

	accounts := memory.NewStore()
	accountRepo := memory.NewAccountRepository(accounts)
	roles := impl.NewRoleResolver(impl.RoleResolverParams{AccountRepo: accountRepo, Logger: logger})
	synchronizer := impl.NewProfileSynchronizer(impl.ProfileSynchronizerParams{
		TxManager:   memory.NewTransactionManager(accounts),
		AccountRepo: accountRepo,
		Roles:       roles,
		Metrics:     recorder,
		Logger:      logger,
	})
	if opts.synchronizer != nil {
		synchronizer = opts.synchronizer(synchronizer)
	}
	guard := impl.NewRouteGuard()

	providers := sessiontest.NewFactory()
	manager := session.NewManager(session.ManagerParams{
		Config:       cfg,
		Providers:    providers,
		Synchronizer: synchronizer,
		Roles:        roles,
		Metrics:      recorder,
		Logger:       logger,
	})
	t.Cleanup(manager.CloseAll)

	e := NewEcho(cfg, logger, router.RouterParams{
		AuthHandler: handler.NewAuthHandler(handler.AuthHandlerParams{
			Guard:    guard,
			Sessions: manager,
			Config:   cfg,
			Logger:   logger,
		}),
		PageHandler: handler.NewPageHandler(handler.PageHandlerParams{Guard: guard, Config: cfg}),
		SessionMiddleware: apimiddleware.NewSessionMiddleware(apimiddleware.SessionMiddlewareParams{
			Manager: manager,
			Config:  cfg,
			Logger:  logger,
		}),
		GuardMiddleware: apimiddleware.NewGuardMiddleware(apimiddleware.GuardMiddlewareParams{
			Guard:   guard,
			Metrics: recorder,
			Config:  cfg,
			Logger:  logger,
		}),
		Gatherer: registry,
		Config:   cfg,
	})

	return &testApp{echo: e, providers: providers, accounts: accounts, sessions: manager}
}

// browser keeps the session cookie between requests.
type browser struct {
	t      *testing.T
	app    *testApp
	cookie *http.Cookie
}

func (app *testApp) browser(t *testing.T) *browser {
	return &browser{t: t, app: app}
}

func (b *browser) do(method, target, body string) *httptest.ResponseRecorder {
	b.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}

	rec := httptest.NewRecorder()
	b.app.echo.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == testCookieName {
			b.cookie = cookie
		}
	}

	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())

	return envelope.Data
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())

	return envelope.Error.Code
}

func TestServer_HealthCheck(t *testing.T) {
	app := newTestApp(t, testAppOptions{})

	rec := app.browser(t).do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeData[map[string]string](t, rec)["status"])
}

func TestServer_AnonymousVisitorIsSentToLogin(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	b := app.browser(t)

	rec := b.do(http.MethodGet, "/student-dashboard?tab=saved", "")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?redirect=%2Fstudent-dashboard%3Ftab%3Dsaved", rec.Header().Get(echo.HeaderLocation))
	assert.Nil(t, b.cookie, "no session cookie before sign-in")
}

func TestServer_AnonymousTrafficAllocatesNoSessions(t *testing.T) {
	app := newTestApp(t, testAppOptions{})

	for range 20 {
		b := app.browser(t)
		assert.Equal(t, http.StatusFound, b.do(http.MethodGet, "/profile", "").Code)
		assert.Equal(t, http.StatusFound, b.do(http.MethodGet, entity.PathRoot, "").Code)
		assert.Equal(t, http.StatusOK, b.do(http.MethodGet, entity.PathLogin, "").Code)
		assert.Equal(t, http.StatusOK, b.do(http.MethodGet, "/auth/session", "").Code)
		assert.Equal(t, http.StatusOK, b.do(http.MethodGet, "/auth/notices", "").Code)
	}

	// A well-formed cookie that names no live session is treated the same way.
	forged := app.browser(t)
	forged.cookie = &http.Cookie{Name: testCookieName, Value: session.NewSessionID()}
	assert.Equal(t, http.StatusFound, forged.do(http.MethodGet, entity.PathStudentDashboard, "").Code)
	assert.Equal(t, http.StatusUnauthorized, forged.do(http.MethodGet, "/auth/role", "").Code)

	assert.Equal(t, 0, app.sessions.Len())
	assert.Empty(t, app.providers.Providers())
}

func TestServer_MalformedCookieIsReplacedOnLogin(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	app.providers.Register("ada@example.com", "hunter22", nil)
	b := app.browser(t)
	b.cookie = &http.Cookie{Name: testCookieName, Value: "not-a-uuid"}

	rec := b.do(http.MethodGet, "/auth/session", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "not-a-uuid", b.cookie.Value)
	assert.Equal(t, 0, app.sessions.Len())

	rec = b.do(http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEqual(t, "not-a-uuid", b.cookie.Value)
	assert.True(t, b.cookie.HttpOnly)
	assert.Equal(t, 1, app.sessions.Len())

	issued := b.cookie.Value
	require.Equal(t, http.StatusOK, b.do(http.MethodGet, entity.PathStudentDashboard, "").Code)
	assert.Equal(t, issued, b.cookie.Value)
}

func TestServer_LoginPageSyncsRestoredSession(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	app.providers.RestoreNext(sessiontest.NewSession(&entity.Identity{
		SubjectID:    "user-7",
		Email:        "hr@acme.example",
		UserMetadata: map[string]any{"role": "company"},
	}))

	id := session.NewSessionID()
	store, err := app.sessions.Get(id)
	require.NoError(t, err)
	require.True(t, store.IsAuthenticated())
	require.Equal(t, entity.SyncIdle, store.State().Sync)

	b := app.browser(t)
	b.cookie = &http.Cookie{Name: testCookieName, Value: id}

	rec := b.do(http.MethodGet, entity.PathLogin, "")
	assert.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
	assert.Equal(t, entity.PathCompanyDashboard, rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, 1, app.accounts.AccountCount())
}

func TestServer_SignupCreatesCompanyAccount(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	b := app.browser(t)

	rec := b.do(http.MethodPost, "/auth/signup", `{"email":"hr@acme.example","password":"correct-horse","role":"company"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	auth := decodeData[handler.AuthResponse](t, rec)
	assert.Equal(t, "company", auth.Role)
	assert.Equal(t, entity.PathCompanyDashboard, auth.Redirect)
	assert.Equal(t, "hr@acme.example", auth.User.Email)

	rec = b.do(http.MethodGet, entity.PathCompanyDashboard, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	page := decodeData[handler.PageResponse](t, rec)
	assert.Equal(t, "company-dashboard", page.Page)
	assert.Equal(t, "company", page.Role)
	require.NotNil(t, page.Account)
	assert.NotNil(t, page.Account.CompanyProfile)
	assert.Nil(t, page.Account.StudentProfile)
	require.Len(t, page.Notices, 1)
	assert.Equal(t, entity.NoticeSuccess, page.Notices[0].Level)

	assert.Equal(t, 1, app.accounts.AccountCount())
	assert.Equal(t, 1, app.accounts.ProfileCount())
}

func TestServer_SignupValidation(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	b := app.browser(t)

	rec := b.do(http.MethodPost, "/auth/signup", `{"email":"hr@acme.example","password":"short","role":"company"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, rec))

	rec = b.do(http.MethodPost, "/auth/signup", `{"email":"hr@acme.example","password":"long-enough","role":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = b.do(http.MethodPost, "/auth/login", `{"email":"not-an-email","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, rec))
}

func TestServer_LoginAndRoleCorrection(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	app.providers.Register("ada@example.com", "hunter22", &entity.Identity{
		UserMetadata: map[string]any{"role": "student"},
	})
	b := app.browser(t)

	rec := b.do(http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	auth := decodeData[handler.AuthResponse](t, rec)
	assert.Equal(t, "student", auth.Role)
	assert.Equal(t, entity.PathStudentDashboard, auth.Redirect)

	rec = b.do(http.MethodGet, entity.PathRoot, "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, entity.PathStudentDashboard, rec.Header().Get(echo.HeaderLocation))

	rec = b.do(http.MethodGet, entity.PathCompanyDashboard, "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, entity.PathStudentDashboard, rec.Header().Get(echo.HeaderLocation))

	rec = b.do(http.MethodGet, "/auth/notices", "")
	require.Equal(t, http.StatusOK, rec.Code)
	notices := decodeData[[]entity.Notice](t, rec)
	require.NotEmpty(t, notices)
	assert.Equal(t, entity.NoticeInfo, notices[len(notices)-1].Level)

	rec = b.do(http.MethodGet, "/auth/role", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "student", decodeData[handler.RoleResponse](t, rec).Role)

	rec = b.do(http.MethodGet, entity.PathLogin, "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, entity.PathStudentDashboard, rec.Header().Get(echo.HeaderLocation))
}

func TestServer_LoginHonorsSafeRedirect(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	app.providers.Register("ada@example.com", "hunter22", nil)
	b := app.browser(t)

	rec := b.do(http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"hunter22","redirect":"/applications"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/applications", decodeData[handler.AuthResponse](t, rec).Redirect)

	rec = b.do(http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"hunter22","redirect":"https://evil.example"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.PathStudentDashboard, decodeData[handler.AuthResponse](t, rec).Redirect)
}

func TestServer_LoginWrongPassword(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	app.providers.Register("ada@example.com", "hunter22", nil)

	rec := app.browser(t).do(http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeErrorCode(t, rec))
}

func TestServer_LogoutEndsSession(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	app.providers.Register("ada@example.com", "hunter22", nil)
	b := app.browser(t)

	require.Equal(t, http.StatusOK, b.do(http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"hunter22"}`).Code)
	require.Equal(t, http.StatusOK, b.do(http.MethodGet, entity.PathStudentDashboard, "").Code)

	rec := b.do(http.MethodPost, "/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.PathLogin, decodeData[map[string]string](t, rec)["redirect"])

	rec = b.do(http.MethodGet, entity.PathStudentDashboard, "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderLocation), entity.PathLogin))

	rec = b.do(http.MethodGet, "/auth/role", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, app.sessions.Len())
}

func TestServer_SessionEndpoint(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	app.providers.Register("ada@example.com", "hunter22", nil)
	b := app.browser(t)

	rec := b.do(http.MethodGet, "/auth/session", "")
	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeData[handler.SessionResponse](t, rec)
	assert.False(t, state.Authenticated)
	assert.False(t, state.Loading)

	require.Equal(t, http.StatusOK, b.do(http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"hunter22"}`).Code)

	rec = b.do(http.MethodPost, "/auth/sync", "")
	require.Equal(t, http.StatusOK, rec.Code)
	synced := decodeData[handler.SyncResponse](t, rec)
	assert.True(t, synced.Synchronized)
	require.NotNil(t, synced.Account)
	assert.Equal(t, "student", synced.Account.Role)

	rec = b.do(http.MethodGet, "/auth/session", "")
	state = decodeData[handler.SessionResponse](t, rec)
	assert.True(t, state.Authenticated)
	assert.Equal(t, string(entity.SyncSettled), state.Sync)
	assert.Equal(t, "student", state.Role)
	require.NotNil(t, state.User)
	assert.Equal(t, "ada@example.com", state.User.Email)
	assert.NotNil(t, state.ExpiresAt)

	assert.Equal(t, 1, app.accounts.AccountCount())
}

// blockingSynchronizer holds every synchronization until release is closed.
type blockingSynchronizer struct {
	next    usecase.ProfileSynchronizer
	release chan struct{}
}

func (s *blockingSynchronizer) Synchronize(ctx context.Context, identity *entity.Identity) (*entity.Account, error) {
	select {
	case <-s.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return s.next.Synchronize(ctx, identity)
}

func TestServer_GuardAnswersLoadingWhileSyncPending(t *testing.T) {
	release := make(chan struct{})
	app := newTestApp(t, testAppOptions{
		settleWait: 50 * time.Millisecond,
		synchronizer: func(next usecase.ProfileSynchronizer) usecase.ProfileSynchronizer {
			return &blockingSynchronizer{next: next, release: release}
		},
	})
	app.providers.Register("hr@acme.example", "hunter22", &entity.Identity{
		UserMetadata: map[string]any{"role": "company"},
	})
	b := app.browser(t)

	rec := b.do(http.MethodPost, "/auth/login", `{"email":"hr@acme.example","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	auth := decodeData[handler.AuthResponse](t, rec)
	assert.Equal(t, "company", auth.Role, "role falls back to session metadata while sync is pending")

	rec = b.do(http.MethodGet, entity.PathCompanyDashboard, "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Equal(t, "loading", decodeData[apimiddleware.LoadingResponse](t, rec).Status)

	close(release)

	require.Eventually(t, func() bool {
		return b.do(http.MethodGet, entity.PathCompanyDashboard, "").Code == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)
}

func TestServer_AuthRateLimit(t *testing.T) {
	app := newTestApp(t, testAppOptions{authRate: 1})
	b := app.browser(t)

	b.do(http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"x"}`)
	rec := b.do(http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"x"}`)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decodeErrorCode(t, rec))
}

func TestServer_MetricsEndpoint(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	app.providers.Register("ada@example.com", "hunter22", nil)
	b := app.browser(t)

	b.do(http.MethodGet, entity.PathStudentDashboard, "")
	require.Equal(t, http.StatusOK, b.do(http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"hunter22"}`).Code)
	rec := b.do(http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `internhub_guard_decisions_total{decision="redirect_login"} 1`)
	assert.Contains(t, rec.Body.String(), "internhub_session_events_total")
}
