package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"internhub/config"
	"internhub/internal/delivery/api/response"
	deliverycontext "internhub/internal/delivery/context"
	"internhub/internal/domain/entity"
	domainerrors "internhub/internal/domain/errors"
	"internhub/internal/domain/service"
	"internhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	keyAuthState = "auth_state"

	loadingRetryAfter = time.Second
)

// LoadingResponse is the placeholder body served while the session settles.
type LoadingResponse struct {
	Status string `json:"status"`
	Path   string `json:"path"`
}

// GuardMiddleware protects pages with the route guard.
type GuardMiddleware struct {
	guard      usecase.RouteGuard
	metrics    service.MetricsRecorder
	settleWait time.Duration
	logger     *slog.Logger
}

// GuardMiddlewareParams holds dependencies for GuardMiddleware, injected by Fx.
type GuardMiddlewareParams struct {
	fx.In

	Guard   usecase.RouteGuard
	Metrics service.MetricsRecorder `optional:"true"`
	Config  *config.Config
	Logger  *slog.Logger
}

// NewGuardMiddleware is the constructor for GuardMiddleware.
func NewGuardMiddleware(params GuardMiddlewareParams) *GuardMiddleware {
	return &GuardMiddleware{
		guard:      params.Guard,
		metrics:    params.Metrics,
		settleWait: params.Config.Guard.SettleWait,
		logger:     params.Logger,
	}
}

// Require returns a middleware admitting only sessions whose resolved role is
// requiredRole. An empty requiredRole admits any signed-in role.
// Requests without a session store are judged as anonymous.
// It must be used AFTER SessionMiddleware.Resume.
func (m *GuardMiddleware) Require(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			store, hasStore := GetSessionStore(c)

			state := entity.AnonymousState()
			if hasStore {
				store.EnsureSync()

				ctx, cancel := context.WithTimeout(c.Request().Context(), m.settleWait)
				settledState, err := store.WaitSettled(ctx)
				cancel()
				if errors.Is(err, domainerrors.ErrSessionClosed) {
					return err
				}
				if c.Request().Context().Err() != nil {
					// Client went away; nothing is written.
					return nil
				}
				state = settledState
			}

			decision := m.guard.Decide(usecase.GuardInput{
				State:        state,
				RequiredRole: requiredRole,
				Path:         c.Request().URL.RequestURI(),
			})
			if m.metrics != nil {
				m.metrics.RecordGuardDecision(string(decision.Kind))
			}
			if decision.Notice != nil && hasStore {
				store.PushNotice(*decision.Notice)
			}

			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Debug("Route guard decision",
				slog.String("path", c.Request().URL.Path),
				slog.String("decision", string(decision.Kind)),
				slog.String("location", decision.Location),
			)

			switch decision.Kind {
			case usecase.GuardLoading:
				return response.Pending(c, loadingRetryAfter, LoadingResponse{
					Status: "loading",
					Path:   c.Request().URL.Path,
				})
			case usecase.GuardRedirectLogin, usecase.GuardRedirectRole:
				return c.Redirect(http.StatusFound, decision.Location)
			default:
				c.Set(keyAuthState, state)

				return next(c)
			}
		}
	}
}

// GetAuthState returns the settled state the guard rendered the page with.
func GetAuthState(c echo.Context) (entity.AuthState, bool) {
	state, ok := c.Get(keyAuthState).(entity.AuthState)

	return state, ok
}
