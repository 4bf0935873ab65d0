package handler

import (
	"context"
	"net/http"
	"time"

	"internhub/config"
	"internhub/internal/delivery/api/middleware"
	"internhub/internal/delivery/api/response"
	"internhub/internal/domain/entity"
	domainerrors "internhub/internal/domain/errors"
	"internhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PageHandler serves the page endpoints. Page bodies are JSON descriptions of
// what the view shows; rendering them is the frontend's job.
type PageHandler struct {
	guard      usecase.RouteGuard
	settleWait time.Duration
}

// PageHandlerParams holds dependencies for PageHandler, injected by Fx.
type PageHandlerParams struct {
	fx.In

	Guard  usecase.RouteGuard
	Config *config.Config
}

// NewPageHandler is the constructor for PageHandler.
func NewPageHandler(params PageHandlerParams) *PageHandler {
	return &PageHandler{
		guard:      params.Guard,
		settleWait: params.Config.Guard.SettleWait,
	}
}

// Login serves the login page, sending already signed-in users on to their
// destination. A session restored without a sync gets one first.
func (h *PageHandler) Login(c echo.Context) error {
	returnTo := c.QueryParam(entity.ReturnToParam)

	if store, ok := middleware.GetSessionStore(c); ok && store.IsAuthenticated() {
		store.EnsureSync()

		ctx, cancel := context.WithTimeout(c.Request().Context(), h.settleWait)
		state, _ := store.WaitSettled(ctx)
		cancel()

		if state.RoleKnown() {
			return c.Redirect(http.StatusFound, h.guard.PostLoginDestination(state.Role, returnTo))
		}
	}

	return response.Success(c, http.StatusOK, PageResponse{
		Page:     "login",
		Redirect: returnTo,
		Notices:  []entity.Notice{},
	})
}

// Page returns a handler for a guarded page named name.
// It must be used AFTER GuardMiddleware.Require.
func (h *PageHandler) Page(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		state, ok := middleware.GetAuthState(c)
		if !ok {
			return domainerrors.ErrInternalError.WrapMessage("page served without route guard")
		}

		var notices []entity.Notice
		if store, ok := middleware.GetSessionStore(c); ok {
			notices = store.Notices()
		}

		return response.Success(c, http.StatusOK, PageResponse{
			Page:    name,
			Role:    state.Role.String(),
			User:    toUserResponse(state.User),
			Account: toAccountResponse(state.Account),
			Notices: noticesOrEmpty(notices),
		})
	}
}

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
