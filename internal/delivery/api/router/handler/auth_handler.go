package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"internhub/config"
	"internhub/internal/delivery/api/middleware"
	"internhub/internal/delivery/api/response"
	deliverycontext "internhub/internal/delivery/context"
	"internhub/internal/domain/entity"
	domainerrors "internhub/internal/domain/errors"
	"internhub/internal/session"
	"internhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	Guard    usecase.RouteGuard
	Sessions *session.Manager `optional:"true"`
	Config   *config.Config
	Logger   *slog.Logger
}

// AuthHandler serves the /auth endpoints for the browser session.
type AuthHandler struct {
	guard      usecase.RouteGuard
	sessions   *session.Manager
	settleWait time.Duration
	logger     *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		guard:      params.Guard,
		sessions:   params.Sessions,
		settleWait: params.Config.Guard.SettleWait,
		logger:     params.Logger,
	}
}

// Login signs in with email and password and reports where to go next.
func (h *AuthHandler) Login(c echo.Context) error {
	store, err := h.store(c)
	if err != nil {
		return err
	}

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	sess, err := store.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		h.log(c).Info("Sign-in failed", slog.String("email", req.Email), slog.Any("error", err))

		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, h.authResponse(c, store, sess, req.Redirect))
}

// Signup registers a new identity. The chosen role only hints the account
// created on first sign-in.
func (h *AuthHandler) Signup(c echo.Context) error {
	store, err := h.store(c)
	if err != nil {
		return err
	}

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign-up input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	sess, err := store.SignUp(c.Request().Context(), req.Email, req.Password, entity.Role(req.Role))
	if err != nil {
		h.log(c).Info("Sign-up failed", slog.String("email", req.Email), slog.Any("error", err))

		return response.HandleAppError(c, err)
	}

	if sess == nil {
		return response.Success(c, http.StatusAccepted, SignupPendingResponse{
			Status: "confirmation_required",
			Email:  req.Email,
		})
	}

	return response.Success(c, http.StatusCreated, h.authResponse(c, store, sess, req.Redirect))
}

// Logout ends the provider session and releases the browser session's store.
func (h *AuthHandler) Logout(c echo.Context) error {
	if store, ok := middleware.GetSessionStore(c); ok {
		if err := store.SignOut(c.Request().Context()); err != nil {
			return response.HandleAppError(c, err)
		}
		if h.sessions != nil {
			h.sessions.Remove(deliverycontext.GetSessionID(c))
		}
	}

	return response.Success(c, http.StatusOK, map[string]string{"redirect": entity.PathLogin})
}

// Session reports the current auth state without waiting for it to settle.
func (h *AuthHandler) Session(c echo.Context) error {
	state := entity.AnonymousState()
	if store, ok := middleware.GetSessionStore(c); ok {
		state = store.State()
	}

	return response.Success(c, http.StatusOK, toSessionResponse(state))
}

// Role resolves the signed-in user's role.
func (h *AuthHandler) Role(c echo.Context) error {
	store, ok := middleware.GetSessionStore(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrNotAuthenticated)
	}

	role := store.GetUserRole(c.Request().Context())
	if role == "" {
		return response.HandleAppError(c, domainerrors.ErrNotAuthenticated)
	}

	return response.Success(c, http.StatusOK, RoleResponse{Role: role.String()})
}

// Sync synchronizes the signed-in user's account on the request goroutine.
func (h *AuthHandler) Sync(c echo.Context) error {
	store, ok := middleware.GetSessionStore(c)
	if !ok || !store.IsAuthenticated() {
		return response.HandleAppError(c, domainerrors.ErrNotAuthenticated)
	}

	account, err := store.Synchronize(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, SyncResponse{
		Synchronized: account != nil,
		Account:      toAccountResponse(account),
	})
}

// Notices returns and clears pending notices.
func (h *AuthHandler) Notices(c echo.Context) error {
	var notices []entity.Notice
	if store, ok := middleware.GetSessionStore(c); ok {
		notices = store.Notices()
	}

	return response.Success(c, http.StatusOK, noticesOrEmpty(notices))
}

// authResponse waits briefly for synchronization so the redirect can use the stored role.
func (h *AuthHandler) authResponse(c echo.Context, store *session.Store, sess *entity.Session, returnTo string) AuthResponse {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.settleWait)
	state, _ := store.WaitSettled(ctx)
	cancel()

	role := state.Role
	if !state.RoleKnown() {
		role = store.GetUserRole(c.Request().Context())
	}

	resp := AuthResponse{
		Role:     role.String(),
		Redirect: h.guard.PostLoginDestination(role, returnTo),
	}
	if user := toUserResponse(sess.User); user != nil {
		resp.User = *user
	}

	return resp
}

// store returns the store bound by SessionMiddleware.Establish.
func (h *AuthHandler) store(c echo.Context) (*session.Store, error) {
	store, ok := middleware.GetSessionStore(c)
	if !ok {
		return nil, domainerrors.ErrInternalError.WrapMessage("session store missing from request")
	}

	return store, nil
}

func (h *AuthHandler) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)
}
