package middleware

import (
	"log/slog"
	"net/http"

	"internhub/config"
	deliverycontext "internhub/internal/delivery/context"
	"internhub/internal/session"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const keySessionStore = "session_store"

// SessionMiddleware binds each request to the session store of its browser session cookie.
type SessionMiddleware struct {
	manager *session.Manager
	cookie  config.SessionConfig
	logger  *slog.Logger
}

// SessionMiddlewareParams holds dependencies for SessionMiddleware, injected by Fx.
type SessionMiddlewareParams struct {
	fx.In

	Manager *session.Manager
	Config  *config.Config
	Logger  *slog.Logger
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(params SessionMiddlewareParams) *SessionMiddleware {
	return &SessionMiddleware{
		manager: params.Manager,
		cookie:  *params.Config.Session,
		logger:  params.Logger,
	}
}

// Establish binds the request to its browser session, creating the store and
// issuing a cookie when the request has none. Only routes that start a session
// (sign-in, sign-up) use it.
func (m *SessionMiddleware) Establish(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sessionID, ok := m.cookieSessionID(c)
		if !ok {
			sessionID = m.issueCookie(c)
		}

		store, err := m.manager.Get(sessionID)
		if err != nil {
			return err
		}
		m.bind(c, sessionID, store)

		return next(c)
	}
}

// Resume binds the request to an existing store only. Requests without a live
// store continue anonymously and never allocate one.
func (m *SessionMiddleware) Resume(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if sessionID, ok := m.cookieSessionID(c); ok {
			if store, found := m.manager.Lookup(sessionID); found {
				m.bind(c, sessionID, store)
			}
		}

		return next(c)
	}
}

func (m *SessionMiddleware) bind(c echo.Context, sessionID string, store *session.Store) {
	deliverycontext.SetSessionID(c, sessionID)
	c.Set(keySessionStore, store)

	ctx := c.Request().Context()
	if logger := deliverycontext.GetLogger(ctx); logger != nil {
		ctx = deliverycontext.WithLogger(ctx, logger.With(slog.String("session_id", sessionID)))
		c.SetRequest(c.Request().WithContext(ctx))
	}
}

func (m *SessionMiddleware) cookieSessionID(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(m.cookie.CookieName)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return "", false
	}

	return id.String(), true
}

func (m *SessionMiddleware) issueCookie(c echo.Context) string {
	id := session.NewSessionID()
	c.SetCookie(&http.Cookie{
		Name:     m.cookie.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// GetSessionStore returns the store bound by SessionMiddleware, if any.
func GetSessionStore(c echo.Context) (*session.Store, bool) {
	store, ok := c.Get(keySessionStore).(*session.Store)

	return store, ok && store != nil
}
