// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"internhub/config"
	"internhub/internal/delivery/api/middleware"
	"internhub/internal/delivery/api/router/handler"
	"internhub/internal/domain/entity"
	"internhub/internal/domain/errors"
	"internhub/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

// RouterParams holds the handlers and middleware the router wires, injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	PageHandler       *handler.PageHandler
	SessionMiddleware *middleware.SessionMiddleware
	GuardMiddleware   *middleware.GuardMiddleware
	Gatherer          prometheus.Gatherer `optional:"true"`
	Config            *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	pageHandler       *handler.PageHandler
	sessionMiddleware *middleware.SessionMiddleware
	guardMiddleware   *middleware.GuardMiddleware
	gatherer          prometheus.Gatherer
	config            *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		pageHandler:       params.PageHandler,
		sessionMiddleware: params.SessionMiddleware,
		guardMiddleware:   params.GuardMiddleware,
		gatherer:          params.Gatherer,
		config:            params.Config,
	}
}

// RegisterRoutes sets up all the routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	if r.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler(r.gatherer)))
	}

	establish := r.sessionMiddleware.Establish
	resume := r.sessionMiddleware.Resume

	authGroup := e.Group("/auth")
	{
		limiter := r.authRateLimiter()
		authGroup.POST("/login", r.authHandler.Login, limiter, establish)
		authGroup.POST("/signup", r.authHandler.Signup, limiter, establish)

		authGroup.POST("/logout", r.authHandler.Logout, resume)
		authGroup.GET("/session", r.authHandler.Session, resume)
		authGroup.GET("/role", r.authHandler.Role, resume)
		authGroup.POST("/sync", r.authHandler.Sync, resume)
		authGroup.GET("/notices", r.authHandler.Notices, resume)
	}

	e.GET(entity.PathLogin, r.pageHandler.Login, resume)

	// Guarded pages. Root always redirects a signed-in user to their dashboard.
	anyRole := r.guardMiddleware.Require("")
	student := r.guardMiddleware.Require(entity.RoleStudent)
	company := r.guardMiddleware.Require(entity.RoleCompany)

	e.GET(entity.PathRoot, r.pageHandler.Page("home"), resume, anyRole)
	e.GET("/profile", r.pageHandler.Page("profile"), resume, anyRole)
	e.GET(entity.PathStudentDashboard, r.pageHandler.Page("student-dashboard"), resume, student)
	e.GET("/applications", r.pageHandler.Page("applications"), resume, student)
	e.GET(entity.PathCompanyDashboard, r.pageHandler.Page("company-dashboard"), resume, company)
	e.GET("/internships/manage", r.pageHandler.Page("manage-internships"), resume, company)
}

// authRateLimiter limits credential attempts per client IP.
func (r *router) authRateLimiter() echo.MiddlewareFunc {
	limit := rate.Limit(r.config.RateLimit.Auth)

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:  limit,
			Burst: max(int(limit), 1),
		}),
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return errors.ErrTooManyRequests
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errors.ErrInternalError.WrapMessage(err.Error())
		},
	})
}
