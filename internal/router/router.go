package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/logstream/auth-service/internal/auth"
	"github.com/logstream/auth-service/internal/config"
	"github.com/logstream/auth-service/internal/handler"
	"github.com/logstream/auth-service/internal/middleware"
)

// Register wires every route of the service onto the provided Echo
// instance.  The credential endpoints sit behind the given rate limiter
// (nil disables limiting), JSON endpoints behind the API guard, and HTML
// pages behind the page guard; the two guards run the identical token check
// and differ only in how they answer an unauthenticated request.
func Register(e *echo.Echo, cfg config.Config, a *auth.Authority, h *handler.AuthHandler, limiter echo.MiddlewareFunc, storeUp func() bool) {
	if limiter == nil {
		limiter = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	e.GET("/healthz", handler.NewHealth(storeUp))

	// Credential endpoints, rate limited.  Logout stays outside the
	// limiter: it only clears a cookie, and a spray against login must
	// not lock a client out of ending its session.
	g := e.Group("/v1/auth", limiter)
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	e.POST("/v1/auth/logout", h.Logout)

	// Protected JSON endpoints.
	api := e.Group("/v1")
	api.Use(middleware.APIGuard(a, cfg.CookieName))
	api.Use(middleware.RequireRole("admin", "user"))
	api.GET("/me", h.Me)

	// HTML pages: a login landing target and a guarded dashboard.
	e.GET("/login", handler.LoginPage)
	pages := e.Group("/dashboard")
	pages.Use(middleware.PageGuard(a, cfg.CookieName))
	pages.GET("", handler.DashboardPage)
}
