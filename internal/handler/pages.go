package handler

import (
	"html"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/logstream/auth-service/internal/auth"
	"github.com/logstream/auth-service/internal/middleware"
)

// The HTML surface is intentionally minimal: a login landing page that the
// page guard redirects to, and a guarded dashboard page.  The real dashboard
// UI lives in the monitoring frontend; these pages exist so browser sessions
// get redirect semantics instead of JSON errors.

// LoginPage is the unauthenticated landing target for page-guard redirects.
func LoginPage(c echo.Context) error {
	return c.HTML(http.StatusOK,
		`<html><body><h1>LogStream</h1><form method="post" action="/v1/auth/login">`+
			`<input name="username" placeholder="username">`+
			`<input name="password" type="password" placeholder="password">`+
			`<button type="submit">Sign in</button></form></body></html>`)
}

// DashboardPage greets the authenticated user.  It runs behind PageGuard, so
// an unauthenticated request never reaches it.  Claims come from user input
// at sign-up, so they are escaped before rendering.
func DashboardPage(c echo.Context) error {
	claims, _ := c.Get(middleware.ContextClaims).(auth.Claims)
	return c.HTML(http.StatusOK,
		`<html><body><h1>Dashboard</h1><p>Signed in as `+html.EscapeString(claims.Username)+
			` (`+html.EscapeString(claims.Role)+`)</p></body></html>`)
}
