package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/logstream/auth-service/internal/auth"
)

// Context keys populated by the guards for downstream handlers.
const (
	ContextClaims   = "claims"
	ContextUsername = "username"
	ContextRole     = "role"
)

// ExtractToken looks for an identity token in two places, in priority
// order: the Authorization header ("Bearer <token>") and then the named
// cookie.  It returns the first one found.
func ExtractToken(c echo.Context, cookieName string) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), true
	}
	if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
		return ck.Value, true
	}
	return "", false
}

// PageGuard protects HTML routes.  An unauthenticated request is answered
// with a redirect to the login page, never with an error body.  On success
// the verified claims are stored on the context before the handler runs.
func PageGuard(a *auth.Authority, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := ExtractToken(c, cookieName)
			if !ok {
				return c.Redirect(http.StatusFound, "/login")
			}
			claims, err := a.VerifyToken(raw)
			if err != nil {
				return c.Redirect(http.StatusFound, "/login")
			}
			setClaims(c, claims)
			return next(c)
		}
	}
}

// APIGuard protects JSON routes.  It answers the same missing-token and
// invalid-token conditions as PageGuard, but with a structured failure body
// and a 401 status instead of a redirect.  Expired and malformed tokens are
// answered identically: the boundary does not reveal which check failed.
func APIGuard(a *auth.Authority, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := ExtractToken(c, cookieName)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"error":   "Authentication required",
					"code":    "AUTH_REQUIRED",
				})
			}
			claims, err := a.VerifyToken(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"error":   "Invalid or expired token",
					"code":    "TOKEN_INVALID",
				})
			}
			setClaims(c, claims)
			return next(c)
		}
	}
}

func setClaims(c echo.Context, claims auth.Claims) {
	c.Set(ContextClaims, claims)
	c.Set(ContextUsername, claims.Username)
	c.Set(ContextRole, claims.Role)
}
