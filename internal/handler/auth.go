package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/logstream/auth-service/internal/auth"
	"github.com/logstream/auth-service/internal/config"
	"github.com/logstream/auth-service/internal/middleware"
	"github.com/logstream/auth-service/internal/model"
	"github.com/logstream/auth-service/internal/queue"
	"github.com/logstream/auth-service/internal/service"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg       config.Config
	Authority *auth.Authority
	Events    service.EventPublisher // optional; nil disables audit events
}

func NewAuthHandler(cfg config.Config, a *auth.Authority, events service.EventPublisher) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Authority: a, Events: events}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
type loginResp struct {
	Success bool      `json:"success"`
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
}

// Register: create an account and return a token immediately.  Length policy
// (username >= 3, password >= 6) is enforced here; the authority separately
// rejects empty fields.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/email/password required"})
	}
	if len(req.Username) < 3 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username must be at least 3 characters"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Authority.CreateAccount(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		var dup *auth.DuplicateAccountError
		switch {
		case errors.As(err, &dup):
			return c.JSON(http.StatusConflict, echo.Map{"error": dup.Error()})
		case errors.Is(err, auth.ErrStoreUnavailable):
			c.Logger().Warnf("register: user store unavailable: %v", err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "service temporarily unavailable"})
		case errors.Is(err, auth.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create account failed"})
		}
	}

	id := auth.Identity{Username: req.Username, Email: req.Email, Role: model.RoleUser}
	access, err := h.Authority.IssueToken(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	h.publish(c, queue.EventAccountCreated, id)

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"user_id": uid,
		"user":    userPart{Username: id.Username, Email: id.Email, Role: id.Role},
		"access":  tokenPart{Token: access.Value, Expires: access.ExpiresAt},
	})
}

// Login: verify credentials, issue a token, and set the identity cookie.
// Credential failures are uniform regardless of whether the username exists,
// the password was wrong, or the account is inactive.  A store outage is
// logged but answered with the same body, so infrastructure state never
// leaks through the authentication outcome.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Authority.VerifyCredentials(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrStoreUnavailable) {
			c.Logger().Warnf("login: user store unavailable: %v", err)
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "invalid credentials"})
	}

	access, err := h.Authority.IssueToken(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	c.SetCookie(h.sessionCookie(access, req.Remember))
	h.publish(c, queue.EventLogin, id)

	return c.JSON(http.StatusOK, loginResp{
		Success: true,
		User:    userPart{Username: id.Username, Email: id.Email, Role: id.Role},
		Access:  tokenPart{Token: access.Value, Expires: access.ExpiresAt},
	})
}

// Logout clears the identity cookie.  Tokens are stateless so there is
// nothing server-side to revoke; a cleared cookie ends the browser session
// and bearer clients simply drop their copy.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     h.Cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.NoContent(http.StatusNoContent)
}

// Me returns the verified claims placed on the context by the API guard.
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := c.Get(middleware.ContextClaims).(auth.Claims)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Authentication required", "code": "AUTH_REQUIRED"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"username":   claims.Username,
		"email":      claims.Email,
		"role":       claims.Role,
		"expires_at": claims.ExpiresAt,
	})
}

// sessionCookie builds the identity cookie.  The default lifetime matches
// the token; "remember me" stretches the cookie to the configured number of
// days.  HttpOnly keeps it out of reach of page scripts.
func (h *AuthHandler) sessionCookie(access auth.Token, remember bool) *http.Cookie {
	expires := access.ExpiresAt
	if remember {
		expires = time.Now().UTC().Add(time.Duration(h.Cfg.RememberMeDays) * 24 * time.Hour)
	}
	return &http.Cookie{
		Name:     h.Cfg.CookieName,
		Value:    access.Value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// publish emits an audit event without ever affecting the request outcome.
func (h *AuthHandler) publish(c echo.Context, eventType string, id auth.Identity) {
	if h.Events == nil {
		return
	}
	ev := queue.AuthEvent{
		Type:     eventType,
		Username: id.Username,
		Role:     id.Role,
		RemoteIP: c.RealIP(),
		At:       time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Events.PublishAuthEvent(ctx, ev)
	}()
}
