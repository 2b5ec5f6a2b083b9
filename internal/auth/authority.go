// Package auth implements the credential and token authority: it owns the
// rules for who is allowed in and for how long, independent of how tokens
// travel (bearer header vs cookie) and of how routes are wired.  The
// authority is stateless per call and safe for unlimited concurrent use;
// the only shared state it touches is the injected user store.
package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/logstream/auth-service/internal/config"
	"github.com/logstream/auth-service/internal/model"
	"github.com/logstream/auth-service/internal/repository"
	"github.com/logstream/auth-service/internal/utils"
)

// Authority verifies credentials and issues/verifies identity tokens.  It is
// constructed once with its dependencies and handed to the HTTP layer; there
// is no package-level instance.
type Authority struct {
	Store      repository.UserStore // nil when the store is down at startup
	Secret     string
	Lifetime   time.Duration
	BcryptCost int

	// Fallback administrator, usable even when Store is nil or
	// unreachable.  The password hash is computed once at construction.
	AdminUsername string
	AdminHash     string
	AdminEmail    string

	now func() time.Time
}

// New builds an Authority from configuration and a user store.  store may be
// nil; every store-backed operation then reports ErrStoreUnavailable while
// the fallback administrator keeps authenticating.
func New(cfg config.Config, store repository.UserStore) *Authority {
	adminHash, err := utils.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		// Only reachable with an out-of-range bcrypt cost.
		log.Fatalf("auth: hashing fallback admin password: %v", err)
	}
	return &Authority{
		Store:         store,
		Secret:        cfg.JWTSecret,
		Lifetime:      time.Duration(cfg.TokenTTLHours) * time.Hour,
		BcryptCost:    cfg.BcryptCost,
		AdminUsername: cfg.AdminUsername,
		AdminHash:     adminHash,
		AdminEmail:    cfg.AdminEmail,
		now:           time.Now,
	}
}

// CreateAccount registers a new user with role "user" and an active flag.
// It rejects empty inputs, reports which field collided on a duplicate, and
// guarantees the stored record never contains the plaintext password.
func (a *Authority) CreateAccount(ctx context.Context, username, email, password string) (uint64, error) {
	if username == "" || email == "" || password == "" {
		return 0, ErrInvalidInput
	}
	if a.Store == nil {
		return 0, ErrStoreUnavailable
	}

	existing, err := a.Store.FindByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil:
		field := "email"
		if existing.Username == username {
			field = "username"
		}
		return 0, &DuplicateAccountError{Field: field}
	case errors.Is(err, repository.ErrNotFound):
		// free to create
	case errors.Is(err, repository.ErrUnavailable):
		return 0, ErrStoreUnavailable
	default:
		return 0, err
	}

	hash, err := utils.HashPassword(password, a.BcryptCost)
	if err != nil {
		return 0, err
	}
	id, err := a.Store.Insert(ctx, model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		IsActive:     true,
		CreatedAt:    a.now().UTC(),
	})
	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, repository.ErrDuplicateUsername):
		// Lost a sign-up race; the unique key is the arbiter.
		return 0, &DuplicateAccountError{Field: "username"}
	case errors.Is(err, repository.ErrDuplicateEmail):
		return 0, &DuplicateAccountError{Field: "email"}
	case errors.Is(err, repository.ErrUnavailable):
		return 0, ErrStoreUnavailable
	default:
		return 0, err
	}
}

// credentialCheck is one strategy for matching a username/password pair.
// It returns ErrInvalidCredentials to mean "no match here, try the next
// strategy" and ErrStoreUnavailable when it could not consult its backend.
type credentialCheck func(ctx context.Context, username, password string) (Identity, error)

// VerifyCredentials runs the ordered strategy list: the store-backed check
// first, then the static fallback administrator.  The failure shape never
// distinguishes unknown user from wrong password from inactive account.
// ErrStoreUnavailable is surfaced only when the store was down AND no
// fallback matched, so the caller can log the outage while still answering
// the client with a generic authentication failure.
func (a *Authority) VerifyCredentials(ctx context.Context, username, password string) (Identity, error) {
	unavailable := false
	for _, check := range []credentialCheck{a.checkStore, a.checkFallbackAdmin} {
		id, err := check(ctx, username, password)
		switch {
		case err == nil:
			return id, nil
		case errors.Is(err, ErrStoreUnavailable):
			unavailable = true
		case errors.Is(err, ErrInvalidCredentials):
			// try the next strategy
		default:
			return Identity{}, err
		}
	}
	if unavailable {
		return Identity{}, ErrStoreUnavailable
	}
	return Identity{}, ErrInvalidCredentials
}

// checkStore matches against the user-record store.  Inactive records never
// match.  On success the last_login stamp is written best-effort: a failed
// write is logged and does not fail the authentication.
func (a *Authority) checkStore(ctx context.Context, username, password string) (Identity, error) {
	if a.Store == nil {
		return Identity{}, ErrStoreUnavailable
	}
	u, err := a.Store.FindActiveByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return Identity{}, ErrInvalidCredentials
	case errors.Is(err, repository.ErrUnavailable):
		return Identity{}, ErrStoreUnavailable
	case err != nil:
		return Identity{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return Identity{}, ErrInvalidCredentials
	}
	if err := a.Store.TouchLastLogin(ctx, u.Username, a.now().UTC()); err != nil {
		log.Printf("auth: last_login update for %q failed: %v", u.Username, err)
	}
	return Identity{Username: u.Username, Email: u.Email, Role: u.Role}, nil
}

// checkFallbackAdmin matches the statically configured administrator.  It
// needs no I/O, so it works even with an empty or unreachable store.
func (a *Authority) checkFallbackAdmin(_ context.Context, username, password string) (Identity, error) {
	if username != a.AdminUsername || !utils.VerifyPassword(a.AdminHash, password) {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{
		Username: a.AdminUsername,
		Email:    a.AdminEmail,
		Role:     model.RoleAdmin,
	}, nil
}
