package auth

import "errors"

// ErrInvalidCredentials covers unknown username, wrong password and inactive
// account alike.  The shape is deliberately uniform so callers cannot be
// used as a username oracle.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken covers malformed tokens and bad signatures.
var ErrInvalidToken = errors.New("invalid token")

// ErrTokenExpired is returned for a well-formed, correctly signed token
// whose expiry has passed.  HTTP guards collapse it into the same outcome
// as ErrInvalidToken; the distinction exists for internal logging and a
// possible future silent-refresh flow.
var ErrTokenExpired = errors.New("token expired")

// ErrStoreUnavailable is returned when the user-record store cannot be
// reached.  The fallback administrator credential still authenticates.
var ErrStoreUnavailable = errors.New("user store unavailable")

// ErrInvalidInput is returned when a required sign-up field is empty.
// Length policy lives at the HTTP layer; this is the authority's own
// defensive floor.
var ErrInvalidInput = errors.New("username, email and password are required")

// DuplicateAccountError reports a sign-up collision and which field caused
// it, so the caller can word its error message.
type DuplicateAccountError struct {
	Field string // "username" or "email"
}

func (e *DuplicateAccountError) Error() string {
	return "an account with this " + e.Field + " already exists"
}
