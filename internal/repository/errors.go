// Package repository persists user records and defines the store contract
// consumed by the authentication authority.  Sentinel errors let the caller
// tell a lookup miss apart from an unreachable store: the two are presented
// identically to the end user but logged and handled differently inside.
package repository

import "errors"

// ErrNotFound is returned when no record matches the given filter.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateUsername is returned when an insert collides with an existing
// username.
var ErrDuplicateUsername = errors.New("username already exists")

// ErrDuplicateEmail is returned when an insert collides with an existing
// email.
var ErrDuplicateEmail = errors.New("email already exists")

// ErrUnavailable is returned when the store cannot be reached at all.
// Callers should degrade rather than abort: the fallback administrator
// credential keeps working without the store.
var ErrUnavailable = errors.New("user store unavailable")
