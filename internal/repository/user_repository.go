package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"time"

	"github.com/logstream/auth-service/internal/model"
)

// UserStore is the record-store contract the authentication authority is
// built against.  The production implementation is MySQL-backed; tests use
// an in-memory fake.  Implementations translate their own failure modes
// into the package sentinels (ErrNotFound, ErrDuplicate*, ErrUnavailable).
type UserStore interface {
	// FindActiveByUsername returns the active record with the given
	// username.  Inactive records are treated as absent.
	FindActiveByUsername(ctx context.Context, username string) (model.User, error)
	// FindByUsernameOrEmail returns any record whose username or email
	// matches, used for duplicate detection at sign-up.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (model.User, error)
	// Insert persists a new record and returns its ID.
	Insert(ctx context.Context, u model.User) (uint64, error)
	// TouchLastLogin records a successful authentication.  Best-effort:
	// callers may ignore the returned error.
	TouchLastLogin(ctx context.Context, username string, at time.Time) error
}

// UserRepo implements UserStore on top of the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,username,email,password_hash,role,is_active,created_at,last_login"

// FindActiveByUsername fetches an active user by exact (case-sensitive) username.
func (r *UserRepo) FindActiveByUsername(ctx context.Context, username string) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? AND is_active=1 LIMIT 1",
		username)
	return scanUser(row)
}

// FindByUsernameOrEmail fetches any user colliding with the given username or
// email, active or not.
func (r *UserRepo) FindByUsernameOrEmail(ctx context.Context, username, email string) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? OR email=? LIMIT 1",
		username, email)
	return scanUser(row)
}

// Insert persists a new user and returns its ID.  Unique-key violations are
// mapped to the duplicate sentinels; the database is the final arbiter when
// two sign-ups race past the pre-insert duplicate check.
func (r *UserRepo) Insert(ctx context.Context, u model.User) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role, is_active, created_at) VALUES (?,?,?,?,?,?)",
		u.Username, u.Email, u.PasswordHash, u.Role, u.IsActive, u.CreatedAt)
	if err != nil {
		if dup := duplicateKeyError(err); dup != nil {
			return 0, dup
		}
		return 0, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, translate(err)
	}
	return uint64(id), nil
}

// TouchLastLogin stamps last_login for the given username.
func (r *UserRepo) TouchLastLogin(ctx context.Context, username string, at time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET last_login=? WHERE username=?",
		at, username)
	return translate(err)
}

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u         model.User
		lastLogin sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.IsActive, &u.CreatedAt, &lastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, translate(err)
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return u, nil
}

// duplicateKeyError maps a MySQL 1062 error to the sentinel for whichever
// unique key collided.  Returns nil for any other error.  Only the key name
// after "for key" is inspected: the duplicate entry value is user-controlled
// and may itself contain "email" or "username".
func duplicateKeyError(err error) error {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return nil
	}
	key := msg
	if i := strings.Index(msg, "for key"); i >= 0 {
		key = msg[i:]
	}
	if strings.Contains(key, "email") {
		return ErrDuplicateEmail
	}
	return ErrDuplicateUsername
}

// translate converts connectivity faults into ErrUnavailable so the caller
// can distinguish "store down" from "no such record".  Other errors pass
// through unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return ErrUnavailable
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "invalid connection") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "i/o timeout") {
		return ErrUnavailable
	}
	return err
}
