package model

import "time"

// Role names stored on a user record and embedded in issued tokens.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents one account as stored in the `users` table.  A record is
// created once at sign-up; afterwards only LastLogin and IsActive change,
// and there is no deletion path.  The password is never kept in clear text,
// only its bcrypt hash.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Username     – unique, case-sensitive login name.
//	Email        – unique contact address (metadata only, not verified).
//	PasswordHash – bcrypt hash of the password.
//	Role         – "admin" or "user".
//	IsActive     – inactive accounts must fail authentication.
//	CreatedAt    – set at creation, immutable.
//	LastLogin    – updated on each successful authentication; nil until the first one.
type User struct {
	ID           uint64     // users.id
	Username     string     // users.username
	Email        string     // users.email
	PasswordHash string     // users.password_hash
	Role         string     // users.role
	IsActive     bool       // users.is_active
	CreatedAt    time.Time  // users.created_at
	LastLogin    *time.Time // users.last_login (nullable)
}
