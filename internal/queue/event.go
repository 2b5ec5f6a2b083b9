// Package queue defines message payloads exchanged over the message broker
// and the background consumer that feeds them into the log pipeline.
package queue

// Audit event types published by the auth endpoints.
const (
	EventAccountCreated = "account.created"
	EventLogin          = "user.login"
)

// AuthEvent is published when an account is created or a user signs in.  It
// carries enough for downstream log tooling to index without querying the
// user store.  Passwords and tokens never appear in events.
type AuthEvent struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	Role     string `json:"role"`
	RemoteIP string `json:"remote_ip"`
	At       string `json:"at"`
}
