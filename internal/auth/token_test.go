package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	a := New(testConfig(), nil)
	id := Identity{Username: "alice", Email: "alice@x.com", Role: "user"}

	tok, err := a.IssueToken(id)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Value)

	claims, err := a.VerifyToken(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, id, claims.Identity)
	assert.WithinDuration(t, time.Now().UTC(), claims.IssuedAt, 5*time.Second)
	assert.WithinDuration(t, tok.ExpiresAt, claims.ExpiresAt, time.Second)
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), tok.ExpiresAt, 5*time.Second)
}

func TestVerifyTokenExpired(t *testing.T) {
	a := New(testConfig(), nil)
	a.Lifetime = -time.Hour // issue already-expired tokens

	tok, err := a.IssueToken(Identity{Username: "alice", Role: "user"})
	require.NoError(t, err)

	_, err = a.VerifyToken(tok.Value)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyTokenTamperedSignature(t *testing.T) {
	a := New(testConfig(), nil)
	tok, err := a.IssueToken(Identity{Username: "alice", Role: "user"})
	require.NoError(t, err)

	parts := strings.Split(tok.Value, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	forged := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = a.VerifyToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	issuer := New(testConfig(), nil)
	tok, err := issuer.IssueToken(Identity{Username: "alice", Role: "user"})
	require.NoError(t, err)

	cfg := testConfig()
	cfg.JWTSecret = "a-different-secret"
	verifier := New(cfg, nil)

	_, err = verifier.VerifyToken(tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenMalformed(t *testing.T) {
	a := New(testConfig(), nil)
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c", "...."} {
		_, err := a.VerifyToken(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", raw)
	}
}

func TestClaimsFrozenAtIssuance(t *testing.T) {
	store := newMemStore()
	a := New(testConfig(), store)

	id := Identity{Username: "alice", Email: "alice@x.com", Role: "user"}
	tok, err := a.IssueToken(id)
	require.NoError(t, err)

	// Whatever happens to the record afterwards, the token still carries
	// the claims from issuance time.
	claims, err := a.VerifyToken(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "alice@x.com", claims.Email)
}
