package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the {username, email, role} triple carried from a successful
// credential check into token issuance.
type Identity struct {
	Username string
	Email    string
	Role     string
}

// Claims are the facts embedded in an issued token.  They are fixed at
// issuance: role or email changes after issuance are not reflected until
// the user re-authenticates.
type Claims struct {
	Identity
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Token is a signed, self-contained identity token and its expiry.
// Verification never consults server-side state.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// IssueToken builds an HS256 JWT for the given identity with the configured
// lifetime.  Claim names match what the rest of the platform expects:
// username, email, role, iat, exp.
func (a *Authority) IssueToken(id Identity) (Token, error) {
	now := a.now().UTC()
	exp := now.Add(a.Lifetime)
	claims := jwt.MapClaims{
		"username": id.Username,
		"email":    id.Email,
		"role":     id.Role,
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(a.Secret))
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, ExpiresAt: exp}, nil
}

// VerifyToken decodes and checks a presented token.  Any decode failure is
// converted into a sentinel; no parser error escapes to the caller.  A
// correct signature with a past expiry yields ErrTokenExpired, everything
// else that fails yields ErrInvalidToken.
func (a *Authority) VerifyToken(raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(a.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}

	c := Claims{}
	c.Username, _ = mc["username"].(string)
	c.Email, _ = mc["email"].(string)
	c.Role, _ = mc["role"].(string)
	if c.Username == "" {
		return Claims{}, ErrInvalidToken
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}
