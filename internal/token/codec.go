// Package token issues and verifies the signed bearer credentials handed out
// at signup, login and refresh.
//
// Tokens are compact HS256 JWTs: base64url(header).base64url(payload).sig,
// where the payload carries the caller's claims plus iat/exp in epoch seconds.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned by Verify for every rejection: malformed input,
// bad signature, unexpected algorithm or expiry. Callers never learn which.
var ErrInvalidToken = errors.New("invalid or expired token")

// Kind distinguishes access from refresh credentials.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Claims is the payload carried by every token. Subject holds the account key
// (the lower-cased email).
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
	Type  Kind   `json:"type,omitempty"`
}

// IsRefresh reports whether the token was issued as a refresh credential.
func (c *Claims) IsRefresh() bool {
	return c.Type == KindRefresh
}

// Codec signs and verifies tokens with a single shared secret.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock replaces the wall clock used for iat and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// NewCodec creates a Codec signing with secret.
func NewCodec(secret string, opts ...Option) *Codec {
	c := &Codec{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Issue signs claims, stamping iat with the current time and exp with
// iat + ttl. A token ID is generated when the claims carry none.
func (c *Codec) Issue(claims Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	now := c.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	if claims.ID == "" {
		claims.ID = uuid.New().String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of raw and returns its claims.
// A token is valid strictly before its exp second.
func (c *Codec) Verify(raw string) (*Claims, error) {
	if !wellFormed(raw) {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Remaining returns how long the claims stay valid from now, never negative.
func (c *Codec) Remaining(claims *Claims) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	d := claims.ExpiresAt.Time.Sub(c.now())
	if d < 0 {
		return 0
	}
	return d
}

func wellFormed(raw string) bool {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}
