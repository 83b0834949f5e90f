// Package session carries widget state between requests in a signed cookie.
package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"

	"titleview/internal/view"
)

// CookieName is the cookie the encoded state travels in.
const CookieName = "tv_state"

const keyInfo = "titleview/session"

var (
	ErrNoSecret     = errors.New("session secret not set")
	ErrInvalidToken = errors.New("invalid session token")
)

type stateClaims struct {
	States view.States `json:"st"`
	jwt.RegisteredClaims
}

// Codec signs and verifies state tokens.
type Codec struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewCodec derives the signing key from secret. A ttl <= 0 means 72h.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return &Codec{key: key, ttl: ttl, now: time.Now}, nil
}

// TTL is how long issued tokens stay valid.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Encode signs states into a token.
func (c *Codec) Encode(states view.States) (string, error) {
	now := c.now()
	claims := stateClaims{
		States: states,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.key)
}

// Decode verifies tok and returns the states it carries.
func (c *Codec) Decode(tok string) (view.States, error) {
	var claims stateClaims
	parsed, err := jwt.ParseWithClaims(tok, &claims,
		func(*jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.States == nil {
		claims.States = view.States{}
	}
	return claims.States, nil
}

// Cookie returns the cookie carrying states.
func (c *Codec) Cookie(states view.States) (*http.Cookie, error) {
	tok, err := c.Encode(states)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  c.now().Add(c.ttl),
	}, nil
}

// FromRequest decodes the state cookie of r. A missing cookie yields nil
// states and a nil error.
func (c *Codec) FromRequest(r *http.Request) (view.States, error) {
	ck, err := r.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return nil, nil
	}
	return c.Decode(ck.Value)
}
