// Package auth is the bearer-claims collaborator.
//
// The HTTP adapter extracts the bearer token from each request and decodes
// it here before calling a manager; the core only ever sees the decoded
// claims.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims identifies the caller: the tenant school and the opaque user
// session token.
type Claims struct {
	SchoolID  int
	UserToken string
}

// Decoder turns a bearer token into claims.
type Decoder interface {
	// Decode verifies the token and extracts its claims.
	Decode(token string) (Claims, error)
}

// ErrInvalidToken is returned for tokens that fail verification or carry
// malformed claims.
var ErrInvalidToken = errors.New("auth: invalid token")

type tokenClaims struct {
	SchoolID  int    `json:"school_id"`
	UserToken string `json:"user_token"`
	jwt.RegisteredClaims
}

// JWTDecoder verifies HMAC-SHA256 signed tokens.
type JWTDecoder struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTDecoder creates a decoder for the given signing secret. The ttl
// bounds tokens produced by Issue.
func NewJWTDecoder(secret []byte, ttl time.Duration) *JWTDecoder {
	return &JWTDecoder{secret: secret, ttl: ttl}
}

// Decode verifies the token signature and expiry and extracts the claims.
func (d *JWTDecoder) Decode(token string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrInvalidToken, t.Header["alg"])
		}

		return d.secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.SchoolID <= 0 || claims.UserToken == "" {
		return Claims{}, fmt.Errorf("%w: missing school or user claim", ErrInvalidToken)
	}

	return Claims{SchoolID: claims.SchoolID, UserToken: claims.UserToken}, nil
}

// Issue signs a token for the given claims. Used by tests and the admin CLI.
func (d *JWTDecoder) Issue(claims Claims) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &tokenClaims{
		SchoolID:  claims.SchoolID,
		UserToken: claims.UserToken,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d.ttl)),
		},
	})

	return token.SignedString(d.secret)
}

var _ Decoder = (*JWTDecoder)(nil)
