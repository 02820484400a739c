// Package token issues and verifies the bearer tokens used for API
// authentication. Tokens are HMAC-signed JWTs with a fixed lifetime.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Lifetime is the fixed validity window of an issued token.
const Lifetime = 24 * time.Hour

// Claims carries the token subject (the user's email) plus the user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
}

// JWT signs and verifies tokens with a symmetric HS256 key.
type JWT struct {
	secretKey []byte
	now       func() time.Time
}

// NewJWT creates a token manager signing with the provided secret key.
func NewJWT(secretKey string) *JWT {
	return &JWT{secretKey: []byte(secretKey), now: time.Now}
}

// Issue creates a signed token for the given user, valid for Lifetime
// from now. Issuance is a pure function of (userID, email, now).
func (j *JWT) Issue(userID uuid.UUID, email string) (string, error) {
	now := j.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(Lifetime)),
		},
		UserID: userID,
	})

	signed, err := tok.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the user id and email
// it was issued for. Expired, malformed or wrongly signed tokens fail.
func (j *JWT) Verify(tokenString string) (uuid.UUID, string, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return j.now() }))
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !tok.Valid {
		return uuid.Nil, "", fmt.Errorf("token is invalid")
	}
	if claims.UserID == uuid.Nil {
		return uuid.Nil, "", fmt.Errorf("token carries no user id")
	}
	return claims.UserID, claims.Subject, nil
}
