// Package auth issues and verifies the bearer tokens used by the API.
// Verification failures keep their jwt error identity (malformed, expired)
// so the boundary classifier can map them to the right response.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingSecret is returned when token operations run without a
// configured signing secret.
var ErrMissingSecret = errors.New("jwt secret is not configured")

// Claims is the JWT payload carried by API tokens.
type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token for userID/role valid for ttl.
func Issue(secret string, ttl time.Duration, userID, role string) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	now := time.Now().UTC()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   userID,
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies raw and returns its claims. The returned error wraps
// jwt.ErrTokenMalformed or jwt.ErrTokenExpired when applicable.
func Parse(secret, raw string) (*Claims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	return &claims, nil
}
