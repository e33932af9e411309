// Package auth mints the short-lived bearer tokens attached to endpoint calls
// when an endpoint secret is configured.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the standard claims plus the id of the outbound request.
type Claims struct {
	jwt.RegisteredClaims
	RequestID string `json:"rid,omitempty"`
}

// GenerateToken signs an HS256 token for subject valid for ttl.
func GenerateToken(subject, requestID string, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		RequestID: requestID,
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies a token minted by GenerateToken and returns its claims.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
