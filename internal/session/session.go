// Package session models the boundary to the external identity provider:
// a stream of session-change events and the signed tokens that carry the
// user identity across it.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

// Event is one session-change notification from the identity provider.
// Active=false carries no user id.
type Event struct {
	Active bool
	UserID string
}

// Claims carried by a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// IssueToken mints an HS256 session token for userID, valid for ttl.
func IssueToken(userID string, secret []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		UserID: userID,
	})
	return token.SignedString(secret)
}

// UserIDFromToken verifies the token signature and expiry and returns the
// user id it carries.
func UserIDFromToken(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
