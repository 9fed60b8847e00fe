package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// sessionClaims binds the signed cookie to one in-memory session.
type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// signSessionToken issues the JWT carried by the session cookie. The token
// only names the session; everything else lives in the store.
func signSessionToken(secret []byte, sessionID, email string) (string, error) {
	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parseSessionToken validates the cookie JWT and returns the session ID it
// names.
func parseSessionToken(secret []byte, tokenString string) (string, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSessionToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidSessionToken
	}
	return claims.SessionID, nil
}
