package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "todo"

var (
	// ErrInvalidToken is returned when a stored token fails verification.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrExpiredToken is returned when a stored token has expired.
	ErrExpiredToken = errors.New("session token has expired")
)

// tokens signs and verifies session tokens.
type tokens struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// issue returns a signed token naming userID. A zero ttl issues a token
// without expiry.
func (t tokens) issue(userID string) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		ID:       uuid.NewString(),
		Issuer:   issuer,
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if t.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
}

// verify checks the token signature and expiry and returns its subject.
func (t tokens) verify(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
