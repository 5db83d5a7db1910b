package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 10 * time.Hour

var ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

// TokenIssuer mints and validates HS256-signed bearer tokens carrying a
// subject claim and a fixed validity window.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token for subject and its lifetime in seconds.
func (i *TokenIssuer) Issue(subject string) (string, int64, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	encoded, err := token.SignedString(i.secret)
	if err != nil {
		return "", 0, fmt.Errorf("sign jwt: %w", err)
	}

	return encoded, int64(i.ttl.Seconds()), nil
}

// Validate checks signature integrity, expiry, and that the token was issued
// for expectedSubject. Every failure mode collapses into
// ErrInvalidOrExpiredToken so callers cannot leak which check failed.
func (i *TokenIssuer) Validate(tokenStr, expectedSubject string) error {
	subject, err := i.Subject(tokenStr)
	if err != nil {
		return err
	}
	if subject != expectedSubject {
		return ErrInvalidOrExpiredToken
	}

	return nil
}

// Subject verifies the token and returns its subject claim.
func (i *TokenIssuer) Subject(tokenStr string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", ErrInvalidOrExpiredToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidOrExpiredToken
	}

	return subject, nil
}
