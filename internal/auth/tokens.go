package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Tokens issues and resolves HS256 bearer tokens bound to a user's email.
type Tokens struct {
	secret     []byte
	expiration time.Duration
}

func NewTokens(secret string, expiration time.Duration) *Tokens {
	return &Tokens{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// Issue signs a token carrying the subject email and an expiry.
func (t *Tokens) Issue(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": email,
		"exp": now.Add(t.expiration).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Resolve verifies the token and returns the subject email. Malformed,
// badly signed, and expired tokens all fail with ErrInvalidToken.
func (t *Tokens) Resolve(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}
