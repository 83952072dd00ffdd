package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("authorization token invalid")

// Claims is the payload of an auth token
type Claims struct {
	jwt.RegisteredClaims
	UserID uint `json:"user_id"`
}

// Tokens issues and checks HS256 signed auth tokens
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue returns a signed token for userID that expires after the configured TTL
func (t *Tokens) Issue(userID uint) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		UserID: userID,
	})

	s, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token, %w", err)
	}

	return s, nil
}

// Parse validates s and returns its claims. Expired, tampered or foreign
// tokens all yield an error wrapping ErrInvalidToken.
func (t *Tokens) Parse(s string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(s, claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
