package security

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/finflow/finflow/internal/models"
)

// Claims is the claim set embedded in access tokens. The user ID travels
// in the registered "sub" claim in decimal form.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies signed access tokens. The signing key,
// algorithm, and lifetime all come from process configuration.
type TokenIssuer struct {
	secret   []byte
	method   jwt.SigningMethod
	lifetime time.Duration
}

// NewTokenIssuer builds a TokenIssuer. algorithm must be one of HS256,
// HS384, or HS512.
func NewTokenIssuer(secret, algorithm string, lifetime time.Duration) (*TokenIssuer, error) {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &TokenIssuer{
		secret:   []byte(secret),
		method:   method,
		lifetime: lifetime,
	}, nil
}

// Create issues a signed token for the given user ID, expiring after the
// configured lifetime.
func (t *TokenIssuer) Create(userID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(t.method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
		},
	})

	return token.SignedString(t.secret)
}

// Decode verifies the token's signature and expiration and returns the
// user ID from its subject claim. Any failure is reported as
// models.ErrInvalidToken.
func (t *TokenIssuer) Decode(tokenString string) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, models.ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, models.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, models.ErrInvalidToken
	}

	return userID, nil
}
