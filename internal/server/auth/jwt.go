// Package auth issues and verifies session tokens and turns a presented
// token into an authenticated principal.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload of a session token: standard registered claims plus
// the user's stable id and email.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Authority signs and verifies stateless HS256 session tokens. The secret is
// fixed for the lifetime of the process.
type Authority struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewAuthority(secret []byte, validity time.Duration) *Authority {
	return &Authority{secret: secret, validity: validity, now: time.Now}
}

// Issue returns a fresh signed token for the given user, expiring after the
// configured validity. Every call carries a new token id.
func (a *Authority) Issue(userID, email string) (string, error) {
	now := a.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.validity)),
		},
		UserID: userID,
		Email:  email,
	})

	tokenString, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature, structure and expiry. Every failure is reported
// as common.ErrInvalidToken.
func (a *Authority) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: expired", common.ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// RemainingValidity is how long the token behind claims stays acceptable,
// measured from now. It never returns a negative value.
func (a *Authority) RemainingValidity(claims *Claims) time.Duration {
	if claims == nil || claims.ExpiresAt == nil {
		return 0
	}
	left := claims.ExpiresAt.Sub(a.now())
	if left < 0 {
		return 0
	}
	return left
}
