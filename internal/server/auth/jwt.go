// Package auth issues and checks the HS256 access tokens that carry the
// caller's account to the gRPC service.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the standard registered claims plus the caller's account.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"account_id"`
}

// GenerateToken signs a token for accountID that expires after validityDuration.
func GenerateToken(accountID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		AccountID: accountID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// AccountFromToken validates tokenString and returns the account it was
// issued for. Expired tokens yield common.ErrTokenExpired, anything else
// that fails validation yields common.ErrInvalidToken.
func AccountFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.AccountID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.AccountID, nil
}
