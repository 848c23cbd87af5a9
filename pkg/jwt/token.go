package jwtPkg

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoExpiry = errors.New("token has no exp claim")

// ExpiresAt reads the exp claim of an access token without verifying its
// signature. The backend owns verification; the client only needs to know
// when to stop treating the stored token as a live session.
func ExpiresAt(accessToken string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}

	return exp.Time, nil
}

// Sign issues an HS256 token with the given claims and lifetime. The fake
// backend uses it so tests exercise real token parsing.
func Sign(secret string, data map[string]interface{}, ttl time.Duration) (string, int64, error) {
	expiredAt := time.Now().Add(ttl).Unix()

	claims := jwt.MapClaims{}
	for k, v := range data {
		claims[k] = v
	}
	claims["exp"] = expiredAt

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", 0, err
	}

	return token, expiredAt, nil
}

var ErrInvalidToken = errors.New("invalid or expired token")

// Verify checks an HS256 token against secret and returns its claims.
func Verify(secret, tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
