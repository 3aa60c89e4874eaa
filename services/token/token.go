package token

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tailor-booking/models/user"
)

// TTL of issued access tokens. Matches the access-cookie lifetime.
const AccessTokenTTL = 8 * time.Hour

func secret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// Generate issues a signed HS256 access token for the given user.
func Generate(u *user.User) (string, error) {
	claims := jwt.MapClaims{
		"uuid":  u.Uuid,
		"email": u.Email,
		"role":  u.Role,
		"exp":   jwt.NewNumericDate(time.Now().Add(AccessTokenTTL)),
		"iat":   jwt.NewNumericDate(time.Now()),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret())
}

// Parse verifies a token string and returns its claims.
func Parse(tokenString string) (jwt.MapClaims, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok || !t.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
