package api

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/190dpa/chatyni-rpg/internal/constants"
)

var errInvalidSession = errors.New("invalid session token")

type sessionClaims struct {
	Username string `json:"username"`
	Admin    bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

func sessionSecret() []byte {
	return []byte(os.Getenv(constants.EnvSessionSecret))
}

// createSessionToken mints an HS256 session token for a username.
func createSessionToken(username string, admin bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Username: username,
		Admin:    admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sessionSecret())
}

// parseAndValidateSession verifies signature and expiry and returns the
// embedded claims.
func parseAndValidateSession(token string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidSession
		}
		return sessionSecret(), nil
	})
	if err != nil || !parsed.Valid {
		return nil, errInvalidSession
	}
	if claims.Username == "" {
		return nil, errInvalidSession
	}
	return claims, nil
}
