package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures collapse into two buckets on purpose. Callers never
// learn whether a token was malformed, tampered with or signed with the
// wrong key
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type userClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// SignUserToken mints an HS256 token carrying only the user ID, valid
// for ttl from now
func SignUserToken(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, userClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	})

	return t.SignedString(secret)
}

// ParseUserToken verifies a token minted by SignUserToken and returns the
// embedded user ID
func ParseUserToken(tokenStr string, secret []byte) (string, error) {
	claims := &userClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrTokenInvalid
		}

		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}

		return "", ErrTokenInvalid
	}

	if !token.Valid || claims.UserID == "" {
		return "", ErrTokenInvalid
	}

	return claims.UserID, nil
}
