package security

import (
	"bitwise74/account-api/pkg/util"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ActivationTTL is how long a freshly registered user has to enter the
// code that was mailed to them
const ActivationTTL = 5 * time.Minute

// Candidate is a not-yet-persisted registration. The plaintext password
// only ever lives inside the signed activation token
type Candidate struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type activationClaims struct {
	jwt.RegisteredClaims
	User Candidate `json:"user"`
	Code string    `json:"code"`
}

// MakeActivationToken signs the candidate user together with a random
// 4-digit code. The token is the only carrier of the registration until
// the code is confirmed, so no database row exists for pending users
func MakeActivationToken(cand Candidate, secret []byte) (token, code string, err error) {
	code, err = util.NumericCode(4)
	if err != nil {
		return "", "", err
	}

	now := time.Now()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, activationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ActivationTTL)),
		},
		User: cand,
		Code: code,
	})

	token, err = t.SignedString(secret)
	if err != nil {
		return "", "", err
	}

	return token, code, nil
}

// ParseActivationToken verifies the token and returns the embedded
// candidate and code
func ParseActivationToken(tokenStr string, secret []byte) (Candidate, string, error) {
	claims := &activationClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrTokenInvalid
		}

		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Candidate{}, "", ErrTokenExpired
		}

		return Candidate{}, "", ErrTokenInvalid
	}

	if !token.Valid || claims.User.Email == "" || claims.Code == "" {
		return Candidate{}, "", ErrTokenInvalid
	}

	return claims.User, claims.Code, nil
}
