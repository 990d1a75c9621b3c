package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or payload checks
var ErrInvalidToken = errors.New("invalid token")

// TokenType is reported alongside issued access tokens
const TokenType = "bearer"

// Claims identify the authenticated employee. Subject carries the email.
type Claims struct {
	EmployeeID int64 `json:"id"`
	jwt.RegisteredClaims
}

// Email returns the employee email stored in the subject
func (c *Claims) Email() string {
	return c.Subject
}

// IssueToken signs an HS256 access token valid for ttl
func IssueToken(secret, email string, employeeID int64, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		EmployeeID: employeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

// ParseToken validates tokenString and returns its claims
func ParseToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" || claims.EmployeeID == 0 {
		return nil, fmt.Errorf("%w: missing employee identity", ErrInvalidToken)
	}
	return claims, nil
}
