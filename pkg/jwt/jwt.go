package jwt

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"clinic-portal/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// roleClaims are the claim names the permission API puts the account kind under
var roleClaims = []string{"role", "userType", "user_type", "type"}

// Claims represents the JWT claims minted for development tokens
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token carrying subject and role
func GenerateToken(secret []byte, subject string, role model.Role, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrInvalidToken
	}

	now := time.Now()
	claims := &Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "clinic-portal",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// DecodeRoleClaim reads the role claim without verifying the signature.
// Verification belongs to the permission API; the role only picks which endpoint to ask.
func DecodeRoleClaim(tokenString string) (model.Role, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return model.RoleUnknown, ErrMissingToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return model.RoleUnknown, ErrInvalidToken
	}

	for _, name := range roleClaims {
		if raw, ok := claims[name].(string); ok && raw != "" {
			return model.ParseRole(raw), nil
		}
	}
	return model.RoleUnknown, nil
}
