package admin

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CreateToken mints an HS256 admin token with the claims FromContext
// expects. Used by ops tooling and tests; the dashboard backend issues
// production tokens the same way.
func CreateToken(secret string, user AdminUser, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"admin_id": user.AdminID.String(),
		"email":    user.Email,
		"roles":    user.Roles,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}

	return signed, nil
}
