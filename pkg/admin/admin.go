// Package admin verifies the dashboard's HS256 bearer tokens and guards
// admin-only routes. Token issuance lives with the dashboard backend;
// this package only checks the shared-secret token and its role claims.
package admin

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

// AdminUser holds the claims extracted from an admin token.
type AdminUser struct {
	AdminID uuid.UUID
	Email   string
	Roles   []string
}

func (u AdminUser) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("admin_id", u.AdminID.String()),
		slog.String("email", u.Email),
	)
}

// HasRole reports whether the user carries the role.
func (u AdminUser) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// NewAuth creates the token verifier for the shared admin secret.
func NewAuth(secret string) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte(secret), nil)
}

// FromContext extracts the admin user from a verified request context.
// Must be used below jwtauth.Verifier.
func FromContext(r *http.Request) (AdminUser, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return AdminUser{}, err
	}

	user := AdminUser{}

	if sub, ok := claims["admin_id"].(string); ok {
		if id, err := uuid.Parse(sub); err == nil {
			user.AdminID = id
		}
	}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if rawRoles, ok := claims["roles"].([]interface{}); ok {
		for _, raw := range rawRoles {
			if role, ok := raw.(string); ok {
				user.Roles = append(user.Roles, role)
			}
		}
	}

	if user.AdminID == uuid.Nil {
		return AdminUser{}, errors.New("admin_id claim missing or invalid")
	}

	return user, nil
}

// RequireRole returns middleware that rejects requests whose token lacks
// every listed role. Must be used below jwtauth.Verifier.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := FromContext(r)
			if err != nil {
				slog.Debug("Unauthenticated request to admin resource", "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if user.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			slog.Warn("Admin user lacks required role", "user", user, "required_roles", roles)
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
		})
	}
}
