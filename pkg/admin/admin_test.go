package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-admin-secret"

func newProtectedRouter(t *testing.T, roles ...string) chi.Router {
	auth := NewAuth(testSecret)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(auth))
		r.Use(jwtauth.Authenticator(auth))
		r.Use(RequireRole(roles...))
		r.Get("/admin-only", func(w http.ResponseWriter, r *http.Request) {
			user, err := FromContext(r)
			require.NoError(t, err)
			w.Write([]byte(user.Email))
		})
	})
	return r
}

func get(router chi.Router, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireRole(t *testing.T) {
	router := newProtectedRouter(t, "admin")
	user := AdminUser{
		AdminID: uuid.New(),
		Email:   "ops@startupvista.in",
		Roles:   []string{"admin"},
	}

	t.Run("ValidTokenWithRole", func(t *testing.T) {
		token, err := CreateToken(testSecret, user, time.Hour)
		require.NoError(t, err)

		rec := get(router, token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ops@startupvista.in", rec.Body.String())
	})

	t.Run("MissingToken", func(t *testing.T) {
		rec := get(router, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := CreateToken("some-other-secret", user, time.Hour)
		require.NoError(t, err)

		rec := get(router, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		token, err := CreateToken(testSecret, user, -time.Minute)
		require.NoError(t, err)

		rec := get(router, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("MissingRole", func(t *testing.T) {
		viewer := AdminUser{
			AdminID: uuid.New(),
			Email:   "viewer@startupvista.in",
			Roles:   []string{"viewer"},
		}
		token, err := CreateToken(testSecret, viewer, time.Hour)
		require.NoError(t, err)

		rec := get(router, token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("AnyListedRoleSuffices", func(t *testing.T) {
		multiRole := newProtectedRouter(t, "admin", "moderator")
		moderator := AdminUser{
			AdminID: uuid.New(),
			Email:   "mod@startupvista.in",
			Roles:   []string{"moderator"},
		}
		token, err := CreateToken(testSecret, moderator, time.Hour)
		require.NoError(t, err)

		rec := get(multiRole, token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestFromContext_RoundTripsClaims(t *testing.T) {
	auth := NewAuth(testSecret)
	user := AdminUser{
		AdminID: uuid.New(),
		Email:   "ops@startupvista.in",
		Roles:   []string{"admin", "moderator"},
	}

	token, err := CreateToken(testSecret, user, time.Hour)
	require.NoError(t, err)

	var got AdminUser
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(auth))
	r.Use(jwtauth.Authenticator(auth))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		got, err = FromContext(r)
		require.NoError(t, err)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, user.AdminID, got.AdminID)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.Roles, got.Roles)
}

func TestHasRole(t *testing.T) {
	user := AdminUser{Roles: []string{"admin"}}
	assert.True(t, user.HasRole("admin"))
	assert.False(t, user.HasRole("moderator"))
	assert.False(t, AdminUser{}.HasRole("admin"))
}
