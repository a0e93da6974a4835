package middleware

import (
	"net/http"

	"github.com/mfreitas/storegate/internal/api/apierr"
	"github.com/mfreitas/storegate/internal/model"
)

// Capabilities that are restricted beyond plain authentication
const (
	CapProductDelete = "products:delete"
	CapSeedRun       = "seed:run"
)

// capabilityRoles is the static table of which roles grant each
// restricted capability. Routes not listed here only need a valid user.
var capabilityRoles = map[string][]string{
	CapProductDelete: {model.RoleAdmin},
	CapSeedRun:       {model.RoleAdmin},
}

// RequireCapability creates middleware that rejects users whose roles do
// not grant the capability. Must run after Auth.
func RequireCapability(capability string) func(http.Handler) http.Handler {
	roles := capabilityRoles[capability]
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := MustGetUser(r.Context())

			if !hasAnyRole(user, roles) {
				apierr.WriteError(w, apierr.NewForbiddenError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func hasAnyRole(user *model.User, roles []string) bool {
	for _, role := range roles {
		if user.HasRole(role) {
			return true
		}
	}
	return false
}
