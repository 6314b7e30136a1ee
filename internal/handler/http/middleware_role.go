package http

import (
	"net/http"
	"slices"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/MKhiriev/go-user-accounts/models"
)

// requireRoles lets the request through only when the caller role stored by
// auth is one of roles. Everyone else gets 403.
func requireRoles(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := utils.GetRoleFromContext(r.Context())
			if !slices.Contains(roles, role) {
				logger.FromRequest(r).Info().
					Str("func", "requireRoles").
					Str("role", role.String()).
					Str("path", r.URL.Path).
					Msg("access denied")
				utils.WriteDetail(w, operationNotPermitted, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
