package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/utils"
)

const couldNotValidateCredential = "Could not validate credentials"

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via [service.TokenService.ParseToken] and stores the account ID and role in
// the request context with [utils.WithPrincipal].
//
// Requests are rejected with 401 Unauthorized when the header is absent,
// malformed, or carries an expired or otherwise invalid token.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Str("func", "*Handler.auth").Send()
			writeUnauthorized(w)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Str("func", "*Handler.auth").Send()
			writeUnauthorized(w)
			return
		}

		ctx := r.Context()
		token, err := h.services.TokenService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Info().Err(err).Str("func", "*Handler.auth").Msg("token rejected")
			writeUnauthorized(w)
			return
		}

		ctx = utils.WithPrincipal(ctx, token.AccountID, token.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	utils.WriteDetail(w, couldNotValidateCredential, http.StatusUnauthorized)
}
