package http

import (
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/utils"
)

// recoverer turns a panic into a generic 500 response. The panic value and
// stack only go to the log.
func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromRequest(r).Error().
				Str("func", "*Handler.recoverer").
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("unhandled panic")
			utils.WriteDetail(w, internalServerError, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
