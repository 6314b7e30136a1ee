package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/rs/zerolog"
)

// withLogging writes one access-log line per request. Server errors are
// logged at error level and client errors at warn level, so that failed
// logins and rejected tokens stand out from regular traffic.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		var event *zerolog.Event
		switch status := lw.Status(); {
		case status >= http.StatusInternalServerError:
			event = log.Error()
		case status >= http.StatusBadRequest:
			event = log.Warn()
		default:
			event = log.Info()
		}

		event.
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", lw.Status()).
			Int("size", lw.size).
			Dur("duration", time.Since(start)).
			Msg("request served")
	})
}
