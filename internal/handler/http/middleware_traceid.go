package http

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	traceIDHeader = "X-Trace-ID"

	maxTraceIDLength = 128
)

// withTraceID puts a request logger tagged with "trace_id" and the remote
// address into the request context. A client-supplied X-Trace-ID
// is reused when it is short and printable; otherwise a fresh UUID is
// generated. The chosen id is always echoed in the response.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if !acceptableTraceID(traceID) {
			traceID = uuid.NewString()
		}

		requestLogger := h.logger.GetChildLogger()
		requestLogger.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID).Str("remote_addr", r.RemoteAddr)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(requestLogger.WithContext(r.Context())))
	})
}

func acceptableTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDLength {
		return false
	}
	return strings.IndexFunc(id, func(r rune) bool {
		return r > unicode.MaxASCII || !unicode.IsPrint(r) || unicode.IsSpace(r)
	}) < 0
}
