package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dfquintero/plan-seguimiento/pkg/logger"
)

const traceHeader = "X-Trace-ID"

// RequestID assigns each request a trace id, reusing the caller's when the
// frontend proxy already set one, and propagates it via logger context and
// the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "traceID", traceID)
		w.Header().Set(traceHeader, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
