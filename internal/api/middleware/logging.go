package middleware

import (
	"net/http"

	"stateless_auth/internal/logutil"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// RequestLogger attaches a request-scoped logger, tagged with the chi request
// ID, to the context for downstream handlers and services.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := logger.With().
				Str("request_id", chiMiddleware.GetReqID(r.Context())).
				Logger()
			next.ServeHTTP(w, r.WithContext(logutil.WithLogger(r.Context(), l)))
		})
	}
}
