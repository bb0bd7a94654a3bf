package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/pkg/rest"
	"github.com/rs/zerolog"
)

func RecoverMiddleware(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Interface("panic", rec).
						Str("request_id", RequestIDFromCtx(r.Context())).
						Str("path", r.URL.Path).
						Msg("panic recovered")
					rest.ErrorJSON(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
