package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/rest"
)

// AuthMiddleware 要求請求必須帶有效 token
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if AuthPayloadFromCtx(r.Context()) == nil {
			rest.ErrorJSON(w, http.StatusUnauthorized, "unauthenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminMiddleware 要求 admin 角色
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := AuthPayloadFromCtx(r.Context())
		if payload == nil {
			rest.ErrorJSON(w, http.StatusUnauthorized, "unauthenticated")
			return
		}
		if payload.Role != model.RoleAdmin {
			rest.ErrorJSON(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
