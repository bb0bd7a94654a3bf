package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/RoyceAzure/lab/storefront/internal/token"
)

// AuthPayloadMiddleware 解析 Bearer token 並把 payload 放進 ctx
// 沒帶 token 或驗證失敗不在這裡擋，由 AuthMiddleware 決定該路由是否必須登入
func AuthPayloadMiddleware(tokenMaker token.Maker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get(AuthorizationHeaderKey)
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			fields := strings.Fields(authHeader)
			if len(fields) != 2 || strings.ToLower(fields[0]) != AuthorizationTypeBearer {
				next.ServeHTTP(w, r)
				return
			}

			payload, err := tokenMaker.VerifyToken(fields[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), authorizationPayloadKey, payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
