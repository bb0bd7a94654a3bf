package middleware

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/token"
)

type ctxKey string

const (
	AuthorizationHeaderKey  = "Authorization"
	AuthorizationTypeBearer = "bearer"

	authorizationPayloadKey ctxKey = "authorization_payload"
	requestIDKey            ctxKey = "request_id"
)

// AuthPayloadFromCtx 取出驗證過的 token payload，未登入回傳 nil
func AuthPayloadFromCtx(ctx context.Context) *token.Payload {
	payload, ok := ctx.Value(authorizationPayloadKey).(*token.Payload)
	if !ok {
		return nil
	}
	return payload
}

func RequestIDFromCtx(ctx context.Context) string {
	id, ok := ctx.Value(requestIDKey).(string)
	if !ok {
		return ""
	}
	return id
}
