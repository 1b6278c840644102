package util

import (
	"context"
)

type key string

const (
	clientIPKey      = key("x-forwarded-for")
	idempotencyKey   = key("idempotency-key")
	messageOffsetKey = key("message-offset")
)

// Fields returns the key-value pairs that this package has set into ctx.
func Fields(ctx context.Context) map[string]interface{} {
	mapFields := make(map[string]interface{})
	mapFields["request_id"] = GetRequestID(ctx)
	if ip := GetClientIP(ctx); ip != "" {
		mapFields["client_ip"] = ip
	}
	if idemKey := GetIdempotencyKey(ctx); idemKey != "" {
		mapFields["idempotency_key"] = idemKey
	}
	if offset, ok := GetMessageOffset(ctx); ok {
		mapFields["message_offset"] = offset
	}

	return mapFields
}

// WithClientIP returns a context with a client ip
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// WithIdempotencyKey returns a context carrying the idempotency key of the current request.
func WithIdempotencyKey(ctx context.Context, k string) context.Context {
	return context.WithValue(ctx, idempotencyKey, k)
}

// WithMessageOffset returns a context carrying the offset of the message being processed.
func WithMessageOffset(ctx context.Context, offset int64) context.Context {
	return context.WithValue(ctx, messageOffsetKey, offset)
}

// GetClientIP returns client ip from context
// will return empty string if not present
func GetClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}

// GetIdempotencyKey returns the idempotency key from context, empty if not present.
func GetIdempotencyKey(ctx context.Context) string {
	k, _ := ctx.Value(idempotencyKey).(string)
	return k
}

// GetMessageOffset returns the message offset from context and whether it was set.
func GetMessageOffset(ctx context.Context) (int64, bool) {
	offset, ok := ctx.Value(messageOffsetKey).(int64)
	return offset, ok
}
