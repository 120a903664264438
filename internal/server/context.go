package server

import (
	"context"

	"github.com/vitalhq/vital-gateway/internal/identity"
)

type contextKey string

// RequestIDKey is the context key for correlation ids.
const RequestIDKey contextKey = "request_id"

type identityKey struct{}
type decodedBodyKey struct{}

// GetRequestID retrieves the correlation id from context.
// Returns an empty string if no id is set.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithIdentity attaches the authenticated identity to the context. Subject
// id and role travel together; nothing downstream mutates them.
func WithIdentity(ctx context.Context, id identity.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// GetIdentity retrieves the authenticated identity from context. ok is
// false on routes that did not pass the auth guard.
func GetIdentity(ctx context.Context) (identity.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(identity.Identity)
	return id, ok
}

// WithDecodedBody attaches the decoded request payload to the context.
func WithDecodedBody(ctx context.Context, body map[string]any) context.Context {
	return context.WithValue(ctx, decodedBodyKey{}, body)
}

// DecodedBody retrieves the payload decoded by the body stage. Returns an
// empty map when the request carried no decodable body, so handlers can
// index fields without a nil check.
func DecodedBody(ctx context.Context) map[string]any {
	if body, ok := ctx.Value(decodedBodyKey{}).(map[string]any); ok {
		return body
	}
	return map[string]any{}
}
