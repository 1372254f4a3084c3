package middlewares

import "context"

// contextKey is an unexported type for context keys in this package.
type contextKey string

// requestIDKey is the context key under which the access log request id is stored.
const requestIDKey contextKey = "request_id"

// ContextWithRequestID returns a new context carrying the request id.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext retrieves the request id from the context.
// Returns an empty string for stdio sessions, which have no HTTP request.
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey).(string)
	return requestID
}
