package logging

import "context"

type ctxKey struct{}

// RequestIDKey is the attribute name under which both backends log the id
// carried by the context.
const RequestIDKey = "request_id"

// ContextWithRequestID returns a copy of ctx carrying id. Every line logged
// with the returned context gets a request_id attribute.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestIDFromContext returns the id stored by ContextWithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// withRequestID appends the request id of ctx to args when there is one.
func withRequestID(ctx context.Context, args []any) []any {
	id := RequestIDFromContext(ctx)
	if id == "" {
		return args
	}
	return append(args[:len(args):len(args)], RequestIDKey, id)
}
