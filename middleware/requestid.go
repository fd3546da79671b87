package middleware

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/tanayvk/conduit/request"
	"github.com/tanayvk/conduit/response"
	"github.com/tanayvk/conduit/server"
)

// HeaderRequestID is the header used to track a request end-to-end.
const HeaderRequestID = "X-Request-ID"

type requestIDContextKey struct{}

// RequestIDFromContext returns the request ID stored in the context, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

func normalizeRequestID(v string) string {
	v = strings.TrimSpace(v)
	if strings.ContainsAny(v, "\r\n") {
		return ""
	}
	const maxLen = 128
	if len(v) > maxLen {
		v = v[:maxLen]
	}
	return v
}

// RequestID honors an inbound X-Request-ID header or generates a fresh UUID,
// stores the ID in the request context and echoes it on the response.
func RequestID(next server.Handler) server.Handler {
	return func(r *request.Request) response.Response {
		id := normalizeRequestID(r.Headers.Get(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), requestIDContextKey{}, id)
		resp := next(r.WithContext(ctx))
		resp.GetHeaders().Set(HeaderRequestID, id)
		return resp
	}
}
