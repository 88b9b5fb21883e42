package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/typed"
)

// RequestIDHeader is the header RequestID reads an upstream request ID from and echoes it in.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under typed.RequestIDKey,
// reusing a valid uuid set by an upstream proxy in the X-Request-Id header.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), typed.RequestIDKey, id)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
