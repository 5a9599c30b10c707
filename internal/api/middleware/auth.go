package middleware

import (
	"context"
	"net/http"
	"strconv"
)

type ctxKey struct{}

// UserIDHeader carries the authenticated user id set by the API gateway.
const UserIDHeader = "X-User-ID"

// Identity extracts the optional X-User-ID header into the request context.
// Requests without the header pass through as guest traffic; endpoints that
// need an authenticated user reject inside the handler.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := r.Header.Get(UserIDHeader); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, id))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKey{}).(int64)
	return id, ok
}
