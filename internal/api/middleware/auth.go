package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/MBrunoS/ezpet-sub000/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

const userIDHeader = "X-User-ID"

// Auth requires a numeric X-User-ID header and stores it in the request
// context. Identity verification happens upstream at the API gateway; this
// service only consumes the already-authenticated user ID.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(userIDHeader)
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, "missing X-User-ID header")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "invalid X-User-ID header")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the authenticated user ID from the context
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
