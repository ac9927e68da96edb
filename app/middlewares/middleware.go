package middlewares

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/ozodbek-dev/go-storefront/app/helpers"
)

// UserID pulls the authenticated user id set by the upstream auth layer
// from the X-User-ID header into the request context. Requests without it
// are rejected; authentication itself happens outside this service.
func UserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			http.Error(w, "missing user identity", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}
