package middleware

import (
	"net/http"

	"github.com/jdscolam/mndp-firebase-auth/internal/correlation"
)

const CorrelationIDHeader = correlation.Header

func CorrelationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(CorrelationIDHeader)
		if id == "" || len(id) > 64 {
			id = correlation.New()
		}
		w.Header().Set(CorrelationIDHeader, id)

		ctx := correlation.WithID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
