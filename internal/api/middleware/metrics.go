package middleware

import (
	"net/http"
	"slices"

	"github.com/jdscolam/mndp-firebase-auth/internal/metrics"
)

// Metrics counts requests per path. Paths not in knownPaths are counted as "other"
// to keep label cardinality bounded.
func Metrics(m *metrics.Metrics, knownPaths []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			path := r.URL.Path
			if !slices.Contains(knownPaths, path) {
				path = "other"
			}
			m.ObserveRequest(r.Method, path, ww.statusCode)
		})
	}
}
