package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jdscolam/mndp-firebase-auth/internal/api/presenter"
)

// AdminAuth only lets requests through that carry token as bearer credential.
func AdminAuth(token string) func(handler http.Handler) http.Handler {
	want := []byte(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			got, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || got == "" {
				presenter.Error(w, r, "admin token required", http.StatusUnauthorized)
				return
			}
			if len(want) == 0 || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				log.Ctx(r.Context()).Warn().Msg("admin request with invalid token")
				presenter.Error(w, r, "invalid admin token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
