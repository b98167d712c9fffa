package auth

import (
	"net/http"
	"strings"

	"github.com/IntenseCord/Proyecto-POO2/internal/platform/httpx"
	"github.com/IntenseCord/Proyecto-POO2/internal/shared"
)

// Middleware resolves the bearer token and stamps tenant and user onto the
// request context. Handlers downstream read them via the shared package.
func Middleware(service *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
				return
			}
			sess, err := service.Resolve(r.Context(), token)
			if err != nil {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid or expired session")
				return
			}
			ctx := shared.ContextWithTenant(r.Context(), sess.TenantID)
			ctx = shared.ContextWithUser(ctx, sess.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
