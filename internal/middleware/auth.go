package middleware

import (
	"context"
	"net/http"
	"strings"

	"assetdb/internal/auth"
	"assetdb/internal/httpx"

	"github.com/gorilla/mux"
)

type userKey struct{}

// Auth требует Bearer-токен. Claims кладутся в контекст запроса.
func Auth(tokens *auth.Tokens) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			raw = strings.TrimSpace(raw)
			if !ok || raw == "" {
				httpx.Fail(w, http.StatusUnauthorized, "No token provided", "")
				return
			}
			claims, err := tokens.Verify(raw)
			if err != nil {
				httpx.Fail(w, http.StatusUnauthorized, "Invalid or expired token", "")
				return
			}
			ctx := context.WithValue(r.Context(), userKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UserFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(userKey{}).(*auth.Claims)
	return c, ok
}
