package middleware

import (
	"net/http"

	"github.com/Temirlan472/Office_Board/pkg/logger"
)

// RequireRole rejects requests whose authenticated principal does not carry
// one of the given roles. Must run after AuthMiddleware.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetUserFromContext(r.Context())
			if claims == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			logger.Log.WithFields(map[string]interface{}{
				"userID": claims.UserID,
				"role":   claims.Role,
				"path":   r.URL.Path,
			}).Warn("Forbidden: insufficient role")
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
		})
	}
}
