package middleware

import (
	"net/http"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/auth"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/user"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AdminOnly gates roster and correction endpoints behind the admin role.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != string(user.RoleAdmin) {
			response.Forbidden(w, "Admin privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
