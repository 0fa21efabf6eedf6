package middleware

import (
	"net/http"

	"skybound/flightline/internal/auth"
	"skybound/flightline/internal/constants"
)

func IsStaffMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())

			if claims != nil && constants.MemberRole(claims.Role()).StaffLevel() {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, "Unauthorized. Need staff perms", http.StatusUnauthorized)
		})
	}
}
