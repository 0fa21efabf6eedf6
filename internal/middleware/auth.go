package middleware

import (
	"net/http"
	"skybound/flightline/internal/auth"
	"skybound/flightline/internal/db/repositories"
)

func AuthMiddleware(memberRepo *repositories.MemberRepository, keysRepo *repositories.KeysRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			apiKey := r.Header.Get("X-API-Key")

			if apiKey == "" {
				http.Error(w, "Unauthorized. Missing API Key", http.StatusUnauthorized)
				return
			}

			keyRes, err := keysRepo.GetStatus(r.Context(), apiKey)
			if err != nil {
				http.Error(w, "Unauthorized. Invalid API Key", http.StatusUnauthorized)
				return
			}

			if !keyRes.IsActive {
				http.Error(w, "Unauthorized. Inactive API Key", http.StatusUnauthorized)
				return
			}

			memberID := r.Header.Get("X-Member-Id")
			claims := auth.MakeClaimsFromApi(r.Context(), memberRepo, keyRes.SchoolID, memberID)

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
