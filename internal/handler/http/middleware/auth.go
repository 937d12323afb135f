package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/spx-hr/attendance-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests without a valid token. Tokens are issued by
// the external authentication provider; this service only verifies them.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "missing or invalid token")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
