package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kpimanager/kpi-backend-go/internal/domain/auth"
	"github.com/kpimanager/kpi-backend-go/internal/domain/user"
	"github.com/kpimanager/kpi-backend-go/internal/handler/http/response"
)

// AuthRequired verifies the access token and stores the resulting
// principal in the request context. Downstream code reads the identity
// from the principal, never from the raw claims.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			role, _ := claims["role"].(string)
			employeeID, _ := claims["employee_id"].(string)

			principal := auth.Principal{
				UserID:     userID,
				EmployeeID: employeeID,
				Role:       user.Role(role),
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		}
		return http.HandlerFunc(hfn)
	}
}
