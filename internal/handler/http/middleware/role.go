package middleware

import (
	"net/http"

	"github.com/kpimanager/kpi-backend-go/internal/domain/auth"
	"github.com/kpimanager/kpi-backend-go/internal/domain/user"
	"github.com/kpimanager/kpi-backend-go/internal/handler/http/response"
)

// AdminOnly requires the admin role
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := auth.PrincipalFromContext(r.Context())
		if !ok || !principal.IsAdmin() {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
